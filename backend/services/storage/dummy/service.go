package dummy

import (
	"context"
	"fmt"

	"lms/backend/services/storage"

	"github.com/google/uuid"
)

// Service for local development and tests: URLs point nowhere.
type service struct{}

var _ storage.Service = service{}

func NewService() storage.Service {
	return service{}
}

func (service) SignedUploadURL(_ context.Context, fileName, _ string) (string, string, error) {
	key := fmt.Sprintf("videos/%s/%s", uuid.NewString(), fileName)
	return "https://storage.invalid/upload/" + key, "https://cdn.invalid/" + key, nil
}

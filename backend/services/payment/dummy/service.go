package dummy

import (
	"context"
	"fmt"

	"lms/backend/services/payment"
)

// Provider for local development and tests: no processor is contacted.
type service struct{}

var _ payment.Provider = service{}

func NewProvider() payment.Provider {
	return service{}
}

func (service) CreatePaymentIntent(_ context.Context, amount int64) (string, error) {
	return fmt.Sprintf("pi_dummy_%d_secret", amount), nil
}

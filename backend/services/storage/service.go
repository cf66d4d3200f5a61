package storage

import "context"

// Service is the object-store boundary: it issues signed upload URLs and the
// public URL the uploaded file will be served from. The upload itself happens
// directly from the client.
type Service interface {
	SignedUploadURL(ctx context.Context, fileName, fileType string) (uploadURL, fileURL string, err error)
}

package s3store

import (
	"context"
	"fmt"
	"time"

	"lms/backend/services/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const uploadURLExpiry = 60 * time.Second

type service struct {
	presign   *s3.PresignClient
	bucket    string
	cdnDomain string
}

var _ storage.Service = (*service)(nil)

func NewService(ctx context.Context, bucket, region, cdnDomain string) (storage.Service, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}

	return &service{
		presign:   s3.NewPresignClient(s3.NewFromConfig(cfg)),
		bucket:    bucket,
		cdnDomain: cdnDomain,
	}, nil
}

func (svc *service) SignedUploadURL(ctx context.Context, fileName, fileType string) (string, string, error) {
	key := fmt.Sprintf("videos/%s/%s", uuid.NewString(), fileName)

	req, err := svc.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(svc.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}, s3.WithPresignExpires(uploadURLExpiry))
	if err != nil {
		return "", "", err
	}

	return req.URL, fmt.Sprintf("%s/%s", svc.cdnDomain, key), nil
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// r2Storage stores images in a Cloudflare R2 bucket through its S3 API.
type r2Storage struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

func NewR2Storage(ctx context.Context, cfg Config) (ImageStorage, error) {
	if cfg.R2AccountID == "" || cfg.R2AccessKeyID == "" || cfg.R2SecretAccessKey == "" || cfg.R2Bucket == "" || cfg.R2PublicURL == "" {
		return nil, errors.New("invalid Cloudflare R2 configuration: all R2_* fields are required")
	}

	sdkCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config for R2: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID)
	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &r2Storage{
		client:        client,
		bucket:        cfg.R2Bucket,
		publicBaseURL: strings.TrimRight(cfg.R2PublicURL, "/"),
	}, nil
}

func (s *r2Storage) UploadImage(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	key := objectKey(folder, fileName)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType(fileName)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object to R2 (key: %s): %w", key, err)
	}

	return s.publicBaseURL + "/" + key, nil
}

func (s *r2Storage) DeleteImage(ctx context.Context, fileURL string) error {
	key, ok := keyFromURL(s.publicBaseURL, fileURL)
	if !ok {
		return fmt.Errorf("%s is not served from bucket %s: %w", fileURL, s.bucket, ErrForeignURL)
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object from R2 (key: %s): %w", key, err)
	}
	return nil
}

func objectKey(folder, fileName string) string {
	return path.Join(folder, uuid.NewString()+strings.ToLower(filepath.Ext(fileName)))
}

func keyFromURL(base, fileURL string) (string, bool) {
	key, ok := strings.CutPrefix(fileURL, base+"/")
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStorage implements Storage using a MinIO (or any S3-compatible) backend.
// Cloudflare R2 is addressed the same way: point STORAGE_ENDPOINT at
// "<account>.r2.cloudflarestorage.com" and set STORAGE_REGION to "auto".
type MinioStorage struct {
	client *minio.Client
	bucket string
}

// NewMinioStorage creates a MinIO client and verifies that the bucket exists.
func NewMinioStorage(ctx context.Context, endpoint, accessKey, secretKey, bucket, region string, useSSL bool) (*MinioStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %q does not exist", bucket)
	}

	slog.Info("object storage ready", slog.String("endpoint", endpoint), slog.String("bucket", bucket))
	return newMinioStorage(client, bucket), nil
}

func newMinioStorage(client *minio.Client, bucket string) *MinioStorage {
	return &MinioStorage{client: client, bucket: bucket}
}

// Delete removes the object at key from the bucket.
// S3 treats deleting a missing object as success.
func (s *MinioStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code != "" {
			return fmt.Errorf("remove object %q: %s: %w", key, resp.Code, err)
		}
		return fmt.Errorf("remove object %q: %w", key, err)
	}
	return nil
}

package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"docvault/internal/config"
	"docvault/internal/domain"
)

// MinioStore implements BlobStore against any S3-compatible endpoint.
type MinioStore struct {
	client *minio.Client
	bucket string
	secure bool
	logger *slog.Logger
}

// NewMinioStore connects to the configured endpoint and verifies the
// bucket exists, creating it if necessary.
func NewMinioStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*MinioStore, error) {
	client, err := minio.New(cfg.StorageEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.StorageAccessKey, cfg.StorageSecretKey, ""),
		Secure: cfg.StorageUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.StorageBucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.StorageBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
		logger.Info("storage bucket created", "bucket", cfg.StorageBucket)
	}

	return &MinioStore{
		client: client,
		bucket: cfg.StorageBucket,
		secure: cfg.StorageUseSSL,
		logger: logger,
	}, nil
}

// Put uploads a blob under a fresh key and returns its location.
func (s *MinioStore) Put(ctx context.Context, reader io.Reader, size int64, contentType string) (*PutResult, error) {
	key := uuid.NewString()

	info, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: put object %s: %v", domain.ErrStorage, key, err)
	}

	scheme := "http"
	if s.secure {
		scheme = "https"
	}

	return &PutResult{
		Key:  key,
		URL:  fmt.Sprintf("%s://%s/%s/%s", scheme, s.client.EndpointURL().Host, s.bucket, key),
		Size: info.Size,
	}, nil
}

// Delete removes a blob. Removing an absent key is not an error on
// S3-compatible stores, which keeps purge idempotent.
func (s *MinioStore) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%w: remove object %s: %v", domain.ErrStorage, key, err)
	}
	return nil
}

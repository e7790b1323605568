package upload

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// s3Storage implements Storage for writing uploaded images to AWS S3.
type s3Storage struct {
	client *s3.Client
	bucket string
	prefix string
	logger zerolog.Logger
}

// NewS3Storage creates a new S3-based upload storage.
func NewS3Storage(ctx context.Context, bucket, region, prefix string, logger zerolog.Logger) (Storage, error) {
	logger = logger.With().Str("component", "s3-storage").Logger()

	// Load AWS configuration
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 storage initialised")

	return &s3Storage{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}, nil
}

// Save writes the file to the bucket under the configured prefix and returns
// the public path.
func (s *s3Storage) Save(ctx context.Context, name string, data []byte) (string, error) {
	key := s.prefix + name

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(ContentType(name)),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", key).
			Msg("failed to put object to S3")
		return "", fmt.Errorf("failed to put object to S3 (bucket=%s, key=%s): %w", s.bucket, key, err)
	}

	s.logger.Info().
		Str("bucket", s.bucket).
		Str("key", key).
		Int("size", len(data)).
		Msg("file stored in S3")

	return "/uploads/" + name, nil
}

// fallbackStorage tries S3 first, then falls back to local disk.
type fallbackStorage struct {
	s3Storage   Storage
	diskStorage Storage
	s3Enabled   bool
	logger      zerolog.Logger
}

// NewFallbackStorage creates a storage that tries S3 first, then falls back
// to local disk. If s3Storage is nil, only the disk storage is used.
func NewFallbackStorage(s3Storage, diskStorage Storage, s3Enabled bool, logger zerolog.Logger) Storage {
	return &fallbackStorage{
		s3Storage:   s3Storage,
		diskStorage: diskStorage,
		s3Enabled:   s3Enabled,
		logger:      logger.With().Str("component", "fallback-storage").Logger(),
	}
}

// Save attempts to store in S3 first, then falls back to local disk.
func (s *fallbackStorage) Save(ctx context.Context, name string, data []byte) (string, error) {
	if s.s3Enabled && s.s3Storage != nil {
		path, err := s.s3Storage.Save(ctx, name, data)
		if err == nil {
			return path, nil
		}

		s.logger.Warn().
			Err(err).
			Str("name", name).
			Msg("failed to store in S3, falling back to local disk")
	}

	return s.diskStorage.Save(ctx, name, data)
}

package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// PutObjectAPI is the subset of the S3 client used for uploads.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// s3Archiver uploads invoices to an S3 bucket.
type s3Archiver struct {
	client PutObjectAPI
	bucket string
	prefix string
	logger zerolog.Logger
}

// NewS3Archiver creates an S3 archiver using the default AWS credential chain.
func NewS3Archiver(ctx context.Context, bucket, region, prefix string, logger zerolog.Logger) (Archiver, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return NewS3ArchiverWithClient(s3.NewFromConfig(cfg), bucket, prefix, logger), nil
}

// NewS3ArchiverWithClient creates an S3 archiver around an existing client.
func NewS3ArchiverWithClient(client PutObjectAPI, bucket, prefix string, logger zerolog.Logger) Archiver {
	logger = logger.With().Str("component", "s3-archiver").Logger()
	logger.Info().
		Str("bucket", bucket).
		Str("prefix", prefix).
		Msg("S3 archiver initialised")

	return &s3Archiver{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}
}

// Archive uploads the invoice as <prefix><file name> and returns its s3 URI.
func (a *s3Archiver) Archive(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open invoice %s: %w", path, err)
	}
	defer file.Close()

	key := a.prefix + filepath.Base(path)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		a.logger.Error().
			Err(err).
			Str("bucket", a.bucket).
			Str("key", key).
			Msg("failed to upload invoice to S3")
		return "", fmt.Errorf("failed to upload invoice to S3 (bucket=%s, key=%s): %w", a.bucket, key, err)
	}

	location := "s3://" + a.bucket + "/" + key
	a.logger.Info().Str("location", location).Msg("invoice archived to S3")
	return location, nil
}

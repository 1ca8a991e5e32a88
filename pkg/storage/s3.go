package storage

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/voluntree/backend/config"
	"github.com/voluntree/backend/pkg/logger"
	"go.uber.org/zap"
)

// BlobStore uploads staged local files to object storage and returns the
// public URL they are served from.
type BlobStore interface {
	Upload(ctx context.Context, localPath string) (string, error)
	Remove(localPath string) error
}

// S3Store implements BlobStore on top of an S3-compatible endpoint.
type S3Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewS3Store builds an S3 client with static credentials. A custom endpoint
// supports MinIO and other S3-compatible services.
func NewS3Store(ctx context.Context, cfg *config.Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Storage.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage configuration: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicBase := strings.TrimSuffix(cfg.Storage.PublicBaseURL, "/")
	if publicBase == "" {
		publicBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Storage.Bucket, cfg.Storage.Region)
	}

	return &S3Store{
		client:        client,
		bucket:        cfg.Storage.Bucket,
		publicBaseURL: publicBase,
	}, nil
}

// Upload streams a staged local file into the bucket under a date-sharded
// key and returns its public URL. The staged file is left in place; callers
// remove it once they no longer need it.
func (s *S3Store) Upload(ctx context.Context, localPath string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open staged file: %w", err)
	}
	defer file.Close()

	ext := filepath.Ext(localPath)
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("users/%s/%s%s", time.Now().UTC().Format("2006/01/02"), uuid.NewString(), ext)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	logger.InfoWithContext(ctx, "blob uploaded").
		String("bucket", s.bucket).
		String("key", key).
		Log()

	return s.publicBaseURL + "/" + key, nil
}

// Remove deletes a staged local file. Missing files are not an error so
// cleanup paths can run unconditionally.
func (s *S3Store) Remove(localPath string) error {
	if localPath == "" {
		return nil
	}

	err := os.Remove(localPath)
	if err != nil && !os.IsNotExist(err) {
		logger.GetLogger().Warn("failed to remove staged file",
			zap.String("path", localPath),
			zap.Error(err),
		)
		return err
	}
	return nil
}

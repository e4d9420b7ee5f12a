// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/herambgvd/gvd-frs/internal/config"
)

// StorageService talks to an S3-compatible object store. The endpoint is
// configurable so MinIO/RustFS deployments work alongside AWS itself.
type StorageService struct {
	s3Client *s3.S3
	config   *config.StorageConfig
}

type UploadResult struct {
	URL       string `json:"url"`
	ObjectKey string `json:"object_key"`
	Size      int64  `json:"size"`
	MimeType  string `json:"mime_type"`
}

func NewStorageService(cfg *config.StorageConfig) (*StorageService, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(cfg.ForcePathStyle)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create object store session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   cfg,
	}, nil
}

// EnsureBucket creates the configured bucket if it does not exist yet.
func (s *StorageService) EnsureBucket(ctx context.Context) error {
	_, err := s.s3Client.HeadBucketWithContext(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.config.Bucket),
	})
	if err == nil {
		return nil
	}

	if aerr, ok := err.(awserr.Error); ok {
		switch aerr.Code() {
		case s3.ErrCodeNoSuchBucket, "NotFound":
			_, err = s.s3Client.CreateBucketWithContext(ctx, &s3.CreateBucketInput{
				Bucket: aws.String(s.config.Bucket),
			})
			if err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", s.config.Bucket, err)
			}
			logrus.WithField("bucket", s.config.Bucket).Info("Object store bucket created")
			return nil
		}
	}

	return fmt.Errorf("failed to check bucket %s: %w", s.config.Bucket, err)
}

func (s *StorageService) UploadObject(ctx context.Context, key, contentType string, data []byte) (*UploadResult, error) {
	_, err := s.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.config.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload object %s: %v: %w", key, err, ErrUpstream)
	}

	return &UploadResult{
		URL:       s.ObjectURL(key),
		ObjectKey: key,
		Size:      int64(len(data)),
		MimeType:  contentType,
	}, nil
}

func (s *StorageService) DeleteObject(ctx context.Context, key string) error {
	_, err := s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %v: %w", key, err, ErrUpstream)
	}
	return nil
}

// DeleteObjectQuietly is the compensating cleanup path: failures are logged
// and swallowed so they do not mask the error that triggered the cleanup.
func (s *StorageService) DeleteObjectQuietly(ctx context.Context, key string) {
	if err := s.DeleteObject(ctx, key); err != nil {
		logrus.WithFields(logrus.Fields{
			"object_key": key,
			"error":      err.Error(),
		}).Warn("Failed to clean up orphaned object")
	}
}

func (s *StorageService) GeneratePresignedURL(key string, expiration time.Duration) (string, error) {
	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	})

	url, err := req.Presign(expiration)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return url, nil
}

func (s *StorageService) ObjectURL(key string) string {
	if s.config.PublicURL != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.config.PublicURL, "/"), s.config.Bucket, key)
	}
	if s.config.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.config.Endpoint, "/"), s.config.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.config.Bucket, s.config.Region, key)
}

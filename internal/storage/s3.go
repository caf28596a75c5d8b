// Package storage keeps uploaded photos, logos and documents in an
// S3-compatible bucket and hands back their public URLs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/volleyhub/registration-api/internal/config"
	"github.com/volleyhub/registration-api/internal/domain"
)

var (
	ErrUpload     = errors.New("file upload failed")
	ErrForeignURL = errors.New("url does not belong to this bucket")
)

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3Store struct {
	client  s3API
	bucket  string
	baseURL string
}

// NewS3Store builds a client from conf. Endpoint is optional and points the
// client at MinIO, R2 and similar services.
func NewS3Store(ctx context.Context, conf *config.StorageConfig) (*S3Store, error) {
	if conf.Bucket == "" {
		return nil, fmt.Errorf("storage.bucket is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(conf.Region),
	}
	if conf.AccessKey != "" && conf.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.AccessKey, conf.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("awsconfig.LoadDefaultConfig -> %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if conf.Endpoint != "" {
			o.BaseEndpoint = aws.String(conf.Endpoint)
		}
		o.UsePathStyle = conf.UsePathStyle
	})

	return newS3Store(client, conf), nil
}

func newS3Store(client s3API, conf *config.StorageConfig) *S3Store {
	baseURL := conf.PublicBaseURL
	if baseURL == "" {
		baseURL = strings.TrimSuffix(conf.Endpoint, "/") + "/" + conf.Bucket
	}

	return &S3Store{
		client:  client,
		bucket:  conf.Bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Upload stores file under folder with a fresh object name and returns its URL.
func (s *S3Store) Upload(ctx context.Context, folder string, file domain.Upload) (string, error) {
	key := path.Join(folder, uuid.NewString()+strings.ToLower(path.Ext(file.Name)))

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        file.Body,
		ContentType: aws.String(file.ContentType),
	}
	if file.Size > 0 {
		input.ContentLength = aws.Int64(file.Size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("%w: s.client.PutObject -> %w", ErrUpload, err)
	}

	return s.baseURL + "/" + key, nil
}

// Delete removes the object behind url.
func (s *S3Store) Delete(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || key == "" {
		return ErrForeignURL
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s.client.DeleteObject -> %w", err)
	}

	return nil
}

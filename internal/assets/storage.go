package assets

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Storage uploads binaries to an S3-compatible bucket and hands back
// public URLs. A custom endpoint covers non-AWS providers.
type Storage struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

type StorageOptions struct {
	Bucket    string
	Endpoint  string
	Region    string
	PublicURL string
}

func NewStorage(ctx context.Context, opt StorageOptions) (*Storage, error) {
	if opt.Bucket == "" {
		return nil, fmt.Errorf("STORAGE_BUCKET is required")
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(opt.Region))
	if err != nil {
		return nil, fmt.Errorf("load storage config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opt.Endpoint != "" {
			o.BaseEndpoint = aws.String(opt.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := strings.TrimRight(opt.PublicURL, "/")
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opt.Bucket, opt.Region)
	}

	return &Storage{client: client, bucket: opt.Bucket, publicURL: publicURL}, nil
}

// Upload stores the object and returns its public URL.
func (s *Storage) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.publicURL + "/" + key, nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

package storage

import (
	"bytes"
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
)

// S3Options configures an S3-compatible bucket. Endpoint is set for R2 or MinIO and
// switches the client to path-style addressing.
type S3Options struct {
	Bucket   string
	Endpoint string
	Region   string
}

type s3PutAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Bucket uploads objects through the AWS SDK. Credentials come from the default
// chain (AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY, shared config, instance role).
type S3Bucket struct {
	client s3PutAPI
	bucket string
}

// NewS3Bucket loads the default AWS config and builds a client for opts.
func NewS3Bucket(ctx context.Context, opts S3Options) (*S3Bucket, error) {
	bucket := strings.TrimSpace(opts.Bucket)
	if bucket == "" {
		return nil, errors.New("CV_BUCKET is required for s3 storage")
	}

	region := strings.TrimSpace(opts.Region)
	if region == "" {
		region = "auto"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}

	endpoint := strings.TrimSpace(opts.Endpoint)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Bucket{client: client, bucket: bucket}, nil
}

// Put uploads body under key with the given content type.
func (b *S3Bucket) Put(ctx context.Context, key string, body []byte, contentType string) error {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return ErrInvalidKey
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := b.client.PutObject(ctx, input); err != nil {
		return errors.Wrapf(err, "put s3://%s/%s", b.bucket, key)
	}
	return nil
}

package sources

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/agentstation/shelfmap/pkg/errors"
)

// S3Config holds connection settings for S3-compatible object stores.
// Empty fields fall back to the AWS default configuration chain.
type S3Config struct {
	Region          string
	Endpoint        string // custom endpoint, e.g. a MinIO server
	PathStyle       bool
	AccessKeyID     string
	SecretAccessKey string
}

// S3Source reads a dataset export stored as an S3 object.
type S3Source struct {
	name   string
	bucket string
	key    string
	client *s3.Client
}

// NewS3 creates an S3 source for s3://bucket/key.
func NewS3(ctx context.Context, name, bucket, key string, cfg S3Config) (*S3Source, error) {
	if bucket == "" || key == "" {
		return nil, errors.NewValidationError(name+"_url", "s3://"+bucket+"/"+key, "bucket and key are required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.NewConfigError("s3", "loading AWS configuration", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &S3Source{name: name, bucket: bucket, key: key, client: client}, nil
}

// Name implements Source.
func (s *S3Source) Name() string { return s.name }

// URI implements Source.
func (s *S3Source) URI() string { return "s3://" + s.bucket + "/" + s.key }

// Fetch implements Source.
func (s *S3Source) Fetch(ctx context.Context) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, errors.WrapResource("get", "object", s.URI(), err)
	}
	return out.Body, nil
}

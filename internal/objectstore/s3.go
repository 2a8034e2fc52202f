package objectstore

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"elb-stats/internal/shared/configs"
	"elb-stats/internal/shared/loggers"
)

type s3Store struct {
	client *s3.Client
	logger loggers.Logger
}

// NewS3 creates an ObjectStore backed by AWS S3. Credentials come from the
// config file when set, otherwise from the default provider chain.
func NewS3(ctx context.Context, cfg configs.S3Config, logger loggers.Logger) (ObjectStore, error) {
	awsCfg, err := buildAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build AWS config: %w", err)
	}

	return &s3Store{
		client: s3.NewFromConfig(awsCfg),
		logger: logger,
	}, nil
}

func (s *s3Store) List(ctx context.Context, bucket, prefix string) ([]string, error) {
	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list objects under %q: %w", prefix, err)
	}

	if aws.ToBool(out.IsTruncated) {
		s.logger.Debug().
			Str(loggers.FieldBucket, bucket).
			Str(loggers.FieldPrefix, prefix).
			Msg("listing truncated, objects beyond the first page are ignored")
	}

	keys := make([]string, 0, len(out.Contents))
	for _, obj := range out.Contents {
		keys = append(keys, aws.ToString(obj.Key))
	}
	return keys, nil
}

func (s *s3Store) Download(ctx context.Context, bucket, key string, w io.Writer) error {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to get object %q: %w", key, err)
	}
	defer out.Body.Close()

	if _, err := io.Copy(w, out.Body); err != nil {
		return fmt.Errorf("failed to stream object %q: %w", key, err)
	}
	return nil
}

func buildAWSConfig(ctx context.Context, cfg configs.S3Config) (aws.Config, error) {
	optFns := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}

	// Use static credentials if provided
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		optFns = append(optFns, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	return awsconfig.LoadDefaultConfig(ctx, optFns...)
}

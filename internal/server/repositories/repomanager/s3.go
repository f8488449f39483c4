package repomanager

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrijs2005/bunfight/internal/server/config"
	"github.com/dmitrijs2005/bunfight/internal/server/repositories/entries"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) entries.S3API {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// S3RepositoryManager serves entries from an S3-compatible bucket (AWS, MinIO).
type S3RepositoryManager struct {
	entries *entries.S3Repository
}

func NewS3RepositoryManager(ctx context.Context, c *config.Config) (*S3RepositoryManager, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(c.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.S3RootUser,
			c.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config error: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if c.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(c.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3RepositoryManager{entries: entries.NewS3Repository(client, c.S3Bucket, c.S3Prefix)}, nil
}

func (m *S3RepositoryManager) Entries() entries.Repository {
	return m.entries
}

func (m *S3RepositoryManager) Atomic(ctx context.Context, fn func(ctx context.Context, repo entries.Repository) error) error {
	return fn(ctx, m.entries)
}

func (m *S3RepositoryManager) Close() error {
	return nil
}

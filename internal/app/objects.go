package app

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"

	"myflix-api/internal/config"
	"myflix-api/internal/storage"
)

// NewObjectStorage builds an S3 client for reading remote seed catalogs. A custom
// endpoint switches to path-style addressing for S3-compatible servers.
func NewObjectStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Seed.Region),
	}
	if cfg.Seed.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.Seed.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Seed.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Seed.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("reading seed catalogs from s3 (region %s)", cfg.Seed.Region)
	return storage.NewS3Service(client), nil
}

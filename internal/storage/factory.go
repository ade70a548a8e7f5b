// Package storage selects the object storage provider from configuration.
package storage

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"clipgen/internal/adapters/storage/gdrive"
	"clipgen/internal/adapters/storage/localfs"
	"clipgen/internal/adapters/storage/s3"
	"clipgen/internal/config"
	"clipgen/internal/ports"
)

// Provider is the storage contract used across API and worker. It aliases
// ports.StorageProvider to keep call-sites simple.
type Provider = ports.StorageProvider

func NewProvider(ctx context.Context, cfg *config.Config) (Provider, error) {
	switch cfg.StorageProvider {
	case "s3":
		return newS3Provider(ctx, cfg)
	case "gdrive":
		return newGDriveProvider(ctx, cfg)
	default:
		return localfs.New(cfg.StorageLocalRoot, cfg.StorageBaseURL), nil
	}
}

func newS3Provider(ctx context.Context, cfg *config.Config) (Provider, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, err
	}
	return s3.NewClient(awss3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.AWSRegion), nil
}

func newGDriveProvider(ctx context.Context, cfg *config.Config) (Provider, error) {
	conf := &oauth2.Config{
		ClientID:     cfg.GDriveClientID,
		ClientSecret: cfg.GDriveClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{drive.DriveFileScope},
	}

	tok := &oauth2.Token{RefreshToken: cfg.GDriveRefreshToken}
	httpClient := conf.Client(ctx, tok)

	srv, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, err
	}

	return gdrive.NewClient(srv, cfg.GDriveFolderID), nil
}

package config

import (
	"context"
	"log/slog"

	"github.com/atelier-vert/rapport/pkg/service/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Storage holds CLI flags for the public image bucket
type Storage struct {
	bucket string
	prefix string
}

// Flags returns CLI flags for storage configuration
func (s *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "storage-bucket",
			Usage:       "Cloud Storage bucket for published images (image upload is disabled when empty)",
			Category:    "Storage",
			Sources:     cli.EnvVars("RAPPORT_STORAGE_BUCKET"),
			Destination: &s.bucket,
		},
		&cli.StringFlag{
			Name:        "storage-prefix",
			Usage:       "Object key prefix inside the bucket",
			Category:    "Storage",
			Value:       "rapports",
			Sources:     cli.EnvVars("RAPPORT_STORAGE_PREFIX"),
			Destination: &s.prefix,
		},
	}
}

func (s Storage) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("bucket", s.bucket),
		slog.String("prefix", s.prefix),
	)
}

// Configure creates an image store backed by the configured bucket.
// Returns nil if no bucket is set.
func (s *Storage) Configure(ctx context.Context, dl storage.Downloader) (*storage.Service, error) {
	if s.bucket == "" {
		return nil, nil
	}

	svc, err := storage.New(ctx, s.bucket, dl, storage.WithPrefix(s.prefix))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage service")
	}

	return svc, nil
}

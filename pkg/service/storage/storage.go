package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/atelier-vert/rapport/pkg/domain/model/chat"
	"github.com/m-mizutani/goerr/v2"
)

// Downloader streams attachment bytes from the chat backend. The chat
// client implements this; the store never talks to Slack itself.
type Downloader interface {
	Download(ctx context.Context, att chat.Attachment, w io.Writer) error
}

// Service uploads intervention media to a Google Cloud Storage bucket
// and returns publicly addressable URLs.
type Service struct {
	bucket string
	prefix string
	dl     Downloader

	newWriter func(ctx context.Context, key string) io.WriteCloser
}

// Option is a functional option for Service configuration
type Option func(*Service)

// WithPrefix sets the object key prefix inside the bucket
func WithPrefix(prefix string) Option {
	return func(s *Service) {
		s.prefix = strings.Trim(prefix, "/")
	}
}

// withWriterFactory replaces the GCS object writer, for tests
func withWriterFactory(f func(ctx context.Context, key string) io.WriteCloser) Option {
	return func(s *Service) {
		s.newWriter = f
	}
}

// New creates a new image store backed by the given GCS bucket
func New(ctx context.Context, bucket string, dl Downloader, opts ...Option) (*Service, error) {
	if bucket == "" {
		return nil, goerr.New("storage bucket name is required")
	}

	s := &Service{
		bucket: bucket,
		dl:     dl,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.newWriter == nil {
		client, err := gcs.NewClient(ctx)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create storage client")
		}
		handle := client.Bucket(bucket)
		s.newWriter = func(ctx context.Context, key string) io.WriteCloser {
			w := handle.Object(key).NewWriter(ctx)
			w.CacheControl = "public, max-age=86400"
			return w
		}
	}

	return s, nil
}

// Upload fetches the attachment bytes from the chat backend, stores
// them under a deterministic key and returns the public URL. Re-running
// a report overwrites the previous object instead of accumulating
// copies.
func (s *Service) Upload(ctx context.Context, att chat.Attachment) (string, error) {
	key := s.objectKey(att)

	w := s.newWriter(ctx, key)
	if err := s.dl.Download(ctx, att, w); err != nil {
		// Abandon the partial object
		_ = w.Close()
		return "", goerr.Wrap(err, "failed to fetch attachment bytes",
			goerr.V("attachment_id", att.ID()), goerr.V("key", key))
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finalize object",
			goerr.V("bucket", s.bucket), goerr.V("key", key))
	}

	return s.publicURL(key), nil
}

// objectKey builds a stable key from the attachment identity
func (s *Service) objectKey(att chat.Attachment) string {
	name := sanitizeName(att.Name())
	key := att.ID() + "-" + name
	if s.prefix != "" {
		return s.prefix + "/" + key
	}
	return key
}

func (s *Service) publicURL(key string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, key)
}

// sanitizeName strips path separators and spaces from a file name so it
// forms a clean object key segment
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" {
		name = "piece-jointe"
	}
	return name
}

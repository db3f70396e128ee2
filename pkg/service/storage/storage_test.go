package storage_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/atelier-vert/rapport/pkg/domain/model/chat"
	"github.com/atelier-vert/rapport/pkg/service/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

type memObject struct {
	buf      bytes.Buffer
	closed   bool
	closeErr error
}

func (o *memObject) Write(p []byte) (int, error) { return o.buf.Write(p) }

func (o *memObject) Close() error {
	o.closed = true
	return o.closeErr
}

type mockDownloader struct {
	data string
	err  error
}

func (d *mockDownloader) Download(ctx context.Context, att chat.Attachment, w io.Writer) error {
	if d.err != nil {
		return d.err
	}
	_, err := w.Write([]byte(d.data))
	return err
}

func TestUpload(t *testing.T) {
	objects := map[string]*memObject{}
	factory := func(ctx context.Context, key string) io.WriteCloser {
		obj := &memObject{}
		objects[key] = obj
		return obj
	}

	svc := gt.R1(storage.New(context.Background(), "rapport-media",
		&mockDownloader{data: "jpegdata"},
		storage.WithPrefix("interventions/"),
		storage.WithWriterFactory(factory),
	)).NoError(t)

	att := chat.NewAttachmentFromData("F001", "photo avant.jpg", "image/jpeg",
		"https://files.example.com/photo.jpg", "")

	url, err := svc.Upload(context.Background(), att)
	gt.NoError(t, err)
	gt.Value(t, url).Equal("https://storage.googleapis.com/rapport-media/interventions/F001-photo_avant.jpg")

	obj := objects["interventions/F001-photo_avant.jpg"]
	gt.Value(t, obj).NotNil().Required()
	gt.Value(t, obj.buf.String()).Equal("jpegdata")
	gt.B(t, obj.closed).True()
}

func TestUploadDownloadFailure(t *testing.T) {
	obj := &memObject{}
	svc := gt.R1(storage.New(context.Background(), "rapport-media",
		&mockDownloader{err: goerr.New("file gone")},
		storage.WithWriterFactory(func(ctx context.Context, key string) io.WriteCloser { return obj }),
	)).NoError(t)

	att := chat.NewAttachmentFromData("F002", "x.jpg", "image/jpeg", "u", "")
	_, err := svc.Upload(context.Background(), att)
	gt.Error(t, err)
	gt.B(t, obj.closed).True() // partial object is abandoned, not leaked
}

func TestUploadCloseFailure(t *testing.T) {
	obj := &memObject{closeErr: goerr.New("precondition failed")}
	svc := gt.R1(storage.New(context.Background(), "rapport-media",
		&mockDownloader{data: "d"},
		storage.WithWriterFactory(func(ctx context.Context, key string) io.WriteCloser { return obj }),
	)).NoError(t)

	att := chat.NewAttachmentFromData("F003", "x.jpg", "image/jpeg", "u", "")
	_, err := svc.Upload(context.Background(), att)
	gt.Error(t, err)
}

func TestNewRequiresBucket(t *testing.T) {
	_, err := storage.New(context.Background(), "", &mockDownloader{})
	gt.Error(t, err)
}

func TestSanitizeName(t *testing.T) {
	gt.Value(t, storage.SanitizeName("a/b c.jpg")).Equal("a_b_c.jpg")
	gt.Value(t, storage.SanitizeName("")).Equal("piece-jointe")
}

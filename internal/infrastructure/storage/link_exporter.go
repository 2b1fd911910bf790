package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"path"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/oksasatya/linkshort/internal/domain/entity"
	"github.com/oksasatya/linkshort/pkg/helpers"
)

// UploadFunc stores an object and returns its URL.
type UploadFunc func(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)

// LinkExporter writes a user's links as CSV to a bucket.
type LinkExporter struct {
	upload  UploadFunc
	baseURL string
	now     func() time.Time
}

// NewGCSLinkExporter uploads exports to bucket through client.
func NewGCSLinkExporter(client *gcs.Client, bucket, baseURL string) *LinkExporter {
	return NewLinkExporter(func(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
		return helpers.UploadObject(ctx, client, bucket, objectPath, contentType, path.Base(objectPath), r)
	}, baseURL)
}

func NewLinkExporter(upload UploadFunc, baseURL string) *LinkExporter {
	return &LinkExporter{upload: upload, baseURL: baseURL, now: time.Now}
}

func (e *LinkExporter) Export(ctx context.Context, ownerID string, links []entity.ShortURL) (string, error) {
	body, err := encodeCSV(e.baseURL, links)
	if err != nil {
		return "", err
	}
	name := e.now().UTC().Format("20060102T150405Z") + "-" + uuid.NewString()[:8] + ".csv"
	return e.upload(ctx, path.Join("exports", ownerID, name), "text/csv", bytes.NewReader(body))
}

func encodeCSV(baseURL string, links []entity.ShortURL) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"alias", "short_url", "target_url", "created_at"}); err != nil {
		return nil, err
	}
	for _, l := range links {
		rec := []string{l.Alias, baseURL + "/" + l.Alias, l.TargetURL, l.CreatedAt.UTC().Format(time.RFC3339)}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

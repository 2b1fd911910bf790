package helpers

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// NewGCSClient creates a Google Cloud Storage client. If credsPath is empty, ADC is used.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	var opts []option.ClientOption
	if credsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credsPath))
	}
	return storage.NewClient(ctx, opts...)
}

// CheckBucket fails when bucket does not exist or the credentials cannot read it.
func CheckBucket(ctx context.Context, client *storage.Client, bucket string) error {
	if _, err := client.Bucket(bucket).Attrs(ctx); err != nil {
		return fmt.Errorf("gcs bucket %q: %w", bucket, err)
	}
	return nil
}

// UploadObject stores r at bucket/objectPath as a downloadable, uncached attachment and
// returns the object's URL. Exports hold a user's links, so they are never cached publicly.
func UploadObject(ctx context.Context, client *storage.Client, bucket, objectPath, contentType, filename string, r io.Reader) (string, error) {
	wc := client.Bucket(bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = "private, no-store"
	if filename != "" {
		wc.ContentDisposition = fmt.Sprintf("attachment; filename=%q", filename)
	}
	wc.ChunkSize = 0 // single request upload
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("upload %s: %w", objectPath, err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("upload %s: %w", objectPath, err)
	}
	return ObjectURL(bucket, objectPath), nil
}

func ObjectURL(bucket, objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectPath)
}

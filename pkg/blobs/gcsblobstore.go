package blobs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"k8s.io/klog/v2"
)

// GCSBlobReader reads gs://<bucket>/<object> locations.
type GCSBlobReader struct{}

var _ BlobReader = (*GCSBlobReader)(nil)

func (j *GCSBlobReader) ReadBlob(ctx context.Context, gcsURL string) ([]byte, error) {
	log := klog.FromContext(ctx)

	bucket, objectKey, err := parseGCSURL(gcsURL)
	if err != nil {
		return nil, err
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating GCS storage client: %w", err)
	}
	defer client.Close()

	log.Info("reading blob from GCS", "url", gcsURL)

	startedAt := time.Now()
	r, err := client.Bucket(bucket).Object(objectKey).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("object %q not found: %w", gcsURL, os.ErrNotExist)
		}
		return nil, fmt.Errorf("opening object from GCS %q: %w", gcsURL, err)
	}
	defer r.Close()

	buf := make([]byte, r.Attrs.Size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("reading from GCS %q: %w", gcsURL, err)
	}

	log.Info("read blob from GCS", "url", gcsURL, "bytes", len(buf), "duration", time.Since(startedAt))

	return buf, nil
}

func parseGCSURL(gcsURL string) (bucket string, objectKey string, err error) {
	path, ok := strings.CutPrefix(gcsURL, "gs://")
	if !ok {
		return "", "", fmt.Errorf("%q is not a GCS url (gs://<bucket>/<object>)", gcsURL)
	}
	bucket, objectKey, _ = strings.Cut(path, "/")
	if bucket == "" || objectKey == "" {
		return "", "", fmt.Errorf("%q is not a GCS url (gs://<bucket>/<object>)", gcsURL)
	}
	return bucket, objectKey, nil
}

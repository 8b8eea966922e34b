package blobs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"k8s.io/klog/v2"
)

// HTTPBlobReader reads blobs served over http(s), typically by a model server.
type HTTPBlobReader struct {
	// Client is used for requests; http.DefaultClient if nil.
	Client *http.Client
}

var _ BlobReader = &HTTPBlobReader{}

func (l *HTTPBlobReader) ReadBlob(ctx context.Context, url string) ([]byte, error) {
	var buf bytes.Buffer
	if err := l.downloadToWriter(ctx, url, &buf); err != nil {
		return nil, fmt.Errorf("downloading from %q: %w", url, err)
	}
	return buf.Bytes(), nil
}

func (l *HTTPBlobReader) downloadToWriter(ctx context.Context, url string, w io.Writer) error {
	log := klog.FromContext(ctx)

	log.Info("downloading from url", "url", url)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	startedAt := time.Now()

	httpClient := l.Client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		if resp.StatusCode == 404 {
			return fmt.Errorf("blob not found: %w", os.ErrNotExist)
		}
		return fmt.Errorf("unexpected status downloading from upstream source: %v", resp.Status)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return fmt.Errorf("downloading from upstream source: %w", err)
	}
	if resp.ContentLength >= 0 && n != resp.ContentLength {
		return fmt.Errorf("short read from upstream source: got %d of %d bytes", n, resp.ContentLength)
	}

	log.Info("downloaded blob", "url", url, "bytes", n, "duration", time.Since(startedAt))

	return nil
}

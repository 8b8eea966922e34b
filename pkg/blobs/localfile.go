package blobs

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"k8s.io/klog/v2"
)

// LocalFiles reads blobs from the local filesystem.
type LocalFiles struct{}

var _ BlobReader = LocalFiles{}

func (LocalFiles) ReadBlob(ctx context.Context, path string) ([]byte, error) {
	log := klog.FromContext(ctx)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("getting size of %q: %w", path, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("reading %q: is a directory", path)
	}

	startedAt := time.Now()
	buf := make([]byte, stat.Size())
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}

	log.V(4).Info("read local blob", "path", path, "bytes", len(buf), "duration", time.Since(startedAt))

	return buf, nil
}

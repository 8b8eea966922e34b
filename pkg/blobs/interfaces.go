package blobs

import "context"

type BlobReader interface {
	// ReadBlob returns the full, exact contents of the blob at location.
	// If no such blob exists, ReadBlob should return an error for which errors.Is(err, os.ErrNotExist) is true.
	ReadBlob(ctx context.Context, location string) ([]byte, error)
}

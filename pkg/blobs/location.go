package blobs

import (
	"path/filepath"
	"strings"
)

// ForLocation picks a reader for location by its scheme.
// Anything without a recognized scheme is a local path.
func ForLocation(location string) BlobReader {
	switch {
	case strings.HasPrefix(location, "gs://"):
		return &GCSBlobReader{}
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return &HTTPBlobReader{}
	default:
		return LocalFiles{}
	}
}

// JoinLocation appends name to a directory path or URL prefix.
func JoinLocation(dir string, name string) string {
	if isURL(dir) {
		return strings.TrimSuffix(dir, "/") + "/" + name
	}
	return filepath.Join(dir, name)
}

func isURL(location string) bool {
	for _, scheme := range []string{"gs://", "http://", "https://"} {
		if strings.HasPrefix(location, scheme) {
			return true
		}
	}
	return false
}

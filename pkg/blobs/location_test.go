package blobs

import (
	"path/filepath"
	"testing"
)

func TestForLocation(t *testing.T) {
	grid := []struct {
		location string
		want     string
	}{
		{location: "/models/toy", want: "local"},
		{location: "relative/dir", want: "local"},
		{location: "gs://bucket/models/toy", want: "gcs"},
		{location: "http://blobserver/toy", want: "http"},
		{location: "https://blobserver/toy", want: "http"},
	}

	for _, g := range grid {
		var got string
		switch ForLocation(g.location).(type) {
		case LocalFiles:
			got = "local"
		case *GCSBlobReader:
			got = "gcs"
		case *HTTPBlobReader:
			got = "http"
		}
		if got != g.want {
			t.Errorf("ForLocation(%q): expected %s reader, got %q", g.location, g.want, got)
		}
	}
}

func TestJoinLocation(t *testing.T) {
	grid := []struct {
		dir  string
		want string
	}{
		{dir: "/models/toy", want: filepath.Join("/models/toy", "module.so")},
		{dir: "gs://bucket/toy", want: "gs://bucket/toy/module.so"},
		{dir: "gs://bucket/toy/", want: "gs://bucket/toy/module.so"},
		{dir: "http://blobserver/toy", want: "http://blobserver/toy/module.so"},
	}
	for _, g := range grid {
		if got := JoinLocation(g.dir, "module.so"); got != g.want {
			t.Errorf("JoinLocation(%q): expected %q, got %q", g.dir, g.want, got)
		}
	}
}

func TestParseGCSURL(t *testing.T) {
	bucket, key, err := parseGCSURL("gs://my-bucket/models/toy/module.so")
	if err != nil {
		t.Fatalf("parsing url: %v", err)
	}
	if bucket != "my-bucket" || key != "models/toy/module.so" {
		t.Errorf("unexpected bucket=%q key=%q", bucket, key)
	}

	for _, bad := range []string{"gs://", "gs://bucket", "gs://bucket/", "/local/path"} {
		if _, _, err := parseGCSURL(bad); err == nil {
			t.Errorf("expected error parsing %q", bad)
		}
	}
}

package fetch

import (
	"archive/tar"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/cppkgs/concpp/recipe"
)

// makeArchive builds a tar.gz with a single root directory, the layout
// every upstream release archive uses.
func makeArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	root := "mysql-connector-c++-9.2.0-src/"
	if err := tw.WriteHeader(&tar.Header{Name: root, Typeflag: tar.TypeDir, Mode: 0o755}); err != nil {
		t.Fatalf("tar dir: %v", err)
	}
	for name, content := range files {
		hdr := &tar.Header{Name: root + name, Mode: 0o644, Size: int64(len(content))}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("tar header: %v", err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			t.Fatalf("tar write: %v", err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("tar close: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func newTestFetcher(t *testing.T, archive []byte, sum string) (*Fetcher, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(archive)
	}))
	t.Cleanup(srv.Close)
	return &Fetcher{
		Data: Data{Sources: map[string]Source{
			"9.2.0": {URL: srv.URL + "/src.tar.gz", SHA256: sum},
		}},
		Client: srv.Client(),
	}, srv
}

func TestFetchExtractsStrippingRoot(t *testing.T) {
	archive := makeArchive(t, map[string]string{
		"CMakeLists.txt":                  "PROJECT(MySQL_CONCPP)\n",
		"cdk/cmake/DepFindProtobuf.cmake": "LIBRARY protobuf\n",
	})
	sum := sha256.Sum256(archive)
	f, _ := newTestFetcher(t, archive, hex.EncodeToString(sum[:]))

	dir := t.TempDir()
	if err := f.Fetch(context.Background(), "9.2.0", dir); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "CMakeLists.txt"))
	if err != nil {
		t.Fatalf("extracted file missing: %v", err)
	}
	if string(data) != "PROJECT(MySQL_CONCPP)\n" {
		t.Errorf("content = %q", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "cdk", "cmake", "DepFindProtobuf.cmake")); err != nil {
		t.Errorf("nested file missing: %v", err)
	}
}

func TestFetchChecksumMismatch(t *testing.T) {
	archive := makeArchive(t, map[string]string{"a": "b"})
	f, _ := newTestFetcher(t, archive, "deadbeef")

	err := f.Fetch(context.Background(), "9.2.0", t.TempDir())
	var ferr *recipe.FetchError
	if !errors.As(err, &ferr) {
		t.Fatalf("error = %v, want *recipe.FetchError", err)
	}
}

func TestFetchUnknownVersion(t *testing.T) {
	f := &Fetcher{Data: Data{}, Client: http.DefaultClient}
	err := f.Fetch(context.Background(), "0.0.1", t.TempDir())
	var ferr *recipe.FetchError
	if !errors.As(err, &ferr) {
		t.Fatalf("error = %v, want *recipe.FetchError", err)
	}
	if ferr.Version != "0.0.1" {
		t.Errorf("error version = %q", ferr.Version)
	}
}

func TestEmbeddedDataParses(t *testing.T) {
	f, err := NewFetcher()
	if err != nil {
		t.Fatalf("NewFetcher: %v", err)
	}
	if len(f.Data.Sources) == 0 {
		t.Fatalf("no sources in embedded recipe data")
	}
	for ver, src := range f.Data.Sources {
		if src.URL == "" || len(src.SHA256) != 64 {
			t.Errorf("version %s has incomplete source: %+v", ver, src)
		}
	}
}

func TestStripRoot(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"root/", "", false},
		{"root/a.txt", "a.txt", true},
		{"./root/b/c.txt", "b/c.txt", true},
	}
	for _, tt := range tests {
		got, ok := stripRoot(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("stripRoot(%q) = %q,%v want %q,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

// Package fetch materializes a writable connector source tree for a
// given upstream version. Versioned source URLs and checksums live in
// recipedata.yml next to this package.
package fetch

import (
	"archive/tar"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	_ "embed"

	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
	"gopkg.in/yaml.v3"

	"github.com/cppkgs/concpp/recipe"
)

//go:embed recipedata.yml
var recipeData []byte

// Source is one downloadable upstream release.
type Source struct {
	URL    string `yaml:"url"`
	SHA256 string `yaml:"sha256"`
}

// Data maps upstream versions to their sources.
type Data struct {
	Sources map[string]Source `yaml:"sources"`
}

// LoadData parses recipe data from raw yaml.
func LoadData(raw []byte) (Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return Data{}, err
	}
	return d, nil
}

// Fetcher downloads and extracts upstream source archives.
type Fetcher struct {
	Data   Data
	Client *http.Client
}

// NewFetcher returns a Fetcher over the embedded recipe data.
func NewFetcher() (*Fetcher, error) {
	d, err := LoadData(recipeData)
	if err != nil {
		return nil, err
	}
	return &Fetcher{Data: d, Client: http.DefaultClient}, nil
}

// Fetch downloads the archive for version, verifies its checksum and
// extracts it into dir with the archive's root directory stripped, so
// dir itself becomes the source tree root.
func (f *Fetcher) Fetch(ctx context.Context, version, dir string) error {
	src, ok := f.Data.Sources[version]
	if !ok {
		return &recipe.FetchError{Version: version, Err: fmt.Errorf("no source known for version")}
	}
	archive, err := f.download(ctx, src)
	if err != nil {
		return &recipe.FetchError{Version: version, Err: err}
	}
	defer os.Remove(archive)

	if err := Extract(archive, src.URL, dir); err != nil {
		return &recipe.FetchError{Version: version, Err: err}
	}
	return nil
}

// download streams the archive to a temp file, hashing as it goes.
func (f *Fetcher) download(ctx context.Context, src Source) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return "", err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s: %s", src.URL, resp.Status)
	}

	tmp, err := os.CreateTemp("", "concpp-src-*")
	if err != nil {
		return "", err
	}
	defer tmp.Close()

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(tmp, h), resp.Body); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if sum := hex.EncodeToString(h.Sum(nil)); !strings.EqualFold(sum, src.SHA256) {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("checksum mismatch: got %s, want %s", sum, src.SHA256)
	}
	return tmp.Name(), nil
}

// Extract unpacks a .tar.gz or .tar.xz archive into dir, stripping the
// top-level directory every upstream archive carries.
func Extract(archive, url, dir string) error {
	file, err := os.Open(archive)
	if err != nil {
		return err
	}
	defer file.Close()

	var reader io.Reader
	switch {
	case strings.HasSuffix(url, ".tar.xz"):
		reader, err = xz.NewReader(file)
	default:
		reader, err = gzip.NewReader(file)
	}
	if err != nil {
		return err
	}
	return untar(tar.NewReader(reader), dir)
}

func untar(tr *tar.Reader, dir string) error {
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		name, ok := stripRoot(hdr.Name)
		if !ok {
			continue
		}
		target, err := safeJoin(dir, name)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(hdr.Mode)&0o777)
			if err != nil {
				return err
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return err
			}
		}
	}
}

// stripRoot drops the archive's top-level directory. Entries without one
// (the root itself) are skipped.
func stripRoot(name string) (string, bool) {
	name = strings.TrimPrefix(name, "./")
	_, rest, ok := strings.Cut(name, "/")
	if !ok || rest == "" {
		return "", false
	}
	return rest, true
}

// safeJoin rejects entries that escape dir.
func safeJoin(dir, name string) (string, error) {
	target := filepath.Join(dir, filepath.FromSlash(name))
	if !strings.HasPrefix(target, filepath.Clean(dir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry escapes target dir: %s", name)
	}
	return target, nil
}

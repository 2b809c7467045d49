package source

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
)

// FileSource reads datasets from the local filesystem.
type FileSource struct {
	maxBytes int64
}

var _ Fetcher = (*FileSource)(nil)

// NewFileSource creates a FileSource with the given size cap.
func NewFileSource(maxBytes int64) *FileSource {
	return &FileSource{maxBytes: maxBytes}
}

// Fetch reads a file:// URI or a bare path.
func (s *FileSource) Fetch(ctx context.Context, locator string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := FilePath(locator)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readLimited(f, s.maxBytes)
}

// FilePath converts a file:// URI to a path. Bare paths are returned as is.
func FilePath(locator string) (string, error) {
	if !strings.HasPrefix(strings.ToLower(locator), "file:") {
		return locator, nil
	}
	u, err := url.Parse(locator)
	if err != nil {
		return "", fmt.Errorf("parse locator: %w", err)
	}
	if u.Host != "" && u.Host != "localhost" {
		return "", fmt.Errorf("file locator with remote host %q", u.Host)
	}
	if u.Path == "" {
		// file:relative/path
		return u.Opaque, nil
	}
	return u.Path, nil
}

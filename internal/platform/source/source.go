// Package source fetches raw dataset bytes from a locator URI.
package source

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ErrUnsupportedScheme is returned for locators that are neither http(s) nor file.
var ErrUnsupportedScheme = errors.New("unsupported locator scheme")

// ErrTooLarge is returned when a dataset exceeds the configured size cap.
var ErrTooLarge = errors.New("dataset exceeds size limit")

// Fetcher returns the bytes a locator points at.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) ([]byte, error)
}

// Observer receives one call per fetch attempt.
type Observer interface {
	ObserveFetch(scheme string, elapsed time.Duration, err error)
}

// Source dispatches on the locator scheme. http and https go to the remote
// fetcher; file:// URIs and bare paths go to the local one.
type Source struct {
	remote   Fetcher
	local    Fetcher
	observer Observer
}

// NewSource creates a Source. observer may be nil.
func NewSource(remote, local Fetcher, observer Observer) *Source {
	return &Source{remote: remote, local: local, observer: observer}
}

// Fetch implements the dataset loader's fetch contract.
func (s *Source) Fetch(ctx context.Context, locator string) ([]byte, error) {
	scheme, f, err := s.route(locator)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	data, err := f.Fetch(ctx, locator)
	if s.observer != nil {
		s.observer.ObserveFetch(scheme, time.Since(start), err)
	}
	return data, err
}

func (s *Source) route(locator string) (string, Fetcher, error) {
	scheme := Scheme(locator)
	switch scheme {
	case "http", "https":
		return scheme, s.remote, nil
	case "file":
		return scheme, s.local, nil
	default:
		return scheme, nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}
}

// Scheme returns the lower-cased scheme of locator, or "file" for bare paths.
func Scheme(locator string) string {
	u, err := url.Parse(locator)
	if err != nil || u.Scheme == "" {
		return "file"
	}
	// Windows のドライブレター (C:\...) はパスとして扱う
	if len(u.Scheme) == 1 {
		return "file"
	}
	return strings.ToLower(u.Scheme)
}

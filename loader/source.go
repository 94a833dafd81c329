// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loader

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/molview/base/errors"
	"github.com/mitchellh/go-homedir"
)

// DefaultMaxBytes is the largest source that is read by default.
const DefaultMaxBytes = 256 << 20

// Fetcher gets the raw bytes of a source.
type Fetcher interface {
	Fetch(ctx context.Context, source string) ([]byte, error)
}

// NotFoundError is returned for a source that does not exist.
type NotFoundError struct {
	Path string

	// Suggestion is a similarly named existing file, if any.
	Suggestion string
}

func (e *NotFoundError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s not found; did you mean %s?", e.Path, e.Suggestion)
	}
	return fmt.Sprintf("%s not found", e.Path)
}

// IsURL returns whether the source is a remote http(s) URL
// rather than a local path.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Sources fetches local files, with ~ expansion, and http(s) URLs.
type Sources struct {

	// Client is the HTTP client; nil uses [http.DefaultClient].
	Client *http.Client

	// MaxBytes is the largest source read; 0 uses [DefaultMaxBytes].
	MaxBytes int64
}

func (s *Sources) maxBytes() int64 {
	if s.MaxBytes <= 0 {
		return DefaultMaxBytes
	}
	return s.MaxBytes
}

// Fetch returns the bytes of a local path or URL.
func (s *Sources) Fetch(ctx context.Context, source string) ([]byte, error) {
	if IsURL(source) {
		return s.fetchURL(ctx, source)
	}
	path, err := homedir.Expand(source)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &NotFoundError{Path: source, Suggestion: Suggest(path)}
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return s.readAll(source, f)
}

func (s *Sources) fetchURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &NotFoundError{Path: url}
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetching %s: %s", url, resp.Status)
	}
	return s.readAll(url, resp.Body)
}

func (s *Sources) readAll(source string, r io.Reader) ([]byte, error) {
	limit := s.maxBytes()
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", source, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%s is larger than %d bytes", source, limit)
	}
	return data, nil
}

// localPath returns the cleaned absolute path of a local source.
func localPath(source string) (string, error) {
	path, err := homedir.Expand(source)
	if err != nil {
		return "", err
	}
	return filepath.Abs(path)
}

package capture

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // snapshot cameras serve JPEG
	_ "image/png"
	"net/http"
	"os"
	"time"
)

// Source kinds accepted in configuration.
const (
	SourceURL  = "url"
	SourceFile = "file"
	SourceNone = "none"
)

// Source provides live frames. Available is checked before every capture.
type Source interface {
	Available(ctx context.Context) bool
	Frame(ctx context.Context) (image.Image, error)
}

// NewSource builds the configured frame source. Unknown kinds and empty
// targets yield a source that is never available.
func NewSource(kind, target string, timeout time.Duration) Source {
	switch {
	case kind == SourceURL && target != "":
		return &SnapshotSource{URL: target, Client: &http.Client{Timeout: timeout}}
	case kind == SourceFile && target != "":
		return &FileSource{Path: target}
	default:
		return NoSource{}
	}
}

// NoSource is used when no camera is configured.
type NoSource struct{}

func (NoSource) Available(context.Context) bool { return false }

func (NoSource) Frame(context.Context) (image.Image, error) { return nil, ErrUnavailable }

// SnapshotSource grabs a still image from a camera's snapshot URL.
type SnapshotSource struct {
	URL    string
	Client *http.Client
}

// Available probes the snapshot URL with a HEAD request.
func (s *SnapshotSource) Available(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.URL, nil)
	if err != nil {
		return false
	}
	resp, err := s.client().Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

func (s *SnapshotSource) Frame(ctx context.Context) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build snapshot request: %w", err)
	}
	resp, err := s.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch snapshot: HTTP %d", resp.StatusCode)
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return img, nil
}

func (s *SnapshotSource) client() *http.Client {
	if s.Client == nil {
		return http.DefaultClient
	}
	return s.Client
}

// FileSource reads the latest frame a capture tool writes to disk.
type FileSource struct {
	Path string
}

func (s *FileSource) Available(context.Context) bool {
	st, err := os.Stat(s.Path)
	return err == nil && st.Mode().IsRegular()
}

func (s *FileSource) Frame(context.Context) (image.Image, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open frame: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode frame %q: %w", s.Path, err)
	}
	return img, nil
}

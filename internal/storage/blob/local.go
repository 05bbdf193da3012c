// Package blob stores rendered audio on the local filesystem and hands out
// URLs under a configured public base.
package blob

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"storycast/internal/domain"
)

var ErrInvalidName = errors.New("invalid object name")

type Config struct {
	Dir           string
	PublicBaseURL string
}

type LocalStore struct {
	dir     string
	baseURL *url.URL
}

func NewLocalStore(cfg Config) (*LocalStore, error) {
	if cfg.Dir == "" {
		return nil, errors.New("storage dir is required")
	}
	base, err := url.Parse(strings.TrimSuffix(cfg.PublicBaseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parse public base url: %w", err)
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStore{dir: cfg.Dir, baseURL: base}, nil
}

// Upload writes data under opts.Filename, replacing any previous object. The
// write goes through a temp file so readers never see a partial object.
func (s *LocalStore) Upload(ctx context.Context, data []byte, opts domain.UploadOptions) (*domain.AudioRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name, err := cleanName(opts.Filename)
	if err != nil {
		return nil, err
	}

	target := filepath.Join(s.dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, fmt.Errorf("create object dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("create temp object: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close object: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return nil, fmt.Errorf("publish object: %w", err)
	}

	return &domain.AudioRef{
		URL:         s.baseURL.JoinPath(name).String(),
		Bytes:       int64(len(data)),
		ContentType: opts.ContentType,
	}, nil
}

func cleanName(name string) (string, error) {
	cleaned := path.Clean("/" + strings.ReplaceAll(name, "\\", "/"))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." || cleaned != strings.TrimPrefix(name, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return cleaned, nil
}

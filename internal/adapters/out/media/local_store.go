// Package media stores package cover images as files in a local directory.
// Every file maps to a public URL under a fixed base; the cleanup sweep uses
// List and Remove to drop images no package references anymore.
package media

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"relay/internal/pkg/errs"
)

// LocalStore is a MediaStore backed by a directory on the local filesystem.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates a store over the given directory. Files are exposed
// as URLs of the form baseURL/filename.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if dir == "" {
		return nil, errs.NewValueIsRequiredError("dir")
	}
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}

	return &LocalStore{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// List returns the URL and modification time of every stored image.
func (s *LocalStore) List(ctx context.Context) (map[string]time.Time, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errs.NewUpstreamIOErrorWithCause("media list", err)
	}

	stored := make(map[string]time.Time, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, infoErr := entry.Info()
		if infoErr != nil {
			if errors.Is(infoErr, fs.ErrNotExist) {
				continue
			}
			return nil, errs.NewUpstreamIOErrorWithCause("media list", infoErr)
		}
		stored[s.baseURL+"/"+entry.Name()] = info.ModTime().UTC()
	}

	return stored, nil
}

// Remove deletes the file behind the given URL. URLs outside the store's
// base and files that are already gone are ignored.
func (s *LocalStore) Remove(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || name == "" {
		return nil
	}
	// A URL must address a file directly inside the store directory.
	if path.Base(name) != name {
		return nil
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errs.NewUpstreamIOErrorWithCause("media remove", err)
	}
	return nil
}

// Package staging stores uploaded files on disk for the duration of a request.
package staging

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Area is a directory receiving staged uploads.
type Area struct {
	Dir string
}

// Upload is a staged file.
type Upload struct {
	// Path is the location on disk.
	Path string
	// Name is the file name declared by the client.
	Name string
}

// Stage copies r into a uniquely named file. The declared name only
// contributes its extension. The caller must Remove the upload.
func (a Area) Stage(r io.Reader, name string) (*Upload, error) {
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	path := filepath.Join(a.Dir, uuid.NewString()+ext)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return nil, fmt.Errorf("create staged file: %w", err)
	}
	upload := &Upload{Path: path, Name: name}

	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		upload.Remove()
		return nil, fmt.Errorf("write staged file: %w", err)
	}
	if err := dst.Close(); err != nil {
		upload.Remove()
		return nil, fmt.Errorf("close staged file: %w", err)
	}

	log.Debug().Str("name", name).Str("path", path).Msg("Staged upload")
	return upload, nil
}

// Remove deletes the staged file. Removing twice is not an error.
func (u *Upload) Remove() error {
	if err := os.Remove(u.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Str("path", u.Path).Msg("Failed to remove staged upload")
		return err
	}
	return nil
}

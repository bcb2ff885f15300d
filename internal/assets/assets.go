// Package assets copies logos, portraits and map images into the images directory.
// Records only ever store the copied file's name.
package assets

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"github.com/trentd187/statteam/internal/log"
	"github.com/viant/afs"
)

// Library is the images directory.
type Library struct {
	dir string
	fs  afs.Service
}

// NewLibrary creates dir if it doesn't exist.
func NewLibrary(dir string) (*Library, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, err
	}

	return &Library{dir: dir, fs: afs.New()}, nil
}

// Dir is the directory images are copied into.
func (l *Library) Dir() string {
	return l.dir
}

// Path returns where a stored name lives on disk.
func (l *Library) Path(name string) string {
	return filepath.Join(l.dir, filepath.Base(name))
}

// Import copies src into the library and returns the stored name. Import is best effort:
// an empty src or any failure returns "" so the caller saves its record without an image.
func (l *Library) Import(ctx context.Context, src string) string {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}

	name := storedName(src)
	dest := l.Path(name)

	if samePath(src, dest) {
		return name
	}

	data, err := l.fs.DownloadWithURL(ctx, src)
	if err != nil {
		slog.Warn("Failed to read image, saving without it", slog.String("source", src), log.ErrAttr(err))

		return ""
	}

	if err := l.fs.Upload(ctx, dest, 0o644, bytes.NewReader(data)); err != nil {
		slog.Warn("Failed to copy image, saving without it", slog.String("dest", dest), log.ErrAttr(err))

		return ""
	}

	return name
}

// storedName is the slugged base name with its lower-cased extension, e.g.
// "/tmp/Team Logo!.PNG" becomes "team-logo.png".
func storedName(src string) string {
	base := filepath.Base(src)
	ext := filepath.Ext(base)

	stem := slug.Make(strings.TrimSuffix(base, ext))
	if stem == "" {
		stem = "image"
	}

	return stem + strings.ToLower(ext)
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)

	return errA == nil && errB == nil && absA == absB
}

// Package uploader turns a local path into an opaque blob ready to be sent
// to the upload endpoint.
package uploader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/schollz/progressbar/v3"
)

var (
	ErrIsDirectory = errors.New("se esperaba un archivo, no una carpeta")
	ErrEmptyFile   = errors.New("el archivo está vacío")
	ErrNoPath      = errors.New("indica la ruta de un archivo")
)

// Blob is one file opened for upload. Close it when done.
type Blob struct {
	Name        string
	Path        string
	ContentType string
	Size        int64

	f *os.File
	r io.Reader
}

// Open stats and sniffs the file at path. Directories and empty files are
// rejected; the content type comes from the file's bytes, not its name.
func Open(path string) (*Blob, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, ErrNoPath
	}
	path = expandHome(path)

	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%s: %w", path, ErrIsDirectory)
	}
	if fi.Size() == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("detect type of %s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &Blob{
		Name:        filepath.Base(path),
		Path:        path,
		ContentType: mt.String(),
		Size:        fi.Size(),
		f:           f,
		r:           f,
	}, nil
}

func (b *Blob) Read(p []byte) (int, error) { return b.r.Read(p) }

func (b *Blob) Close() error { return b.f.Close() }

// IsImage reports whether the sniffed type is an image.
func (b *Blob) IsImage() bool {
	return strings.HasPrefix(b.ContentType, "image/")
}

// WithProgress makes subsequent reads advance a byte progress bar drawn
// on w. The bar clears itself once the whole file has been read.
func (b *Blob) WithProgress(w io.Writer) *Blob {
	bar := progressbar.NewOptions64(b.Size,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(b.Name),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowBytes(true),
		progressbar.OptionClearOnFinish(),
	)
	b.r = io.TeeReader(b.f, bar)
	return b
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

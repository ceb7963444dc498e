package image

import (
	"bytes"
	"errors"
	"io"
	"strings"
)

// MaxSize is the largest file accepted for upload, 16 MiB.
const MaxSize int64 = 16 * 1024 * 1024

var (
	ErrNotImage = errors.New("file is not an image")
	ErrTooLarge = errors.New("file exceeds maximum size")
)

// File is a blob picked by the user. Contents are opened lazily so an
// oversized file is rejected before it is ever read.
type File struct {
	Name string
	Type string
	Size int64
	open func() (io.ReadCloser, error)
}

func NewFile(name, contentType string, data []byte) File {
	return File{
		Name: name,
		Type: contentType,
		Size: int64(len(data)),
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

func (f File) Open() (io.ReadCloser, error) {
	if f.open == nil {
		return io.NopCloser(bytes.NewReader(nil)), nil
	}
	return f.open()
}

func (f File) IsImage() bool {
	return strings.HasPrefix(f.Type, "image/")
}

// Validate checks the type before the size, so a huge non-image reports as
// the wrong type.
func Validate(f File) error {
	if !f.IsImage() {
		return ErrNotImage
	}
	if f.Size > MaxSize {
		return ErrTooLarge
	}
	return nil
}

package image

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/dmorgan81/portrait/internal/log"
	"github.com/gabriel-vasile/mimetype"
)

// Loader turns a path picked by the user into a File, the way a browser
// file input produces a blob with a name, type and size.
type Loader interface {
	Load(context.Context, string) (File, error)
}

type FileLoader struct{}

func (*FileLoader) Load(ctx context.Context, path string) (File, error) {
	logger := log.FromContextOrDiscard(ctx).WithGroup("loader").With("path", path)

	info, err := os.Stat(path)
	if err != nil {
		return File{}, err
	}
	if info.IsDir() {
		return File{}, fmt.Errorf("%s is a directory", path)
	}

	// The extension decides, as it does for a browser file input. Content is
	// only sniffed when the extension is unknown.
	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		mt, err := mimetype.DetectFile(path)
		if err != nil {
			return File{}, err
		}
		contentType = mt.String()
		logger.Debug("sniffed content type", "type", contentType)
	}
	contentType, _, _ = mime.ParseMediaType(contentType)
	logger.Debug("loaded file", "type", contentType, "size", info.Size())

	return File{
		Name: filepath.Base(path),
		Type: contentType,
		Size: info.Size(),
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

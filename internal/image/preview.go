package image

import (
	"context"
	"io"

	"github.com/dmorgan81/portrait/internal/log"
	"github.com/vincent-petithory/dataurl"
)

// Previewer reads a file into a data URI suitable for display.
type Previewer interface {
	Preview(context.Context, File) (string, error)
}

type DataURLPreviewer struct{}

func (*DataURLPreviewer) Preview(ctx context.Context, f File) (string, error) {
	log.FromContextOrDiscard(ctx).WithGroup("previewer").Debug("reading preview", "name", f.Name)
	if !f.IsImage() {
		return "", ErrNotImage
	}

	r, err := f.Open()
	if err != nil {
		return "", err
	}
	defer r.Close()

	data, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return "", err
	}
	return dataurl.New(data, f.Type).String(), nil
}

package store

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// MultiUploader writes the same upload to every target concurrently and
// returns the first failure.
type MultiUploader []Uploader

func (m MultiUploader) Upload(ctx context.Context, params UploadParams) error {
	group, ctx := errgroup.WithContext(ctx)
	for _, u := range m {
		u := u
		group.Go(func() error {
			return u.Upload(ctx, params)
		})
	}
	return group.Wait()
}

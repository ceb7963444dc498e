package handler

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmorgan81/portrait/internal/form"
	"github.com/dmorgan81/portrait/internal/generate"
	"github.com/dmorgan81/portrait/internal/image"
	"github.com/dmorgan81/portrait/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopView struct {
	mu  sync.Mutex
	err string
}

func (*nopView) ShowPreview(string)     {}
func (*nopView) HidePreview()           {}
func (*nopView) SetSubmitEnabled(bool)  {}
func (*nopView) SetSubmitVisible(bool)  {}
func (*nopView) SetLoading(bool)        {}
func (*nopView) ShowResult(string)      {}
func (*nopView) HideResult()            {}
func (v *nopView) ShowError(msg string) { v.mu.Lock(); v.err = msg; v.mu.Unlock() }
func (v *nopView) HideError()           { v.mu.Lock(); v.err = ""; v.mu.Unlock() }
func (*nopView) SetDragOver(bool)       {}
func (*nopView) ToggleSample()          {}
func (*nopView) ClearName()             {}
func (*nopView) ScrollToTop()           {}

type stubGenerator struct {
	requests []generate.Request
	probes   int
}

func (g *stubGenerator) Generate(_ context.Context, req generate.Request) (generate.Result, error) {
	g.requests = append(g.requests, req)
	return generate.Result{StatusCode: http.StatusOK, Body: generate.Response{Success: true, Image: "data:image/png;base64,AAA="}}, nil
}

func (g *stubGenerator) Health(context.Context) error {
	g.probes++
	return nil
}

type memUploader struct {
	names []string
}

func (u *memUploader) Upload(_ context.Context, params store.UploadParams) error {
	u.names = append(u.names, params.Name)
	return nil
}

type memLoader struct {
	files map[string]image.File
}

func (l *memLoader) Load(_ context.Context, path string) (image.File, error) {
	f, ok := l.files[path]
	if !ok {
		return image.File{}, os.ErrNotExist
	}
	return f, nil
}

func setup(t *testing.T) (*Handler, *form.Controller, *stubGenerator, *memUploader, *nopView) {
	t.Helper()
	view, gen, up := &nopView{}, &stubGenerator{}, &memUploader{}
	c := form.New(form.Config{
		View:      view,
		Generator: gen,
		Previewer: &image.DataURLPreviewer{},
		Uploader:  up,
		Now:       func() time.Time { return time.UnixMilli(42) },
	})
	loader := &memLoader{files: map[string]image.File{
		"me.png":   image.NewFile("me.png", "image/png", []byte("pixels")),
		"notes.md": image.NewFile("notes.md", "text/markdown", []byte("# hi")),
	}}
	return New(c, loader), c, gen, up, view
}

func TestHandleFullFlow(t *testing.T) {
	h, c, gen, up, _ := setup(t)
	ctx := context.Background()

	events := []Event{
		{Type: EventLoaded},
		{Type: EventIncludeTextChange, Checked: true},
		{Type: EventFileSelected, Path: "me.png"},
		{Type: EventNameInput, Text: " محمد "},
		{Type: EventGenerate},
		{Type: EventDownload},
	}
	for _, ev := range events {
		require.NoError(t, h.Handle(ctx, ev), ev.Type)
	}

	assert.Equal(t, 1, gen.probes)
	require.Len(t, gen.requests, 1)
	assert.Equal(t, "محمد", gen.requests[0].Name)
	assert.Equal(t, []string{"portrait_محمد_42.png"}, up.names)
	assert.Equal(t, "portrait_محمد_42.png", h.Downloaded)

	require.NoError(t, h.Handle(ctx, Event{Type: EventNewGeneration}))
	st := c.State()
	assert.Empty(t, st.Result)
	assert.Nil(t, st.Image)
}

func TestHandleFileEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("non image path", func(t *testing.T) {
		h, c, _, _, view := setup(t)
		err := h.Handle(ctx, Event{Type: EventFileSelected, Path: "notes.md"})
		assert.True(t, form.IsValidation(err))
		assert.Equal(t, form.MsgNotImage, view.err)
		assert.Nil(t, c.State().Image)
	})

	t.Run("missing path", func(t *testing.T) {
		h, c, _, _, _ := setup(t)
		assert.Error(t, h.Handle(ctx, Event{Type: EventFileSelected, Path: "gone.png"}))
		assert.Nil(t, c.State().Image)
	})

	t.Run("no file", func(t *testing.T) {
		h, _, _, _, _ := setup(t)
		assert.NoError(t, h.Handle(ctx, Event{Type: EventFileSelected}))
	})

	t.Run("drop", func(t *testing.T) {
		h, c, _, _, view := setup(t)
		require.NoError(t, h.Handle(ctx, Event{Type: EventDragOver}))
		assert.Error(t, h.Handle(ctx, Event{Type: EventDrop}))
		assert.Equal(t, form.MsgDropNotImage, view.err)

		require.NoError(t, h.Handle(ctx, Event{Type: EventErrorClose}))
		assert.Empty(t, view.err)

		require.NoError(t, h.Handle(ctx, Event{Type: EventDrop, Path: "me.png"}))
		assert.NotNil(t, c.State().Image)

		require.NoError(t, h.Handle(ctx, Event{Type: EventRemoveImage}))
		assert.Nil(t, c.State().Image)
	})

	t.Run("drop with file", func(t *testing.T) {
		h, c, _, _, _ := setup(t)
		f := image.NewFile("x.jpg", "image/jpeg", []byte("jpg"))
		require.NoError(t, h.Handle(ctx, Event{Type: EventDrop, File: &f}))
		assert.Equal(t, "x.jpg", c.State().Image.Name)
	})
}

func TestHandleDownloadWithoutResult(t *testing.T) {
	h, _, _, up, view := setup(t)
	err := h.Handle(context.Background(), Event{Type: EventDownload})
	assert.True(t, errors.Is(err, form.ErrNoResult))
	assert.Equal(t, form.MsgNoResult, view.err)
	assert.Empty(t, up.names)
	assert.Empty(t, h.Downloaded)
}

func TestHandleUnknownEvent(t *testing.T) {
	h, _, _, _, _ := setup(t)
	assert.Error(t, h.Handle(context.Background(), Event{Type: "resize"}))
	assert.NoError(t, h.Handle(context.Background(), Event{Type: EventSampleToggle}))
	assert.NoError(t, h.Handle(context.Background(), Event{Type: EventDragLeave}))
}

func TestFileLoaderIntegration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("just text"), 0o600))

	view := &nopView{}
	c := form.New(form.Config{View: view, Generator: &stubGenerator{}, Previewer: &image.DataURLPreviewer{}, Uploader: &memUploader{}})
	h := New(c, &image.FileLoader{})

	err := h.Handle(context.Background(), Event{Type: EventFileSelected, Path: path})
	assert.ErrorIs(t, err, image.ErrNotImage)
}

package handler

import (
	"context"
	"fmt"

	"github.com/dmorgan81/portrait/internal/form"
	"github.com/dmorgan81/portrait/internal/image"
	"github.com/dmorgan81/portrait/internal/log"
	"github.com/samber/do"
	"github.com/samber/lo"
)

type route func(context.Context, Event) error

// Handler routes UI events to the form controller.
type Handler struct {
	controller *form.Controller
	loader     image.Loader
	routes     map[EventType]route
	// Downloaded is the file name of the last successful download.
	Downloaded string
}

func NewHandler(i *do.Injector) (*Handler, error) {
	return New(do.MustInvoke[*form.Controller](i), do.MustInvoke[image.Loader](i)), nil
}

func New(controller *form.Controller, loader image.Loader) *Handler {
	h := &Handler{controller: controller, loader: loader}
	h.routes = map[EventType]route{
		EventLoaded:       h.loaded,
		EventFileSelected: h.fileSelected,
		EventDrop:         h.drop,
		EventDragOver: func(context.Context, Event) error {
			controller.DragOver()
			return nil
		},
		EventDragLeave: func(context.Context, Event) error {
			controller.DragLeave()
			return nil
		},
		EventRemoveImage: func(context.Context, Event) error {
			controller.RemoveImage()
			return nil
		},
		EventNameInput: func(_ context.Context, ev Event) error {
			controller.SetName(ev.Text)
			return nil
		},
		EventIncludeTextChange: func(_ context.Context, ev Event) error {
			controller.SetIncludeText(ev.Checked)
			return nil
		},
		EventGenerate: func(ctx context.Context, _ Event) error {
			return controller.Generate(ctx)
		},
		EventDownload: func(ctx context.Context, _ Event) error {
			name, err := controller.Download(ctx)
			h.Downloaded = lo.Ternary(err == nil, name, h.Downloaded)
			return err
		},
		EventNewGeneration: func(context.Context, Event) error {
			controller.Reset()
			return nil
		},
		EventErrorClose: func(context.Context, Event) error {
			controller.DismissError()
			return nil
		},
		EventSampleToggle: func(context.Context, Event) error {
			controller.ToggleSample()
			return nil
		},
	}
	return h
}

func (h *Handler) Handle(ctx context.Context, ev Event) error {
	log := log.FromContextOrDiscard(ctx).WithGroup("handler").With("event", ev.Type)
	r, ok := h.routes[ev.Type]
	if !ok {
		return fmt.Errorf("no route for event %q", ev.Type)
	}
	log.Debug("dispatching event")
	return r(ctx, ev)
}

func (h *Handler) loaded(ctx context.Context, _ Event) error {
	h.controller.Probe(ctx)
	return nil
}

// resolve turns a file event into a File. A path that cannot be read
// counts as an invalid image.
func (h *Handler) resolve(ctx context.Context, ev Event) (*image.File, error) {
	if ev.File != nil || ev.Path == "" {
		return ev.File, nil
	}
	f, err := h.loader.Load(ctx, ev.Path)
	if err != nil {
		log.FromContextOrDiscard(ctx).WithGroup("handler").Warn("could not load file", "path", ev.Path, "error", err)
		return nil, err
	}
	return &f, nil
}

func (h *Handler) fileSelected(ctx context.Context, ev Event) error {
	f, err := h.resolve(ctx, ev)
	if err != nil {
		return h.controller.SelectImage(ctx, image.File{Name: ev.Path})
	}
	if f == nil {
		return nil
	}
	return h.controller.SelectImage(ctx, *f)
}

func (h *Handler) drop(ctx context.Context, ev Event) error {
	f, err := h.resolve(ctx, ev)
	if err != nil {
		f = nil
	}
	return h.controller.DropImage(ctx, f)
}

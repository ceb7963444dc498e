package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmorgan81/portrait/internal/form"
	"github.com/dmorgan81/portrait/internal/handler"
	"github.com/dmorgan81/portrait/internal/log"
	"github.com/samber/do"
	"github.com/samber/lo"
)

// Inputs seed the form before the first prompt.
type Inputs struct {
	Image       string
	Name        string
	IncludeText bool
	// Once generates and downloads without prompting.
	Once bool
}

type action struct {
	label string
	run   func(context.Context) (handler.Event, bool, error)
}

// Session plays the part of the page: it turns prompts into events for the
// handler.
type Session struct {
	handler    *handler.Handler
	controller *form.Controller
	view       *View
	driver     PromptDriver
	inputs     Inputs
}

func NewSession(i *do.Injector) (*Session, error) {
	return &Session{
		handler:    do.MustInvoke[*handler.Handler](i),
		controller: do.MustInvoke[*form.Controller](i),
		view:       do.MustInvoke[*View](i),
		driver:     do.MustInvoke[PromptDriver](i),
		inputs:     do.MustInvoke[Inputs](i),
	}, nil
}

func (s *Session) Run(ctx context.Context) error {
	seed := []handler.Event{
		{Type: handler.EventLoaded},
		{Type: handler.EventIncludeTextChange, Checked: s.inputs.IncludeText},
		{Type: handler.EventNameInput, Text: s.inputs.Name},
	}
	if s.inputs.Image != "" {
		seed = append(seed, fileEvents(s.inputs.Image)...)
	}
	for _, ev := range seed {
		if err := s.handler.Handle(ctx, ev); err != nil && s.inputs.Once {
			return err
		}
	}

	if s.inputs.Once {
		return s.once(ctx)
	}
	return s.loop(ctx)
}

func (s *Session) once(ctx context.Context) error {
	if err := s.handler.Handle(ctx, handler.Event{Type: handler.EventGenerate}); err != nil {
		return err
	}
	if err := s.handler.Handle(ctx, handler.Event{Type: handler.EventDownload}); err != nil {
		return err
	}
	s.view.Notice("✓ تم الحفظ: " + s.handler.Downloaded)
	return nil
}

func (s *Session) loop(ctx context.Context) error {
	logger := log.FromContextOrDiscard(ctx).WithGroup("session")
	for {
		actions := s.actions()
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message: "ماذا تريد أن تفعل؟",
			Options: lo.Map(actions, func(a action, _ int) string { return a.label }),
		})
		if errors.Is(err, ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(actions) {
			return fmt.Errorf("invalid choice %d", idx)
		}

		ev, quit, err := actions[idx].run(ctx)
		if errors.Is(err, ErrAborted) {
			continue
		}
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
		if err := s.handler.Handle(ctx, ev); err != nil {
			logger.Debug("event failed", "event", ev.Type, "error", err)
			continue
		}
		if ev.Type == handler.EventDownload {
			s.view.Notice("✓ تم الحفظ: " + s.handler.Downloaded)
		}
	}
}

func (s *Session) actions() []action {
	state := s.controller.State()
	screen := s.view.Snapshot()
	emit := func(ev handler.Event) func(context.Context) (handler.Event, bool, error) {
		return func(context.Context) (handler.Event, bool, error) { return ev, false, nil }
	}

	var actions []action
	actions = append(actions, action{label: "اختيار صورة", run: s.pickImage})
	if state.Image != nil {
		actions = append(actions, action{label: "إزالة الصورة", run: emit(handler.Event{Type: handler.EventRemoveImage})})
	}
	actions = append(actions,
		action{label: "الاسم بالعربية", run: s.askName},
		action{label: "إضافة الاسم على الصورة", run: s.askIncludeText},
	)
	if screen.SubmitVisible && screen.SubmitEnabled && state.Phase != form.PhaseResult {
		actions = append(actions, action{label: "إنشاء البورتريه", run: emit(handler.Event{Type: handler.EventGenerate})})
	}
	if screen.Result != "" {
		actions = append(actions,
			action{label: "تحميل الصورة", run: emit(handler.Event{Type: handler.EventDownload})},
			action{label: "إنشاء صورة جديدة", run: emit(handler.Event{Type: handler.EventNewGeneration})},
		)
	}
	if screen.Error != "" {
		actions = append(actions, action{label: "إغلاق رسالة الخطأ", run: emit(handler.Event{Type: handler.EventErrorClose})})
	}
	actions = append(actions,
		action{label: lo.Ternary(screen.SampleOpen, "إخفاء المثال", "عرض المثال"), run: emit(handler.Event{Type: handler.EventSampleToggle})},
		action{label: "خروج", run: func(context.Context) (handler.Event, bool, error) { return handler.Event{}, true, nil }},
	)
	return actions
}

func (s *Session) pickImage(ctx context.Context) (handler.Event, bool, error) {
	raw, err := s.driver.Input(ctx, InputConfig{
		Message: "مسار الصورة (أو اسحبها وأفلتها هنا)",
		Help:    "PNG, JPG, JPEG · 16MB",
	})
	if err != nil {
		return handler.Event{}, false, err
	}
	evs := fileEvents(raw)
	// A drop arrives as drag-over followed by drop; only the last event needs
	// the result, so fire the rest here.
	for _, ev := range evs[:len(evs)-1] {
		_ = s.handler.Handle(ctx, ev)
	}
	return evs[len(evs)-1], false, nil
}

func (s *Session) askName(ctx context.Context) (handler.Event, bool, error) {
	name, err := s.driver.Input(ctx, InputConfig{
		Message: "الاسم بالعربية",
		Default: s.controller.State().Name,
	})
	if err != nil {
		return handler.Event{}, false, err
	}
	return handler.Event{Type: handler.EventNameInput, Text: name}, false, nil
}

func (s *Session) askIncludeText(ctx context.Context) (handler.Event, bool, error) {
	include, err := s.driver.Confirm(ctx, ConfirmConfig{
		Message: "إضافة الاسم على الصورة؟",
		Default: s.controller.State().IncludeText,
	})
	if err != nil {
		return handler.Event{}, false, err
	}
	return handler.Event{Type: handler.EventIncludeTextChange, Checked: include}, false, nil
}

// fileEvents turns a typed path into a selection, or into drag-over plus
// drop when it looks like the terminal pasted a dropped file: quoted or with
// escaped spaces.
func fileEvents(raw string) []handler.Event {
	path := strings.TrimSpace(raw)
	dropped := false
	if len(path) >= 2 && (path[0] == '\'' || path[0] == '"') && path[len(path)-1] == path[0] {
		path = path[1 : len(path)-1]
		dropped = true
	}
	if strings.Contains(path, `\ `) {
		path = strings.ReplaceAll(path, `\ `, " ")
		dropped = true
	}
	if !dropped {
		return []handler.Event{{Type: handler.EventFileSelected, Path: path}}
	}
	return []handler.Event{
		{Type: handler.EventDragOver},
		{Type: handler.EventDrop, Path: path},
	}
}

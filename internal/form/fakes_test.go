package form

import (
	"context"
	"sync"

	"github.com/dmorgan81/portrait/internal/generate"
	"github.com/dmorgan81/portrait/internal/image"
	"github.com/dmorgan81/portrait/internal/store"
)

type fakeView struct {
	mu            sync.Mutex
	preview       string
	submitEnabled bool
	submitVisible bool
	loading       bool
	result        string
	resultShown   bool
	errorMsg      string
	errorShown    bool
	dragOver      bool
	sampleOpen    bool
	nameCleared   int
	scrolledTop   int
}

func newFakeView() *fakeView {
	return &fakeView{submitVisible: true}
}

func (v *fakeView) ShowPreview(uri string) { v.mu.Lock(); v.preview = uri; v.mu.Unlock() }
func (v *fakeView) HidePreview()           { v.mu.Lock(); v.preview = ""; v.mu.Unlock() }
func (v *fakeView) SetSubmitEnabled(b bool) {
	v.mu.Lock()
	v.submitEnabled = b
	v.mu.Unlock()
}
func (v *fakeView) SetSubmitVisible(b bool) {
	v.mu.Lock()
	v.submitVisible = b
	v.mu.Unlock()
}
func (v *fakeView) SetLoading(b bool) { v.mu.Lock(); v.loading = b; v.mu.Unlock() }
func (v *fakeView) ShowResult(uri string) {
	v.mu.Lock()
	v.result, v.resultShown = uri, true
	v.mu.Unlock()
}
func (v *fakeView) HideResult() { v.mu.Lock(); v.resultShown = false; v.mu.Unlock() }
func (v *fakeView) ShowError(msg string) {
	v.mu.Lock()
	v.errorMsg, v.errorShown = msg, true
	v.mu.Unlock()
}
func (v *fakeView) HideError()           { v.mu.Lock(); v.errorShown = false; v.mu.Unlock() }
func (v *fakeView) SetDragOver(b bool)   { v.mu.Lock(); v.dragOver = b; v.mu.Unlock() }
func (v *fakeView) ToggleSample()        { v.mu.Lock(); v.sampleOpen = !v.sampleOpen; v.mu.Unlock() }
func (v *fakeView) ClearName()           { v.mu.Lock(); v.nameCleared++; v.mu.Unlock() }
func (v *fakeView) ScrollToTop()         { v.mu.Lock(); v.scrolledTop++; v.mu.Unlock() }
func (v *fakeView) ErrorShown() bool     { v.mu.Lock(); defer v.mu.Unlock(); return v.errorShown }
func (v *fakeView) ErrorMessage() string { v.mu.Lock(); defer v.mu.Unlock(); return v.errorMsg }

type fakeGenerator struct {
	mu      sync.Mutex
	result  generate.Result
	err     error
	calls   []generate.Request
	release chan struct{}
	started chan struct{}
	health  error
	probes  int
}

func (g *fakeGenerator) Generate(ctx context.Context, params generate.Request) (generate.Result, error) {
	g.mu.Lock()
	g.calls = append(g.calls, params)
	release, started := g.release, g.started
	g.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		<-release
	}
	return g.result, g.err
}

func (g *fakeGenerator) Health(context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.probes++
	return g.health
}

func (g *fakeGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

type fakePreviewer struct {
	err error
}

func (p *fakePreviewer) Preview(_ context.Context, f image.File) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return "data:" + f.Type + ";base64,UFJFVklFVw==", nil
}

type fakeUploader struct {
	mu  sync.Mutex
	got []store.UploadParams
	err error
}

func (u *fakeUploader) Upload(_ context.Context, params store.UploadParams) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.err != nil {
		return u.err
	}
	u.got = append(u.got, params)
	return nil
}

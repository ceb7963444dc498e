package form

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"sync"
	"time"

	"github.com/dmorgan81/portrait/internal/generate"
	"github.com/dmorgan81/portrait/internal/image"
	"github.com/dmorgan81/portrait/internal/log"
	"github.com/dmorgan81/portrait/internal/page"
	"github.com/dmorgan81/portrait/internal/store"
	"github.com/samber/do"
	"github.com/samber/lo"
	"github.com/vincent-petithory/dataurl"
)

// DefaultDismissAfter is how long an error stays on screen.
const DefaultDismissAfter = 5 * time.Second

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseValidating Phase = "validating"
	PhaseLoading    Phase = "loading"
	PhaseResult     Phase = "result"
)

type State struct {
	Phase         Phase
	Image         *image.File
	Preview       string
	Result        string
	Name          string
	IncludeText   bool
	SubmitEnabled bool
	Error         string
}

type Config struct {
	View      View
	Generator generate.Generator
	Previewer image.Previewer
	Uploader  store.Uploader
	// Templator is optional; when set each download also saves an HTML page.
	Templator    *page.Templator
	Now          func() time.Time
	DismissAfter time.Duration
}

// Controller owns the form state for one session and mediates between UI
// events and the generation endpoint.
type Controller struct {
	view         View
	generator    generate.Generator
	previewer    image.Previewer
	uploader     store.Uploader
	templator    *page.Templator
	now          func() time.Time
	dismissAfter time.Duration
	afterFunc    func(time.Duration, func()) stopper

	mu            sync.Mutex
	phase         Phase
	selected      *image.File
	preview       string
	result        string
	name          string
	includeText   bool
	submitEnabled bool
	inFlight      bool
	// attempt is bumped by Reset so a response to an abandoned request is dropped.
	attempt uint64
	banner  banner
}

func New(cfg Config) *Controller {
	c := &Controller{
		view:         cfg.View,
		generator:    cfg.Generator,
		previewer:    cfg.Previewer,
		uploader:     cfg.Uploader,
		templator:    cfg.Templator,
		now:          lo.Ternary(cfg.Now != nil, cfg.Now, time.Now),
		dismissAfter: cfg.DismissAfter,
		afterFunc:    afterFunc,
		phase:        PhaseIdle,
	}
	c.mu.Lock()
	c.refreshSubmit()
	c.mu.Unlock()
	return c
}

func NewController(i *do.Injector) (*Controller, error) {
	cfg := Config{
		View:         do.MustInvoke[View](i),
		Generator:    do.MustInvoke[generate.Generator](i),
		Previewer:    do.MustInvoke[image.Previewer](i),
		Uploader:     do.MustInvoke[store.Uploader](i),
		DismissAfter: do.MustInvokeNamed[time.Duration](i, "dismiss_after"),
	}
	if do.MustInvokeNamed[bool](i, "html_page") {
		cfg.Templator = do.MustInvoke[*page.Templator](i)
	}
	return New(cfg), nil
}

func SubmitEnabled(hasImage bool, name string, includeText bool) bool {
	return hasImage && (!includeText || strings.TrimSpace(name) != "")
}

// refreshSubmit must be called with c.mu held.
func (c *Controller) refreshSubmit() {
	c.submitEnabled = SubmitEnabled(c.selected != nil, c.name, c.includeText)
	c.view.SetSubmitEnabled(c.submitEnabled)
}

// fail shows err in the banner and returns it. Must be called with c.mu held.
func (c *Controller) fail(err *Error) error {
	c.showError(err.Msg)
	return err
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	var selected *image.File
	if c.selected != nil {
		f := *c.selected
		selected = &f
	}
	return State{
		Phase:         c.phase,
		Image:         selected,
		Preview:       c.preview,
		Result:        c.result,
		Name:          c.name,
		IncludeText:   c.includeText,
		SubmitEnabled: c.submitEnabled,
		Error:         c.banner.msg,
	}
}

func (c *Controller) SelectImage(ctx context.Context, f image.File) error {
	logger := log.FromContextOrDiscard(ctx).WithGroup("form").With("file", f.Name, "type", f.Type, "size", f.Size)

	if err := image.Validate(f); err != nil {
		logger.Warn("rejected image", "error", err)
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.fail(newError(KindValidation, lo.Ternary(errors.Is(err, image.ErrTooLarge), MsgTooLarge, MsgNotImage), err))
	}

	preview, err := c.previewer.Preview(ctx, f)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		logger.Error("could not read image for preview", "error", err)
		return c.fail(newError(KindValidation, MsgNotImage, err))
	}

	logger.Info("selected image")
	c.selected = &f
	c.preview = preview
	c.view.ShowPreview(preview)
	c.refreshSubmit()
	return nil
}

// DropImage handles a file dropped on the upload area. A nil file is a drop
// that carried no files.
func (c *Controller) DropImage(ctx context.Context, f *image.File) error {
	c.mu.Lock()
	c.view.SetDragOver(false)
	if f == nil || !f.IsImage() {
		defer c.mu.Unlock()
		return c.fail(newError(KindValidation, MsgDropNotImage, image.ErrNotImage))
	}
	c.mu.Unlock()
	return c.SelectImage(ctx, *f)
}

func (c *Controller) DragOver() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.SetDragOver(true)
}

func (c *Controller) DragLeave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.SetDragOver(false)
}

func (c *Controller) ToggleSample() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.ToggleSample()
}

func (c *Controller) RemoveImage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeImage()
}

// removeImage must be called with c.mu held.
func (c *Controller) removeImage() {
	c.selected = nil
	c.preview = ""
	c.view.HidePreview()
	c.refreshSubmit()
}

func (c *Controller) SetName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.name = name
	c.refreshSubmit()
}

func (c *Controller) SetIncludeText(include bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.includeText = include
	c.refreshSubmit()
}

// Generate posts the selected image and waits for the result. A call made
// while another is waiting is rejected with ErrInFlight.
func (c *Controller) Generate(ctx context.Context) error {
	logger := log.FromContextOrDiscard(ctx).WithGroup("form")

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		logger.Warn("generation already in progress")
		return newError(KindValidation, MsgGenerateError, ErrInFlight)
	}

	c.phase = PhaseValidating
	if c.selected == nil {
		defer c.mu.Unlock()
		c.phase = lo.Ternary(c.result != "", PhaseResult, PhaseIdle)
		return c.fail(newError(KindValidation, MsgNoImage, ErrNoImage))
	}
	name := strings.TrimSpace(c.name)
	if c.includeText && name == "" {
		defer c.mu.Unlock()
		c.phase = lo.Ternary(c.result != "", PhaseResult, PhaseIdle)
		return c.fail(newError(KindValidation, MsgNameRequired, ErrNameRequired))
	}

	c.phase = PhaseLoading
	c.inFlight = true
	c.result = ""
	attempt := c.attempt
	c.view.SetSubmitVisible(false)
	c.view.SetLoading(true)
	c.view.HideResult()
	params := generate.Request{Image: *c.selected, Name: name, IncludeText: c.includeText}
	c.mu.Unlock()

	res, err := c.generator.Generate(ctx, params)

	c.mu.Lock()
	defer c.mu.Unlock()
	if attempt != c.attempt {
		logger.Info("dropping response for a reset form", "status", res.StatusCode)
		return nil
	}
	c.inFlight = false

	if err == nil && res.OK() {
		logger.Info("generated image", "status", res.StatusCode)
		c.phase = PhaseResult
		c.result = res.Body.Image
		c.view.SetLoading(false)
		c.view.ShowResult(c.result)
		return nil
	}

	ferr := classify(res, err)
	logger.Error("generation failed", "status", res.StatusCode, "error", ferr)
	c.phase = PhaseIdle
	c.view.SetLoading(false)
	c.view.SetSubmitVisible(true)
	return c.fail(ferr)
}

func classify(res generate.Result, err error) *Error {
	switch {
	case errors.Is(err, generate.ErrMalformedResponse):
		return newError(KindApplication, MsgGenerateError, err)
	case err != nil:
		return newError(KindTransport, MsgGenerateError, err)
	}

	reason := res.Reason()
	cause := fmt.Errorf("generate returned status %d success=%t", res.StatusCode, res.Body.Success)
	if res.StatusOK() && res.Body.Success {
		cause = fmt.Errorf("%w: success without image", generate.ErrMalformedResponse)
	}
	return newError(KindApplication, lo.Ternary(reason != "", reason, MsgGenerateFail), cause)
}

var separators = strings.NewReplacer("/", "_", "\\", "_")

// DownloadName is the file name a result is saved under. Path separators in
// the name become underscores.
func DownloadName(name string, at time.Time) string {
	return fmt.Sprintf("portrait_%s_%d.png", separators.Replace(strings.TrimSpace(name)), at.UnixMilli())
}

func (c *Controller) Download(ctx context.Context) (string, error) {
	logger := log.FromContextOrDiscard(ctx).WithGroup("form")

	c.mu.Lock()
	if c.result == "" {
		defer c.mu.Unlock()
		return "", c.fail(newError(KindValidation, MsgNoResult, ErrNoResult))
	}
	result, name, at := c.result, strings.TrimSpace(c.name), c.now()
	c.mu.Unlock()

	filename := DownloadName(name, at)
	logger = logger.With("file", filename)

	decoded, err := dataurl.DecodeString(result)
	if err != nil {
		logger.Error("could not decode result", "error", err)
		return "", c.failLocked(newError(KindApplication, MsgGenerateError, err))
	}

	metadata := map[string]string{"created": fmt.Sprint(at.UnixMilli())}
	uploads := []store.UploadParams{{
		Name:        filename,
		Data:        decoded.Data,
		ContentType: decoded.ContentType(),
		Metadata:    metadata,
	}}
	if c.templator != nil {
		html, err := c.templator.Template(ctx, page.Params{
			Image:   template.URL(result),
			Name:    name,
			Created: at.Format("2006-01-02 15:04"),
		})
		if err != nil {
			return "", c.failLocked(newError(KindApplication, MsgGenerateError, err))
		}
		uploads = append(uploads, store.UploadParams{
			Name:        strings.TrimSuffix(filename, ".png") + ".html",
			Data:        html,
			ContentType: "text/html",
			Metadata:    metadata,
		})
	}

	for _, u := range uploads {
		if err := c.uploader.Upload(ctx, u); err != nil {
			logger.Error("could not save download", "error", err)
			return "", c.failLocked(newError(KindTransport, MsgGenerateError, err))
		}
	}

	logger.Info("downloaded image")
	return filename, nil
}

func (c *Controller) failLocked(err *Error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fail(err)
}

// Reset returns the form to its initial state, abandoning any request that
// is still waiting.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeImage()
	c.name = ""
	c.view.ClearName()
	c.result = ""
	c.inFlight = false
	c.attempt++
	c.phase = PhaseIdle
	c.view.HideResult()
	c.view.SetLoading(false)
	c.view.SetSubmitVisible(true)
	c.refreshSubmit()
	c.view.ScrollToTop()
}

// Probe checks that the backend answers. The outcome is only logged.
func (c *Controller) Probe(ctx context.Context) bool {
	logger := log.FromContextOrDiscard(ctx).WithGroup("form")
	if err := c.generator.Health(ctx); err != nil {
		logger.Warn("server is not running", "error", err)
		return false
	}
	logger.Info("server is running")
	return true
}

package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/do"
	"github.com/vincent-petithory/dataurl"
)

// Sample describes what a good source photo looks like.
const Sample = "صورة شخصية واضحة للوجه، بإضاءة جيدة وخلفية بسيطة"

var (
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("1")).
			Bold(true).
			Padding(0, 1)
	resultStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 1)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	loadingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// View renders controller state changes as lines on a terminal.
type View struct {
	mu  sync.Mutex
	out io.Writer

	preview       string
	submitEnabled bool
	submitVisible bool
	loading       bool
	result        string
	errorMsg      string
	dragOver      bool
	sampleOpen    bool
}

// Snapshot is what is currently on screen.
type Snapshot struct {
	Preview       string
	SubmitEnabled bool
	SubmitVisible bool
	Loading       bool
	Result        string
	Error         string
	DragOver      bool
	SampleOpen    bool
}

func NewView(out io.Writer) *View {
	return &View{out: out, submitVisible: true}
}

func NewTerminalView(i *do.Injector) (*View, error) {
	return NewView(do.MustInvokeNamed[io.Writer](i, "output")), nil
}

func (v *View) println(s string) {
	_, _ = fmt.Fprintln(v.out, s)
}

// Notice prints a success line.
func (v *View) Notice(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.println(okStyle.Render(msg))
}

func (v *View) ShowPreview(uri string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.preview = uri
	v.println(okStyle.Render("✓ تم اختيار الصورة") + " " + mutedStyle.Render(describe(uri)))
}

func (v *View) HidePreview() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.preview = ""
}

func (v *View) SetSubmitEnabled(enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.submitEnabled = enabled
}

func (v *View) SetSubmitVisible(visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.submitVisible = visible
}

func (v *View) SetLoading(loading bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if loading && !v.loading {
		v.println(loadingStyle.Render("… جارٍ إنشاء البورتريه، يرجى الانتظار"))
	}
	v.loading = loading
}

func (v *View) ShowResult(uri string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.result = uri
	v.println(resultStyle.Render("✓ تم إنشاء البورتريه\n" + describe(uri)))
}

func (v *View) HideResult() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.result = ""
}

func (v *View) ShowError(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errorMsg = msg
	v.println(errorStyle.Render("✗ " + msg))
}

func (v *View) HideError() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errorMsg = ""
}

func (v *View) SetDragOver(over bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.dragOver = over
}

func (v *View) ToggleSample() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sampleOpen = !v.sampleOpen
	if v.sampleOpen {
		v.println(mutedStyle.Render("مثال: " + Sample))
	}
}

// ClearName is a no-op: the name prompt is seeded from the controller.
func (v *View) ClearName() {}

func (v *View) ScrollToTop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.println(mutedStyle.Render(strings.Repeat("─", 40)))
}

func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Snapshot{
		Preview:       v.preview,
		SubmitEnabled: v.submitEnabled,
		SubmitVisible: v.submitVisible,
		Loading:       v.loading,
		Result:        v.result,
		Error:         v.errorMsg,
		DragOver:      v.dragOver,
		SampleOpen:    v.sampleOpen,
	}
}

// describe summarises a data URI as its content type and decoded size.
func describe(uri string) string {
	du, err := dataurl.DecodeString(uri)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s · %.1f KB", du.ContentType(), float64(len(du.Data))/1024)
}

package page

import (
	"bytes"
	"context"
	_ "embed"
	"html/template"
	"sync"

	"github.com/dmorgan81/portrait/internal/log"
	"github.com/samber/do"
)

//go:embed assets/result.html
var resultTmpl string

type Params struct {
	// Image is a data URI; it is trusted as a URL since it came back from
	// the generation endpoint and was already decoded once.
	Image   template.URL
	Name    string
	Created string
}

type Templator struct {
	tmpl *template.Template
	once sync.Once
}

func NewTemplator(_ *do.Injector) (*Templator, error) {
	return &Templator{}, nil
}

func (g *Templator) Template(ctx context.Context, params Params) ([]byte, error) {
	g.once.Do(func() {
		g.tmpl = template.Must(template.New("result").Parse(resultTmpl))
	})

	log.FromContextOrDiscard(ctx).WithGroup("templator").Info("generating page")

	var data bytes.Buffer
	if err := g.tmpl.Execute(&data, params); err != nil {
		return nil, err
	}
	return data.Bytes(), nil
}

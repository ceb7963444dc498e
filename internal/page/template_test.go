package page

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplate(t *testing.T) {
	g := &Templator{}
	html, err := g.Template(context.Background(), Params{
		Image:   "data:image/png;base64,AAA=",
		Name:    "محمد",
		Created: "2026-10-17 20:00",
	})
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, `src="data:image/png;base64,AAA="`)
	assert.Contains(t, out, "محمد")
	assert.Contains(t, out, `dir="rtl"`)
}

func TestTemplateEscapesName(t *testing.T) {
	g := &Templator{}
	html, err := g.Template(context.Background(), Params{Image: "data:image/png;base64,AAA=", Name: "<script>"})
	require.NoError(t, err)
	assert.NotContains(t, string(html), "<script>")
}

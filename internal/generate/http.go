package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmorgan81/portrait/internal/log"
	"github.com/samber/do"
	"github.com/samber/lo"
)

const (
	generatePath = "/api/generate"
	healthPath   = "/api/health"
)

type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

type HTTPGenerator struct {
	Client Doer
	Origin string
}

func NewHTTPGenerator(i *do.Injector) (Generator, error) {
	origin, err := do.InvokeNamed[string](i, "origin")
	if err != nil {
		return nil, err
	}
	if _, err := url.ParseRequestURI(origin); err != nil {
		return nil, fmt.Errorf("invalid origin %q: %w", origin, err)
	}
	return &HTTPGenerator{
		Client: do.MustInvoke[*http.Client](i),
		Origin: origin,
	}, nil
}

func (g *HTTPGenerator) endpoint(path string) string {
	return strings.TrimRight(g.Origin, "/") + path
}

func (g *HTTPGenerator) Generate(ctx context.Context, params Request) (Result, error) {
	logger := log.FromContextOrDiscard(ctx).WithGroup("generator").With(
		"name", params.Name,
		"includeText", params.IncludeText,
		"file", params.Image.Name,
	)
	logger.Info("posting image for generation", "endpoint", g.endpoint(generatePath))

	body, contentType, err := encodeForm(params)
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint(generatePath), body)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	result := Result{StatusCode: resp.StatusCode}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return result, err
	}
	if err := json.Unmarshal(data, &result.Body); err != nil {
		logger.Warn("could not decode response", "status", resp.StatusCode, "error", err)
		return result, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	logger.Info("received generate response", "status", resp.StatusCode, "success", result.Body.Success)
	return result, nil
}

func (g *HTTPGenerator) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint(healthPath), nil)
	if err != nil {
		return err
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodeForm builds the multipart body with the fields image, arabicName and
// includeText, in that order.
func encodeForm(params Request) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	filename := lo.Ternary(params.Image.Name != "", params.Image.Name, "image")
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, quoteEscaper.Replace(filename)))
	header.Set("Content-Type", lo.Ternary(params.Image.Type != "", params.Image.Type, "application/octet-stream"))

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	src, err := params.Image.Open()
	if err != nil {
		return nil, "", err
	}
	defer src.Close()
	if _, err := io.Copy(part, src); err != nil {
		return nil, "", err
	}

	if err := w.WriteField("arabicName", params.Name); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("includeText", strconv.FormatBool(params.IncludeText)); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

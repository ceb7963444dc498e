package generate

import (
	"context"
	"errors"
	"strings"

	"github.com/dmorgan81/portrait/internal/image"
	"github.com/samber/lo"
)

var ErrMalformedResponse = errors.New("malformed generate response")

type Request struct {
	Image       image.File
	Name        string
	IncludeText bool
}

// Details is only populated by the server when every model failed.
type Details struct {
	PrimaryError   string   `json:"primary_error,omitempty"`
	SecondaryError string   `json:"secondary_error,omitempty"`
	ModelsTried    []string `json:"models_tried,omitempty"`
	Suggestion     string   `json:"suggestion,omitempty"`
}

type Response struct {
	Success    bool     `json:"success"`
	Image      string   `json:"image,omitempty"`
	Message    string   `json:"message,omitempty"`
	Error      string   `json:"error,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
	Details    *Details `json:"details,omitempty"`
}

type Result struct {
	StatusCode int
	Body       Response
}

func (r Result) StatusOK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r Result) OK() bool {
	return r.StatusOK() && r.Body.Success && strings.TrimSpace(r.Body.Image) != ""
}

// Reason falls back from error to suggestion to details.suggestion.
func (r Result) Reason() string {
	var nested string
	if r.Body.Details != nil {
		nested = r.Body.Details.Suggestion
	}
	reason, _ := lo.Find([]string{r.Body.Error, r.Body.Suggestion, nested}, func(s string) bool {
		return s != ""
	})
	return reason
}

type Generator interface {
	Generate(context.Context, Request) (Result, error)
	Health(context.Context) error
}

package inject

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/dmorgan81/portrait/internal/config"
	"github.com/dmorgan81/portrait/internal/form"
	"github.com/dmorgan81/portrait/internal/generate"
	"github.com/dmorgan81/portrait/internal/handler"
	"github.com/dmorgan81/portrait/internal/image"
	"github.com/dmorgan81/portrait/internal/log"
	"github.com/dmorgan81/portrait/internal/page"
	"github.com/dmorgan81/portrait/internal/param"
	"github.com/dmorgan81/portrait/internal/store"
	"github.com/dmorgan81/portrait/internal/tui"
	"github.com/samber/do"
)

func Setup(ctx context.Context, cfg config.Config, out io.Writer) *do.Injector {
	log := log.FromContextOrDiscard(ctx)

	injector := do.NewWithOpts(&do.InjectorOpts{
		Logf: func(format string, args ...any) {
			log.Debug(fmt.Sprintf(format, args...))
		},
	})
	do.Provide[aws.Config](injector, func(i *do.Injector) (aws.Config, error) {
		return awsconfig.LoadDefaultConfig(ctx)
	})
	do.Provide[*ssm.Client](injector, func(i *do.Injector) (*ssm.Client, error) {
		return ssm.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.Provide[*s3.Client](injector, func(i *do.Injector) (*s3.Client, error) {
		return s3.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.ProvideValue[*http.Client](injector, http.DefaultClient)

	do.ProvideNamed[string](injector, "origin", func(i *do.Injector) (string, error) {
		if cfg.OriginParam == "" {
			return cfg.Origin, nil
		}
		return do.MustInvoke[param.Fetcher](i).Fetch(ctx, cfg.OriginParam)
	})
	do.ProvideNamedValue[string](injector, "output_dir", cfg.OutputDir)
	do.ProvideNamedValue[string](injector, "bucket", cfg.Bucket)
	do.ProvideNamedValue[bool](injector, "html_page", cfg.HTMLPage)
	do.ProvideNamedValue[time.Duration](injector, "dismiss_after", cfg.ErrorDismiss)
	do.ProvideNamedValue[io.Writer](injector, "output", out)

	do.Provide[param.Fetcher](injector, param.NewParameterStoreFetcher)
	do.ProvideValue[image.Loader](injector, &image.FileLoader{})
	do.ProvideValue[image.Previewer](injector, &image.DataURLPreviewer{})
	do.Provide[generate.Generator](injector, generate.NewHTTPGenerator)
	do.Provide[store.Uploader](injector, func(i *do.Injector) (store.Uploader, error) {
		local, err := store.NewFileUploader(i)
		if err != nil {
			return nil, err
		}
		if cfg.Bucket == "" {
			return local, nil
		}
		remote, err := store.NewS3Uploader(i)
		if err != nil {
			return nil, err
		}
		return store.MultiUploader{local, remote}, nil
	})
	do.Provide[*page.Templator](injector, page.NewTemplator)

	do.Provide[*tui.View](injector, tui.NewTerminalView)
	do.Provide[form.View](injector, func(i *do.Injector) (form.View, error) {
		return do.MustInvoke[*tui.View](i), nil
	})
	do.Provide[*form.Controller](injector, form.NewController)
	do.Provide[*handler.Handler](injector, handler.NewHandler)
	do.ProvideValue[tui.PromptDriver](injector, &tui.SurveyDriver{})
	do.ProvideValue[tui.Inputs](injector, tui.Inputs{
		Image:       cfg.Image,
		Name:        cfg.Name,
		IncludeText: cfg.IncludeText,
		Once:        cfg.Yes,
	})
	do.Provide[*tui.Session](injector, tui.NewSession)

	return injector
}

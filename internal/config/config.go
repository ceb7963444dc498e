package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Origin is the base URL the /api endpoints hang off.
	Origin string
	// OriginParam, when set, names an SSM parameter that overrides Origin
	// unless -origin is given.
	OriginParam  string
	OutputDir    string
	Bucket       string
	HTMLPage     bool
	ErrorDismiss time.Duration
	LogLevel     string
	LogFormat    string

	// Session inputs. With Yes set the session runs once without prompting.
	Image       string
	Name        string
	IncludeText bool
	Yes         bool
}

// Load reads .env if present, then the environment, then command line flags.
func Load(args []string, output io.Writer) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Config{
		Origin:       getEnv("PORTRAIT_ORIGIN", "http://localhost:5000"),
		OriginParam:  getEnv("PORTRAIT_ORIGIN_PARAM", ""),
		OutputDir:    getEnv("PORTRAIT_OUTPUT_DIR", "."),
		Bucket:       getEnv("PORTRAIT_BUCKET", ""),
		HTMLPage:     getEnvBool("PORTRAIT_HTML_PAGE", false),
		ErrorDismiss: getEnvDuration("PORTRAIT_ERROR_DISMISS", 5*time.Second),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
		IncludeText:  true,
	}

	flags := flag.NewFlagSet("portrait", flag.ContinueOnError)
	flags.SetOutput(output)
	flags.StringVar(&cfg.Origin, "origin", cfg.Origin, "base URL of the portrait server")
	flags.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "directory downloads are saved to")
	flags.StringVar(&cfg.Image, "image", "", "image file to upload")
	flags.StringVar(&cfg.Name, "name", "", "name to render into the portrait")
	flags.BoolVar(&cfg.IncludeText, "text", cfg.IncludeText, "render the name into the portrait")
	flags.BoolVar(&cfg.Yes, "yes", false, "generate and download without prompting")
	flags.BoolVar(&cfg.HTMLPage, "html", cfg.HTMLPage, "also save an HTML page with the result")
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}
	flags.Visit(func(f *flag.Flag) {
		if f.Name == "origin" {
			cfg.OriginParam = ""
		}
	})

	if cfg.Yes && cfg.Image == "" {
		return Config{}, errors.New("-yes requires -image")
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

package runtimeconfig

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var ErrContentRootRequired = errors.New("site config: content root directory is required")
var ErrLatestLimitInvalid = errors.New("site config: latest limit must be zero or positive")
var ErrRenderConcurrencyInvalid = errors.New("site config: render concurrency must be zero or positive")
var ErrRenderThemesIdentical = errors.New("site config: light and dark code themes must differ")
var ErrRoutesBaseURLInvalid = errors.New("site config: routes base url must be an absolute http(s) url")
var ErrRoutePathInvalid = errors.New("site config: route path must start with / and contain :slug")
var ErrLoggingLevelInvalid = errors.New("site config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("site config: logging format is invalid")

var httpScheme = regexp.MustCompile(`^https?://`)

// Config aggregates the settings of one build. Fields use plain types so the
// same struct can be populated from files, environment or code.
type Config struct {
	// Production hides drafts from every read operation.
	Production bool
	Content    ContentConfig
	Render     RenderConfig
	Routes     RoutesConfig
	Logging    LoggingConfig
	MCP        MCPConfig
}

// ContentConfig locates the content tree and tunes listings.
type ContentConfig struct {
	RootDir     string
	Strict      bool
	LatestLimit int
}

// RenderConfig mirrors interfaces.RenderOptions plus the batch size.
type RenderConfig struct {
	Concurrency int
	LightTheme  string
	DarkTheme   string
	HardWraps   bool
}

// RoutesConfig drives permalink generation.
type RoutesConfig struct {
	BaseURL string
	// Paths maps a content kind to its route template, e.g. "/notes/:slug".
	Paths map[string]string
}

// LoggingConfig captures options for the go-logger backend.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// MCPConfig names the server advertised by the MCP surface.
type MCPConfig struct {
	Name    string
	Version string
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Production: false,
		Content: ContentConfig{
			RootDir:     "content",
			Strict:      false,
			LatestLimit: 3,
		},
		Render: RenderConfig{
			Concurrency: 0,
			LightTheme:  "github",
			DarkTheme:   "github-dark",
		},
		Routes: RoutesConfig{
			BaseURL: "https://littlemoon-zh.github.io",
			Paths: map[string]string{
				"notes": "/notes/:slug",
				"demos": "/demos/:slug",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		MCP: MCPConfig{
			Name:    "site-content",
			Version: "0.1.0",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Content.RootDir) == "" {
		return ErrContentRootRequired
	}
	if cfg.Content.LatestLimit < 0 {
		return fmt.Errorf("%w: %d", ErrLatestLimitInvalid, cfg.Content.LatestLimit)
	}
	if cfg.Render.Concurrency < 0 {
		return fmt.Errorf("%w: %d", ErrRenderConcurrencyInvalid, cfg.Render.Concurrency)
	}
	light, dark := strings.TrimSpace(cfg.Render.LightTheme), strings.TrimSpace(cfg.Render.DarkTheme)
	if light != "" && strings.EqualFold(light, dark) {
		return fmt.Errorf("%w: %s", ErrRenderThemesIdentical, light)
	}
	if base := strings.TrimSpace(cfg.Routes.BaseURL); base != "" {
		err := validation.Validate(base,
			is.URL,
			validation.Match(httpScheme),
		)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrRoutesBaseURLInvalid, base)
		}
	}
	for kind, path := range cfg.Routes.Paths {
		if !strings.HasPrefix(path, "/") || !strings.Contains(path, ":slug") {
			return fmt.Errorf("%w: %s=%q", ErrRoutePathInvalid, kind, path)
		}
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	return nil
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}

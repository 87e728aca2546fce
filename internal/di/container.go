package di

import (
	"errors"

	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/content"
	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/logging"
	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/logging/gologger"
	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/markdown"
	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/routes"
	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/runtimeconfig"
	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/storage"
	"github.com/littlemoon-zh/littlemoon-zh.github.io/pkg/interfaces"
)

// ErrStylesheetUnsupported is returned when the configured renderer cannot
// produce a code stylesheet.
var ErrStylesheetUnsupported = errors.New("di: renderer does not provide a stylesheet")

// Container wires the pipeline from configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	repository     interfaces.ContentRepository
	renderer       interfaces.MarkdownRenderer
	routes         *routes.Resolver

	contentSvc content.Service
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider replaces the go-logger backed provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithRepository replaces the filesystem repository rooted at
// Config.Content.RootDir.
func WithRepository(repo interfaces.ContentRepository) Option {
	return func(c *Container) {
		if repo != nil {
			c.repository = repo
		}
	}
}

// WithRenderer replaces the goldmark renderer.
func WithRenderer(renderer interfaces.MarkdownRenderer) Option {
	return func(c *Container) {
		if renderer != nil {
			c.renderer = renderer
		}
	}
}

// WithContentService overrides the content service entirely.
func WithContentService(svc content.Service) Option {
	return func(c *Container) {
		if svc != nil {
			c.contentSvc = svc
		}
	}
}

// NewContainer validates cfg and builds every collaborator that was not
// supplied through opts.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if c.loggerProvider == nil {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}

	if c.repository == nil {
		c.repository = storage.NewFSRepository(cfg.Content.RootDir,
			storage.WithLogger(logging.StorageLogger(c.loggerProvider)),
		)
	}

	if c.renderer == nil {
		renderer, err := markdown.NewRenderer(interfaces.RenderOptions{
			LightTheme: cfg.Render.LightTheme,
			DarkTheme:  cfg.Render.DarkTheme,
			HardWraps:  cfg.Render.HardWraps,
		}, markdown.WithLogger(logging.MarkdownLogger(c.loggerProvider)))
		if err != nil {
			return nil, err
		}
		c.renderer = renderer
	}

	if len(cfg.Routes.Paths) > 0 {
		c.routes = routes.NewResolver(routes.Config{
			BaseURL: cfg.Routes.BaseURL,
			Paths:   cfg.Routes.Paths,
		})
	}

	if c.contentSvc == nil {
		serviceOpts := []content.ServiceOption{
			content.WithPolicy(content.Policy{Production: cfg.Production}),
			content.WithStrict(cfg.Content.Strict),
			content.WithLatestLimit(cfg.Content.LatestLimit),
			content.WithConcurrency(cfg.Render.Concurrency),
			content.WithLogger(logging.ContentLogger(c.loggerProvider)),
		}
		if c.routes != nil {
			serviceOpts = append(serviceOpts, content.WithPermalinker(c.routes))
		}
		c.contentSvc = content.NewService(c.repository, c.renderer, serviceOpts...)
	}

	return c, nil
}

// LoggerProvider returns the provider every module logger derives from.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Repository returns the content repository.
func (c *Container) Repository() interfaces.ContentRepository {
	return c.repository
}

// Renderer returns the Markdown renderer.
func (c *Container) Renderer() interfaces.MarkdownRenderer {
	return c.renderer
}

// Routes returns the permalink resolver, or nil when no routes are configured.
func (c *Container) Routes() *routes.Resolver {
	return c.routes
}

// ContentService returns the configured content service.
func (c *Container) ContentService() content.Service {
	return c.contentSvc
}

// Stylesheet returns the code highlighting CSS of the configured renderer.
func (c *Container) Stylesheet() (string, error) {
	styled, ok := c.renderer.(interface{ Stylesheet() (string, error) })
	if !ok {
		return "", ErrStylesheetUnsupported
	}
	return styled.Stylesheet()
}

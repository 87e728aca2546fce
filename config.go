package site

import "github.com/littlemoon-zh/littlemoon-zh.github.io/internal/runtimeconfig"

var (
	ErrContentRootRequired      = runtimeconfig.ErrContentRootRequired
	ErrLatestLimitInvalid       = runtimeconfig.ErrLatestLimitInvalid
	ErrRenderConcurrencyInvalid = runtimeconfig.ErrRenderConcurrencyInvalid
	ErrRenderThemesIdentical    = runtimeconfig.ErrRenderThemesIdentical
	ErrRoutesBaseURLInvalid     = runtimeconfig.ErrRoutesBaseURLInvalid
	ErrRoutePathInvalid         = runtimeconfig.ErrRoutePathInvalid
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
	ErrSchemaValidation         = runtimeconfig.ErrSchemaValidation
)

type (
	Config        = runtimeconfig.Config
	ContentConfig = runtimeconfig.ContentConfig
	RenderConfig  = runtimeconfig.RenderConfig
	RoutesConfig  = runtimeconfig.RoutesConfig
	LoggingConfig = runtimeconfig.LoggingConfig
	MCPConfig     = runtimeconfig.MCPConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads defaults, the optional config file at path and the SITE_*
// environment.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}

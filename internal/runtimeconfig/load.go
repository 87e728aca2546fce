package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces the environment overrides, e.g. SITE_PRODUCTION or
// SITE_CONTENT_ROOTDIR.
const EnvPrefix = "SITE"

// ProductionEnvValue marks a production build in SITE_ENV or NODE_ENV.
const ProductionEnvValue = "production"

// Load builds the effective configuration: defaults, then the config file,
// then environment overrides. An empty path searches the working directory
// for site.{yaml,yml,toml,json} and tolerates its absence. Explicit files are
// checked against the embedded schema before they are applied.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("site")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("env", EnvPrefix+"_ENV", "NODE_ENV"); err != nil {
		return Config{}, fmt.Errorf("site config: bind env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("site config: read: %w", err)
		}
	}
	if used := v.ConfigFileUsed(); used != "" {
		if err := CheckFile(used); err != nil {
			return Config{}, err
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("site config: decode: %w", err)
	}
	if strings.EqualFold(strings.TrimSpace(v.GetString("env")), ProductionEnvValue) {
		cfg.Production = true
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("production", cfg.Production)

	v.SetDefault("content.rootdir", cfg.Content.RootDir)
	v.SetDefault("content.strict", cfg.Content.Strict)
	v.SetDefault("content.latestlimit", cfg.Content.LatestLimit)

	v.SetDefault("render.concurrency", cfg.Render.Concurrency)
	v.SetDefault("render.lighttheme", cfg.Render.LightTheme)
	v.SetDefault("render.darktheme", cfg.Render.DarkTheme)
	v.SetDefault("render.hardwraps", cfg.Render.HardWraps)

	v.SetDefault("routes.baseurl", cfg.Routes.BaseURL)
	v.SetDefault("routes.paths", cfg.Routes.Paths)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.addsource", cfg.Logging.AddSource)
	v.SetDefault("logging.focus", cfg.Logging.Focus)

	v.SetDefault("mcp.name", cfg.MCP.Name)
	v.SetDefault("mcp.version", cfg.MCP.Version)
}

package postpage

import (
	"fmt"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	toml "github.com/pelletier/go-toml/v2"
)

// SiteConfig holds all configuration for a postpage site.
type SiteConfig struct {
	Name        string // Site title (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for the bio, RSS and meta tags
	Author      string // Author name for the bio and JSON-LD

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/posts.db")
	ContentFile  string // Optional YAML/JSON file imported at startup
	Watch        bool   // Re-import ContentFile when it changes

	OutputDir    string // Static build output (default "public")
	BuildWorkers int    // Parallel page renders during a build (default 4)

	PostCacheTTL time.Duration // Post cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/posts.db"
	}
	if c.OutputDir == "" {
		c.OutputDir = "public"
	}
	if c.BuildWorkers <= 0 {
		c.BuildWorkers = 4
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
}

// WithDefaults returns a copy of c with defaults filled in for unset fields.
func (c SiteConfig) WithDefaults() SiteConfig {
	c.setDefaults()
	return c
}

// FileConfig mirrors SiteConfig with a string duration so it reads well as
// TOML.
type FileConfig struct {
	Name         string `toml:"name"`
	URL          string `toml:"url"`
	Description  string `toml:"description"`
	Author       string `toml:"author"`
	Addr         string `toml:"addr"`
	DatabasePath string `toml:"database_path"`
	ContentFile  string `toml:"content_file"`
	Watch        bool   `toml:"watch"`
	OutputDir    string `toml:"output_dir"`
	BuildWorkers int    `toml:"build_workers"`
	PostCacheTTL string `toml:"post_cache_ttl"`
}

// LoadConfigFile reads a TOML config file into a SiteConfig. Unset keys are
// left zero so defaults and later overrides still apply.
func LoadConfigFile(path string) (SiteConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return SiteConfig{}, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return SiteConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg := SiteConfig{
		Name:         fc.Name,
		URL:          fc.URL,
		Description:  fc.Description,
		Author:       fc.Author,
		Addr:         fc.Addr,
		DatabasePath: fc.DatabasePath,
		ContentFile:  fc.ContentFile,
		Watch:        fc.Watch,
		OutputDir:    fc.OutputDir,
		BuildWorkers: fc.BuildWorkers,
	}
	if fc.PostCacheTTL != "" {
		ttl, err := time.ParseDuration(fc.PostCacheTTL)
		if err != nil {
			return SiteConfig{}, fmt.Errorf("parse %s: post_cache_ttl: %w", path, err)
		}
		cfg.PostCacheTTL = ttl
	}
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory of static assets served under /public
// and copied into builds (default "static").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger sets the logger used by the App and by Echo.
func WithLogger(l echo.Logger) Option {
	return func(a *App) {
		a.Logger = l
		a.Echo.Logger = l
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"

	"github.com/eringen/postpage"
	"github.com/eringen/postpage/views"
)

// version is set at build time via ldflags.
var version = "dev"

type rootFlags struct {
	configPath string
	logLevel   string
	staticDir  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var rf rootFlags
	cmd := &cobra.Command{
		Use:           "postpage",
		Short:         "Render blog post pages from pre-rendered content",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := cmd.PersistentFlags()
	pf.StringVarP(&rf.configPath, "config", "c", os.Getenv("POSTPAGE_CONFIG"), "path to a TOML config file")
	pf.StringVar(&rf.logLevel, "log-level", postpage.EnvOr("LOG_LEVEL", "info"), "debug, info, warn, error or off")
	pf.StringVar(&rf.staticDir, "static", postpage.EnvOr("STATIC_DIR", "static"), "static assets directory")
	pf.String("db", "", "SQLite database path")
	pf.String("content", "", "YAML/JSON content file to import at startup")

	cmd.AddCommand(
		newServeCmd(&rf),
		newBuildCmd(&rf),
		newImportCmd(&rf),
		newRenderCmd(&rf),
		&cobra.Command{
			Use:   "version",
			Short: "Print the postpage version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "postpage %s\n", version)
			},
		},
	)
	return cmd
}

// loadConfig layers defaults, the config file, environment variables and
// explicitly set flags, in increasing priority.
func loadConfig(cmd *cobra.Command, rf *rootFlags) (postpage.SiteConfig, error) {
	var cfg postpage.SiteConfig
	if rf.configPath != "" {
		fc, err := postpage.LoadConfigFile(rf.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = fc
	}

	cfg.Name = postpage.EnvOr("SITE_NAME", cfg.Name)
	cfg.URL = postpage.EnvOr("SITE_URL", cfg.URL)
	cfg.Description = postpage.EnvOr("SITE_DESCRIPTION", cfg.Description)
	cfg.Author = postpage.EnvOr("SITE_AUTHOR", cfg.Author)
	cfg.Addr = postpage.EnvOr("ADDR", cfg.Addr)
	cfg.DatabasePath = postpage.EnvOr("DATABASE_PATH", cfg.DatabasePath)
	cfg.ContentFile = postpage.EnvOr("CONTENT_FILE", cfg.ContentFile)
	cfg.OutputDir = postpage.EnvOr("OUTPUT_DIR", cfg.OutputDir)
	if v := os.Getenv("BUILD_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("BUILD_WORKERS: %w", err)
		}
		cfg.BuildWorkers = n
	}
	if v := os.Getenv("POST_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("POST_CACHE_TTL: %w", err)
		}
		cfg.PostCacheTTL = ttl
	}

	flags := cmd.Flags()
	setString := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	setString("db", &cfg.DatabasePath)
	setString("content", &cfg.ContentFile)
	setString("addr", &cfg.Addr)
	setString("out", &cfg.OutputDir)
	if flags.Changed("watch") {
		cfg.Watch, _ = flags.GetBool("watch")
	}
	if flags.Changed("workers") {
		cfg.BuildWorkers, _ = flags.GetInt("workers")
	}

	return cfg.WithDefaults(), nil
}

func newLogger(level string) (*log.Logger, error) {
	l := log.New("postpage")
	l.SetHeader("${time_rfc3339} ${level} ${prefix}")
	switch strings.ToLower(level) {
	case "debug":
		l.SetLevel(log.DEBUG)
	case "info", "":
		l.SetLevel(log.INFO)
	case "warn":
		l.SetLevel(log.WARN)
	case "error":
		l.SetLevel(log.ERROR)
	case "off":
		l.SetLevel(log.OFF)
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}
	return l, nil
}

// newApp builds an App from the resolved config with the default views.
func newApp(cmd *cobra.Command, rf *rootFlags) (*postpage.App, error) {
	cfg, err := loadConfig(cmd, rf)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(rf.logLevel)
	if err != nil {
		return nil, err
	}
	return postpage.New(cfg, views.Funcs(cfg),
		postpage.WithLogger(logger),
		postpage.WithStaticDir(rf.staticDir),
	), nil
}

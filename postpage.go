// Package postpage renders blog post pages from pre-rendered content records.
// It assembles each post, its reading time and its neighbouring posts into a
// PageDescription, and serves or statically builds the resulting pages with
// Echo and templ.
//
// Users provide templ components via the ViewFuncs struct; the views package
// ships a default set.
package postpage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// ViewFuncs holds the templ components the App renders pages with.
type ViewFuncs struct {
	Post        func(page PageDescription) templ.Component
	Home        func(posts []PostSummary) templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
}

// App wires together the store, cache, resolver, views and HTTP server.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	Query  Resolver
	Views  ViewFuncs
	Logger echo.Logger

	customRoutes []func(*App)
	staticDir    string
}

// New creates a new App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "static",
	}
	a.Echo.HideBanner = true
	a.Logger = a.Echo.Logger

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Open initializes the store, cache and resolver, importing the configured
// content file if there is one. Start and Build call it when needed.
func (a *App) Open() error {
	if a.Store == nil {
		store, err := NewStore(a.Config.DatabasePath)
		if err != nil {
			return fmt.Errorf("postpage: init store: %w", err)
		}
		a.Store = store

		if a.Config.ContentFile != "" {
			res, err := ImportFile(a.Store, a.Config.ContentFile)
			if err != nil {
				return fmt.Errorf("postpage: import content: %w", err)
			}
			a.Logger.Infof("imported %d posts from %s, removed %d", res.Saved, a.Config.ContentFile, res.Removed)
		}
	}
	if a.Cache == nil {
		a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)
	}
	if a.Query == nil {
		a.Query = NewPostQuery(a.Cache, a.Config.Name)
	}
	return nil
}

// Start opens the store, sets up middleware and routes, and serves until
// ctx is done or the server fails.
func (a *App) Start(ctx context.Context) error {
	if err := a.Open(); err != nil {
		return err
	}

	a.setupServer()

	// The watcher writes to the store, so it must be done before Start
	// returns and the caller closes the App.
	ctx, cancel := context.WithCancel(ctx)
	var watching sync.WaitGroup
	defer watching.Wait()
	defer cancel()

	if a.Config.Watch && a.Config.ContentFile != "" {
		w := NewContentWatcher(a.Config.ContentFile, a.Store, a.Cache, a.Logger)
		watching.Add(1)
		go func() {
			defer watching.Done()
			if err := w.Run(ctx); err != nil {
				a.Logger.Errorf("content watcher: %v", err)
			}
		}()
	}

	errc := make(chan error, 1)
	go func() {
		errc <- a.Echo.Start(a.Config.Addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		return a.Echo.Shutdown(context.Background())
	}
}

// setupServer installs middleware, the built-in routes and any routes
// registered with WithCustomRoutes.
func (a *App) setupServer() {
	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/*", a.handlePost)
}

// RenderPage resolves, validates and assembles the page for slug.
// Fields missing from the query result are defaulted and logged; only a
// failed lookup is an error.
func (a *App) RenderPage(ctx context.Context, slug string) (PageDescription, error) {
	result, err := a.Query.BySlug(ctx, slug)
	if err != nil {
		return PageDescription{}, err
	}
	nav, err := a.Cache.Navigation(slug)
	if err != nil {
		return PageDescription{}, err
	}
	props, issues := DecodeProps(result, nav, &Location{Pathname: slug})
	a.logIssues(slug, issues)
	return AssembleProps(props), nil
}

func (a *App) logIssues(slug string, issues []FieldIssue) {
	for _, is := range issues {
		if is.Missing() {
			a.Logger.Debugf("%s: %s defaulted", slug, is)
			continue
		}
		a.Logger.Warnf("%s: %s, defaulted", slug, is)
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

package postpage

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// contentSecurityPolicy allows no script execution at all. Pages only carry
// JSON-LD, and a <script type="application/ld+json"> block is a data block
// that browsers never execute, so script-src does not apply to it. The site
// has no forms and is never framed.
const contentSecurityPolicy = "default-src 'self'; script-src 'none'; object-src 'none'; " +
	"style-src 'self' 'unsafe-inline'; img-src 'self' https: data:; font-src 'self'; " +
	"base-uri 'self'; form-action 'none'; frame-ancestors 'none'"

// pathKind classifies request paths for caching, compression and redirects.
type pathKind int

const (
	kindPage   pathKind = iota // the home page and post slugs
	kindStatic                 // files under /public/
	kindFeed                   // sitemap, feed and robots
)

func classify(path string) pathKind {
	switch {
	case path == "/public" || strings.HasPrefix(path, "/public/"):
		return kindStatic
	case path == "/sitemap.xml" || path == "/feed.xml" || path == "/robots.txt":
		return kindFeed
	}
	return kindPage
}

var cacheControl = map[pathKind]string{
	kindPage:   "public, max-age=3600",
	kindStatic: "public, max-age=31536000, immutable",
	kindFeed:   "public, max-age=86400",
}

func (a *App) setupMiddleware() {
	e := a.Echo

	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)
	e.HTTPErrorHandler = a.httpErrorHandler

	e.Pre(middleware.NonWWWRedirect())

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			c.Logger().Infof("%s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	// Static assets are usually already compressed.
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return classify(c.Request().URL.Path) == kindStatic
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: contentSecurityPolicy,
		HSTSMaxAge:            31536000,
	}))

	// Slugs are stored with a trailing slash; only page paths are redirected.
	e.Use(middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		RedirectCode: http.StatusMovedPermanently,
		Skipper: func(c echo.Context) bool {
			return classify(c.Request().URL.Path) != kindPage
		},
	}))

	e.Use(cacheControlMiddleware)
}

func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Cache-Control", cacheControl[classify(c.Request().URL.Path)])
		return next(c)
	}
}

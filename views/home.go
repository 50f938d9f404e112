package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/postpage"
)

// Home lists posts, newest first.
func Home(cfg postpage.SiteConfig, posts []postpage.PostSummary) templ.Component {
	root := &postpage.Location{Pathname: postpage.RootPath}
	meta := PageMeta{
		Title:  "All posts",
		URL:    pageURL(cfg, root),
		JSONLD: WebsiteJsonLD(cfg),
	}
	return Layout(root, cfg.Name,
		SEO(cfg, cfg.Name, meta),
		component(func(h *htmlWriter) {
			h.render(Bio(cfg))
			for _, p := range posts {
				title := p.Title
				if title == "" {
					title = p.Slug
				}
				h.raw(`<article><header><h3><a`)
				h.href(p.Slug)
				h.raw(">")
				h.text(title)
				h.raw(`</a></h3><small>`)
				h.text(postpage.FormatDate(p.Date, postpage.BlogPostBySlug.DateLayout))
				h.raw(`</small></header><p>`)
				h.text(p.Excerpt)
				h.raw(`</p></article>`)
			}
		}),
	)
}

// NotFound is the 404 page.
func NotFound(cfg postpage.SiteConfig) templ.Component {
	return errorPage(cfg, "Not found", "There is no post at this address.")
}

// ServerError is the 500 page.
func ServerError(cfg postpage.SiteConfig) templ.Component {
	return errorPage(cfg, "Something went wrong", "The page could not be rendered. Try again later.")
}

func errorPage(cfg postpage.SiteConfig, title, message string) templ.Component {
	return Layout(nil, cfg.Name,
		SEO(cfg, cfg.Name, PageMeta{Title: title}),
		component(func(h *htmlWriter) {
			h.raw("<h1>")
			h.text(title)
			h.raw("</h1><p>")
			h.text(message)
			h.raw("</p>")
		}),
	)
}

// Funcs returns the default view set for cfg.
func Funcs(cfg postpage.SiteConfig) postpage.ViewFuncs {
	return postpage.ViewFuncs{
		Post: func(page postpage.PageDescription) templ.Component {
			return Post(cfg, page)
		},
		Home: func(posts []postpage.PostSummary) templ.Component {
			return Home(cfg, posts)
		},
		NotFound: func() templ.Component {
			return NotFound(cfg)
		},
		ServerError: func() templ.Component {
			return ServerError(cfg)
		},
	}
}

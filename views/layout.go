package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/postpage"
)

// Layout is the page shell. The site title is a large heading on the root
// page and a small one elsewhere; it always links back to the root.
func Layout(location *postpage.Location, siteTitle string, head, body templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.render(head)
		h.raw(`</head><body><div class="layout"><header>`)
		tag := "h3"
		if isRoot(location) {
			tag = "h1"
		}
		h.raw("<" + tag + " class=\"site-title\"><a")
		h.href(postpage.RootPath)
		h.raw(">")
		h.text(siteTitle)
		h.raw("</a></" + tag + ">")
		h.raw(`</header><main>`)
		h.render(body)
		h.raw(`</main></div></body></html>`)
	})
}

// SEO renders the <head> tags for a page. The title follows the
// "<page> | <site>" template; an empty page title yields the site title alone.
func SEO(cfg postpage.SiteConfig, siteTitle string, meta PageMeta) templ.Component {
	return component(func(h *htmlWriter) {
		title := siteTitle
		if meta.Title != "" {
			title = meta.Title + " | " + siteTitle
		}
		description := meta.Description
		if description == "" {
			description = cfg.Description
		}
		ogType := meta.OGType
		if ogType == "" {
			ogType = "website"
		}

		h.raw("<title>")
		h.text(title)
		h.raw("</title>")
		h.meta("name", "description", description)
		h.meta("property", "og:title", meta.Title)
		h.meta("property", "og:description", description)
		h.meta("property", "og:type", ogType)
		if meta.URL != "" {
			h.meta("property", "og:url", meta.URL)
			h.raw(`<link rel="canonical"`)
			h.attr("href", meta.URL)
			h.raw(">")
		}
		h.meta("name", "twitter:card", "summary")
		h.meta("name", "twitter:creator", cfg.Author)
		h.meta("name", "twitter:title", meta.Title)
		h.meta("name", "twitter:description", description)
		h.raw(`<link rel="alternate" type="application/rss+xml"`)
		h.attr("title", siteTitle)
		h.attr("href", "/feed.xml")
		h.raw(">")
		if meta.JSONLD != "" {
			// json.Marshal escapes <, > and &, so the block cannot close the script.
			h.raw(`<script type="application/ld+json">`)
			h.raw(meta.JSONLD)
			h.raw(`</script>`)
		}
	})
}

// Bio renders the author bio from the site configuration.
func Bio(cfg postpage.SiteConfig) templ.Component {
	return component(func(h *htmlWriter) {
		if cfg.Author == "" && cfg.Description == "" {
			return
		}
		h.raw(`<div class="bio"><p>`)
		if cfg.Author != "" {
			h.raw("Written by <strong>")
			h.text(cfg.Author)
			h.raw("</strong>. ")
		}
		h.text(cfg.Description)
		h.raw(`</p></div>`)
	})
}

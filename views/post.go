package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/postpage"
)

// Post renders an assembled post page inside the layout.
func Post(cfg postpage.SiteConfig, page postpage.PageDescription) templ.Component {
	meta := PageMeta{
		Title:       page.SEO.Title,
		Description: page.SEO.Description,
		URL:         pageURL(cfg, page.Location),
		OGType:      "article",
		JSONLD:      BlogPostingJsonLD(cfg, page),
	}
	return Layout(page.Location, page.SiteTitle,
		SEO(cfg, page.SiteTitle, meta),
		component(func(h *htmlWriter) {
			h.raw(`<article><header><h1>`)
			h.text(page.Header.Title)
			h.raw(`</h1><p class="caption">`)
			h.text(page.Header.Caption)
			h.raw(`</p></header>`)

			// Body HTML is pre-rendered and trusted by contract.
			h.raw(`<section>`)
			h.render(templ.Raw(page.Body.HTML))
			h.raw(`</section><hr>`)

			h.raw(`<footer><h3><a`)
			h.href(page.Footer.SiteLink.Href)
			h.raw(">")
			h.text(page.Footer.SiteLink.Label)
			h.raw(`</a></h3>`)
			if page.Footer.Bio {
				h.render(Bio(cfg))
			}
			h.raw(`</footer></article>`)

			h.render(Navigation(page.Navigation))
		}),
	)
}

// Navigation renders the previous/next slots. An empty slot is an empty
// list item so the remaining link keeps its side.
func Navigation(nav postpage.Navigation) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<nav><ul style="display:flex;flex-wrap:wrap;justify-content:space-between;list-style:none;padding:0">`)
		for _, l := range []*postpage.Link{nav.Previous, nav.Next} {
			h.raw("<li>")
			if l != nil {
				h.raw("<a")
				h.href(l.Href)
				h.attr("rel", l.Rel)
				h.raw(">")
				h.text(l.Label)
				h.raw("</a>")
			}
			h.raw("</li>")
		}
		h.raw(`</ul></nav>`)
	})
}

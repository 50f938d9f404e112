package views

import (
	"encoding/json"

	"github.com/eringen/postpage"
)

// PageMeta carries per-page OpenGraph and SEO metadata into the <head>.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	JSONLD      string
}

// pageURL returns the canonical URL for a location, or the site root when
// the location is unknown.
func pageURL(cfg postpage.SiteConfig, loc *postpage.Location) string {
	if loc == nil || loc.Pathname == "" {
		return postpage.BuildURL(cfg.URL, postpage.RootPath)
	}
	return postpage.BuildURL(cfg.URL, loc.Pathname)
}

// isRoot reports whether loc is the site root.
func isRoot(loc *postpage.Location) bool {
	return loc != nil && loc.Pathname == postpage.RootPath
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block using cfg values.
func WebsiteJsonLD(cfg postpage.SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      postpage.BuildURL(cfg.URL, postpage.RootPath),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJsonLD produces a Schema.org BlogPosting JSON-LD block for an
// assembled post page.
func BlogPostingJsonLD(cfg postpage.SiteConfig, page postpage.PageDescription) string {
	postURL := pageURL(cfg, page.Location)
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "BlogPosting",
		"headline":    page.SEO.Title,
		"description": page.SEO.Description,
		"url":         postURL,
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  page.SiteTitle,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

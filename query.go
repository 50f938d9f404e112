package postpage

import (
	"context"
	"strings"
	"time"
	"unicode"

	"golang.org/x/net/html"
)

// QueryDecl declares how the content query shapes a post for the page:
// the fields it selects are those of PageData, and the resolver applies the
// formatting below before the page ever sees the record.
type QueryDecl struct {
	ExcerptLength int    // excerpt is pruned to at most this many runes
	DateLayout    string // display layout for frontmatter.date
}

// BlogPostBySlug is the query the post page is rendered from.
var BlogPostBySlug = QueryDecl{
	ExcerptLength: 160,
	DateLayout:    "January 02, 2006",
}

const storedDateLayout = "2006-01-02"

// Resolver resolves the query result for a post slug. The result has the
// shape {"site": {...}, "content": {...}} that DecodeProps validates.
type Resolver interface {
	BySlug(ctx context.Context, slug string) (map[string]any, error)
}

// PostSource looks up stored posts by slug.
type PostSource interface {
	GetPost(slug string) (Post, error)
}

// PostQuery resolves BlogPostBySlug against a PostSource.
type PostQuery struct {
	Source    PostSource
	SiteTitle string
	Decl      QueryDecl
}

// NewPostQuery returns a resolver for BlogPostBySlug.
func NewPostQuery(src PostSource, siteTitle string) *PostQuery {
	return &PostQuery{Source: src, SiteTitle: siteTitle, Decl: BlogPostBySlug}
}

// BySlug returns ErrNotFound when no published post has the slug.
func (q *PostQuery) BySlug(ctx context.Context, slug string) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := q.Source.GetPost(slug)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"site": map[string]any{
			"title": q.SiteTitle,
		},
		"content": map[string]any{
			"id":      p.ID,
			"excerpt": Excerpt(p.HTML, q.Decl.ExcerptLength),
			"html":    p.HTML,
			"frontmatter": map[string]any{
				"title":       p.Title,
				"date":        FormatDate(p.Date, q.Decl.DateLayout),
				"description": p.Description,
			},
			"fields": map[string]any{
				"readingTime": map[string]any{
					"text": p.ReadingTime,
				},
			},
		},
	}, nil
}

// FormatDate reformats a stored YYYY-MM-DD date. Dates that do not parse are
// returned unchanged.
func FormatDate(date, layout string) string {
	t, err := time.Parse(storedDateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(layout)
}

// Excerpt returns the text content of markup, with whitespace collapsed and
// pruned to at most n runes on a word boundary. A pruned excerpt ends in "…".
func Excerpt(markup string, n int) string {
	text := strings.Join(strings.Fields(textContent(markup)), " ")
	runes := []rune(text)
	if n <= 0 || len(runes) <= n {
		return text
	}
	cut := runes[:n-1]
	if !unicode.IsSpace(runes[n-1]) {
		if i := lastSpace(cut); i > 0 {
			cut = cut[:i]
		}
	}
	return strings.TrimRightFunc(string(cut), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	}) + "…"
}

func lastSpace(rs []rune) int {
	for i := len(rs) - 1; i >= 0; i-- {
		if unicode.IsSpace(rs[i]) {
			return i
		}
	}
	return -1
}

// textContent extracts the text nodes of an HTML fragment, skipping script
// and style elements.
func textContent(markup string) string {
	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(markup))
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return sb.String()
		case html.StartTagToken:
			name, _ := z.TagName()
			switch {
			case isRawText(name):
				skip++
			case !inlineTags[string(name)]:
				sb.WriteByte(' ')
			}
		case html.SelfClosingTagToken:
			sb.WriteByte(' ')
		case html.EndTagToken:
			name, _ := z.TagName()
			switch {
			case isRawText(name):
				if skip > 0 {
					skip--
				}
			case !inlineTags[string(name)]:
				sb.WriteByte(' ')
			}
		case html.TextToken:
			if skip == 0 {
				sb.Write(z.Text())
			}
		}
	}
}

var inlineTags = map[string]bool{
	"a": true, "abbr": true, "b": true, "code": true, "em": true, "i": true,
	"kbd": true, "mark": true, "small": true, "span": true, "strong": true,
	"sub": true, "sup": true,
}

func isRawText(name []byte) bool {
	s := string(name)
	return s == "script" || s == "style"
}

package postpage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

type fakeSource map[string]Post

func (f fakeSource) GetPost(slug string) (Post, error) {
	p, ok := f[slug]
	if !ok {
		return Post{}, ErrNotFound
	}
	return p, nil
}

func TestPostQueryBySlug(t *testing.T) {
	src := fakeSource{
		"/hello/": {
			ID:          "id-1",
			Slug:        "/hello/",
			Title:       "Hello",
			Date:        "2020-06-01",
			HTML:        "<h2>Intro</h2><p>Some <strong>bold</strong> text.</p>",
			ReadingTime: "1 min read",
			Published:   true,
		},
	}
	q := NewPostQuery(src, "My Blog")

	result, err := q.BySlug(context.Background(), "/hello/")
	if err != nil {
		t.Fatalf("BySlug failed: %v", err)
	}
	props, issues := DecodeProps(result, nil, nil)
	if len(issues) != 0 {
		t.Errorf("resolver output should match the page shape, got issues %v", issues)
	}
	c := props.Data.Content
	if c.ID != "id-1" {
		t.Errorf("ID = %q", c.ID)
	}
	if c.Frontmatter.Date != "June 01, 2020" {
		t.Errorf("Date = %q, want %q", c.Frontmatter.Date, "June 01, 2020")
	}
	if c.Excerpt != "Intro Some bold text." {
		t.Errorf("Excerpt = %q", c.Excerpt)
	}
	if c.Fields.ReadingTime.Text != "1 min read" {
		t.Errorf("ReadingTime = %q", c.Fields.ReadingTime.Text)
	}
	if props.Data.Site.Title != "My Blog" {
		t.Errorf("Site.Title = %q", props.Data.Site.Title)
	}
	if c.HTML != src["/hello/"].HTML {
		t.Errorf("HTML should be passed through unchanged, got %q", c.HTML)
	}
}

func TestPostQueryNotFound(t *testing.T) {
	q := NewPostQuery(fakeSource{}, "My Blog")
	_, err := q.BySlug(context.Background(), "/missing/")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPostQueryCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	q := NewPostQuery(fakeSource{}, "My Blog")
	if _, err := q.BySlug(ctx, "/hello/"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2020-06-01", "June 01, 2020"},
		{"2024-12-25", "December 25, 2024"},
		{"not a date", "not a date"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.in, BlogPostBySlug.DateLayout); got != tt.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name string
		html string
		n    int
		want string
	}{
		{"short text untouched", "<p>Hello world</p>", 160, "Hello world"},
		{"blocks are separated", "<h1>Title</h1><p>Body</p>", 160, "Title Body"},
		{"inline tags join", "<p>un<em>believ</em>able</p>", 160, "unbelievable"},
		{"entities decoded", "<p>Fish &amp; chips</p>", 160, "Fish & chips"},
		{"script skipped", "<p>a</p><script>var x = 1;</script><p>b</p>", 160, "a b"},
		{"pruned on word boundary", "<p>one two three four</p>", 10, "one two…"},
		{"trailing punctuation dropped", "<p>one, two three</p>", 8, "one…"},
		{"no limit", "<p>one two</p>", 0, "one two"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Excerpt(tt.html, tt.n); got != tt.want {
				t.Errorf("Excerpt(%q, %d) = %q, want %q", tt.html, tt.n, got, tt.want)
			}
		})
	}
}

func TestExcerptRespectsLength(t *testing.T) {
	long := "<p>" + strings.Repeat("lorem ipsum ", 100) + "</p>"
	got := Excerpt(long, BlogPostBySlug.ExcerptLength)
	if n := utf8.RuneCountInString(got); n > BlogPostBySlug.ExcerptLength {
		t.Errorf("excerpt has %d runes, want at most %d", n, BlogPostBySlug.ExcerptLength)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("pruned excerpt should end with an ellipsis, got %q", got)
	}
}

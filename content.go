package postpage

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ContentFile is the on-disk form of pre-rendered posts. YAML and JSON are
// both accepted.
type ContentFile struct {
	Posts []ContentEntry `yaml:"posts" json:"posts"`
}

// ContentEntry is one post in a content file. HTML must already be rendered;
// ReadingTime is taken as given.
type ContentEntry struct {
	ID          string `yaml:"id" json:"id"`
	Slug        string `yaml:"slug" json:"slug"`
	Title       string `yaml:"title" json:"title"`
	Date        string `yaml:"date" json:"date"`
	Description string `yaml:"description" json:"description"`
	HTML        string `yaml:"html" json:"html"`
	ReadingTime string `yaml:"readingTime" json:"readingTime"`
	Draft       bool   `yaml:"draft" json:"draft"`
}

// LoadContentFile reads and parses a content file.
func LoadContentFile(path string) ([]Post, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	posts, err := ParseContent(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return posts, nil
}

// ParseContent decodes a content file. Entries without an ID get one derived
// from their slug, so re-importing the same file keeps IDs stable.
func ParseContent(b []byte) ([]Post, error) {
	var f ContentFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	posts := make([]Post, 0, len(f.Posts))
	seen := make(map[string]struct{}, len(f.Posts))
	for i, e := range f.Posts {
		slug := strings.TrimSpace(e.Slug)
		if slug == "" {
			return nil, fmt.Errorf("post %d: slug is required", i)
		}
		// Slugs are served as paths, and the server redirects to the
		// trailing-slash form.
		if slug == RootPath || !strings.HasPrefix(slug, "/") || !strings.HasSuffix(slug, "/") {
			return nil, fmt.Errorf("post %d: slug %q must be a path like /my-post/", i, slug)
		}
		if _, dup := seen[slug]; dup {
			return nil, fmt.Errorf("post %d: duplicate slug %q", i, slug)
		}
		seen[slug] = struct{}{}
		date := strings.TrimSpace(e.Date)
		if _, err := time.Parse(storedDateLayout, date); err != nil {
			return nil, fmt.Errorf("post %q: invalid date %q, use YYYY-MM-DD", slug, e.Date)
		}
		id := strings.TrimSpace(e.ID)
		if id == "" {
			id = uuid.NewSHA1(uuid.NameSpaceURL, []byte(slug)).String()
		}
		posts = append(posts, Post{
			ID:          id,
			Slug:        slug,
			Title:       e.Title,
			Date:        date,
			Description: e.Description,
			HTML:        e.HTML,
			ReadingTime: e.ReadingTime,
			Published:   !e.Draft,
		})
	}
	return posts, nil
}

// ImportResult reports what an import changed in the store.
type ImportResult struct {
	Saved   int // posts upserted from the file
	Removed int // stored posts no longer in the file
}

// ImportFile syncs the store to a content file. Posts missing from the file,
// including renamed slugs, are removed so they are no longer served or
// linked as siblings.
func ImportFile(s *Store, path string) (ImportResult, error) {
	posts, err := LoadContentFile(path)
	if err != nil {
		return ImportResult{}, err
	}
	removed, err := s.SyncPosts(posts)
	if err != nil {
		return ImportResult{}, err
	}
	return ImportResult{Saved: len(posts), Removed: removed}, nil
}

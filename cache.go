package postpage

import (
	"database/sql"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = sql.ErrNoRows

// PostCache is an in-memory cache of published posts with TTL.
type PostCache struct {
	mu        sync.RWMutex
	posts     []Post
	summaries []PostSummary
	fetched   time.Time
	ttl       time.Duration
	store     *Store
}

// NewPostCache creates a PostCache backed by the given Store.
func NewPostCache(s *Store, ttl time.Duration) *PostCache {
	return &PostCache{store: s, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.summaries = nil
	c.mu.Unlock()
}

func (c *PostCache) load() error {
	if c.valid() {
		return nil
	}
	posts, err := c.store.ListPosts()
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []Post{}
	}
	summaries := make([]PostSummary, len(posts))
	for i, p := range posts {
		summaries[i] = PostSummary{
			Slug:    p.Slug,
			Title:   p.Title,
			Date:    p.Date,
			Excerpt: Excerpt(p.HTML, BlogPostBySlug.ExcerptLength),
		}
	}
	c.posts = posts
	c.summaries = summaries
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached posts after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ensureLoaded() ([]Post, []PostSummary, error) {
	c.mu.RLock()
	if c.valid() {
		posts, summaries := c.posts, c.summaries
		c.mu.RUnlock()
		return posts, summaries, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, err
	}
	return c.posts, c.summaries, nil
}

// ListPosts returns published post summaries, newest first.
func (c *PostCache) ListPosts() ([]PostSummary, error) {
	_, summaries, err := c.ensureLoaded()
	return summaries, err
}

// GetPost returns a single published post by slug from the cache.
func (c *PostCache) GetPost(slug string) (Post, error) {
	posts, _, err := c.ensureLoaded()
	if err != nil {
		return Post{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}

// Navigation returns the previous/next context for slug.
func (c *PostCache) Navigation(slug string) (NavigationContext, error) {
	_, summaries, err := c.ensureLoaded()
	if err != nil {
		return NavigationContext{}, err
	}
	return Siblings(summaries, slug), nil
}

package postpage

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "test_posts.db")

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	cleanup := func() {
		s.Close()
	}

	return s, cleanup
}

func testPost(slug, title, date string) Post {
	return Post{
		ID:          "id" + slug,
		Slug:        slug,
		Title:       title,
		Date:        date,
		Description: "about " + title,
		HTML:        "<p>" + title + " body</p>",
		ReadingTime: "1 min read",
		Published:   true,
	}
}

func TestNewStore(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	if s == nil {
		t.Fatal("store should not be nil")
	}
	if s.db == nil {
		t.Fatal("db should not be nil")
	}
}

func TestNewStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.db")
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if err := s.SavePost(testPost("/a/", "A", "2024-01-01")); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}
	s.Close()

	// Migrations must be idempotent.
	s, err = NewStore(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()
	if _, err := s.GetPost("/a/"); err != nil {
		t.Errorf("post should survive reopen: %v", err)
	}
}

func TestSaveAndGetPost(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	post := testPost("/test-post/", "Test Post", "2024-01-15")
	if err := s.SavePost(post); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	got, err := s.GetPost("/test-post/")
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got != post {
		t.Errorf("GetPost = %+v, want %+v", got, post)
	}
}

func TestSavePostUpdate(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	post := testPost("/update-test/", "Original Title", "2024-01-01")
	if err := s.SavePost(post); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	post.Title = "Updated Title"
	post.ReadingTime = "5 min read"
	if err := s.SavePost(post); err != nil {
		t.Fatalf("SavePost update failed: %v", err)
	}

	got, err := s.GetPost("/update-test/")
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got.Title != "Updated Title" {
		t.Errorf("Title = %q, want %q", got.Title, "Updated Title")
	}
	if got.ReadingTime != "5 min read" {
		t.Errorf("ReadingTime = %q, want %q", got.ReadingTime, "5 min read")
	}
}

func TestGetPostNotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := s.GetPost("/nonexistent/")
	if err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestGetPostUnpublished(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	post := testPost("/draft/", "Draft", "2024-01-01")
	post.Published = false
	if err := s.SavePost(post); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	// GetPost should not find unpublished posts
	if _, err := s.GetPost("/draft/"); err != sql.ErrNoRows {
		t.Errorf("GetPost should return ErrNoRows for unpublished, got %v", err)
	}
}

func TestListPosts(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	draft := testPost("/post-4/", "Post 4", "2024-01-04")
	draft.Published = false
	posts := []Post{
		testPost("/post-1/", "Post 1", "2024-01-01"),
		testPost("/post-2/", "Post 2", "2024-01-02"),
		testPost("/post-3/", "Post 3", "2024-01-03"),
		draft,
	}
	if _, err := s.SyncPosts(posts); err != nil {
		t.Fatalf("SyncPosts failed: %v", err)
	}

	got, err := s.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ListPosts count = %d, want 3 (excluding unpublished)", len(got))
	}
	// Should be ordered by date DESC
	if got[0].Slug != "/post-3/" || got[2].Slug != "/post-1/" {
		t.Errorf("ListPosts order = %s, %s, %s", got[0].Slug, got[1].Slug, got[2].Slug)
	}

	all, err := s.ListAllPosts()
	if err != nil {
		t.Fatalf("ListAllPosts failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("ListAllPosts count = %d, want 4 (including unpublished)", len(all))
	}
}

func TestListPostsSameDateOrderedBySlug(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	for _, p := range []Post{
		testPost("/b/", "B", "2024-01-01"),
		testPost("/a/", "A", "2024-01-01"),
	} {
		if err := s.SavePost(p); err != nil {
			t.Fatalf("SavePost failed: %v", err)
		}
	}
	got, err := s.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(got) != 2 || got[0].Slug != "/a/" {
		t.Errorf("posts sharing a date should be ordered by slug, got %+v", got)
	}
}

func TestDeletePost(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	if err := s.SavePost(testPost("/to-delete/", "To Delete", "2024-01-01")); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}
	if err := s.DeletePost("/to-delete/"); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}
	if _, err := s.GetPost("/to-delete/"); err != sql.ErrNoRows {
		t.Errorf("Post should not exist after delete, got err: %v", err)
	}

	// Should not error when deleting nonexistent post
	if err := s.DeletePost("/nonexistent/"); err != nil {
		t.Errorf("DeletePost on nonexistent should not error, got: %v", err)
	}
}

func TestSyncPostsRemovesStale(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	draft := testPost("/draft/", "Draft", "2024-01-03")
	draft.Published = false
	if _, err := s.SyncPosts([]Post{
		testPost("/a/", "A", "2024-01-01"),
		testPost("/b/", "B", "2024-01-02"),
		draft,
	}); err != nil {
		t.Fatalf("SyncPosts failed: %v", err)
	}

	renamed := testPost("/b-renamed/", "B", "2024-01-02")
	removed, err := s.SyncPosts([]Post{testPost("/a/", "A", "2024-01-01"), renamed})
	if err != nil {
		t.Fatalf("SyncPosts failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2 (/b/ and /draft/)", removed)
	}
	all, err := s.ListAllPosts()
	if err != nil {
		t.Fatalf("ListAllPosts failed: %v", err)
	}
	var slugs []string
	for _, p := range all {
		slugs = append(slugs, p.Slug)
	}
	if len(slugs) != 2 || slugs[0] != "/b-renamed/" || slugs[1] != "/a/" {
		t.Errorf("stored slugs = %v, want [/b-renamed/ /a/]", slugs)
	}
	if _, err := s.GetPost("/b/"); err != sql.ErrNoRows {
		t.Errorf("GetPost(/b/) = %v, want sql.ErrNoRows", err)
	}
}

func TestPostCache(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	if _, err := s.SyncPosts([]Post{
		testPost("/a/", "A", "2024-01-01"),
		testPost("/b/", "B", "2024-01-02"),
	}); err != nil {
		t.Fatalf("SyncPosts failed: %v", err)
	}
	c := NewPostCache(s, time.Hour)

	posts, err := c.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 2 || posts[0].Slug != "/b/" {
		t.Fatalf("ListPosts = %+v", posts)
	}
	if posts[0].Excerpt != "B body" {
		t.Errorf("Excerpt = %q, want %q", posts[0].Excerpt, "B body")
	}

	nav, err := c.Navigation("/b/")
	if err != nil {
		t.Fatalf("Navigation failed: %v", err)
	}
	if nav.Previous == nil || nav.Previous.Fields.Slug != "/a/" || nav.Next != nil {
		t.Errorf("Navigation(/b/) = %+v", nav)
	}

	// A new post is invisible until the cache is invalidated.
	if err := s.SavePost(testPost("/c/", "C", "2024-01-03")); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}
	if _, err := c.GetPost("/c/"); err != ErrNotFound {
		t.Errorf("GetPost before invalidate = %v, want ErrNotFound", err)
	}
	c.Invalidate()
	if _, err := c.GetPost("/c/"); err != nil {
		t.Errorf("GetPost after invalidate failed: %v", err)
	}
}

func TestPostCacheEmptyStore(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	c := NewPostCache(s, time.Hour)
	posts, err := c.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("ListPosts = %v, want none", posts)
	}
	if _, err := c.GetPost("/a/"); err != ErrNotFound {
		t.Errorf("GetPost = %v, want ErrNotFound", err)
	}
}

package postpage

// Siblings returns the navigation context for slug within posts, which must
// be ordered newest first. Previous is the next older post and Next the next
// newer one; either is nil at the ends of the sequence, and both are nil
// when slug is not in posts.
func Siblings(posts []PostSummary, slug string) NavigationContext {
	for i, p := range posts {
		if p.Slug != slug {
			continue
		}
		var nav NavigationContext
		if i+1 < len(posts) {
			nav.Previous = siblingRef(posts[i+1])
		}
		if i > 0 {
			nav.Next = siblingRef(posts[i-1])
		}
		return nav
	}
	return NavigationContext{}
}

func siblingRef(p PostSummary) *SiblingRef {
	return &SiblingRef{
		Fields:      SiblingFields{Slug: p.Slug},
		Frontmatter: SiblingFrontmatter{Title: p.Title},
	}
}

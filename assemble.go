package postpage

// CaptionSeparator joins the post date and reading time in the header.
const CaptionSeparator = " • "

// RootPath is the site root the footer links back to.
const RootPath = "/"

// Assemble builds the page description for a post. It performs no I/O and
// never fails: absent values have already been defaulted by DecodeProps, and
// absent siblings simply leave their navigation slot empty.
func Assemble(data PageData, nav NavigationContext, location *Location) PageDescription {
	post := data.Content
	siteTitle := data.Site.Title

	return PageDescription{
		Location:  location,
		SiteTitle: siteTitle,
		SEO: SEO{
			Title:       post.Frontmatter.Title,
			Description: seoDescription(post),
		},
		Header: Header{
			Title:   post.Frontmatter.Title,
			Caption: post.Frontmatter.Date + CaptionSeparator + post.Fields.ReadingTime.Text,
		},
		Body: Body{HTML: post.HTML},
		Footer: Footer{
			SiteLink: Link{Href: RootPath, Label: siteTitle},
			Bio:      true,
		},
		Navigation: Navigation{
			Previous: previousLink(nav.Previous),
			Next:     nextLink(nav.Next),
		},
	}
}

// AssembleProps is Assemble over decoded props.
func AssembleProps(p Props) PageDescription {
	return Assemble(p.Data, p.PageContext, p.Location)
}

// seoDescription prefers the explicit description. An empty description is
// treated the same as a missing one.
func seoDescription(post ContentRecord) string {
	if post.Frontmatter.Description != "" {
		return post.Frontmatter.Description
	}
	return post.Excerpt
}

func previousLink(s *SiblingRef) *Link {
	if s == nil {
		return nil
	}
	return &Link{
		Href:  s.Fields.Slug,
		Label: "← " + s.Frontmatter.Title,
		Rel:   "prev",
	}
}

func nextLink(s *SiblingRef) *Link {
	if s == nil {
		return nil
	}
	return &Link{
		Href:  s.Fields.Slug,
		Label: s.Frontmatter.Title + " →",
		Rel:   "next",
	}
}

package postpage

// ContentRecord is one resolved post as returned by the content query.
type ContentRecord struct {
	ID          string        `json:"id"`
	HTML        string        `json:"html"`
	Excerpt     string        `json:"excerpt"`
	Frontmatter Frontmatter   `json:"frontmatter"`
	Fields      ContentFields `json:"fields"`
}

// Frontmatter holds the author-supplied metadata of a post. Date is already
// formatted for display by the resolver.
type Frontmatter struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// ContentFields holds values derived by the build pipeline.
type ContentFields struct {
	ReadingTime ReadingTime `json:"readingTime"`
}

// ReadingTime is the externally computed reading-time estimate.
type ReadingTime struct {
	Text string `json:"text"`
}

// SiteMetadata is the global site identity shared by every page of a build.
type SiteMetadata struct {
	Title string `json:"title"`
}

// PageData is the query result a post page is rendered from.
type PageData struct {
	Content ContentRecord `json:"content"`
	Site    SiteMetadata  `json:"site"`
}

// SiblingRef is a lightweight reference to an adjacent post.
type SiblingRef struct {
	Fields      SiblingFields      `json:"fields"`
	Frontmatter SiblingFrontmatter `json:"frontmatter"`
}

type SiblingFields struct {
	Slug string `json:"slug"`
}

type SiblingFrontmatter struct {
	Title string `json:"title"`
}

// NavigationContext carries the posts before and after the current one.
// A nil sibling marks a boundary of the post sequence.
type NavigationContext struct {
	Previous *SiblingRef `json:"previous"`
	Next     *SiblingRef `json:"next"`
}

// Location identifies the page being rendered.
type Location struct {
	Pathname string `json:"pathname"`
}

// Props bundles everything a post page is rendered from.
type Props struct {
	Data        PageData
	PageContext NavigationContext
	Location    *Location
}

// PageDescription is the assembled, renderable form of a post page.
type PageDescription struct {
	Location   *Location
	SiteTitle  string
	SEO        SEO
	Header     Header
	Body       Body
	Footer     Footer
	Navigation Navigation
}

// SEO carries the tags handed to the head renderer.
type SEO struct {
	Title       string
	Description string
}

// Header is the article header. Caption is rendered as a single text node.
type Header struct {
	Title   string
	Caption string
}

// Body holds caller-trusted pre-rendered content. HTML is written to the
// page verbatim; sanitizing it is the job of whatever produced it.
type Body struct {
	HTML string
}

// Footer links back to the site root and marks where the author bio goes.
type Footer struct {
	SiteLink Link
	Bio      bool
}

// Navigation has two slots. A nil slot renders nothing.
type Navigation struct {
	Previous *Link
	Next     *Link
}

// Link is an anchor produced by the assembler.
type Link struct {
	Href  string
	Label string
	Rel   string
}

// Post is a stored post row.
type Post struct {
	ID          string
	Slug        string
	Title       string
	Date        string // YYYY-MM-DD
	Description string
	HTML        string
	ReadingTime string
	Published   bool
}

// PostSummary is the subset of a post used for listings and navigation.
type PostSummary struct {
	Slug    string
	Title   string
	Date    string
	Excerpt string
}

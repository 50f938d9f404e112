package postpage

import "fmt"

const problemMissing = "missing"

// FieldIssue records a field that was absent or did not match its declared
// shape and was replaced by its default.
type FieldIssue struct {
	Path    string
	Problem string
}

// Missing reports whether the field was absent rather than malformed.
func (i FieldIssue) Missing() bool {
	return i.Problem == problemMissing
}

func (i FieldIssue) String() string {
	return i.Path + ": " + i.Problem
}

// DecodeProps validates raw page inputs against the post page shape. Every
// string leaf that is absent or of the wrong type falls back to "", a
// malformed object falls back to its zero value, and a malformed sibling
// falls back to nil. It never fails; the returned issues describe what was
// defaulted.
//
// data may be a PageData, a *PageData, or a decoded JSON object.
// pageContext may be a NavigationContext, a *NavigationContext, or a decoded
// JSON object. location may be a *Location, a Location, or a decoded JSON
// object. nil is accepted for all three.
func DecodeProps(data, pageContext, location any) (Props, []FieldIssue) {
	d := &decoder{}
	props := Props{
		Data:        d.pageData(data),
		PageContext: d.navigation(pageContext),
		Location:    d.location(location),
	}
	return props, d.issues
}

type decoder struct {
	issues []FieldIssue
}

func (d *decoder) issue(path, problem string) {
	d.issues = append(d.issues, FieldIssue{Path: path, Problem: problem})
}

func (d *decoder) mismatch(path, want string, got any) {
	d.issue(path, fmt.Sprintf("expected %s, got %T", want, got))
}

// object returns v as an object. nil is reported as missing.
func (d *decoder) object(v any, path string) map[string]any {
	switch m := v.(type) {
	case map[string]any:
		return m
	case nil:
		d.issue(path, problemMissing)
	default:
		d.mismatch(path, "object", v)
	}
	return nil
}

// child looks up a nested object. A nil parent was already reported, so
// nothing is recorded for its children.
func (d *decoder) child(parent map[string]any, path, key string) map[string]any {
	if parent == nil {
		return nil
	}
	return d.object(parent[key], join(path, key))
}

func (d *decoder) str(obj map[string]any, path, key string) string {
	if obj == nil {
		return ""
	}
	v, ok := obj[key]
	if !ok || v == nil {
		d.issue(join(path, key), problemMissing)
		return ""
	}
	s, ok := v.(string)
	if !ok {
		d.mismatch(join(path, key), "string", v)
		return ""
	}
	return s
}

func (d *decoder) pageData(v any) PageData {
	switch data := v.(type) {
	case PageData:
		return data
	case *PageData:
		if data != nil {
			return *data
		}
		d.issue("data", problemMissing)
		return PageData{}
	}

	root := d.object(v, "data")
	content := d.child(root, "", "content")
	frontmatter := d.child(content, "content", "frontmatter")
	fields := d.child(content, "content", "fields")
	readingTime := d.child(fields, "content.fields", "readingTime")
	site := d.child(root, "", "site")

	return PageData{
		Content: ContentRecord{
			ID:      d.optionalStr(content, "id"),
			HTML:    d.str(content, "content", "html"),
			Excerpt: d.str(content, "content", "excerpt"),
			Frontmatter: Frontmatter{
				Title:       d.str(frontmatter, "content.frontmatter", "title"),
				Date:        d.str(frontmatter, "content.frontmatter", "date"),
				Description: d.str(frontmatter, "content.frontmatter", "description"),
			},
			Fields: ContentFields{
				ReadingTime: ReadingTime{
					Text: d.str(readingTime, "content.fields.readingTime", "text"),
				},
			},
		},
		Site: SiteMetadata{
			Title: d.str(site, "site", "title"),
		},
	}
}

// optionalStr reads a string leaf the page never renders. Only a type
// mismatch is recorded.
func (d *decoder) optionalStr(obj map[string]any, key string) string {
	v, ok := obj[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		d.mismatch(join("content", key), "string", v)
	}
	return s
}

func (d *decoder) navigation(v any) NavigationContext {
	switch nav := v.(type) {
	case NavigationContext:
		return nav
	case *NavigationContext:
		if nav != nil {
			return *nav
		}
		return NavigationContext{}
	case nil:
		return NavigationContext{}
	}

	m, ok := v.(map[string]any)
	if !ok {
		d.mismatch("pageContext", "object", v)
		return NavigationContext{}
	}
	return NavigationContext{
		Previous: d.sibling(m["previous"], "pageContext.previous"),
		Next:     d.sibling(m["next"], "pageContext.next"),
	}
}

// sibling decodes an adjacent post reference. null means there is no
// sibling and is not an issue.
func (d *decoder) sibling(v any, path string) *SiblingRef {
	switch s := v.(type) {
	case nil:
		return nil
	case *SiblingRef:
		return s
	case SiblingRef:
		return &s
	}
	m, ok := v.(map[string]any)
	if !ok {
		d.mismatch(path, "object", v)
		return nil
	}
	fields := d.child(m, path, "fields")
	frontmatter := d.child(m, path, "frontmatter")
	return &SiblingRef{
		Fields:      SiblingFields{Slug: d.str(fields, path+".fields", "slug")},
		Frontmatter: SiblingFrontmatter{Title: d.str(frontmatter, path+".frontmatter", "title")},
	}
}

func (d *decoder) location(v any) *Location {
	switch loc := v.(type) {
	case nil:
		return nil
	case *Location:
		return loc
	case Location:
		return &loc
	case string:
		return &Location{Pathname: loc}
	}
	m, ok := v.(map[string]any)
	if !ok {
		d.mismatch("location", "object", v)
		return nil
	}
	return &Location{Pathname: d.str(m, "location", "pathname")}
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

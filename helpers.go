package postpage

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// pagePath returns the index.html path for slug under dir. Slugs that would
// resolve outside dir are rejected.
func pagePath(dir, slug string) (string, error) {
	root := filepath.Clean(dir)
	p := filepath.Join(root, filepath.FromSlash(path.Clean("/"+slug)), "index.html")
	if !strings.HasPrefix(p, root+string(filepath.Separator)) {
		return "", fmt.Errorf("slug %q escapes %s", slug, dir)
	}
	return p, nil
}

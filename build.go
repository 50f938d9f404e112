package postpage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// BuildResult summarizes a static build.
type BuildResult struct {
	Pages  int // post pages written
	Assets int // static files copied
}

// Build writes the whole site to Config.OutputDir: one index.html per post
// under its slug, the home page, sitemap.xml and rss.xml. Posts are rendered
// in parallel; each render is independent of the others.
func (a *App) Build(ctx context.Context) (BuildResult, error) {
	if err := a.Open(); err != nil {
		return BuildResult{}, err
	}
	out := a.Config.OutputDir
	if err := os.MkdirAll(out, 0o755); err != nil {
		return BuildResult{}, fmt.Errorf("postpage: create output dir: %w", err)
	}

	posts, err := a.Cache.ListPosts()
	if err != nil {
		return BuildResult{}, fmt.Errorf("postpage: list posts: %w", err)
	}

	var pages atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.Config.BuildWorkers)
	for _, p := range posts {
		slug := p.Slug
		g.Go(func() error {
			path, err := pagePath(out, slug)
			if err != nil {
				return err
			}
			page, err := a.RenderPage(gctx, slug)
			if err != nil {
				return fmt.Errorf("%s: %w", slug, err)
			}
			if err := RenderFile(gctx, path, a.Views.Post(page)); err != nil {
				return err
			}
			pages.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BuildResult{Pages: int(pages.Load())}, fmt.Errorf("postpage: build: %w", err)
	}
	res := BuildResult{Pages: int(pages.Load())}

	if err := RenderFile(ctx, filepath.Join(out, "index.html"), a.Views.Home(posts)); err != nil {
		return res, fmt.Errorf("postpage: build home: %w", err)
	}
	if err := writeFile(filepath.Join(out, "sitemap.xml"), func(w io.Writer) error {
		return writeSitemap(w, a.Config.URL, posts)
	}); err != nil {
		return res, fmt.Errorf("postpage: build sitemap: %w", err)
	}
	if err := writeFile(filepath.Join(out, "rss.xml"), func(w io.Writer) error {
		return a.writeRSS(w, posts)
	}); err != nil {
		return res, fmt.Errorf("postpage: build feed: %w", err)
	}

	n, err := copyDir(a.staticDir, filepath.Join(out, "public"))
	if err != nil {
		return res, fmt.Errorf("postpage: copy static: %w", err)
	}
	res.Assets = n

	a.Logger.Infof("built %d pages and copied %d assets into %s", res.Pages, res.Assets, out)
	return res, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// copyDir copies the regular files under src into dst. A missing src is not
// an error.
func copyDir(src, dst string) (int, error) {
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return 0, nil
	}
	n := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if err := copyFile(path, target); err != nil {
			return err
		}
		n++
		return nil
	})
	return n, err
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

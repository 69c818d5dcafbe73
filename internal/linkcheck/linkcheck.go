package linkcheck

import (
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Issue is one internal reference that does not resolve to an emitted file.
type Issue struct {
	Page string // output-relative path of the referencing page
	Ref  string // the unresolved href or src
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: broken internal link %q", i.Page, i.Ref)
}

// Verify parses every rendered HTML page under outputDir and checks that
// internal references (href/src without a scheme or host) point at files the
// build actually emitted. External links are not touched: verification never
// goes over the network.
func Verify(outputDir string) ([]Issue, error) {
	var issues []Issue

	err := filepath.WalkDir(outputDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}

		rel, err := filepath.Rel(outputDir, p)
		if err != nil {
			return fmt.Errorf("relativizing %s: %w", p, err)
		}
		rel = filepath.ToSlash(rel)

		refs, err := extractRefs(p)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", p, err)
		}

		for _, ref := range refs {
			target, internal := resolve(rel, ref)
			if !internal {
				continue
			}
			if !exists(outputDir, target) {
				issues = append(issues, Issue{Page: rel, Ref: ref})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Page != issues[j].Page {
			return issues[i].Page < issues[j].Page
		}
		return issues[i].Ref < issues[j].Ref
	})
	return issues, nil
}

// extractRefs collects href and src attribute values from a rendered page.
func extractRefs(p string) ([]string, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	root, err := html.Parse(f)
	if err != nil {
		return nil, err
	}

	var refs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, attr := range n.Attr {
				if attr.Key == "href" || attr.Key == "src" {
					refs = append(refs, attr.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return refs, nil
}

// resolve turns a reference on the given page into an output-relative path.
// internal is false for absolute URLs, mailto links and bare fragments.
func resolve(page, ref string) (target string, internal bool) {
	u, err := url.Parse(ref)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" {
		return "", false
	}

	if strings.HasPrefix(u.Path, "/") {
		return strings.TrimPrefix(u.Path, "/"), true
	}
	return path.Join(path.Dir(page), u.Path), true
}

// exists reports whether target resolves to an emitted file, treating
// directory-style paths as their index.html.
func exists(outputDir, target string) bool {
	p := filepath.Join(outputDir, filepath.FromSlash(target))
	info, err := os.Stat(p)
	if err != nil {
		return false
	}
	if info.IsDir() {
		_, err = os.Stat(filepath.Join(p, "index.html"))
		return err == nil
	}
	return true
}

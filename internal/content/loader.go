package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tsdtsdtsd/stasis/internal/markdown"
	"github.com/tsdtsdtsd/stasis/internal/model"
)

// ErrDuplicatePermalink is returned when two documents resolve to the same
// output location.
var ErrDuplicatePermalink = errors.New("duplicate permalink")

// ErrMissingDate is returned for posts without a publication date; listing
// order would be undefined without one.
var ErrMissingDate = errors.New("post has no date")

var titleCaser = cases.Title(language.English)

// frontMatter is the recognized metadata block preceding a document body.
type frontMatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Date        string   `yaml:"date"`
	Modified    string   `yaml:"modified"`
	Categories  []string `yaml:"categories"`
	Tags        []string `yaml:"tags"`
	Draft       bool     `yaml:"draft"`
	Slug        string   `yaml:"slug"`
	Type        string   `yaml:"type"`
	Layout      string   `yaml:"layout"`
}

// Load walks dir for Markdown files and turns each into a Document.
// Malformed front matter or an unparseable date aborts the whole load:
// a build either completes or fails.
func Load(dir string, conv *markdown.Converter) ([]*model.Document, error) {
	var docs []*model.Document
	seen := map[string]string{} // permalink -> source path

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("accessing %s: %w", p, walkErr)
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		doc, err := loadFile(dir, p, conv)
		if err != nil {
			return err
		}

		if prev, dup := seen[doc.Permalink]; dup {
			return fmt.Errorf("%w: %s and %s both map to %s",
				ErrDuplicatePermalink, prev, p, doc.Permalink)
		}
		seen[doc.Permalink] = p

		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func loadFile(dir, p string, conv *markdown.Converter) (*model.Document, error) {
	raw, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", p, err)
	}

	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
	if err != nil {
		return nil, fmt.Errorf("malformed front matter in %s: %w", p, err)
	}

	rel, err := filepath.Rel(dir, p)
	if err != nil {
		return nil, fmt.Errorf("relativizing %s: %w", p, err)
	}
	rel = filepath.ToSlash(rel)

	doc := &model.Document{
		Title:       fm.Title,
		Description: fm.Description,
		Categories:  fm.Categories,
		Tags:        fm.Tags,
		Draft:       fm.Draft,
		Layout:      fm.Layout,
		SourcePath:  p,
		Type:        docType(rel, fm.Type),
	}

	base := strings.TrimSuffix(path.Base(rel), path.Ext(rel))
	if doc.Title == "" {
		doc.Title = titleCaser.String(strings.NewReplacer("-", " ", "_", " ").Replace(base))
	}

	doc.Slug = fm.Slug
	if doc.Slug == "" {
		doc.Slug = Slugify(base)
	}
	doc.Permalink = permalink(rel, doc.Slug, doc.Draft)

	if fm.Date != "" {
		if doc.Date, err = parseDate(fm.Date); err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	} else if doc.IsPost() {
		return nil, fmt.Errorf("%w: %s", ErrMissingDate, p)
	}
	if fm.Modified != "" {
		if doc.Modified, err = parseDate(fm.Modified); err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}

	if doc.ContentHTML, err = conv.Convert(body); err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}

	doc.Summary = doc.Description
	if doc.Summary == "" {
		doc.Summary = markdown.Summarize(doc.ContentHTML, markdown.SummaryWordLimit)
	}

	return doc, nil
}

// docType derives the content type from the first path segment under the
// content dir ("posts/foo.md" -> "posts"); front matter overrides it.
// Files at the content root are standalone pages.
func docType(rel, override string) string {
	if override != "" {
		return override
	}
	if i := strings.IndexByte(rel, '/'); i > 0 {
		return rel[:i]
	}
	return "page"
}

// permalink builds the output location for a document. Drafts always land
// under /drafts/ so they stay reachable by direct link while never being
// listed.
func permalink(rel, slug string, draft bool) string {
	if draft {
		return "/drafts/" + slug + "/"
	}
	d := path.Dir(rel)
	if d == "." {
		return "/" + slug + "/"
	}
	return "/" + d + "/" + slug + "/"
}

// Slugify lowers a name into a URL path segment.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

package render

import (
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tsdtsdtsd/stasis/internal/content"
	"github.com/tsdtsdtsd/stasis/internal/model"
)

// pageContext is the data handed to single-document layouts.
type pageContext struct {
	Site  *model.Site
	Item  *model.Document
	Title string
}

// listContext is the data handed to the home page and listing layouts.
// Title is empty on the home page; themes use that to pick the bare site
// title there and "Page | Site" everywhere else.
type listContext struct {
	Site  *model.Site
	Title string
	Items []*model.Document
}

// Renderer writes the site's HTML pages from a parsed theme.
type Renderer struct {
	templates *template.Template
	outputDir string
	site      *model.Site
	logger    *slog.Logger
}

// New parses the theme's layouts and returns a Renderer targeting outputDir.
func New(layoutsDir, outputDir string, site *model.Site, logger *slog.Logger) (*Renderer, error) {
	templates, err := loadTemplates(layoutsDir)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		templates: templates,
		outputDir: outputDir,
		site:      site,
		logger:    logger,
	}, nil
}

// RenderAll emits every page of the site: one page per document (drafts
// included, at their unlisted permalink), the home page, the posts archive
// and one listing per category and tag. Listing pages only ever see
// published posts.
func (r *Renderer) RenderAll() error {
	for _, doc := range r.site.Documents {
		if err := r.renderDocument(doc); err != nil {
			return err
		}
	}

	if err := r.writePage(HomeLayout, "/", listContext{Site: r.site, Items: r.site.Posts}); err != nil {
		return err
	}

	if r.templates.Lookup(ListLayout) == nil {
		r.logger.Warn("list layout not found, skipping archive and taxonomy pages",
			"layout", ListLayout)
		return nil
	}

	if err := r.writePage(ListLayout, "/posts/", listContext{
		Site:  r.site,
		Title: "Posts",
		Items: r.site.Posts,
	}); err != nil {
		return err
	}

	for _, name := range r.site.Categories() {
		err := r.writePage(ListLayout, "/category/"+content.Slugify(name)+"/", listContext{
			Site:  r.site,
			Title: name,
			Items: r.site.ByCategory[name],
		})
		if err != nil {
			return err
		}
	}

	for _, name := range r.site.Tags() {
		err := r.writePage(ListLayout, "/tag/"+content.Slugify(name)+"/", listContext{
			Site:  r.site,
			Title: name,
			Items: r.site.ByTag[name],
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *Renderer) renderDocument(doc *model.Document) error {
	layout, err := r.layoutFor(doc)
	if err != nil {
		return err
	}
	return r.writePage(layout, doc.Permalink, pageContext{
		Site:  r.site,
		Item:  doc,
		Title: doc.Title,
	})
}

// layoutFor picks the layout for a document: front matter wins, then the
// type default, then base.html as the final fallback.
func (r *Renderer) layoutFor(doc *model.Document) (string, error) {
	layout := SingleLayout
	if !doc.IsPost() && r.templates.Lookup(PageLayout) != nil {
		layout = PageLayout
	}

	if doc.Layout != "" {
		if r.templates.Lookup(doc.Layout) != nil {
			layout = doc.Layout
		} else {
			r.logger.Warn("front matter layout not found, using default",
				"layout", doc.Layout, "source", doc.SourcePath, "default", layout)
		}
	}

	if r.templates.Lookup(layout) == nil {
		if r.templates.Lookup(BaseLayout) == nil {
			return "", fmt.Errorf("neither layout %s nor %s available for %s",
				layout, BaseLayout, doc.SourcePath)
		}
		layout = BaseLayout
	}
	return layout, nil
}

// writePage renders one layout into <outputDir><permalink>index.html.
func (r *Renderer) writePage(layout, permalink string, data any) error {
	outPath := filepath.Join(r.outputDir, filepath.FromSlash(permalink), "index.html")
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", outPath, err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}

	if err := r.templates.ExecuteTemplate(out, layout, data); err != nil {
		out.Close()
		return fmt.Errorf("executing layout %s for %s: %w", layout, outPath, err)
	}

	r.logger.Debug("page rendered", "layout", layout, "path", outPath)
	return out.Close()
}

package site

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/tsdtsdtsd/stasis/internal/assets"
	"github.com/tsdtsdtsd/stasis/internal/config"
	"github.com/tsdtsdtsd/stasis/internal/content"
	"github.com/tsdtsdtsd/stasis/internal/feeds"
	"github.com/tsdtsdtsd/stasis/internal/linkcheck"
	"github.com/tsdtsdtsd/stasis/internal/markdown"
	"github.com/tsdtsdtsd/stasis/internal/model"
	"github.com/tsdtsdtsd/stasis/internal/render"
)

// Conventional project layout inside the working directory.
const (
	ContentDir     = "content"
	StaticDir      = "static"
	SiteConfigFile = "site.yaml"

	themeLayoutsDir = "layouts"
	themeStaticDir  = "static"
)

// Builder runs one batch build: load configuration and content, render
// pages, publish assets and feeds. A build either completes or fails.
type Builder struct {
	Config  config.Config
	WorkDir string
	Logger  *slog.Logger
}

// Build renders the whole site into the configured output directory,
// replacing any previous output.
func (b *Builder) Build() error {
	logger := b.Logger
	if logger == nil {
		logger = slog.Default()
	}

	contentDir := filepath.Join(b.WorkDir, ContentDir)
	if _, err := os.Stat(contentDir); os.IsNotExist(err) {
		return fmt.Errorf("content directory %s not found", contentDir)
	}

	themeDir := b.Config.ThemeDir
	if !filepath.IsAbs(themeDir) {
		themeDir = filepath.Join(b.WorkDir, themeDir)
	}
	layoutsDir := filepath.Join(themeDir, themeLayoutsDir)
	if _, err := os.Stat(layoutsDir); os.IsNotExist(err) {
		return fmt.Errorf("theme layouts directory %s not found", layoutsDir)
	}

	siteCfg, err := config.LoadSite(filepath.Join(b.WorkDir, SiteConfigFile))
	if err != nil {
		return err
	}

	docs, err := content.Load(contentDir, markdown.NewConverter())
	if err != nil {
		return err
	}
	logger.Info("content loaded", "documents", len(docs))

	site := assemble(b.Config, siteCfg, docs)

	outputDir := b.Config.OutputDir
	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(b.WorkDir, outputDir)
	}
	if err := os.RemoveAll(outputDir); err != nil {
		return fmt.Errorf("removing output directory %s: %w", outputDir, err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	if staticDir := filepath.Join(themeDir, themeStaticDir); dirExists(staticDir) {
		if site.Assets, err = assets.PublishStylesheets(staticDir, outputDir); err != nil {
			return fmt.Errorf("publishing theme assets: %w", err)
		}
	}
	if staticDir := filepath.Join(b.WorkDir, StaticDir); dirExists(staticDir) {
		if err := assets.CopyDir(staticDir, outputDir); err != nil {
			return fmt.Errorf("copying static assets: %w", err)
		}
	} else {
		logger.Debug("static directory not found, skipping copy", "dir", staticDir)
	}

	renderer, err := render.New(layoutsDir, outputDir, site, logger)
	if err != nil {
		return err
	}
	if err := renderer.RenderAll(); err != nil {
		return err
	}

	if err := feeds.Write(site, outputDir); err != nil {
		return err
	}

	if b.Config.CheckLinks {
		issues, err := linkcheck.Verify(outputDir)
		if err != nil {
			return fmt.Errorf("verifying links: %w", err)
		}
		for _, issue := range issues {
			logger.Warn("broken internal link", "page", issue.Page, "ref", issue.Ref)
		}
	}

	logger.Info("build complete",
		"posts", len(site.Posts), "pages", len(site.Pages), "drafts", len(site.Drafts),
		"output", outputDir)
	return nil
}

// assemble sorts and partitions loaded documents into the site model.
// Listings are date-descending; ties and undated pages order by permalink so
// repeated builds render listings identically.
func assemble(cfg config.Config, siteCfg *config.Site, docs []*model.Document) *model.Site {
	sort.SliceStable(docs, func(i, j int) bool {
		di, dj := docs[i].Date, docs[j].Date
		if di.Equal(dj) {
			return docs[i].Permalink < docs[j].Permalink
		}
		if di.IsZero() {
			return false
		}
		if dj.IsZero() {
			return true
		}
		return di.After(dj)
	})

	site := &model.Site{
		Config:     siteCfg,
		BaseURL:    cfg.BaseURL,
		Env:        cfg.Env,
		Documents:  docs,
		ByCategory: map[string][]*model.Document{},
		ByTag:      map[string][]*model.Document{},
	}

	for _, doc := range docs {
		if doc.Draft {
			site.Drafts = append(site.Drafts, doc)
			continue
		}
		switch {
		case doc.IsPost():
			site.Posts = append(site.Posts, doc)
			for _, c := range doc.Categories {
				site.ByCategory[c] = append(site.ByCategory[c], doc)
			}
			for _, tag := range doc.Tags {
				site.ByTag[tag] = append(site.ByTag[tag], doc)
			}
		default:
			site.Pages = append(site.Pages, doc)
		}
	}

	return site
}

func dirExists(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}

package feeds

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gorilla/feeds"

	"github.com/tsdtsdtsd/stasis/internal/model"
)

// Output locations, relative to the output directory.
const (
	AtomPath = "feeds/atom.xml"
	RSSPath  = "feeds/rss.xml"
)

// Build assembles the syndication feed from the site's published posts.
// Drafts never reach this function: site.Posts is already the published,
// date-descending listing. Feed timestamps come from the posts themselves,
// never the wall clock, so rebuilding identical content yields identical
// feeds.
func Build(site *model.Site) *feeds.Feed {
	feed := &feeds.Feed{
		Title:       site.Config.Title,
		Link:        &feeds.Link{Href: site.BaseURL + "/"},
		Description: site.Config.Description,
		Author:      &feeds.Author{Name: site.Config.Author},
	}

	for _, post := range site.Posts {
		href := site.BaseURL + post.Permalink
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          href,
			Title:       post.Title,
			Link:        &feeds.Link{Href: href},
			Description: post.Summary,
			Author:      &feeds.Author{Name: site.Config.Author},
			Created:     post.Date,
			Updated:     post.LastModified(),
		})
	}

	if len(site.Posts) > 0 {
		feed.Created = site.Posts[0].Date
		feed.Updated = site.Posts[0].LastModified()
	}

	return feed
}

// Write emits the Atom and RSS feeds into the output directory.
func Write(site *model.Site, outputDir string) error {
	feed := Build(site)

	atom, err := feed.ToAtom()
	if err != nil {
		return fmt.Errorf("rendering atom feed: %w", err)
	}
	if err := writeFeed(filepath.Join(outputDir, filepath.FromSlash(AtomPath)), atom); err != nil {
		return err
	}

	rss, err := feed.ToRss()
	if err != nil {
		return fmt.Errorf("rendering rss feed: %w", err)
	}
	return writeFeed(filepath.Join(outputDir, filepath.FromSlash(RSSPath)), rss)
}

func writeFeed(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating feed directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

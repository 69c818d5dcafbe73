package feeds

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tsdtsdtsd/stasis/internal/config"
	"github.com/tsdtsdtsd/stasis/internal/model"
)

func feedSite() *model.Site {
	newer := &model.Document{
		Title:     "Newer",
		Date:      time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Modified:  time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC),
		Permalink: "/posts/newer/",
		Summary:   "The newer post.",
		Type:      "posts",
	}
	older := &model.Document{
		Title:     "Older",
		Date:      time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		Permalink: "/posts/older/",
		Summary:   "The older post.",
		Type:      "posts",
	}
	return &model.Site{
		Config:  &config.Site{Title: "My Blog", Author: "Jane Roe", Description: "A blog."},
		BaseURL: "https://example.org",
		Posts:   []*model.Document{newer, older},
	}
}

func TestBuild_ItemsFollowListingOrder(t *testing.T) {
	feed := Build(feedSite())

	require.Len(t, feed.Items, 2)
	require.Equal(t, "Newer", feed.Items[0].Title)
	require.Equal(t, "https://example.org/posts/newer/", feed.Items[0].Link.Href)
	require.Equal(t, "https://example.org/posts/newer/", feed.Items[0].Id)
	require.Equal(t, "Older", feed.Items[1].Title)
}

func TestBuild_TimestampsComeFromPosts(t *testing.T) {
	site := feedSite()
	feed := Build(site)

	require.Equal(t, site.Posts[0].Date, feed.Created)
	require.Equal(t, site.Posts[0].Modified, feed.Updated)
	// A post without a modified date falls back to its publication date.
	require.Equal(t, site.Posts[1].Date, feed.Items[1].Updated)
}

func TestWrite_EmitsAtomAndRSS(t *testing.T) {
	out := t.TempDir()

	require.NoError(t, Write(feedSite(), out))

	atom, err := os.ReadFile(filepath.Join(out, "feeds", "atom.xml"))
	require.NoError(t, err)
	require.Contains(t, string(atom), "<title>My Blog</title>")
	require.Contains(t, string(atom), "https://example.org/posts/newer/")

	rss, err := os.ReadFile(filepath.Join(out, "feeds", "rss.xml"))
	require.NoError(t, err)
	require.Contains(t, string(rss), "<title>My Blog</title>")
}

func TestWrite_IsDeterministic(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	require.NoError(t, Write(feedSite(), first))
	require.NoError(t, Write(feedSite(), second))

	a, err := os.ReadFile(filepath.Join(first, "feeds", "atom.xml"))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(second, "feeds", "atom.xml"))
	require.NoError(t, err)
	require.Equal(t, a, b)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeSiteConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSite_MissingFile_ReturnsDefaults(t *testing.T) {
	site, err := LoadSite(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultAuthor, site.Author)
	require.Equal(t, DefaultFavicon, site.Favicon)
	require.Equal(t, DefaultMenuItemSeparator, site.MenuItemSeparator)
	require.Empty(t, site.Menu)
}

func TestLoadSite_AbsentOptions_SubstitutesDefaults(t *testing.T) {
	path := writeSiteConfig(t, "title: My Blog\n")

	site, err := LoadSite(path)
	require.NoError(t, err)
	require.Equal(t, "My Blog", site.Title)
	require.Equal(t, "John Doe", site.Author)
	require.Equal(t, "/favicon.ico", site.Favicon)
	require.Equal(t, " | ", site.MenuItemSeparator)
}

func TestLoadSite_ConfiguredOptions_Override(t *testing.T) {
	path := writeSiteConfig(t, `title: My Blog
author: Jane Roe
favicon: /img/fav.png
menu_item_separator: " // "
analytics:
  tracking_id: UA-12345-6
`)

	site, err := LoadSite(path)
	require.NoError(t, err)
	require.Equal(t, "Jane Roe", site.Author)
	require.Equal(t, "/img/fav.png", site.Favicon)
	require.Equal(t, " // ", site.MenuItemSeparator)
	require.Equal(t, "UA-12345-6", site.Analytics.TrackingID)
}

func TestLoadSite_MenuAndSocial_PreserveAuthorOrder(t *testing.T) {
	path := writeSiteConfig(t, `menu:
  - {name: Home, url: /}
  - {name: Archive, url: /posts/}
  - {name: About, url: /about/}
social:
  - {icon: github, name: GitHub, url: https://github.com/jdoe}
  - {icon: rss, name: Feed, url: /feeds/atom.xml}
`)

	site, err := LoadSite(path)
	require.NoError(t, err)
	require.Equal(t, []MenuEntry{
		{Name: "Home", URL: "/"},
		{Name: "Archive", URL: "/posts/"},
		{Name: "About", URL: "/about/"},
	}, site.Menu)
	require.Len(t, site.Social, 2)
	require.Equal(t, "github", site.Social[0].Icon)
	require.Equal(t, "Feed", site.Social[1].Name)
}

func TestLoadSite_MalformedYAML_ReturnsError(t *testing.T) {
	path := writeSiteConfig(t, "title: [unclosed\n")

	_, err := LoadSite(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "site.yaml")
}

func TestParseLevel_Table(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"debug", "DEBUG"},
		{"info", "INFO"},
		{"warn", "WARN"},
		{"error", "ERROR"},
		{"", "INFO"},
		{"verbose", "INFO"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ParseLevel(tt.raw).String(), "level %q", tt.raw)
	}
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults substituted for absent site configuration options.
const (
	DefaultAuthor            = "John Doe"
	DefaultFavicon           = "/favicon.ico"
	DefaultMenuItemSeparator = " | "
)

// MenuEntry is one navigation link. Entries render in author order.
type MenuEntry struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// SocialLink is one social profile link. Icon names an icon glyph known to
// the theme; a name the theme has no glyph for is simply not shown.
type SocialLink struct {
	Icon string `yaml:"icon"`
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Analytics is the page-view tracking configuration. The snippet is only
// emitted when a tracking id is set and the build runs in the publish
// environment.
type Analytics struct {
	TrackingID string `yaml:"tracking_id"`
}

// Site holds the site-wide configuration loaded from site.yaml.
// It is loaded once per build and not mutated afterwards.
type Site struct {
	Title             string       `yaml:"title"`
	Author            string       `yaml:"author"`
	Description       string       `yaml:"description"`
	Favicon           string       `yaml:"favicon"`
	MenuItemSeparator string       `yaml:"menu_item_separator"`
	Menu              []MenuEntry  `yaml:"menu"`
	Social            []SocialLink `yaml:"social"`
	Analytics         Analytics    `yaml:"analytics"`
}

// LoadSite reads the site configuration from the given path and fills in
// defaults for absent options. A missing file is not an error: the site then
// runs entirely on defaults.
func LoadSite(path string) (*Site, error) {
	site := &Site{}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			site.applyDefaults()
			return site, nil
		}
		return nil, fmt.Errorf("reading site config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, site); err != nil {
		return nil, fmt.Errorf("unmarshalling site config %s: %w", path, err)
	}

	site.applyDefaults()
	return site, nil
}

func (s *Site) applyDefaults() {
	if s.Author == "" {
		s.Author = DefaultAuthor
	}
	if s.Favicon == "" {
		s.Favicon = DefaultFavicon
	}
	if s.MenuItemSeparator == "" {
		s.MenuItemSeparator = DefaultMenuItemSeparator
	}
}

package model

import (
	"html/template"
	"sort"
	"time"

	"github.com/tsdtsdtsd/stasis/internal/config"
)

// Document represents a single piece of content (a blog post or a standalone page).
type Document struct {
	Title       string
	Description string
	Date        time.Time
	Modified    time.Time
	Categories  []string
	Tags        []string
	Draft       bool
	Type        string
	Layout      string
	SourcePath  string
	Slug        string
	Permalink   string
	ContentHTML template.HTML
	Summary     string
}

// IsPost reports whether the document belongs to the dated posts collection.
func (d *Document) IsPost() bool {
	return d.Type == "posts"
}

// LastModified returns the modification timestamp, falling back to the
// publication date when no modified key was set.
func (d *Document) LastModified() time.Time {
	if d.Modified.IsZero() {
		return d.Date
	}
	return d.Modified
}

// Site holds all site-wide data for one build pass: configuration plus the
// collected content, partitioned the way templates consume it.
type Site struct {
	Config  *config.Site
	BaseURL string
	Env     string

	Documents  []*Document
	Posts      []*Document
	Pages      []*Document
	Drafts     []*Document
	ByCategory map[string][]*Document
	ByTag      map[string][]*Document

	// Assets maps theme-relative asset paths to their published URL paths,
	// e.g. "css/style.css" -> "/css/style.3f8a91bc.css".
	Assets map[string]string
}

// AnalyticsEnabled reports whether the analytics snippet should be emitted.
// A tracking id alone is not enough: analytics stays off outside the publish
// environment so local and staging builds never report page views.
func (s *Site) AnalyticsEnabled() bool {
	return s.Config != nil && s.Config.Analytics.TrackingID != "" && s.Env == config.EnvPublish
}

// Categories returns all category names with published posts, sorted.
func (s *Site) Categories() []string {
	return sortedKeys(s.ByCategory)
}

// Tags returns all tag names with published posts, sorted.
func (s *Site) Tags() []string {
	return sortedKeys(s.ByTag)
}

func sortedKeys(m map[string][]*Document) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package site

import (
	"crypto/sha256"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tsdtsdtsd/stasis/internal/config"
)

func buildFixture(t *testing.T, mutate func(*config.Config)) string {
	t.Helper()
	out := t.TempDir()
	cfg := config.Config{
		OutputDir: out,
		BaseURL:   "https://example.org",
		ThemeDir:  "theme",
		Env:       config.EnvDev,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	b := &Builder{Config: cfg, WorkDir: filepath.Join("testdata", "basic")}
	require.NoError(t, b.Build())
	return out
}

func readPage(t *testing.T, out, rel string) string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(out, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(raw)
}

func TestBuild_RendersDocumentsAndListings(t *testing.T) {
	out := buildFixture(t, nil)

	home := readPage(t, out, "index.html")
	require.Contains(t, home, `<a href="/posts/second/">Second Post</a>`)
	require.Contains(t, home, `<a href="/posts/first/">First Post</a>`)

	post := readPage(t, out, "posts/second/index.html")
	require.Contains(t, post, "<h1>Second Post</h1>")
	require.Contains(t, post, "Second Post | Fixture Blog")

	about := readPage(t, out, "about/index.html")
	require.Contains(t, about, `<article class="page">`)

	archive := readPage(t, out, "posts/index.html")
	require.Contains(t, archive, "<h1>Posts</h1>")

	require.FileExists(t, filepath.Join(out, "category", "general", "index.html"))
	require.FileExists(t, filepath.Join(out, "tag", "go", "index.html"))
	require.FileExists(t, filepath.Join(out, "feeds", "atom.xml"))
	require.FileExists(t, filepath.Join(out, "favicon.ico"))
}

func TestBuild_ListingsAreDateDescending(t *testing.T) {
	home := readPage(t, buildFixture(t, nil), "index.html")

	second := regexp.MustCompile(`/posts/second/`).FindStringIndex(home)
	first := regexp.MustCompile(`/posts/first/`).FindStringIndex(home)
	require.NotNil(t, second)
	require.NotNil(t, first)
	require.Less(t, second[0], first[0], "newer post must be listed before older")
}

func TestBuild_DraftsExcludedFromListingsButRendered(t *testing.T) {
	out := buildFixture(t, nil)

	require.NotContains(t, readPage(t, out, "index.html"), "Work In Progress")
	require.NotContains(t, readPage(t, out, "posts/index.html"), "Work In Progress")
	require.NotContains(t, readPage(t, out, "feeds/atom.xml"), "Work In Progress")
	require.NoFileExists(t, filepath.Join(out, "tag", "secret", "index.html"))

	draft := readPage(t, out, "drafts/wip/index.html")
	require.Contains(t, draft, "Unfinished thoughts.")
}

func TestBuild_DefaultsAppearInOutput(t *testing.T) {
	home := readPage(t, buildFixture(t, nil), "index.html")

	// site.yaml configures neither favicon nor separator nor author.
	require.Contains(t, home, `href="/favicon.ico"`)
	require.Contains(t, home, `</a> | <a`)
}

func TestBuild_MenuRendersInAuthorOrder(t *testing.T) {
	home := readPage(t, buildFixture(t, nil), "index.html")
	require.Regexp(t, `(?s)>Home</a>.*>Archive</a>`, home)
}

func TestBuild_StylesheetIsFingerprinted(t *testing.T) {
	out := buildFixture(t, nil)

	home := readPage(t, out, "index.html")
	m := regexp.MustCompile(`/css/style\.([0-9a-f]{8})\.css`).FindString(home)
	require.NotEmpty(t, m, "home page must reference the fingerprinted stylesheet")
	require.FileExists(t, filepath.Join(out, filepath.FromSlash(m[1:])))
}

func TestBuild_AnalyticsOnlyInPublishEnv(t *testing.T) {
	dev := readPage(t, buildFixture(t, nil), "index.html")
	require.NotContains(t, dev, "UA-12345-6")

	publish := readPage(t, buildFixture(t, func(c *config.Config) {
		c.Env = config.EnvPublish
	}), "index.html")
	require.Contains(t, publish, "UA-12345-6")
}

func TestBuild_IsIdempotent(t *testing.T) {
	first := buildFixture(t, nil)
	second := buildFixture(t, nil)
	require.Equal(t, hashTree(t, first), hashTree(t, second))
}

func TestBuild_MissingContentDir_Fails(t *testing.T) {
	b := &Builder{
		Config:  config.Config{OutputDir: t.TempDir(), ThemeDir: "theme"},
		WorkDir: t.TempDir(),
	}
	err := b.Build()
	require.Error(t, err)
	require.Contains(t, err.Error(), "content directory")
}

func hashTree(t *testing.T, dir string) map[string][32]byte {
	t.Helper()
	sums := map[string][32]byte{}
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		raw, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		sums[filepath.ToSlash(rel)] = sha256.Sum256(raw)
		return nil
	})
	require.NoError(t, err)
	return sums
}

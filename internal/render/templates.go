package render

import (
	"fmt"
	"html/template"
	"io/fs"
	"path/filepath"
	"strings"
	"time"
)

// Layout names the renderer looks up in the theme's layouts directory.
const (
	BaseLayout   = "base.html"
	HomeLayout   = "home.html"
	ListLayout   = "list.html"
	SingleLayout = "single.html"
	PageLayout   = "page.html"
)

var funcs = template.FuncMap{
	"datefmt": func(layout string, t time.Time) string {
		return t.Format(layout)
	},
}

// loadTemplates parses every .html file under layoutsDir into one template
// set. base.html and the partials are parsed first, page layouts next and
// home.html last, so a later layout never clobbers names the earlier ones
// rely on.
func loadTemplates(layoutsDir string) (*template.Template, error) {
	var layoutFiles []string
	err := filepath.WalkDir(layoutsDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			layoutFiles = append(layoutFiles, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("finding layout files in %s: %w", layoutsDir, err)
	}

	var basePath, homePath string
	var partials, others []string
	for _, f := range layoutFiles {
		switch {
		case filepath.Base(f) == BaseLayout && filepath.Dir(f) == filepath.Clean(layoutsDir):
			basePath = f
		case strings.HasPrefix(filepath.Dir(f), filepath.Join(layoutsDir, "partials")):
			partials = append(partials, f)
		case filepath.Base(f) == HomeLayout:
			homePath = f
		default:
			others = append(others, f)
		}
	}

	if basePath == "" {
		return nil, fmt.Errorf("%s not found in layouts directory %s", BaseLayout, layoutsDir)
	}

	templates, err := template.New(BaseLayout).Funcs(funcs).ParseFiles(
		append([]string{basePath}, partials...)...)
	if err != nil {
		return nil, fmt.Errorf("parsing %s and partials: %w", BaseLayout, err)
	}

	if len(others) > 0 {
		if templates, err = templates.ParseFiles(others...); err != nil {
			return nil, fmt.Errorf("parsing page layouts: %w", err)
		}
	}

	if homePath != "" {
		if templates, err = templates.ParseFiles(homePath); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", HomeLayout, err)
		}
	}

	return templates, nil
}

package cmd

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/tsdtsdtsd/stasis/internal/site"
)

var serverPort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the site locally and watches for changes",
	Long: `The serve command performs an initial build of your site, then starts a
local web server on the output directory. It watches the content, theme,
and static directories and rebuilds the site on changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.Default()

		if err := runBuild(); err != nil {
			return fmt.Errorf("initial build failed: %w", err)
		}
		logger.Info("initial build complete")

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("creating file watcher: %w", err)
		}
		defer watcher.Close()

		go watchLoop(watcher, logger)

		pathsToWatch := []string{
			site.ContentDir,
			site.StaticDir,
			appConfig.ThemeDir,
		}
		for _, rootPath := range pathsToWatch {
			if _, statErr := os.Stat(rootPath); os.IsNotExist(statErr) {
				logger.Debug("directory not found, not watching", "dir", rootPath)
				continue
			}
			err := filepath.WalkDir(rootPath, func(p string, d os.DirEntry, err error) error {
				if err != nil {
					logger.Warn("walking watch path", "path", p, "error", err)
					return nil
				}
				if d.IsDir() {
					if watchErr := watcher.Add(p); watchErr != nil {
						logger.Warn("failed to watch", "path", p, "error", watchErr)
					}
				}
				return nil
			})
			if err != nil {
				logger.Warn("setting up watches", "dir", rootPath, "error", err)
			}
		}
		if err := watcher.Add(site.SiteConfigFile); err != nil {
			logger.Debug("site config not found, not watching", "error", err)
		}

		serverAddr := fmt.Sprintf(":%d", serverPort)
		logger.Info("serving site", "dir", appConfig.OutputDir, "addr", "http://localhost"+serverAddr)

		fileServer := http.FileServer(http.Dir(appConfig.OutputDir))
		http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/") && r.URL.Path != "/" {
				if _, err := os.Stat(filepath.Join(appConfig.OutputDir, r.URL.Path, "index.html")); os.IsNotExist(err) {
					http.NotFound(w, r)
					return
				}
			}
			// No caching during development.
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			w.Header().Set("Pragma", "no-cache")
			w.Header().Set("Expires", "0")
			fileServer.ServeHTTP(w, r)
		})

		return http.ListenAndServe(serverAddr, nil)
	},
}

// watchLoop rebuilds the site on file events, debounced so a burst of
// writes results in a single rebuild.
func watchLoop(watcher *fsnotify.Watcher, logger *slog.Logger) {
	var buildTimer *time.Timer
	const debounce = 500 * time.Millisecond

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("change detected", "path", event.Name, "op", event.Op.String())

			// New subdirectories are not watched automatically.
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := watcher.Add(event.Name); err != nil {
					logger.Warn("adding new directory to watcher", "path", event.Name, "error", err)
				}
			}

			if buildTimer != nil {
				buildTimer.Stop()
			}
			buildTimer = time.AfterFunc(debounce, func() {
				logger.Info("rebuilding site")
				if err := runBuild(); err != nil {
					logger.Error("rebuild failed", "error", err)
					return
				}
				logger.Info("site rebuilt")
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 1313, "Port to serve the site on")
	rootCmd.AddCommand(serveCmd)
}

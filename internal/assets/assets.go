package assets

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// CopyDir recursively copies the contents of src into dst, creating
// directories as needed. Missing src is the caller's concern.
func CopyDir(src, dst string) error {
	return filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return fmt.Errorf("relativizing %s: %w", p, err)
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("creating directory %s: %w", target, err)
			}
			return nil
		}
		return copyFile(p, target)
	})
}

// PublishStylesheets copies a theme's static tree into dst, renaming every
// stylesheet to carry a short content hash ("css/style.css" becomes
// "css/style.3f8a91bc.css"). It returns the mapping from theme-relative
// paths to published URL paths so templates can link the hashed names.
// Non-stylesheet assets are copied under their original names.
func PublishStylesheets(src, dst string) (map[string]string, error) {
	published := map[string]string{}

	err := filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return fmt.Errorf("relativizing %s: %w", p, err)
		}
		rel = filepath.ToSlash(rel)

		outRel := rel
		if strings.HasSuffix(rel, ".css") {
			outRel, err = fingerprintName(p, rel)
			if err != nil {
				return err
			}
		}

		if err := copyFile(p, filepath.Join(dst, filepath.FromSlash(outRel))); err != nil {
			return err
		}
		published[rel] = "/" + outRel
		return nil
	})
	if err != nil {
		return nil, err
	}
	return published, nil
}

// fingerprintName derives "dir/name.<hash8>.ext" from the file's content,
// so unchanged input publishes under an identical name.
func fingerprintName(p, rel string) (string, error) {
	f, err := os.Open(p)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", p, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", p, err)
	}
	sum := hex.EncodeToString(h.Sum(nil))[:8]

	ext := filepath.Ext(rel)
	return strings.TrimSuffix(rel, ext) + "." + sum + ext, nil
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", dst, err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	return out.Close()
}

// Package walker discovers the source files to analyze.
package walker

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/tristendillon/scout/core/config"
	"github.com/tristendillon/scout/core/logger"
)

// SkipDirs are directory names never descended into.
var SkipDirs = []string{
	".git", "node_modules", "vendor", ".next", ".nuxt", ".turbo",
	"build", "dist", "out", "coverage", "storybook-static",
}

type Walker interface {
	Walk(ctx context.Context, root string) ([]string, error)
}

// FileWalker selects files by doublestar include and exclude patterns
// matched against the slash-separated path relative to the root.
type FileWalker struct {
	Include  []string
	Exclude  []string
	SkipDirs map[string]bool
}

func New(cfg *config.Config) *FileWalker {
	skip := make(map[string]bool, len(SkipDirs)+1)
	for _, d := range SkipDirs {
		skip[d] = true
	}
	if cfg.Output.Dir != "" && !filepath.IsAbs(cfg.Output.Dir) {
		skip[filepath.Base(cfg.Output.Dir)] = true
	}
	return &FileWalker{
		Include:  cfg.Include,
		Exclude:  cfg.Exclude,
		SkipDirs: skip,
	}
}

// Match reports whether rel (slash-separated, relative to the root) is
// selected.
func (w *FileWalker) Match(rel string) bool {
	included := len(w.Include) == 0
	for _, p := range w.Include {
		if ok, _ := doublestar.Match(p, rel); ok {
			included = true
			break
		}
	}
	if !included {
		return false
	}
	for _, p := range w.Exclude {
		if ok, _ := doublestar.Match(p, rel); ok {
			return false
		}
	}
	return true
}

// Walk returns the absolute paths of the selected files under root, sorted.
func (w *FileWalker) Walk(ctx context.Context, root string) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}

	var files []string
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if path != abs && w.SkipDirs[d.Name()] {
				logger.Debug("Skipping directory %s", path)
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(abs, path)
		if err != nil {
			return err
		}
		if w.Match(filepath.ToSlash(rel)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	sort.Strings(files)
	logger.Debug("Discovered %d files under %s", len(files), abs)
	return files, nil
}

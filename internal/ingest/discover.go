package ingest

import (
	"contentkit/internal/domain/content"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
)

var markdownFile = regexp.MustCompile(`(?i)\.mdx?$`)

type SourceFile struct {
	Path     string
	Category content.Category
}

// DiscoverSource lists the markdown files directly inside root. Content
// directories are flat, so subdirectories are not entered.
func DiscoverSource(root string, cat content.Category) ([]SourceFile, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var out []SourceFile
	for _, e := range entries {
		if e.IsDir() || !markdownFile.MatchString(e.Name()) {
			continue
		}
		out = append(out, SourceFile{Path: filepath.Join(root, e.Name()), Category: cat})
	}
	return out, nil
}

// Dir pairs a category with the directory holding its files.
type Dir struct {
	Category content.Category
	Path     string
}

// Discover walks every directory in order. A missing directory is a warning.
func Discover(dirs []Dir) ([]SourceFile, []Warning, error) {
	var out []SourceFile
	var warns []Warning
	for _, d := range dirs {
		files, err := DiscoverSource(d.Path, d.Category)
		if errors.Is(err, fs.ErrNotExist) {
			warns = append(warns, Warning{Path: d.Path, Category: d.Category, Msg: "directory does not exist, skipping"})
			continue
		}
		if err != nil {
			return nil, warns, err
		}
		if len(files) == 0 {
			warns = append(warns, Warning{Path: d.Path, Category: d.Category, Msg: "no markdown files found"})
		}
		out = append(out, files...)
	}
	return out, warns, nil
}

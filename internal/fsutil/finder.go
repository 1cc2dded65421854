// Package fsutil provides file system utility functions.
package fsutil

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/specialistvlad/imagineer/internal/ctxlog"
)

// FindFilesByExtension recursively searches the given root path for all files ending
// with the specified extension. It returns a slice of their full paths in
// lexical order.
func FindFilesByExtension(rootPath string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

// ResolvePaths turns each path into the files it names. A file is returned
// as is when it has one of the extensions; a directory is searched
// recursively for all of them. Files reachable from more than one path are
// listed once.
func ResolvePaths(ctx context.Context, extensions []string, paths ...string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)
	var out []string
	seen := make(map[string]struct{})

	for _, path := range paths {
		logger.Debug("Resolving path.", "path", path)
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		var found []string
		if info.IsDir() {
			logger.Debug("Path is a directory, scanning for files.", "directory", path, "extensions", extensions)
			for _, ext := range extensions {
				matches, err := FindFilesByExtension(path, ext)
				if err != nil {
					return nil, fmt.Errorf("failed to scan directory %s: %w", path, err)
				}
				found = append(found, matches...)
			}
			sort.Strings(found)
		} else {
			if !slices.Contains(extensions, filepath.Ext(path)) {
				return nil, fmt.Errorf("specified file is not a %s file: %s", strings.Join(extensions, " or "), path)
			}
			found = []string{path}
		}

		for _, f := range found {
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			out = append(out, f)
		}
	}

	logger.Debug("Resolved paths.", "files", len(out))
	return out, nil
}

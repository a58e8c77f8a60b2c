// # internal/traverse/discover.go
package traverse

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
)

// CollectFiles expands the given paths into a list of Python source files.
// A path naming a regular file is kept as-is when it ends in .py, directories
// are walked recursively. Exclude patterns match the base name of a
// directory or file. Files found under a directory are sorted so traversal
// order is deterministic.
//
// An unreadable first root aborts the run; later unreadable roots are
// reported to diag and skipped.
func CollectFiles(paths []string, excludeDirs, excludeFiles []string, diag io.Writer) ([]string, error) {
	if diag == nil {
		diag = os.Stderr
	}
	dirGlobs := make([]glob.Glob, 0, len(excludeDirs))
	for _, p := range excludeDirs {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude dir pattern %q: %w", p, err)
		}
		dirGlobs = append(dirGlobs, g)
	}

	fileGlobs := make([]glob.Glob, 0, len(excludeFiles))
	for _, p := range excludeFiles {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude file pattern %q: %w", p, err)
		}
		fileGlobs = append(fileGlobs, g)
	}

	var files []string
	for i, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			if i == 0 {
				return nil, fmt.Errorf("cannot read path %q: %w", root, err)
			}
			fmt.Fprintf(diag, "%s: %v\n", root, err)
			continue
		}

		if !info.IsDir() {
			if filepath.Ext(root) == ".py" {
				files = append(files, root)
			}
			continue
		}

		var found []string
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				fmt.Fprintf(diag, "%s: %v\n", path, err)
				return nil
			}

			base := filepath.Base(path)

			if d.IsDir() {
				for _, g := range dirGlobs {
					if g.Match(base) {
						return filepath.SkipDir
					}
				}
				return nil
			}

			if filepath.Ext(path) != ".py" {
				return nil
			}

			for _, g := range fileGlobs {
				if g.Match(base) {
					return nil
				}
			}

			found = append(found, path)
			return nil
		})

		// Deterministic order within a root, roots stay in caller order.
		sort.Strings(found)
		files = append(files, found...)
	}

	return files, nil
}

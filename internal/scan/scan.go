// Package scan enumerates eligible source files under a root directory.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jcant0n/improvecomments/internal/q/health"
)

// Eligible returns the files under root whose name ends in ext. When recursive
// is true, all subdirectories are walked; otherwise only root's immediate
// entries are listed. Results are sorted for deterministic scheduling.
//
// A missing or non-directory root returns an error matching fs.ErrNotExist so
// callers can report it without treating it as an internal failure.
func Eligible(root string, ext string, recursive bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, health.Wrap("root directory does not exist", fs.ErrNotExist, "root", root)
		}
		return nil, health.Wrap("stat root directory", err, "root", root)
	}
	if !info.IsDir() {
		return nil, health.Wrap("root is not a directory", fs.ErrNotExist, "root", root)
	}

	var files []string

	if recursive {
		err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				// Unreadable subtrees are skipped, not fatal to the run.
				return nil
			}
			if entry.IsDir() {
				return nil
			}
			if strings.HasSuffix(entry.Name(), ext) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, health.Wrap("walk root directory", err, "root", root)
		}
	} else {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, health.Wrap("read root directory", err, "root", root)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if strings.HasSuffix(entry.Name(), ext) {
				files = append(files, filepath.Join(root, entry.Name()))
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

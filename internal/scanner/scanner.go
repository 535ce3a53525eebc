// Package scanner finds unmanaged directories under the pack roots and
// removes them. Removal refuses any path that does not resolve to a
// strict child of a configured root, so a bad lockfile or symlink cannot
// direct a delete outside the pack tree.
package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrOutsideRoot is returned when a removal target does not live under
// any configured root.
var ErrOutsideRoot = errors.New("path is outside the pack roots")

// TreeError reports the first entry a tree removal could not delete.
type TreeError struct {
	Path string
	Err  error
}

func (e *TreeError) Error() string {
	return fmt.Sprintf("removing %s: %s", e.Path, e.Err)
}

func (e *TreeError) Unwrap() error {
	return e.Err
}

// Scanner inspects the immediate children of a set of root directories.
type Scanner struct {
	Roots []string
}

// FindUnlisted returns the subdirectories of the roots whose cleaned
// paths are absent from registered, sorted for stable output. Roots that
// do not exist yet are skipped.
func (s *Scanner) FindUnlisted(registered map[string]bool) ([]string, error) {
	var orphans []string
	for _, root := range s.Roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("scanning %s: %w", root, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			dir := filepath.Clean(filepath.Join(root, entry.Name()))
			if !registered[dir] {
				orphans = append(orphans, dir)
			}
		}
	}
	sort.Strings(orphans)
	return orphans, nil
}

// Remove deletes dir and everything under it, after verifying it resolves
// to a strict child of one of the roots. The roots themselves are never
// removable.
func (s *Scanner) Remove(dir string) error {
	ok, err := s.contains(dir)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrOutsideRoot, dir)
	}
	return RemoveTree(dir)
}

func (s *Scanner) contains(dir string) (bool, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return false, fmt.Errorf("resolving %s: %w", dir, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	for _, root := range s.Roots {
		r, err := filepath.Abs(root)
		if err != nil {
			continue
		}
		if resolved, err := filepath.EvalSymlinks(r); err == nil {
			r = resolved
		}
		if abs == r {
			// Never remove a root itself.
			continue
		}
		if strings.HasPrefix(abs, r+string(filepath.Separator)) {
			return true, nil
		}
	}
	return false, nil
}

// RemoveTree removes dir recursively, children first, stopping at the
// first entry it cannot delete so the error names the offending path.
func RemoveTree(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &TreeError{Path: dir, Err: err}
	}
	for _, entry := range entries {
		child := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if err := RemoveTree(child); err != nil {
				return err
			}
			continue
		}
		if err := os.Remove(child); err != nil {
			return &TreeError{Path: child, Err: err}
		}
	}
	if err := os.Remove(dir); err != nil {
		return &TreeError{Path: dir, Err: err}
	}
	return nil
}

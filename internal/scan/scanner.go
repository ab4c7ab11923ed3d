// Package scan enumerates the regular files of an output tree.
package scan

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// Scanner walks a directory tree with an explicit stack.
type Scanner struct {
	logger *slog.Logger
}

// NewScanner creates a scanner. A nil logger discards output.
func NewScanner(logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scanner{logger: logger}
}

// Files returns the absolute paths of every regular file under root, sorted.
//
// Failing to list root itself is an error. Subdirectories that cannot be
// listed are logged and skipped. Symlinks and other non-regular entries are
// neither followed nor returned.
func (s *Scanner) Files(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}

	entries, err := os.ReadDir(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", absRoot, err)
	}

	var files []string
	stack := s.push(nil, &files, absRoot, entries)

	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			s.logger.Warn("skipping unreadable directory", "path", dir, "error", err.Error())
			continue
		}
		stack = s.push(stack, &files, dir, entries)
	}

	sort.Strings(files)
	return files, nil
}

// push records regular files from entries and returns stack with subdirectories appended.
func (s *Scanner) push(stack []string, files *[]string, dir string, entries []os.DirEntry) []string {
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		switch {
		case entry.IsDir():
			stack = append(stack, path)
		case entry.Type().IsRegular():
			*files = append(*files, path)
		default:
			s.logger.Debug("skipping non-regular entry", "path", path, "mode", entry.Type().String())
		}
	}
	return stack
}

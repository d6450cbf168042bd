package internal

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

const IgnoreFilename = ".hsumignore"

// Always skipped when walking a directory.
var builtinIgnores = []string{".git/", dataDirName + "/", IgnoreFilename}

// IgnoreMatcher decides which files under a watched directory are skipped.
// Patterns use gitignore syntax.
type IgnoreMatcher struct {
	patterns []gitignore.Pattern
	basePath string
}

// NewIgnoreMatcher reads basePath/.hsumignore if present.
func NewIgnoreMatcher(basePath string) (*IgnoreMatcher, error) {
	m := &IgnoreMatcher{basePath: basePath}
	for _, p := range builtinIgnores {
		m.patterns = append(m.patterns, gitignore.ParsePattern(p, nil))
	}

	patterns, err := parseIgnoreFile(filepath.Join(basePath, IgnoreFilename))
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	m.patterns = append(m.patterns, patterns...)
	return m, nil
}

// Match reports whether the file at path is ignored.
func (m *IgnoreMatcher) Match(path string) bool {
	return m.match(path, false)
}

// MatchDir reports whether the directory at path is ignored.
func (m *IgnoreMatcher) MatchDir(path string) bool {
	return m.match(path, true)
}

func (m *IgnoreMatcher) match(path string, isDir bool) bool {
	rel, err := filepath.Rel(m.basePath, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return false
	}

	parts := strings.Split(rel, string(filepath.Separator))
	// Later patterns win, as in git.
	ignored := false
	for _, p := range m.patterns {
		switch p.Match(parts, isDir) {
		case gitignore.Exclude:
			ignored = true
		case gitignore.Include:
			ignored = false
		}
	}
	return ignored
}

func parseIgnoreFile(path string) ([]gitignore.Pattern, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var patterns []gitignore.Pattern
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return patterns, nil
}

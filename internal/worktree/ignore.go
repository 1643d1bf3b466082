package worktree

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/rhyn0/oxide-git/internal/constants"
	"github.com/rhyn0/oxide-git/internal/objects"
	"gopkg.in/src-d/go-billy.v4"
)

// IgnoreMatcher decides which working tree paths are left out of snapshots
// and survive a clean. The metadata directory is always ignored.
type IgnoreMatcher struct {
	patterns []*regexp.Regexp
}

// metadataOnly ignores nothing but the metadata directory.
var metadataOnly = &IgnoreMatcher{
	patterns: []*regexp.Regexp{regexp.MustCompile("(^|/)" + regexp.QuoteMeta(constants.Ogit) + "($|/)")},
}

// NewIgnoreMatcher compiles raw ignore file lines.
//
// Each line is trimmed; blank lines and lines starting with '#' are skipped.
// '*' matches any run of characters, every other character is literal and a
// trailing '/' is dropped. A pattern matches when it covers one or more whole
// path components, so "target" matches "target" and "src/target/x" but not
// "targets".
func NewIgnoreMatcher(lines []string) (*IgnoreMatcher, error) {
	matcher := &IgnoreMatcher{}

	for _, line := range append([]string{constants.Ogit}, lines...) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSuffix(line, "/")
		if line == "" {
			continue
		}

		expr := strings.ReplaceAll(regexp.QuoteMeta(line), `\*`, ".*")
		pattern, err := regexp.Compile("(^|/)" + expr + "($|/)")
		if err != nil {
			return nil, errors.Wrapf(err, "invalid ignore pattern %q", line)
		}
		matcher.patterns = append(matcher.patterns, pattern)
	}

	return matcher, nil
}

// Match reports whether the slash or OS separated relative path is ignored.
func (m *IgnoreMatcher) Match(path string) bool {
	path = filepath.ToSlash(path)
	for _, pattern := range m.patterns {
		if pattern.MatchString(path) {
			return true
		}
	}
	return false
}

// ReadIgnoreFile returns the lines of the ignore file at name, or nil when it does not exist.
func ReadIgnoreFile(fs billy.Basic, name string) ([]string, error) {
	content, err := objects.ReadFile(fs, name)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &objects.IOError{Op: "read", Path: name, Err: err}
	}

	return strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n"), nil
}

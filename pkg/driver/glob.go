package driver

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandPatterns resolves input patterns to concrete files. Patterns may be
// plain paths or globs with single-level (*) and recursive (**) wildcards.
// The result is sorted and de-duplicated. Files already carrying the output
// suffix are filtered out so transpiled output never feeds back in.
func ExpandPatterns(patterns []string, opts Options) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "*?[") {
			// Plain path: must exist.
			info, err := os.Stat(pattern)
			if err != nil {
				return nil, fmt.Errorf("stat %s: %w", pattern, err)
			}
			if info.IsDir() {
				return nil, fmt.Errorf("%s is a directory, pass a glob like %s/**/*.js", pattern, pattern)
			}
			if !seen[pattern] {
				seen[pattern] = true
				files = append(files, pattern)
			}
			continue
		}

		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		for _, m := range matches {
			if strings.HasSuffix(m, opts.OutSuffix) {
				continue
			}
			info, err := os.Stat(m)
			if err != nil || info.IsDir() {
				continue
			}
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

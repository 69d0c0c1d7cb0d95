package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath finds p as given, then relative to the executable's directory,
// then as a bare file name next to the executable. wantDir selects whether a
// directory or a regular file counts as found. The result is absolute.
func ResolvePath(p string, wantDir bool) (string, error) {
	if p == "" {
		return "", fmt.Errorf("empty path")
	}

	candidates := []string{p}
	if !filepath.IsAbs(p) {
		if exe, err := os.Executable(); err == nil {
			exeDir := filepath.Dir(exe)
			candidates = append(candidates, filepath.Join(exeDir, p), filepath.Join(exeDir, filepath.Base(p)))
		}
	}

	checked := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		abs, err := filepath.Abs(c)
		if err != nil {
			continue
		}
		if _, ok := seen[abs]; ok {
			continue
		}
		seen[abs] = struct{}{}
		checked = append(checked, abs)
		info, err := os.Stat(abs)
		if err == nil && info.IsDir() == wantDir {
			return abs, nil
		}
	}

	return "", fmt.Errorf("%s not found, checked: %s", p, strings.Join(checked, ", "))
}

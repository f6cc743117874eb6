// Package workdir resolves the nsisync database root directory, supporting
// redirection via .nsisync-root files so several checkouts can share one
// portal database.
package workdir

import (
	"os"
	"path/filepath"
	"strings"
)

const rootFile = ".nsisync-root"

// ResolveBaseDir checks for a .nsisync-root file in the given directory.
// If found, it returns the path contained in that file. Otherwise, returns
// the original baseDir unchanged.
func ResolveBaseDir(baseDir string) string {
	rootPath := filepath.Join(baseDir, rootFile)
	content, err := os.ReadFile(rootPath)
	if err != nil {
		return baseDir
	}
	resolved := strings.TrimSpace(string(content))
	if resolved == "" {
		return baseDir
	}
	return resolved
}

package markdown

import "path/filepath"

// RelativePath renders path relative to cwd with forward slashes. Paths
// outside cwd come back with leading ".." segments; anything that cannot be
// relativized (empty cwd, relative input, mismatched roots) falls back to
// the original path unchanged.
func RelativePath(path, cwd string) string {
	if path == "" || cwd == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

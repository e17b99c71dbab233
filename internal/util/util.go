// internal/util/util.go
package util

import (
	"path"
	"strings"
)

// ComputeBaseHref calculates the relative path to the site root
// so that shared assets resolve for pages at any depth.
// For example, a page at manual/part2/b.html gets a BaseHref of "../../".
// relPath uses forward slashes.
func ComputeBaseHref(relPath string) string {
	dir := path.Dir(relPath)
	if dir == "." || dir == "/" {
		return ""
	}
	depth := strings.Count(strings.Trim(dir, "/"), "/") + 1
	return strings.Repeat("../", depth)
}

// internal/nav/resolve.go
package nav

import "strings"

// Filename returns the part of location after its last slash.
func Filename(location string) string {
	if i := strings.LastIndex(location, "/"); i >= 0 {
		return location[i+1:]
	}
	return location
}

// Resolve finds the page named by location. The first descriptor whose URL
// equals the location's filename wins; when none does, the first page is
// treated as active and Matched is false. An empty list yields the zero
// Context.
func Resolve(location string, pages []PageDescriptor) Context {
	if len(pages) == 0 {
		return Context{}
	}

	name := Filename(location)
	idx, matched := 0, false
	for i, p := range pages {
		if p.URL == name {
			idx, matched = i, true
			break
		}
	}

	return Context{
		ActiveIndex: idx,
		ActiveTitle: pages[idx].Title,
		HasPrevious: idx > 0,
		HasNext:     idx < len(pages)-1,
		Matched:     matched,
	}
}

// internal/builder/models.go
package builder

import "docnav/internal/progress"

// BuildOptions controls a single build.
type BuildOptions struct {
	CleanDestination bool
	Unsafe           bool
	Debug            bool
	// Jobs bounds the number of pages decorated at once. Zero means one
	// per CPU.
	Jobs     int
	Reporter progress.Reporter
}

// sourcePage is one HTML file found in the input directory.
type sourcePage struct {
	Path     string // on disk
	Location string // relative to the input dir, slash separated
}

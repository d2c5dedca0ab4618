package discovery

// Result is the outcome of a manifest scan.
type Result struct {
	// Success is false when at least one directory could not be read.
	Success bool

	// Files holds the manifest paths found, in walk order.
	Files []string

	// Failures holds one entry per directory that could not be read.
	Failures []Failure
}

// Failure describes a directory the locator could not read.
type Failure struct {
	Dir string
	Err error
}

// Count returns the number of manifest files found.
func (r *Result) Count() int {
	return len(r.Files)
}

// Options tunes the locator.
type Options struct {
	// Ext is the manifest file extension, including the dot.
	Ext string

	// Excludes holds glob patterns matched against entry names and paths.
	Excludes []string
}

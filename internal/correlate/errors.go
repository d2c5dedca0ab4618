package correlate

import "fmt"

// NoMatchError is returned when no blame line carries the version declaration.
type NoMatchError struct {
	Path string
	Line string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no commit found for %s in %q", e.Line, e.Path)
}

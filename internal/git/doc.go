// Package git runs line-authorship queries through the git CLI and extracts
// the commit that introduced a given line from the annotated output.
package git

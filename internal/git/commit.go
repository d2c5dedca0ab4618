package git

import (
	"fmt"
	"regexp"
	"strings"
)

// Commit is the blame annotation of a matched line.
type Commit struct {
	// Descriptor is everything before the annotation: the abbreviated hash,
	// plus the original file name when git reports one.
	Descriptor string

	// Hash is the abbreviated commit hash without the boundary marker.
	Hash string

	// Annotation is the parenthesised author, date and line number block.
	Annotation string

	// Boundary is true when git marks the commit as a boundary (^) commit.
	Boundary bool
}

// VersionLine returns the manifest line declaring version.
func VersionLine(version string) string {
	return fmt.Sprintf("version = %q", version)
}

// CommitPattern builds the expression matching a blame line whose content is line.
// Group 1 captures the commit descriptor, group 2 the annotation.
func CommitPattern(line string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)^([^(\n]+) (\([^)\n]+\)) ` + regexp.QuoteMeta(line))
}

// FindCommit searches blame output for line. The first matching line wins.
func FindCommit(blame, line string) (Commit, bool) {
	m := CommitPattern(line).FindStringSubmatch(blame)
	if m == nil {
		return Commit{}, false
	}

	descriptor := strings.TrimSpace(m[1])
	hash, _, _ := strings.Cut(descriptor, " ")
	boundary := strings.HasPrefix(hash, "^")

	return Commit{
		Descriptor: descriptor,
		Hash:       strings.TrimPrefix(hash, "^"),
		Annotation: m[2],
		Boundary:   boundary,
	}, true
}

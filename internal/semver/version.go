// Package semver validates the version strings Cargo accepts in package.version.
package semver

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// versionRegex matches Cargo versions: no "v" prefix, no leading zeros in
// numeric components, optional pre-release and build metadata.
var versionRegex = regexp.MustCompile(
	`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)` +
		`(?:-([0-9A-Za-z\-]+(?:\.[0-9A-Za-z\-]+)*))?` +
		`(?:\+([0-9A-Za-z\-]+(?:\.[0-9A-Za-z\-]+)*))?$`,
)

// errInvalidVersion is returned when a string is not a semantic version.
var errInvalidVersion = errors.New("invalid version format")

// maxVersionLength bounds the input handed to the regex.
const maxVersionLength = 128

// validate checks that s is a semantic version whose numeric components fit in 64 bits.
func validate(s string) error {
	if len(s) > maxVersionLength {
		return fmt.Errorf("%w: exceeds maximum length of %d", errInvalidVersion, maxVersionLength)
	}

	m := versionRegex.FindStringSubmatch(s)
	if m == nil {
		return fmt.Errorf("%w: %q", errInvalidVersion, s)
	}

	for _, part := range m[1:4] {
		if _, err := strconv.ParseUint(part, 10, 64); err != nil {
			return fmt.Errorf("%w: %s", errInvalidVersion, err.Error())
		}
	}
	return nil
}

// IsValid reports whether s is a semantic version.
func IsValid(s string) bool {
	return validate(s) == nil
}

// Package parser decodes Cargo-style TOML manifests into a generic document
// and exposes dot-notation field lookups such as "package.version".
package parser

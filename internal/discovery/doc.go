// Package discovery locates manifest files for cargover. It walks a project
// tree recursively and collects every file carrying the manifest extension.
// Unreadable directories are reported but never stop the walk.
package discovery

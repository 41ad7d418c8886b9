// Package main provides the entry point for the folio CLI.
//
// folio builds and previews a personal portfolio site: it regenerates the
// blog post index from a directory of post files, looks up the GitHub
// projects shown on the page, and serves a local preview.
//
// Usage:
//
//	folio build
//	folio projects --markdown
//	folio serve --watch
//
// See --help for all available options.
package main

func main() {
	Execute()
}

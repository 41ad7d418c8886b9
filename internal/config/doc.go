// Package config provides folio's configuration: the GitHub account and
// featured repositories, the posts layout, and the static portfolio content.
//
// Values are resolved in this order, later sources winning:
//  1. NewConfig defaults
//  2. the YAML file found by FindConfigFile
//  3. FOLIO_* environment variables (FOLIO_GITHUB_USERNAME -> github.username)
//  4. CLI flags, applied by cmd/folio
package config

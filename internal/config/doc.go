// Package config provides configuration loading, merging, and validation
// for the favsync daemon and CLI.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Config file (JSON, or YAML by extension)
//  2. Environment variables
//  3. Command-line flags
//
// Fields left unset by every source take the package defaults.
//
// The main entry points are [GetStructuredConfig] for the daemon and
// [GetClientConfig] for the CLI.
package config

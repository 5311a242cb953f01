// Package main provides the entry point for the ttx CLI.
//
// ttx archives the teletext services of German TV stations as NDJSON
// snapshots, one file per station, and renders archived pages on the
// terminal.
//
// Usage:
//
//	ttx scrape
//	ttx show <station> <page>
//
// See --help for all available options.
package main

// main is the entry point for ttx.
func main() {
	Execute()
}

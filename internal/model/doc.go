// Package model defines the value types shared across the teletext
// pipeline: colors, segment attributes, links, rows, pages, and the
// per-run session header.
//
// All types in this package are plain value objects with no I/O. A Page
// is immutable once assembled; a later capture of the same page number
// supersedes it rather than mutating it.
package model

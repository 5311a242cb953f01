// Package config holds the runtime configuration for the ttx CLI and
// the station catalog: which stations exist, which source format family
// each one speaks, and where its pages are fetched from.
//
// The built-in catalog covers the German stations the archive tracks.
// A YAML stations file can override or extend it, mainly so tests and
// mirrors can point base URLs elsewhere.
package config

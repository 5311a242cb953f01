// Package scrape fetches station pages and drives the per-station
// decode-assemble-serialize pipeline.
//
// Each station has a Source that walks the station's page index the way
// the station exposes it (status endpoints, page indexes, next-page
// links, or an ascending API) and hands raw payloads to the runner. The
// runner decodes and assembles each page, isolates per-page failures as
// archived error markers, reuses unchanged pages from the previous
// snapshot to keep diffs minimal, and writes one NDJSON snapshot per
// station. Stations run concurrently; pages within a station keep
// source order.
package scrape

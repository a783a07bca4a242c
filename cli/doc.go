// Package cli implements the command-line interface for ufvdata.
//
// The cli package provides:
// - Configuration from flags layered over the environment
// - The scholarships and timetables scrape commands
// - Snapshot storage and replay of scraped awards
// - Writing the public JSON documents
package cli

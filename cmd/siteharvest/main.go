// Package main provides the entry point for the siteharvest CLI.
//
// siteharvest extracts structured records from websites. It crawls a
// site breadth-first collecting downloadable resources, or walks a
// paginated article listing collecting article entries.
//
// Usage:
//
//	siteharvest crawl <url>
//	siteharvest scrape <url>
//
// See --help for all available options.
package main

// main is the entry point for siteharvest.
func main() {
	Execute()
}

// Package fetcher downloads the puzzle page, locates the main script bundle
// referenced from it and downloads that bundle.
//
// The bundle reference is found by pattern matching the raw page text for
// src="main.<hex>.js". The page lists several chunk references; the last
// match in document order is the main bundle. The absolute script URL is the
// base URL with the matched relative path appended verbatim.
package fetcher

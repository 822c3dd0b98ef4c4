// Package main provides the entry point for the wordlefetch CLI.
//
// wordlefetch downloads the two Wordle word lists (possible secrets and
// allowed guesses) from the puzzle's published JavaScript bundle and writes
// them to text files, one word per line.
//
// Usage:
//
//	wordlefetch
//	wordlefetch --dir data --history
//	wordlefetch check
//
// See --help for all available options.
package main

// main is the entry point for wordlefetch.
func main() {
	Execute()
}

// Package wordlist reads and writes the line-delimited word-list files.
//
// The file format is one word per line, every line terminated by "\n", no
// header and no trailing metadata. Writing truncates any existing file.
package wordlist

// Package postmortem provides the interactive inspection session started by
// --pdb when a download fails.
//
// The session reads one command per line and answers questions about the
// failed run: which step stopped it, what the page and script looked like,
// and which word lists had been extracted so far.
package postmortem

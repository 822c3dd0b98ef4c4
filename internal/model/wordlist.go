package model

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"
)

// WordLength is the number of letters in every puzzle word.
const WordLength = 5

// WordList is an ordered sequence of puzzle words, kept in source order.
type WordList []string

// Len returns the number of words in the list.
func (l WordList) Len() int {
	return len(l)
}

// Text renders the list the way it is written to disk:
// one word per line, every line terminated by "\n".
func (l WordList) Text() string {
	if len(l) == 0 {
		return ""
	}
	return strings.Join(l, "\n") + "\n"
}

// Digest returns the hex encoded SHA3-256 of Text().
// Two runs producing byte-identical files produce the same digest, which is
// what the history command uses to report list changes.
func (l WordList) Digest() string {
	sum := sha3.Sum256([]byte(l.Text()))
	return hex.EncodeToString(sum[:])
}

// First returns up to n words from the head of the list.
func (l WordList) First(n int) []string {
	if n > len(l) {
		n = len(l)
	}
	if n < 0 {
		n = 0
	}
	return l[:n]
}

// IsWord reports whether s is exactly five lowercase ASCII letters.
func IsWord(s string) bool {
	if len(s) != WordLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

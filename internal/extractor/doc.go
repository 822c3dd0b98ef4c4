// Package extractor pulls the two word lists out of the script bundle.
//
// A word-list literal is a JavaScript array of double-quoted five-letter
// lowercase words: ["cigar","rebut","sissy"]. The bundle contains exactly two
// of them. Lists are returned ordered by ascending length and Classify labels
// the shorter one as the possible secrets and the longer one as the allowed
// guesses.
//
// Classification looks at length only. If the site ever ships an answer list
// longer than its guess list, the two files will be swapped without any
// error.
package extractor

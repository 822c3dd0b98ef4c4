package extractor

import (
	"regexp"
	"slices"
	"strings"

	goerrors "github.com/go-errors/errors"

	"github.com/nao1215/wordlefetch/internal/model"
)

// wordListPattern matches one word-list literal. Escaped quotes inside
// tokens are not supported; no puzzle word contains one.
var wordListPattern = regexp.MustCompile(`\["[a-z]{5}"(,"[a-z]{5}")*\]`)

// FindLiterals returns every word-list literal in script, in source order.
func FindLiterals(script string) []string {
	return wordListPattern.FindAllString(script, -1)
}

// ParseLiteral turns `["abcde","fghij"]` into [abcde fghij].
// literal must be a match of the word-list pattern.
func ParseLiteral(literal string) model.WordList {
	inner := literal[1 : len(literal)-1]
	tokens := strings.Split(inner, ",")
	words := make(model.WordList, 0, len(tokens))
	for _, tok := range tokens {
		words = append(words, tok[1:len(tok)-1])
	}
	return words
}

// Extract finds, parses and sorts the word lists in script.
// It returns an error wrapping *UnexpectedListCountError, with the stack of
// Extract attached, unless exactly two literals are found.
// The result is ordered by ascending length; lists of equal length keep
// their source order.
func Extract(script string) ([]model.WordList, error) {
	literals := FindLiterals(script)
	if len(literals) != ExpectedListCount {
		return nil, goerrors.Wrap(&UnexpectedListCountError{Count: len(literals)}, 0)
	}

	lists := make([]model.WordList, 0, len(literals))
	for _, lit := range literals {
		lists = append(lists, ParseLiteral(lit))
	}

	// Stable: on equal lengths the first literal stays first.
	slices.SortStableFunc(lists, func(a, b model.WordList) int {
		return a.Len() - b.Len()
	})

	return lists, nil
}

// Classify labels sorted lists: the first (shorter) is the possible secrets,
// the second (longer) the allowed guesses. It returns
// *UnexpectedListCountError unless given exactly two lists.
func Classify(lists []model.WordList) (possibleSecrets, allowedGuesses model.WordList, err error) {
	if len(lists) != ExpectedListCount {
		return nil, nil, goerrors.Wrap(&UnexpectedListCountError{Count: len(lists)}, 0)
	}
	return lists[0], lists[1], nil
}

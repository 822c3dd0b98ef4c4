package extractor

import "fmt"

// ExpectedListCount is the number of word-list literals a bundle must contain.
const ExpectedListCount = 2

// UnexpectedListCountError is returned when the script does not contain
// exactly ExpectedListCount word-list literals.
type UnexpectedListCountError struct {
	// Count is the number of literals found.
	Count int
}

// Error implements error.
func (e *UnexpectedListCountError) Error() string {
	return fmt.Sprintf("expected %d word-list literals in script, found %d", ExpectedListCount, e.Count)
}

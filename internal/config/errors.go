package config

import "errors"

// Configuration validation errors returned by Config.Validate.
// Callers can match them with errors.Is.
var (
	// ErrEmptyBaseURL is returned when no puzzle page URL is configured.
	ErrEmptyBaseURL = errors.New("base URL must not be empty")

	// ErrInvalidBaseURL is returned when the base URL is not an absolute
	// http or https URL. The script URL is built by appending the matched
	// bundle path, so the base URL should end with "/".
	ErrInvalidBaseURL = errors.New("invalid base URL: must be an absolute http(s) URL")

	// ErrInvalidTimeout is returned when the request timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxBodySize is returned when the body size limit is not positive.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are given.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrEmptyOutputFile is returned when an output file name is empty.
	ErrEmptyOutputFile = errors.New("output file names must not be empty")

	// ErrSameOutputFile is returned when both lists would be written to the
	// same file, which would silently lose one of them.
	ErrSameOutputFile = errors.New("allowed guesses and possible secrets must be written to different files")

	// ErrInvalidProxy is returned when the proxy is not a socks5://host:port URL.
	ErrInvalidProxy = errors.New("invalid proxy: expected socks5://host:port")
)

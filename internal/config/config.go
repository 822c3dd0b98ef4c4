package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultBaseURL is the puzzle page the word lists are scraped from.
	// It must end with "/" because the bundle path is appended verbatim.
	DefaultBaseURL = "https://www.powerlanguage.co.uk/wordle/"

	// DefaultTimeout bounds each of the two HTTP requests.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxBodySize caps how much of a response body is read.
	// The bundle holding both word lists is well under 1MB.
	DefaultMaxBodySize = 10 * 1024 * 1024 // 10MB

	// DefaultUserAgent is empty: requests carry the Go HTTP client's own
	// User-Agent unless one is configured.
	DefaultUserAgent = ""

	// DefaultAllowedGuessesFile receives the longer word list.
	DefaultAllowedGuessesFile = "wordle_allowed_guesses.txt"

	// DefaultPossibleSecretsFile receives the shorter word list.
	DefaultPossibleSecretsFile = "wordle_possible_secrets.txt"

	// DefaultOutputDir is the current working directory.
	DefaultOutputDir = "."

	// AppName is the application name used for XDG directory paths.
	AppName = "wordlefetch"
)

// Config holds all options for one wordlefetch invocation.
// It is built from defaults, then the optional configuration file, then
// explicitly set command line flags, and passed down explicitly.
type Config struct {
	// BaseURL is the puzzle page URL.
	BaseURL string

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// UserAgent is sent with both requests.
	UserAgent string

	// Proxy is an optional socks5://host:port proxy for both requests.
	// Empty means a direct connection.
	Proxy string

	// MaxBodySize is the maximum number of response bytes read per request.
	MaxBodySize int64

	// OutputDir is the directory the two word-list files are written to.
	OutputDir string

	// AllowedGuessesFile is the file name of the allowed-guesses list.
	AllowedGuessesFile string

	// PossibleSecretsFile is the file name of the possible-secrets list.
	PossibleSecretsFile string

	// ConfigFilePath is the configuration file given with --config.
	// Empty means search the default locations.
	ConfigFilePath string

	// JSONReport prints the run summary as JSON.
	JSONReport bool

	// MarkdownReport prints the run summary as Markdown.
	MarkdownReport bool

	// SaveHistory records the run in the history database.
	SaveHistory bool

	// DBDir is the directory holding the history database.
	DBDir string

	// PostMortem starts the interactive inspection session on failure.
	PostMortem bool

	// Verbose enables debug logging.
	Verbose bool
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		BaseURL:             DefaultBaseURL,
		Timeout:             DefaultTimeout,
		UserAgent:           DefaultUserAgent,
		MaxBodySize:         DefaultMaxBodySize,
		OutputDir:           DefaultOutputDir,
		AllowedGuessesFile:  DefaultAllowedGuessesFile,
		PossibleSecretsFile: DefaultPossibleSecretsFile,
		DBDir:               XDGDataDir(),
	}
}

// AllowedGuessesPath returns the full path of the allowed-guesses file.
func (c *Config) AllowedGuessesPath() string {
	return filepath.Join(c.OutputDir, c.AllowedGuessesFile)
}

// PossibleSecretsPath returns the full path of the possible-secrets file.
func (c *Config) PossibleSecretsPath() string {
	return filepath.Join(c.OutputDir, c.PossibleSecretsFile)
}

// XDGDataDir returns the data directory for wordlefetch.
// On Linux: ~/.local/share/wordlefetch
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the config directory for wordlefetch.
// On Linux: ~/.config/wordlefetch
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrEmptyBaseURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidBaseURL
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.MaxBodySize <= 0 {
		return ErrInvalidMaxBodySize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.AllowedGuessesFile == "" || c.PossibleSecretsFile == "" {
		return ErrEmptyOutputFile
	}
	if filepath.Clean(c.AllowedGuessesPath()) == filepath.Clean(c.PossibleSecretsPath()) {
		return ErrSameOutputFile
	}

	if c.Proxy != "" {
		p, err := url.Parse(c.Proxy)
		if err != nil || p.Scheme != "socks5" || p.Host == "" || p.Port() == "" {
			return ErrInvalidProxy
		}
	}

	return nil
}

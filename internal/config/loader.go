package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".wordlefetch"

// xdgConfigFile is the file name looked up inside XDGConfigDir.
const xdgConfigFile = "config.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .wordlefetch configuration file.
// Zero values mean "not set" and leave the corresponding default alone.
type File struct {
	// BaseURL overrides the puzzle page URL.
	BaseURL string `yaml:"baseURL,omitempty"`

	// Timeout is a Go duration string such as "45s".
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`

	// Proxy is a socks5://host:port URL.
	Proxy string `yaml:"proxy,omitempty"`

	// MaxBodySize overrides the response size limit in bytes.
	MaxBodySize int64 `yaml:"maxBodySize,omitempty"`

	// Output configures where the word lists are written.
	Output OutputFile `yaml:"output,omitempty"`

	// History enables the run history database.
	History bool `yaml:"history,omitempty"`
}

// OutputFile is the "output" section of the configuration file.
type OutputFile struct {
	Dir             string `yaml:"dir,omitempty"`
	AllowedGuesses  string `yaml:"allowedGuesses,omitempty"`
	PossibleSecrets string `yaml:"possibleSecrets,omitempty"`
}

// LoadConfigFile loads a YAML configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// Apply copies every value set in the file onto cfg.
func (cf *File) Apply(cfg *Config) {
	if cf.BaseURL != "" {
		cfg.BaseURL = cf.BaseURL
	}
	if cf.Timeout != 0 {
		cfg.Timeout = cf.Timeout
	}
	if cf.UserAgent != "" {
		cfg.UserAgent = cf.UserAgent
	}
	if cf.Proxy != "" {
		cfg.Proxy = cf.Proxy
	}
	if cf.MaxBodySize != 0 {
		cfg.MaxBodySize = cf.MaxBodySize
	}
	if cf.Output.Dir != "" {
		cfg.OutputDir = cf.Output.Dir
	}
	if cf.Output.AllowedGuesses != "" {
		cfg.AllowedGuessesFile = cf.Output.AllowedGuesses
	}
	if cf.Output.PossibleSecrets != "" {
		cfg.PossibleSecretsFile = cf.Output.PossibleSecrets
	}
	if cf.History {
		cfg.SaveHistory = true
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. .wordlefetch in the current directory
// 3. .wordlefetch in the user's home directory
// 4. config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), xdgConfigFile))

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

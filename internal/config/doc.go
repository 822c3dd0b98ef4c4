// Package config provides the configuration structure, defaults, validation
// and the optional YAML configuration file for wordlefetch.
package config

package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is well formed. Credentials are checked
// separately by ValidateCredentials, when a command is about to call TMDB.
func (c *Config) Validate() error {
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateTags(); err != nil {
		return err
	}
	return c.validateLogging()
}

// ValidateCredentials reports a missing TMDB API key.
func (c *Config) ValidateCredentials() error {
	if c.TMDB.APIKey != "" {
		return nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = defaultConfigPath
	}
	return fmt.Errorf("tmdb.api_key is required. Set TMDB_API_KEY env var or edit %s (create with 'movietag config init')", defaultPath)
}

func (c *Config) validateTMDB() error {
	if c.TMDB.TimeoutSeconds <= 0 {
		return errors.New("tmdb.timeout_seconds must be positive")
	}
	if !strings.HasPrefix(c.TMDB.BaseURL, "http://") && !strings.HasPrefix(c.TMDB.BaseURL, "https://") {
		return fmt.Errorf("tmdb.base_url must be an http(s) url, got %q", c.TMDB.BaseURL)
	}
	return nil
}

func (c *Config) validateTags() error {
	for _, name := range c.Tags.SkipProperties {
		if !isSkipProperty(name) {
			return fmt.Errorf("tags.skip_properties: unknown value %q (valid: %s)", name, strings.Join(SkipPropertyNames, ", "))
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}

func isSkipProperty(name string) bool {
	for _, candidate := range SkipPropertyNames {
		if strings.EqualFold(candidate, strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

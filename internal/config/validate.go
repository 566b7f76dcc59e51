package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateRepository(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.RepositoryDir == "" {
		return errors.New("paths.repository_dir must be set")
	}
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	if filepath.Clean(c.Paths.RepositoryDir) == filepath.Clean(c.Paths.DataDir) {
		return errors.New("paths.repository_dir must differ from paths.data_dir")
	}
	return nil
}

func (c *Config) validateRepository() error {
	id := c.Repository.ID
	if strings.ContainsAny(id, " \t/\\") {
		return fmt.Errorf("repository.id %q must not contain whitespace or path separators", id)
	}
	if !strings.Contains(id, ".") {
		return fmt.Errorf("repository.id %q must be a reverse-domain identifier", id)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeRepository()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if strings.TrimSpace(c.Paths.RepositoryDir) == "" {
		c.Paths.RepositoryDir = defaultRepositoryDir
	}
	var err error
	if c.Paths.DataDir, err = expandPath(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.RepositoryDir, err = expandPath(strings.TrimSpace(c.Paths.RepositoryDir)); err != nil {
		return fmt.Errorf("paths.repository_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeRepository() {
	c.Repository.Name = strings.TrimSpace(c.Repository.Name)
	if c.Repository.Name == "" {
		c.Repository.Name = defaultRepositoryName
	}
	c.Repository.ID = strings.TrimSpace(c.Repository.ID)
	if c.Repository.ID == "" {
		c.Repository.ID = defaultRepositoryID
	}
	c.Repository.Author = strings.TrimSpace(c.Repository.Author)
	if c.Repository.Author == "" {
		c.Repository.Author = defaultRepositoryAuthor
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Level == "warning" {
		c.Logging.Level = "warn"
	}
}

package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type setting struct {
	get func(*Config) string
	set func(*Config, string) error
}

func stringSetting(field func(*Config) *string) setting {
	return setting{
		get: func(c *Config) string { return *field(c) },
		set: func(c *Config, value string) error {
			*field(c) = value
			return nil
		},
	}
}

func boolSetting(field func(*Config) *bool) setting {
	return setting{
		get: func(c *Config) string { return strconv.FormatBool(*field(c)) },
		set: func(c *Config, value string) error {
			parsed, err := strconv.ParseBool(strings.TrimSpace(value))
			if err != nil {
				return fmt.Errorf("expected true or false, got %q", value)
			}
			*field(c) = parsed
			return nil
		},
	}
}

var settings = map[string]setting{
	"paths.repository_dir":    stringSetting(func(c *Config) *string { return &c.Paths.RepositoryDir }),
	"paths.data_dir":          stringSetting(func(c *Config) *string { return &c.Paths.DataDir }),
	"repository.enabled":      boolSetting(func(c *Config) *bool { return &c.Repository.Enabled }),
	"repository.auto_package": boolSetting(func(c *Config) *bool { return &c.Repository.AutoPackage }),
	"repository.name":         stringSetting(func(c *Config) *string { return &c.Repository.Name }),
	"repository.id":           stringSetting(func(c *Config) *string { return &c.Repository.ID }),
	"repository.author":       stringSetting(func(c *Config) *string { return &c.Repository.Author }),
	"logging.format":          stringSetting(func(c *Config) *string { return &c.Logging.Format }),
	"logging.level":           stringSetting(func(c *Config) *string { return &c.Logging.Level }),
}

// Keys lists the dotted setting names accepted by Get and Set.
func Keys() []string {
	keys := make([]string, 0, len(settings))
	for key := range settings {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the string form of a dotted setting such as "repository.enabled".
func (c *Config) Get(key string) (string, error) {
	s, ok := settings[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return "", fmt.Errorf("unknown setting %q", key)
	}
	return s.get(c), nil
}

// Set updates a dotted setting, then re-normalizes and validates the result.
// On failure the config is left unchanged.
func (c *Config) Set(key, value string) error {
	name := strings.ToLower(strings.TrimSpace(key))
	s, ok := settings[name]
	if !ok {
		return fmt.Errorf("unknown setting %q", key)
	}
	next := *c
	if err := s.set(&next, value); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := next.normalize(); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

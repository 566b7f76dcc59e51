package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"boothvpm/internal/catalog"
	"boothvpm/internal/config"
	"boothvpm/internal/logging"
	"boothvpm/internal/vpm"
)

type commandContext struct {
	configFlag *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	logger    *slog.Logger
	logCloser io.Closer
	store     *catalog.Store
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configExists = exists
	})
	return c.config, c.configErr
}

// runContext tags the command context with a fresh correlation ID so every
// log line from one invocation can be grouped.
func (c *commandContext) runContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := logging.CorrelationIDFromContext(ctx); ok {
		return ctx
	}
	return logging.ContextWithCorrelationID(ctx, uuid.NewString())
}

func (c *commandContext) loggerFor(ctx context.Context) *slog.Logger {
	if c.logger == nil {
		cfg, err := c.ensureConfig()
		if err != nil {
			return logging.NewNop()
		}
		logger, closer, err := logging.NewFromConfig(cfg)
		if err != nil {
			return logging.NewNop()
		}
		c.logger, c.logCloser = logger, closer
	}
	return logging.WithContext(ctx, c.logger)
}

func (c *commandContext) catalog() (*catalog.Store, error) {
	if c.store != nil {
		return c.store, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	store, err := catalog.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	c.store = store
	return store, nil
}

func (c *commandContext) repository() (vpm.Repository, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return vpm.Repository{}, err
	}
	return repositoryFromConfig(cfg), nil
}

func (c *commandContext) coordinator(ctx context.Context) (*vpm.Coordinator, *catalog.Store, error) {
	repo, err := c.repository()
	if err != nil {
		return nil, nil, err
	}
	store, err := c.catalog()
	if err != nil {
		return nil, nil, err
	}
	return vpm.NewCoordinator(repo, store, c.loggerFor(ctx)), store, nil
}

func (c *commandContext) close() error {
	var errs []error
	if c.store != nil {
		errs = append(errs, c.store.Close())
		c.store = nil
	}
	if c.logCloser != nil {
		errs = append(errs, c.logCloser.Close())
		c.logCloser = nil
		c.logger = nil
	}
	return errors.Join(errs...)
}

func repositoryFromConfig(cfg *config.Config) vpm.Repository {
	return vpm.Repository{
		Root:   cfg.Paths.RepositoryDir,
		Name:   cfg.Repository.Name,
		ID:     cfg.Repository.ID,
		Author: cfg.Repository.Author,
	}.WithDefaults()
}

// requireEnabled blocks repository mutations until packaging is switched on.
func requireEnabled(cfg *config.Config) error {
	if cfg == nil || !cfg.Repository.Enabled {
		return errors.New("VPM packaging is disabled; run `boothvpm enable` first")
	}
	return nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

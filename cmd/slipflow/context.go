package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"slipflow/internal/config"
	"slipflow/internal/docstore"
	"slipflow/internal/logging"
	"slipflow/internal/notifications"
	"slipflow/internal/workflow"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
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
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// withStore opens the document store for one command invocation and releases
// it on every exit path.
func (c *commandContext) withStore(ctx context.Context, fn func(*config.Config, *docstore.Store, *slog.Logger) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	store, err := docstore.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close(ctx)
	return fn(cfg, store, logger)
}

// buildEngine wires the workflow engine with its email notifier.
func buildEngine(cfg *config.Config, store *docstore.Store, logger *slog.Logger) (*workflow.Engine, error) {
	notifier, err := notifications.NewService(cfg, store, logger)
	if err != nil {
		return nil, err
	}
	return workflow.New(store, notifier, logger), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

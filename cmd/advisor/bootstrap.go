package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"price-intel/internal/advicelog"
	"price-intel/internal/advisor"
	"price-intel/internal/advisor/advisorobs"
	"price-intel/internal/interfaces"
	"price-intel/internal/logger"
	"price-intel/internal/store"
	"price-intel/internal/trace"
)

// bootstrap loads .env, then logger, tracer and config, in that order.
func bootstrap(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	c, err := loadConfig(cmd.Context())
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// loadConfig falls back to built-in defaults when no config file exists and
// none was asked for explicitly.
func loadConfig(ctx context.Context) (*store.Config, error) {
	path := cfgFile
	explicit := path != ""
	if !explicit {
		path = os.Getenv("ADVISOR_CONFIG")
		explicit = path != ""
	}
	if !explicit {
		path = "config.yaml"
	}

	c, err := store.LoadConfig(path)
	switch {
	case err == nil:
		return c, nil
	case !explicit && errors.Is(err, os.ErrNotExist):
		logger.Info(ctx, "No config file found, using defaults", "path", path)
		return store.Defaults(), nil
	default:
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", path)
		return nil, err
	}
}

func newAdvisor() interfaces.Advisor {
	return advisorobs.Wrap(advisor.New(cfg))
}

// openAdviceLog returns nil when the audit log is disabled.
func openAdviceLog(ctx context.Context) *advicelog.Log {
	if !cfg.AdviceLog.Enabled {
		return nil
	}
	l := advicelog.New(cfg.AdviceLog.Dir, cfg.Location())
	if err := l.CompressOlder(cfg.AdviceLog.RetentionDays); err != nil {
		logger.Warn(ctx, "Failed to compress old advice logs", "error", err)
	}
	return l
}

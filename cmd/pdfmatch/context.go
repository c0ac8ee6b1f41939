package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"pdfmatch/internal/config"
	"pdfmatch/internal/ledger"
	"pdfmatch/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

// ensureConfig loads the configuration once per invocation. Directories are
// not created here; commands that write call EnsureDirectories themselves.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

// configCopy returns a copy of the loaded config that flags may mutate.
func (c *commandContext) configCopy() (*config.Config, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	copied := *cfg
	copied.Matching.Sources = append([]string(nil), cfg.Matching.Sources...)
	copied.Matching.IdentifierSources = append([]string(nil), cfg.Matching.IdentifierSources...)
	copied.Matching.EncodingSources = append([]string(nil), cfg.Matching.EncodingSources...)
	return &copied, nil
}

// newLogger builds the run logger and prunes expired run logs, keeping the
// one just opened.
func newLogger(cfg *config.Config) (*slog.Logger, string, error) {
	logger, logPath, err := logging.NewFromConfig(cfg, time.Now())
	if err != nil {
		return nil, "", fmt.Errorf("init logger: %w", err)
	}
	logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays, logging.RunLogTarget(cfg.Paths.LogDir, logPath))
	return logger, logPath, nil
}

func openLedger(cfg *config.Config) (*ledger.Store, error) {
	store, err := ledger.Open(cfg.LedgerPath())
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	return store, nil
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

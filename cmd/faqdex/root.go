package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/faqdex/internal/config"
	logpkg "github.com/kailas-cloud/faqdex/internal/logger"
)

// app carries the state shared by subcommands once configuration is loaded.
type app struct {
	env    string
	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "faqdex",
		Short: "faqdex - keyword-grounded FAQ answering service",
		Long: `faqdex answers free-text questions from a fixed FAQ collection.
Documents are ranked by keyword overlap and the best match is returned
with citations, or a not-found answer with suggestions.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&a.env, "env", "", "config environment (default: $ENV or local)")

	root.AddCommand(
		newServeCmd(a),
		newAskCmd(a),
		newDocsCmd(a),
		newVersionCmd(),
	)
	return root
}

// load reads .env, the environment config and builds the logger.
func (a *app) load() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	if a.env == "" {
		a.env = config.GetEnv()
	}

	cfg, err := config.Load(a.env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg

	logger, err := logpkg.NewLogger(a.env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.logger = logger
	return nil
}

func (a *app) sync() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

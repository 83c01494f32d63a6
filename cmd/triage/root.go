package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sharkgitz/eboxai/internal/config"
	"github.com/sharkgitz/eboxai/internal/session"
	"github.com/sharkgitz/eboxai/pkg/logger"
)

var (
	flagAPI     string
	flagTimeout int
)

var rootCmd = &cobra.Command{
	Use:           "triage",
	Short:         "Command-line client for the AI email triage backend",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPI, "api", "", "backend base URL (overrides EBOX_API_URL)")
	rootCmd.PersistentFlags().IntVar(&flagTimeout, "timeout", 0, "request timeout in seconds")

	rootCmd.AddCommand(
		inboxCmd,
		agentCmd,
		boardCmd,
		followupsCmd,
		promptsCmd,
		playgroundCmd,
		meetingsCmd,
		dossierCmd,
		dashboardCmd,
		statusCmd,
	)
}

// newSession builds the client context for one command invocation.
func newSession() (*session.Session, *zap.Logger, error) {
	cfg, err := config.Load(os.Getenv("EBOX_CONFIG"))
	if err != nil {
		return nil, nil, err
	}
	if flagAPI != "" {
		cfg.Backend.BaseURL = flagAPI
	}
	if flagTimeout > 0 {
		cfg.Backend.TimeoutSeconds = flagTimeout
	}

	log := logger.New(cfg.Log.Level)
	return session.New(cfg, log), log, nil
}

func cmdContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 2*time.Minute)
}

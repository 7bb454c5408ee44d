// Command saucenao looks up images on SauceNAO from the command line.
//
//	saucenao url https://example.com/image.png
//	saucenao file ./screenshot.png --min-similarity 70
//	saucenao test
//
// Settings come from config/<ENV>.yaml; SAUCENAO_API_KEY may be set in a
// .env file.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kailas-cloud/saucenao"
	"github.com/kailas-cloud/saucenao/internal/config"
	logpkg "github.com/kailas-cloud/saucenao/internal/logger"
	"github.com/kailas-cloud/saucenao/internal/version"
)

// Exit codes.
const (
	ExitOK        = 0
	ExitGeneral   = 1
	ExitSetup     = 3
	ExitRateLimit = 4
	ExitRejected  = 5
	ExitInterrupt = 130
)

func main() {
	// Load .env file if present (ignore error if missing).
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(ExitSetup)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger:", err)
		os.Exit(ExitSetup)
	}
	defer func() { _ = logger.Sync() }()

	logger.Debug("Starting saucenao",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
	)

	rootCmd := newRootCmd(&cfg, logger)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps lookup errors to process exit codes.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupt
	case errors.Is(err, saucenao.ErrShortLimit),
		errors.Is(err, saucenao.ErrDailyLimit),
		errors.Is(err, saucenao.ErrTooManyFailedRequests):
		return ExitRateLimit
	case errors.Is(err, saucenao.ErrInvalidAPIKey),
		errors.Is(err, saucenao.ErrBanned):
		return ExitSetup
	case errors.Is(err, saucenao.ErrSauceNAO):
		return ExitRejected
	default:
		return ExitGeneral
	}
}

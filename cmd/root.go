// Package cmd provides the CLI commands for the pomo application.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"pomo/internal/adapters/git"
	"pomo/internal/adapters/notification"
	"pomo/internal/adapters/storage"
	"pomo/internal/adapters/tui"
	"pomo/internal/config"
	"pomo/internal/ports"
	"pomo/internal/services"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	dbPath     string
	jsonOutput bool

	// Global dependencies
	appConfig   *config.Config
	store       *storage.Store
	gitDetector ports.GitDetector
	timerSvc    *services.TimerService
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pomo",
	Short: "A Pomodoro timer for the terminal",
	Long: `Pomo is a command-line Pomodoro timer with desktop notifications,
per-day statistics, and optional git context on completed sessions.

Run "pomo" with no arguments to open the interactive timer.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runTimer,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (default: ~/.pomo/pomo.db)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")

	// cobra handles --version automatically
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("pomo\nVersion: {{.Version}}\n")
}

// initializeServices sets up the store, services, and adapters shared
// by every command.
func initializeServices() error {
	var err error
	appConfig, err = config.Load()
	if err != nil {
		// If config loading fails, use defaults
		appConfig = config.DefaultConfig()
	}

	if dbPath == "" {
		dbPath = config.GetDBPath(appConfig)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	store, err = storage.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	gitDetector = git.NewDetector()

	timerSvc = services.NewTimerService(store, gitDetector)
	timerSvc.SetAlerter(notification.New(timerSvc.Settings))
	timerSvc.Load(context.Background())

	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if timerSvc != nil {
		timerSvc.Close()
	}
	if store != nil {
		return store.Close()
	}
	return nil
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}

// runTimer launches the fullscreen timer for the bare "pomo" command.
func runTimer(cmd *cobra.Command, args []string) error {
	ctx := setupSignalHandler()
	return tui.Run(ctx, timerSvc, &appConfig.Theme)
}

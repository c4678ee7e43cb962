package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/pennywise/internal/cli"
	"github.com/Veraticus/pennywise/internal/common"
	"github.com/Veraticus/pennywise/internal/config"
)

var (
	cfgFile   string
	envFile   string
	appConfig *config.Config
	version   = "dev"
	rootCmd   = &cobra.Command{
		Use:   "pennywise",
		Short: "💰 Personal budget ledger",
		Long: `pennywise: track income and expenses, see where the money goes,
and check spending against per-category budget goals.

Run without a command to start the interactive shell.`,
		PersistentPreRunE: initConfig,
		RunE:              runShell,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/pennywise/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "environment file to load (default: ./.env if present)")
	rootCmd.PersistentFlags().String("data", "", "ledger location (default: $HOME/.local/share/pennywise/budget_data.json)")
	rootCmd.PersistentFlags().String("backend", config.DefaultBackend, "storage backend (json, sqlite)")
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", config.DefaultLogFormat, "log format (console, json)")

	// Bind flags to viper
	_ = viper.BindPFlag("storage.path", rootCmd.PersistentFlags().Lookup("data"))
	_ = viper.BindPFlag("storage.backend", rootCmd.PersistentFlags().Lookup("backend"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))

	// Add commands
	rootCmd.AddCommand(shellCmd())
	rootCmd.AddCommand(incomeCmd())
	rootCmd.AddCommand(expenseCmd())
	rootCmd.AddCommand(goalCmd())
	rootCmd.AddCommand(summaryCmd())
	rootCmd.AddCommand(clearCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(common.UserMessage(err)))
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}

	if cfgFile != "" {
		viper.SetConfigFile(config.ExpandPath(cfgFile))
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		viper.AddConfigPath(fmt.Sprintf("%s/.config/pennywise", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	config.SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	appConfig = cfg

	if err := common.SetupLogger(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	slog.Debug("Configuration loaded",
		"config_file", viper.ConfigFileUsed(),
		"backend", cfg.Storage.Backend,
		"path", cfg.Storage.Path)
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pennywise %s\n", version)
		},
	}
}

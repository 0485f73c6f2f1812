/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tristendillon/scout/core/config"
	"github.com/tristendillon/scout/core/logger"
)

var rootCmd = &cobra.Command{
	Use:   "scout",
	Short: "Measures how tracked component libraries are used across a codebase.",
	Long: `Scout scans a JavaScript or TypeScript project for imports of the component
libraries you track, records how every component and prop is used, and maps
which files the rest of the project funnels through.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	},
}

var logfile string
var verbose bool
var configPath string

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logfile, "logfile", "", "File to write logs to")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default ./"+config.DefaultFileName+")")
}

func setupLogging() error {
	logger.SetVerbose(verbose)
	if logfile == "" {
		return nil
	}
	f, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	logger.AddWriterForAll(f)
	logger.Debug("Logging to %s", logfile)
	return nil
}

// loadConfig reads the config file and applies the positional root, if any.
func loadConfig(args []string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get config: %w", err)
	}
	if len(args) > 0 {
		cfg.Root = args[0]
	}
	if len(packages) > 0 {
		cfg.Packages = packages
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

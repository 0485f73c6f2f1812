/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tristendillon/scout/core/config"
	"github.com/tristendillon/scout/core/logger"
)

var (
	force bool
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Writes a default scout.yaml",
	Long:  `Creates a scout.yaml with the default settings and the tracked packages given with --package.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("init called")
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		path := filepath.Join(dir, config.DefaultFileName)

		if _, err := os.Stat(path); err == nil {
			if !force {
				fmt.Printf("%s already exists. Use --force to overwrite.\n", path)
				return nil
			}
			logger.Debug("%s already exists. Overwriting.", path)
		}

		cfg := config.Default()
		cfg.Packages = packages
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
		if err := config.Save(path, cfg); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Printf("Successfully wrote %s\n", path)

		fmt.Printf("Next Steps:\n")
		if len(cfg.Packages) == 0 {
			fmt.Printf("  - add the packages to track under \"packages\"\n")
		}
		fmt.Printf("  - scout analyze\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&force, "force", false, "Force overwrite existing files")
	initCmd.Flags().StringSliceVarP(&packages, "package", "p", nil, "Tracked package (repeatable)")
}

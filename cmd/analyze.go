/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tristendillon/scout/core/analyzer"
	"github.com/tristendillon/scout/core/logger"
	"github.com/tristendillon/scout/core/walker"
)

var (
	packages     []string
	workers      int
	failOnErrors bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Analyzes component usage and builds the import graph",
	Long: `Walks the project, writes one usage record per file to the records file,
then builds the cross-file import graph and writes the hub report.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("analyze called")
		cfg, err := loadConfig(args)
		if err != nil {
			return err
		}

		a, err := analyzer.New(cfg)
		if err != nil {
			return err
		}
		res, err := a.RunProject(cmd.Context(), walker.New(cfg))
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}

		for _, f := range res.Failures {
			logger.Warn("Skipped %s", f)
		}
		printSummary(res)

		if failOnErrors && len(res.Failures) > 0 {
			return fmt.Errorf("%d files failed", len(res.Failures))
		}
		return nil
	},
}

func printSummary(res *analyzer.Result) {
	t := res.Totals
	fmt.Printf("Analyzed %d of %d files (%d failed) in %s\n", t.Analyzed, t.Files, t.Failed, t.Duration.Round(time.Millisecond))
	fmt.Printf("  %d components, %d props\n", t.Components, t.Props)
	fmt.Printf("  %d intersection files, %d hubs (threshold %d)\n",
		len(res.Report.IntersectionImporters), len(res.Report.GlobalImportHubs), res.Report.HubThreshold)
	if n := len(res.Report.Cycles); n > 0 {
		fmt.Printf("  %d import cycles\n", n)
	}
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringSliceVarP(&packages, "package", "p", nil, "Tracked package (repeatable, overrides the config)")
	analyzeCmd.Flags().IntVarP(&workers, "workers", "w", 0, "Files analyzed in parallel (default: number of CPUs)")
	analyzeCmd.Flags().BoolVar(&failOnErrors, "fail-on-errors", false, "Exit non-zero when any file fails")
}

/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/tristendillon/scout/core/config"
	"github.com/tristendillon/scout/core/graph"
	"github.com/tristendillon/scout/core/logger"
	"github.com/tristendillon/scout/core/store"
)

var (
	recordsPath string
	graphOut    string
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Rebuilds the hub report from an existing records file",
	Long: `Reads the records written by "scout analyze" and runs only the cross-file
phase: import graph, importers, hubs and chains.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("graph called")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to get config: %w", err)
		}
		in := recordsPath
		if in == "" {
			in = cfg.RecordsPath()
		}
		out := graphOut
		if out == "" {
			out = cfg.GraphPath()
		}

		records, err := store.ReadRecords(in)
		if err != nil {
			return err
		}
		logger.Info("Loaded %d records from %s", len(records), in)

		g := graph.Build(records, logger.Global())
		report := g.Report(graph.ReportOptions{
			RunID:           uuid.NewString(),
			HubThreshold:    cfg.Graph.HubThreshold,
			MaxChainDepth:   cfg.Graph.MaxChainDepth,
			MaxChainsPerHub: cfg.Graph.MaxChainsPerHub,
			Log:             logger.Global(),
		})
		if err := store.WriteReport(out, report); err != nil {
			return err
		}

		fmt.Printf("Wrote %s\n", out)
		for _, h := range report.GlobalImportHubs {
			fmt.Printf("  %-50s %3d direct, %3d total\n", h.File, len(h.DirectImporters), h.TotalImporters)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().StringVar(&recordsPath, "records", "", "Records file to read (default from config)")
	graphCmd.Flags().StringVarP(&graphOut, "out", "o", "", "Report file to write (default from config)")
}

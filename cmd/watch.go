/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tristendillon/scout/core/analyzer"
	"github.com/tristendillon/scout/core/cache"
	"github.com/tristendillon/scout/core/logger"
	"github.com/tristendillon/scout/core/walker"
	"github.com/tristendillon/scout/core/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Re-runs the analysis whenever a source file changes",
	Long: `Runs "scout analyze" once, then watches the project and re-runs it after
every burst of changes. Unchanged files are served from an in-memory cache.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("watch called")
		cfg, err := loadConfig(args)
		if err != nil {
			return err
		}

		fc, err := cache.NewFileCache(cfg.Cache.Size)
		if err != nil {
			return err
		}
		a, err := analyzer.New(cfg, analyzer.WithCache(fc))
		if err != nil {
			return err
		}
		w := walker.New(cfg)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var (
			mu   sync.Mutex
			last *analyzer.Result
		)
		run := func() error {
			res, err := a.RunProject(ctx, w)
			if err != nil {
				return err
			}
			printSummary(res)
			fc.LogStats()
			mu.Lock()
			last = res
			mu.Unlock()
			return nil
		}

		fw, err := watcher.NewFileWatcher(a.Root(), w, watcher.Hooks{
			OnStart: run,
			OnChange: func(changed []string) error {
				mu.Lock()
				prev := last
				mu.Unlock()
				for _, path := range changed {
					fc.InvalidateFile(path)
					if prev == nil {
						continue
					}
					rel, err := a.Resolver().RelPath(path)
					if err != nil {
						continue
					}
					if affected := prev.Graph.AffectedFiles(rel); len(affected) > 0 {
						logger.Info("%s changed, %d importers affected: %v", rel, len(affected), affected)
					} else {
						logger.Info("%s changed", rel)
					}
				}
				return run()
			},
			OnClose: func() error {
				fc.LogStats()
				return nil
			},
		})
		if err != nil {
			return err
		}
		defer fw.Close()

		logger.Info("Watching %s (Ctrl+C to stop)", a.Root())
		if err := fw.Watch(ctx); err != nil && ctx.Err() == nil {
			return fmt.Errorf("watcher stopped: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringSliceVarP(&packages, "package", "p", nil, "Tracked package (repeatable, overrides the config)")
	watchCmd.Flags().IntVarP(&workers, "workers", "w", 0, "Files analyzed in parallel (default: number of CPUs)")
}

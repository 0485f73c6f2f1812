// Package analyzer runs the two analysis phases: every file is analyzed and
// emitted independently, then the import graph is built once all records
// exist.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tristendillon/scout/core/ast"
	"github.com/tristendillon/scout/core/cache"
	"github.com/tristendillon/scout/core/config"
	"github.com/tristendillon/scout/core/extractor"
	"github.com/tristendillon/scout/core/graph"
	"github.com/tristendillon/scout/core/logger"
	"github.com/tristendillon/scout/core/models"
	"github.com/tristendillon/scout/core/props"
	"github.com/tristendillon/scout/core/resolver"
	"github.com/tristendillon/scout/core/store"
	"github.com/tristendillon/scout/core/usage"
)

type Totals struct {
	Files      int           `json:"files"`
	Analyzed   int           `json:"analyzed"`
	Cached     int           `json:"cached"`
	Failed     int           `json:"failed"`
	Components int           `json:"components"`
	Props      int           `json:"props"`
	Duration   time.Duration `json:"duration"`
}

type Result struct {
	RunID    string
	Records  []*models.FileRecord
	Failures []*FileError
	Usage    models.UsageMap
	Graph    *graph.Graph
	Report   *models.CrossFileReport
	Totals   Totals
}

type Analyzer struct {
	cfg       *config.Config
	root      string
	resolver  *resolver.Resolver
	extractor *extractor.Extractor
	cache     *cache.FileCache
	log       logger.Reporter
	workers   int
}

type Option func(*Analyzer)

// WithCache reuses records of files whose content did not change.
func WithCache(fc *cache.FileCache) Option {
	return func(a *Analyzer) { a.cache = fc }
}

func WithReporter(log logger.Reporter) Option {
	return func(a *Analyzer) { a.log = log }
}

func New(cfg *config.Config, opts ...Option) (*Analyzer, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s: %w", cfg.Root, err)
	}

	a := &Analyzer{
		cfg:     cfg,
		root:    root,
		log:     logger.Global(),
		workers: cfg.Workers,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.workers <= 0 {
		a.workers = runtime.NumCPU()
	}

	a.resolver = resolver.New(root, cfg.Aliases, cfg.Extensions)
	a.extractor = extractor.New(a.resolver, cfg.Packages, props.Default(), a.log)
	return a, nil
}

func (a *Analyzer) Root() string {
	return a.root
}

func (a *Analyzer) Resolver() *resolver.Resolver {
	return a.resolver
}

// AnalyzeFile builds the record of one file. path may be absolute or
// relative to the root. The second result reports a cache hit.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*models.FileRecord, bool, error) {
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(a.root, path)
	}
	rel, err := a.resolver.RelPath(abs)
	if err != nil {
		return nil, false, &FileError{File: abs, Kind: ReadFailure, Err: err}
	}

	src, err := os.ReadFile(abs)
	if err != nil {
		return nil, false, &FileError{File: rel, Kind: ReadFailure, Err: fmt.Errorf("%w: %v", errRead, err)}
	}

	if a.cache != nil {
		if rec, ok := a.cache.ValidateAndGet(abs, src); ok {
			return rec, true, nil
		}
	}

	f, err := ast.Parse(ctx, rel, src)
	if err != nil {
		return nil, false, &FileError{File: rel, Kind: classify(err), Err: err}
	}
	defer f.Close()

	rec, err := a.extractor.Extract(f)
	if err != nil {
		return nil, false, &FileError{File: rel, Kind: classify(err), Err: err}
	}

	if a.cache != nil {
		a.cache.Set(abs, src, rec)
	}
	return rec, false, nil
}

// Run analyzes files with a bounded worker pool, appends each record to st
// as soon as it is complete, waits for every worker, and only then builds
// the graph. A cancelled context stops files from starting; files already
// running finish. A cancelled run returns the context error and no report.
func (a *Analyzer) Run(ctx context.Context, files []string, st store.Store) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	a.log.Info("Run %s: analyzing %d files with %d workers", runID, len(files), a.workers)

	var (
		mu       sync.Mutex
		records  []*models.FileRecord
		failures []*FileError
		cached   int
		done     int
	)

	g := new(errgroup.Group)
	g.SetLimit(a.workers)
	for _, file := range files {
		file := file
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			rec, hit, err := a.AnalyzeFile(ctx, file)
			if err == nil {
				if aerr := st.Append(rec); aerr != nil {
					err = &FileError{File: rec.File, Kind: EmitFailure, Err: aerr}
				}
			}

			mu.Lock()
			defer mu.Unlock()
			done++
			if err != nil {
				var ferr *FileError
				if !errors.As(err, &ferr) {
					ferr = &FileError{File: file, Kind: classify(err), Err: err}
				}
				failures = append(failures, ferr)
				a.log.Error("Skipping %v", ferr)
			} else {
				records = append(records, rec)
				if hit {
					cached++
				}
			}
			a.log.Progress(done, len(files), "analyzing")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run %s cancelled after %d of %d files: %w", runID, done, len(files), err)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].File < records[j].File })
	sort.Slice(failures, func(i, j int) bool { return failures[i].File < failures[j].File })

	gr := graph.Build(records, a.log)
	report := gr.Report(graph.ReportOptions{
		RunID:           runID,
		HubThreshold:    a.cfg.Graph.HubThreshold,
		MaxChainDepth:   a.cfg.Graph.MaxChainDepth,
		MaxChainsPerHub: a.cfg.Graph.MaxChainsPerHub,
		Log:             a.log,
	})

	merged := usage.Merge(records)
	totals := Totals{
		Files:    len(files),
		Analyzed: len(records),
		Cached:   cached,
		Failed:   len(failures),
		Duration: time.Since(start),
	}
	merged.Each(func(r *models.UsageRecord) {
		totals.Components++
		totals.Props += r.Props.Total
	})

	a.log.Info("Run %s: %d analyzed (%d cached), %d failed, %d components, %d props in %s",
		runID, totals.Analyzed, totals.Cached, totals.Failed, totals.Components, totals.Props, totals.Duration.Round(time.Millisecond))

	return &Result{
		RunID:    runID,
		Records:  records,
		Failures: failures,
		Usage:    merged,
		Graph:    gr,
		Report:   report,
		Totals:   totals,
	}, nil
}

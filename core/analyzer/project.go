package analyzer

import (
	"context"
	"fmt"

	"github.com/tristendillon/scout/core/store"
	"github.com/tristendillon/scout/core/walker"
)

// RunProject discovers files under the root, streams their records into the
// configured JSONL file, and writes the cross-file report next to it.
func (a *Analyzer) RunProject(ctx context.Context, w walker.Walker) (*Result, error) {
	files, err := w.Walk(ctx, a.root)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		a.log.Warn("No source files found under %s", a.root)
	}

	st, err := store.OpenJSONL(a.cfg.RecordsPath())
	if err != nil {
		return nil, err
	}
	res, runErr := a.Run(ctx, files, st)
	if err := st.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to close record store: %w", err)
	}
	if runErr != nil {
		return nil, runErr
	}

	if err := store.WriteReport(a.cfg.GraphPath(), res.Report); err != nil {
		return nil, err
	}
	a.log.Info("Wrote %s and %s", a.cfg.RecordsPath(), a.cfg.GraphPath())
	return res, nil
}

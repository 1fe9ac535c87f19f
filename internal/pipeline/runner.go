// Package pipeline wires the indexing run end to end: metadata dumps in,
// symbols and references out, discovered methods drained for downstream
// analysis.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"clrindex/internal/build"
	"clrindex/internal/metadata"
	"clrindex/internal/nsfilter"
	"clrindex/internal/sink"
	"clrindex/internal/storage"

	"github.com/google/uuid"
)

// RunStats summarizes one indexing run.
type RunStats struct {
	RunID           string
	Modules         int
	TypesPresented  int
	Symbols         int64
	References      int64
	Methods         int
	Defects         int
	FollowedModules []string
}

// Runner owns the collaborators of one or more indexing runs.
type Runner struct {
	DumpDir string
	Filter  nsfilter.Config
	Store   storage.Store
	Log     *slog.Logger

	followed []string
}

// FollowModule records modules the traversal pulled in; the builder calls
// it at most once per module.
func (r *Runner) FollowModule(m *metadata.Module) {
	r.followed = append(r.followed, m.Name)
	r.Log.Debug("following module", "module", m.Name)
}

// Run performs one full indexing pass: load dumps, present every type of
// every primary module to the builder, drain discovered methods.
func (r *Runner) Run(ctx context.Context) (RunStats, error) {
	if r.Log == nil {
		r.Log = slog.Default()
	}
	stats := RunStats{RunID: uuid.NewString()}
	r.followed = nil

	filter, err := nsfilter.New(r.Filter)
	if err != nil {
		return stats, fmt.Errorf("invalid namespace filter: %w", err)
	}

	modules, _, err := metadata.LoadDir(r.DumpDir)
	if err != nil {
		return stats, fmt.Errorf("failed to load metadata dumps: %w", err)
	}
	if len(modules) == 0 {
		return stats, fmt.Errorf("no module dumps found under %s", r.DumpDir)
	}
	stats.Modules = len(modules)

	names := make([]string, len(modules))
	for i, m := range modules {
		names[i] = m.Name
	}

	queue := sink.NewQueue()
	builder := build.NewBuilder(filter, r.Store, queue,
		build.WithPrimaryModules(names...),
		build.WithTracker(r),
		build.WithLogger(r.Log),
	)

	r.Log.Info("indexing run started", "run_id", stats.RunID, "modules", len(modules))

	for _, mod := range modules {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		for _, t := range mod.Types {
			stats.TypesPresented++
			builder.AddIfValid(t)
		}
	}

	stats.Methods = len(queue.Drain())
	stats.Defects = len(builder.Session().Defects())
	stats.FollowedModules = r.followed

	for _, d := range builder.Session().Defects() {
		r.Log.Warn("data integrity defect", "run_id", stats.RunID, "entity", d.Entity, "error", d.Err)
	}

	stats.Symbols, stats.References, err = r.Store.Counts()
	if err != nil {
		return stats, fmt.Errorf("failed to read store counts: %w", err)
	}

	r.Log.Info("indexing run finished",
		"run_id", stats.RunID,
		"symbols", stats.Symbols,
		"references", stats.References,
		"methods", stats.Methods,
		"defects", stats.Defects,
	)
	return stats, nil
}

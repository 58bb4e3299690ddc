package orchestrate

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/termfx/grafema/internal/diagnostics"
	"github.com/termfx/grafema/internal/extract"
	"github.com/termfx/grafema/internal/graph"
	"github.com/termfx/grafema/internal/ident"
	"github.com/termfx/grafema/internal/obslog"
	"github.com/termfx/grafema/internal/scope"
	"github.com/termfx/grafema/internal/store"
)

// Options configures one orchestrator run. Orchestrator never reads
// config.Config directly (SPEC_FULL.md §4.12) — cmd/grafema resolves a
// Config into Options before calling New.
type Options struct {
	Root           string
	Include        []string
	Exclude        []string
	PoolSize       int
	TaskTimeout    time.Duration
	RunID          string
	ServiceName    string
}

// Orchestrator drives the five-phase pipeline of spec.md §4.6 against a
// store.Store, draining a bounded worker pool at each phase barrier.
type Orchestrator struct {
	opts  Options
	st    store.Store
	log   *obslog.Logger
	diag  *diagnostics.Collector
	reg   *Registry
	langs map[string]extract.Extractor

	files   []DiscoveredFile
	service graph.Node
}

// New builds an Orchestrator. extractors is keyed by extract.Extractor
// .Language() (e.g. "javascript", "typescript", "golang"); the caller
// wires the concrete language packages so this package stays decoupled
// from any one language's import.
func New(opts Options, st store.Store, log *obslog.Logger, diag *diagnostics.Collector, extractors []extract.Extractor) *Orchestrator {
	if log == nil {
		log = obslog.Discard()
	}
	if diag == nil {
		diag = diagnostics.NewCollector()
	}

	langs := make(map[string]extract.Extractor, len(extractors))
	for _, e := range extractors {
		langs[e.Language()] = e
	}

	return &Orchestrator{
		opts:  opts,
		st:    st,
		log:   log,
		diag:  diag,
		reg:   NewRegistry(),
		langs: langs,
	}
}

// Registry exposes the run's Resource Registry so cmd/grafema and the
// enrichment/validation phases can register factories before Run.
func (o *Orchestrator) Registry() *Registry { return o.reg }

// Diagnostics returns the run's diagnostics collector.
func (o *Orchestrator) Diagnostics() *diagnostics.Collector { return o.diag }

// Run executes all five phases in order, barriering after each. It
// returns early (without running later phases) once diagnostics.HasFatal
// becomes true after a barrier, per spec.md §4.9.
func (o *Orchestrator) Run(ctx context.Context) error {
	defer o.reg.Clear()

	for _, phase := range phaseOrder {
		log := o.log.WithRun(o.opts.RunID).WithPhase(string(phase))
		log.Info("phase started")

		var err error
		switch phase {
		case PhaseDiscovery:
			err = o.runDiscovery(ctx)
		case PhaseIndexing:
			err = o.runIndexing(ctx)
		case PhaseAnalysis:
			err = o.runAnalysis(ctx)
		case PhaseEnrichment:
			err = o.runEnrichment(ctx)
		case PhaseValidation:
			err = o.runValidation(ctx)
		}
		if err != nil {
			o.diag.Add(diagnostics.Diagnostic{
				Code:     diagnostics.CodeStorageUnavailable,
				Severity: diagnostics.SeverityFatal,
				Message:  err.Error(),
				Phase:    string(phase),
			})
		}

		if flushErr := o.st.Flush(ctx); flushErr != nil {
			o.diag.Add(diagnostics.Diagnostic{
				Code:     diagnostics.CodeStorageUnavailable,
				Severity: diagnostics.SeverityFatal,
				Message:  flushErr.Error(),
				Phase:    string(phase),
			})
		}
		log.Info("phase complete")

		if o.diag.HasFatal() {
			return fmt.Errorf("orchestrate: run aborted after phase %s: fatal diagnostic recorded", phase)
		}
	}
	return nil
}

// runDiscovery enumerates files under Options.Root and emits a SERVICE
// stub node (spec.md §4.6 "enumerate services/projects, emit
// SERVICE/MODULE stubs"); MODULE stubs are minted in INDEXING once each
// file's content hash is known.
func (o *Orchestrator) runDiscovery(ctx context.Context) error {
	files, err := discoverFiles(ctx, o.opts.Root, o.opts.Include, o.opts.Exclude)
	if err != nil {
		return fmt.Errorf("discovery: %w", err)
	}
	o.files = files

	name := o.opts.ServiceName
	if name == "" {
		name = o.opts.Root
	}
	svc, err := graph.Build(graph.TypeService, name, o.opts.Root, 0, 0, "", ident.Hints{Other: o.opts.Root}, 0, map[string]any{
		"root": o.opts.Root,
	})
	if err != nil {
		return fmt.Errorf("discovery: build service node: %w", err)
	}
	o.service = svc
	return o.st.AddNode(ctx, svc)
}

// runIndexing computes each discovered file's content hash and ensures a
// MODULE node exists for it, fast and parallel per spec.md §4.6.
func (o *Orchestrator) runIndexing(ctx context.Context) error {
	pool, err := newTaskPool(o.opts.PoolSize, o.opts.TaskTimeout)
	if err != nil {
		return err
	}
	defer pool.Release()

	for _, f := range o.files {
		f := f
		if err := pool.Submit(ctx, Task{
			File: f.Path,
			Run: func(taskCtx context.Context) error {
				data, err := os.ReadFile(f.Path)
				if err != nil {
					return err
				}
				hash := ident.ModuleContentHash(data)
				modID := ident.ComputeCompact(string(graph.TypeModule), f.Path, f.Path, ident.Opts{Hash: hash})
				mod, err := graph.New(modID, graph.TypeModule, f.Path, f.Path, 1, 0, map[string]any{
					"contentHash": hash,
				})
				if err != nil {
					return err
				}
				if err := o.st.AddNode(taskCtx, mod); err != nil {
					return err
				}
				edge, err := graph.CreateEdge(o.service.ID, mod.ID, graph.EdgeContains, nil)
				if err != nil {
					return err
				}
				return o.st.AddEdge(taskCtx, edge)
			},
		}); err != nil {
			o.diag.AddFromError(string(PhaseIndexing), f.Path, err)
		}
	}

	for _, taskErr := range pool.Wait() {
		o.diag.Add(diagnostics.Diagnostic{
			Code:     diagnostics.CodeUnknown,
			Severity: diagnostics.SeverityError,
			Message:  taskErr.Err.Error(),
			File:     taskErr.File,
			Phase:    string(PhaseIndexing),
		})
	}
	return nil
}

// runAnalysis parses and extracts every discovered file in parallel
// (spec.md §4.6 "per-file AST parse + extraction. Parallelized"). Each
// task owns its own Scope Tracker and parser instance (spec.md "each
// worker owns an independent store client connection, a Scope Tracker,
// and parsing state").
func (o *Orchestrator) runAnalysis(ctx context.Context) error {
	pool, err := newTaskPool(o.opts.PoolSize, o.opts.TaskTimeout)
	if err != nil {
		return err
	}
	defer pool.Release()

	for _, f := range o.files {
		f := f
		extractor, ok := o.langs[f.Language]
		if !ok {
			continue
		}

		if err := pool.Submit(ctx, Task{
			File: f.Path,
			Run: func(taskCtx context.Context) error {
				return o.analyzeFile(taskCtx, f, extractor)
			},
		}); err != nil {
			o.diag.AddFromError(string(PhaseAnalysis), f.Path, err)
		}
	}

	for _, taskErr := range pool.Wait() {
		o.diag.Add(diagnostics.Diagnostic{
			Code:     diagnostics.CodeParseFailed,
			Severity: diagnostics.SeverityError,
			Message:  taskErr.Err.Error(),
			File:     taskErr.File,
			Phase:    string(PhaseAnalysis),
		})
	}
	return nil
}

func (o *Orchestrator) analyzeFile(ctx context.Context, f DiscoveredFile, extractor extract.Extractor) error {
	source, err := os.ReadFile(f.Path)
	if err != nil {
		return err
	}

	tracker := scope.New(f.Path)

	hash := ident.ModuleContentHash(source)
	out := &extract.Collections{}
	mod := extract.ModuleInfo{
		File:        f.Path,
		ModuleID:    ident.ComputeCompact(string(graph.TypeModule), f.Path, f.Path, ident.Opts{Hash: hash}),
		ContentHash: hash,
	}

	if err := extractor.Extract(source, mod, out, tracker); err != nil {
		return fmt.Errorf("extract %s: %w", f.Path, err)
	}

	if len(out.Nodes) > 0 {
		if err := o.st.AddNodes(ctx, out.Nodes); err != nil {
			return err
		}
	}
	if len(out.Edges) > 0 {
		if err := o.st.AddEdges(ctx, out.Edges, false); err != nil {
			return err
		}
	}
	return nil
}

// runEnrichment performs cross-file resolution passes: sequential, reads
// the full graph (spec.md §4.6). It links each CALL node to every FUNCTION
// or METHOD node, in any file, whose name matches the call's callee (or to
// an UNKNOWN_CALL_TARGET node via UNRESOLVED_CALL when none does), links VARIABLE_DECLARATION nodes to the
// declaration they were assigned from so query.TraceAlias has real
// ASSIGNED_FROM edges to walk, links CALL nodes to the declarations their
// positional arguments reference via indexed PASSES_ARGUMENT edges, and
// links CLASS nodes to the superclass/interfaces named in their heritage
// clause via EXTENDS/IMPLEMENTS edges.
func (o *Orchestrator) runEnrichment(ctx context.Context) error {
	if err := resolveUnresolvedCalls(ctx, o.st); err != nil {
		return err
	}
	if err := resolveAssignments(ctx, o.st); err != nil {
		return err
	}
	if err := resolvePassedArguments(ctx, o.st); err != nil {
		return err
	}
	return resolveClassHeritage(ctx, o.st)
}

// runValidation calls the function registered in the Registry under
// "validation:run", if any, against the completed graph (spec.md §4.9).
// cmd/grafema registers none; it checks guarantees through its guarantee
// subcommands over internal/guarantee instead.
func (o *Orchestrator) runValidation(ctx context.Context) error {
	if v, err := o.reg.Get("validation:run"); err == nil {
		if fn, ok := v.(func(context.Context, store.Store, *diagnostics.Collector) error); ok {
			return fn(ctx, o.st, o.diag)
		}
	}
	return nil
}

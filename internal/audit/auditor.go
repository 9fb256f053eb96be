package audit

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"stackaudit/internal/probe"
	domainerrors "stackaudit/internal/shared/errors"
)

// Auditor orchestrates one audit invocation: it owns the AuditResult
// lifecycle (create, populate, freeze) and is its only writer. A fresh
// Auditor is required per run; state is never reused across invocations.
type Auditor struct {
	Catalog    Catalog
	Logger     *zap.SugaredLogger
	Limiter    *rate.Limiter
	Concurrent bool

	// RunProbe overrides probe execution, used by tests to force outcomes.
	RunProbe func(ctx context.Context, def probe.CheckDefinition) probe.Outcome

	mu  sync.Mutex
	ran bool
}

// Run executes every checkset and returns the frozen result. Probe faults
// never abort a run; a caller-imposed deadline on ctx stops it early with
// whatever entries exist, the in-flight probe recorded as a timeout.
func (a *Auditor) Run(ctx context.Context) (*AuditResult, error) {
	a.mu.Lock()
	if a.ran {
		a.mu.Unlock()
		return nil, domainerrors.ErrAuditAlreadyRan
	}
	a.ran = true
	a.mu.Unlock()

	if len(a.Catalog) == 0 {
		return nil, domainerrors.ErrEmptyCatalog
	}

	result := NewResult()

	if a.Concurrent {
		// One worker per checkset; probes within a checkset stay
		// sequential. Freeze re-sorts into declared order, so
		// completion order does not matter.
		g := &errgroup.Group{}
		for _, cs := range a.Catalog {
			cs := cs
			g.Go(func() error {
				a.runCheckset(ctx, cs, result)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for _, cs := range a.Catalog {
			a.runCheckset(ctx, cs, result)
		}
	}

	result.Freeze()
	return result, nil
}

// runCheckset executes every probe of one checkset regardless of earlier
// failures within it; a single down service must not hide other findings.
// Only a malformed definition or a panic aborts the checkset, and then with
// one synthetic error entry so the report shows what happened.
func (a *Auditor) runCheckset(ctx context.Context, cs Checkset, result *AuditResult) {
	defer func() {
		if rec := recover(); rec != nil {
			a.logf("checkset %s aborted: %v", cs.Name, rec)
			_ = result.Append(a.abortEntry(cs, len(cs.Definitions), fmt.Errorf("checkset panicked: %v", rec)))
		}
	}()

	a.logf("auditing %s (%d probes)", cs.Name, len(cs.Definitions))

	for i, def := range cs.Definitions {
		if ctx.Err() != nil {
			// Run deadline already expired; freeze with what exists.
			return
		}
		if err := def.Validate(); err != nil {
			a.logf("checkset %s aborted at probe %d: %v", cs.Name, i, err)
			_ = result.Append(a.abortEntry(cs, i, err))
			return
		}
		if a.Limiter != nil {
			_ = a.Limiter.Wait(ctx)
		}

		out, timedOut := a.execute(ctx, def)
		_ = result.Append(CheckEntry{
			Checkset:      cs.Name,
			ChecksetIndex: cs.Index,
			Probe:         def.Name,
			ProbeIndex:    i,
			Outcome:       out,
		})
		if timedOut {
			return
		}
	}
}

// execute runs one probe, abandoning it if the run-level deadline expires
// while it is in flight. The abandoned probe's goroutine is left to drain
// into a buffered channel.
func (a *Auditor) execute(ctx context.Context, def probe.CheckDefinition) (probe.Outcome, bool) {
	run := a.RunProbe
	if run == nil {
		run = probe.Run
	}

	outc := make(chan probe.Outcome, 1)
	go func() {
		outc <- run(ctx, def)
	}()

	select {
	case out := <-outc:
		return out, false
	case <-ctx.Done():
		return probe.TimeoutOutcome(ctx.Err()), true
	}
}

func (a *Auditor) abortEntry(cs Checkset, probeIndex int, err error) CheckEntry {
	return CheckEntry{
		Checkset:      cs.Name,
		ChecksetIndex: cs.Index,
		Probe:         "checkset-aborted",
		ProbeIndex:    probeIndex,
		Outcome: probe.Outcome{
			Kind:   probe.OutcomeError,
			Label:  "checkset aborted",
			Detail: map[string]any{"message": err.Error()},
		},
	}
}

func (a *Auditor) logf(format string, args ...any) {
	if a.Logger != nil {
		a.Logger.Infof(format, args...)
	}
}

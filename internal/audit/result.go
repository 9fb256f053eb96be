package audit

import (
	"sort"
	"sync"
	"time"

	"stackaudit/internal/probe"
	domainerrors "stackaudit/internal/shared/errors"
)

// CheckEntry pairs one probe outcome with its position in the declared
// catalog. Entries are immutable once appended.
type CheckEntry struct {
	Checkset      string        `json:"checkset"`
	ChecksetIndex int           `json:"checkset_index"`
	Probe         string        `json:"probe"`
	ProbeIndex    int           `json:"probe_index"`
	Outcome       probe.Outcome `json:"outcome"`
	At            time.Time     `json:"at"`
}

// AuditResult is the aggregate root for one audit run: an append-only,
// freezable sequence of CheckEntries. The append is safe for concurrent
// checkset workers; no other shared mutable state exists in a run.
type AuditResult struct {
	mu        sync.Mutex
	startedAt time.Time
	entries   []CheckEntry
	frozen    bool
}

// NewResult creates an empty result with its timestamp fixed at creation.
func NewResult() *AuditResult {
	return &AuditResult{startedAt: time.Now().UTC()}
}

// Append adds one entry. It fails once the result is frozen; it never
// silently drops an entry.
func (r *AuditResult) Append(e CheckEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return domainerrors.ErrResultFrozen
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	r.entries = append(r.entries, e)
	return nil
}

// Freeze sorts entries into declared catalog order and makes the result
// read-only. Freezing twice is a no-op.
func (r *AuditResult) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return
	}
	sort.SliceStable(r.entries, func(i, j int) bool {
		if r.entries[i].ChecksetIndex != r.entries[j].ChecksetIndex {
			return r.entries[i].ChecksetIndex < r.entries[j].ChecksetIndex
		}
		return r.entries[i].ProbeIndex < r.entries[j].ProbeIndex
	})
	r.frozen = true
}

// Frozen reports whether the result accepts further entries.
func (r *AuditResult) Frozen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frozen
}

// StartedAt returns the creation timestamp of this run.
func (r *AuditResult) StartedAt() time.Time {
	return r.startedAt
}

// Entries returns a copy of the entry sequence.
func (r *AuditResult) Entries() []CheckEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]CheckEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// CountByKind recounts entries of one outcome kind. There are no separate
// counters to drift: every count is derived from the sequence.
func (r *AuditResult) CountByKind(kind probe.OutcomeKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.entries {
		if e.Outcome.Kind == kind {
			n++
		}
	}
	return n
}

// Summary holds the bucket counts of a run. Failures surface as warnings in
// reports, matching the original auditor's buckets.
type Summary struct {
	Successes int `json:"successes"`
	Warnings  int `json:"warnings"`
	Errors    int `json:"errors"`
	Total     int `json:"total"`
}

// Summarize recounts the buckets from the entry sequence.
func (r *AuditResult) Summarize() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := Summary{Total: len(r.entries)}
	for _, e := range r.entries {
		switch e.Outcome.Kind {
		case probe.OutcomeSuccess:
			s.Successes++
		case probe.OutcomeFailure:
			s.Warnings++
		case probe.OutcomeError:
			s.Errors++
		}
	}
	return s
}

// Snapshot is the serializable view of a frozen result, consumed by the
// report sink and by the report command when re-rendering a saved dump.
type Snapshot struct {
	StartedAt time.Time    `json:"started_at"`
	Frozen    bool         `json:"frozen"`
	Summary   Summary      `json:"summary"`
	Entries   []CheckEntry `json:"entries"`
}

// Snapshot copies the current state into a detached, serializable value.
func (r *AuditResult) Snapshot() Snapshot {
	return Snapshot{
		StartedAt: r.startedAt,
		Frozen:    r.Frozen(),
		Summary:   r.Summarize(),
		Entries:   r.Entries(),
	}
}

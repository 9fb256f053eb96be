package probe

import (
	"context"
	"errors"
	"fmt"
	"time"

	consts "stackaudit/internal/shared/constants"
	domainerrors "stackaudit/internal/shared/errors"
)

// Kind selects the interpreter a definition runs under.
type Kind string

const (
	KindHTTP       Kind = "http"
	KindDatabase   Kind = "database"
	KindFilesystem Kind = "filesystem"
	KindSocket     Kind = "socket"
)

// Expect describes how an HTTP response status is judged.
type Expect string

const (
	// ExpectOK requires an exact 200.
	ExpectOK Expect = "ok"
	// ExpectReachable accepts any non-5xx status as proof of life.
	ExpectReachable Expect = "reachable"
	// ExpectLogin treats 200 as an accepted login and 401 as a correctly
	// rejected one; both count as success.
	ExpectLogin Expect = "login"
)

// Target is the addressable thing a probe acts on. Exactly one group of
// fields is set depending on the definition's kind.
type Target struct {
	URL   string `json:"url,omitempty"`
	Path  string `json:"path,omitempty"`
	Addr  string `json:"addr,omitempty"`
	DB    string `json:"db,omitempty"`
	Table string `json:"table,omitempty"`
}

// CheckDefinition is the static, declarative description of one probe.
type CheckDefinition struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Kind        Kind              `json:"kind"`
	Target      Target            `json:"target"`
	Method      string            `json:"method,omitempty"`
	Body        map[string]string `json:"body,omitempty"`
	Expect      Expect            `json:"expect,omitempty"`
	WantDir     bool              `json:"want_dir,omitempty"`
	CountItems  bool              `json:"count_items,omitempty"`
	Timeout     time.Duration     `json:"timeout,omitempty"`
}

// Validate reports whether the definition is well formed. A malformed
// definition aborts its checkset rather than producing an outcome.
func (d CheckDefinition) Validate() error {
	if d.Name == "" {
		return domainerrors.ErrEmptyProbeName
	}
	switch d.Kind {
	case KindHTTP:
		if d.Target.URL == "" {
			return domainerrors.ErrEmptyTarget
		}
	case KindDatabase:
		if d.Target.DB == "" || d.Target.Table == "" {
			return domainerrors.ErrEmptyTarget
		}
	case KindFilesystem:
		if d.Target.Path == "" {
			return domainerrors.ErrEmptyTarget
		}
	case KindSocket:
		if d.Target.Addr == "" {
			return domainerrors.ErrEmptyTarget
		}
	default:
		return fmt.Errorf("%w: %q", domainerrors.ErrUnknownProbeKind, d.Kind)
	}
	return nil
}

// timeout resolves the effective bound for this definition. Filesystem
// probes perform a single stat and run unbounded.
func (d CheckDefinition) timeout() time.Duration {
	if d.Timeout > 0 {
		return d.Timeout
	}
	switch d.Kind {
	case KindFilesystem:
		return 0
	case KindSocket:
		return consts.DefaultSocketTimeout
	default:
		return consts.DefaultProbeTimeout
	}
}

// OutcomeKind classifies a probe result.
type OutcomeKind string

const (
	// OutcomeSuccess means the probed condition was verified true.
	OutcomeSuccess OutcomeKind = "success"
	// OutcomeFailure means the probe completed but the condition was false.
	OutcomeFailure OutcomeKind = "failure"
	// OutcomeError means the probe could not complete.
	OutcomeError OutcomeKind = "error"
)

// Outcome is the single classified result of one probe invocation.
type Outcome struct {
	Kind      OutcomeKind    `json:"kind"`
	Label     string         `json:"label"`
	Detail    map[string]any `json:"detail,omitempty"`
	LatencyMS float64        `json:"latency_ms,omitempty"`
}

func success(label string, detail map[string]any) Outcome {
	return Outcome{Kind: OutcomeSuccess, Label: label, Detail: detail}
}

func failure(label string, detail map[string]any) Outcome {
	return Outcome{Kind: OutcomeFailure, Label: label, Detail: detail}
}

func errOutcome(label string, err error) Outcome {
	return Outcome{Kind: OutcomeError, Label: label, Detail: map[string]any{"message": err.Error()}}
}

// TimeoutOutcome records a probe abandoned by its caller, typically because
// the run-level deadline expired while the probe was in flight.
func TimeoutOutcome(err error) Outcome {
	out := Outcome{Kind: OutcomeError, Label: "timeout"}
	if err != nil {
		out.Detail = map[string]any{"message": err.Error()}
	}
	return out
}

// transportErr converts a failed I/O call into an Error outcome, labeling
// deadline expiries as timeouts and everything else as unreachable.
func transportErr(ctx context.Context, err error) Outcome {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errOutcome("timeout", err)
	}
	return errOutcome("unreachable", err)
}

// Run executes one probe and returns exactly one Outcome. Underlying faults
// never escape: they are classified at this boundary. The definition's
// timeout bounds the single I/O call the probe performs.
func Run(ctx context.Context, def CheckDefinition) Outcome {
	if t := def.timeout(); t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}

	start := time.Now()
	var out Outcome
	switch def.Kind {
	case KindHTTP:
		out = runHTTP(ctx, def)
	case KindDatabase:
		out = runDatabase(ctx, def)
	case KindFilesystem:
		out = runFilesystem(def)
	case KindSocket:
		out = runSocket(ctx, def)
	default:
		out = errOutcome("unsupported", fmt.Errorf("%w: %q", domainerrors.ErrUnknownProbeKind, def.Kind))
	}
	out.LatencyMS = float64(time.Since(start)) / float64(time.Millisecond)
	return out
}

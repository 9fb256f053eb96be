package report

import (
	"strings"
	"testing"
	"time"

	"stackaudit/internal/audit"
	"stackaudit/internal/probe"
)

func sampleSnapshot() audit.Snapshot {
	at := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	entries := []audit.CheckEntry{
		{
			Checkset: "service-reachability", ChecksetIndex: 1, Probe: "frontend", ProbeIndex: 0, At: at,
			Outcome: probe.Outcome{Kind: probe.OutcomeSuccess, Label: "running", Detail: map[string]any{"status_code": 200}, LatencyMS: 12.5},
		},
		{
			Checkset: "service-reachability", ChecksetIndex: 1, Probe: "backend", ProbeIndex: 1, At: at,
			Outcome: probe.Outcome{Kind: probe.OutcomeError, Label: "unreachable", Detail: map[string]any{"message": "connection refused"}},
		},
		{
			Checkset: "login-scenarios", ChecksetIndex: 4, Probe: "empty-credentials", ProbeIndex: 3, At: at,
			Outcome: probe.Outcome{Kind: probe.OutcomeSuccess, Label: "correctly rejected", Detail: map[string]any{"status_code": 401, "has_token": false}},
		},
		{
			Checkset: "api-surface", ChecksetIndex: 3, Probe: "GET /api/devices", ProbeIndex: 0, At: at,
			Outcome: probe.Outcome{Kind: probe.OutcomeFailure, Label: "unexpected status 404", Detail: map[string]any{"status_code": 404}},
		},
		{
			Checkset: "database-integrity", ChecksetIndex: 2, Probe: "table-devices", ProbeIndex: 1, At: at,
			Outcome: probe.Outcome{Kind: probe.OutcomeSuccess, Label: "table present", Detail: map[string]any{"row_count": 3}},
		},
	}

	return audit.Snapshot{
		StartedAt: at,
		Frozen:    true,
		Summary:   audit.Summary{Successes: 3, Warnings: 1, Errors: 1, Total: 5},
		Entries:   entries,
	}
}

func TestRenderText_SectionOrder(t *testing.T) {
	text := RenderText(sampleSnapshot())

	sections := []string{
		"SUMMARY",
		"SERVICE STATUS",
		"LOGIN TESTS",
		"API TESTS",
		"DATABASE TESTS",
		"ERRORS",
		"WARNINGS",
		"SUCCESSES",
	}

	last := -1
	for _, s := range sections {
		idx := strings.Index(text, s+"\n")
		if idx < 0 {
			t.Fatalf("section %q missing from report", s)
		}
		if idx < last {
			t.Fatalf("section %q out of order", s)
		}
		last = idx
	}
}

func TestRenderText_Contents(t *testing.T) {
	text := RenderText(sampleSnapshot())

	for _, want := range []string{
		"Total successes: 3",
		"Total errors: 1",
		"Total warnings: 1",
		"frontend: running (status_code=200)",
		"backend: unreachable (message=connection refused)",
		"empty-credentials: correctly rejected",
		"table-devices: table present (row_count=3)",
		"[api-surface] GET /api/devices: unexpected status 404",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestRenderText_EmptySectionsHaveFallbacks(t *testing.T) {
	snap := audit.Snapshot{StartedAt: time.Now()}
	text := RenderText(snap)

	for _, want := range []string{"No errors found.", "No warnings.", "No entries recorded."} {
		if !strings.Contains(text, want) {
			t.Errorf("empty report missing %q", want)
		}
	}
}

func TestRenderJSON_RoundTrip(t *testing.T) {
	snap := sampleSnapshot()

	data, err := RenderJSON(snap)
	if err != nil {
		t.Fatal(err)
	}

	back, err := ParseJSON(data)
	if err != nil {
		t.Fatal(err)
	}

	if back.Summary != snap.Summary {
		t.Fatalf("summary changed: %+v != %+v", back.Summary, snap.Summary)
	}
	if len(back.Entries) != len(snap.Entries) {
		t.Fatalf("entry count changed: %d != %d", len(back.Entries), len(snap.Entries))
	}
	if back.Entries[0].Probe != "frontend" || back.Entries[0].Outcome.Label != "running" {
		t.Fatalf("first entry degraded: %+v", back.Entries[0])
	}
	if !back.Frozen {
		t.Fatal("frozen flag lost")
	}
}

func TestParseJSON_Garbage(t *testing.T) {
	if _, err := ParseJSON([]byte("not json")); err == nil {
		t.Fatal("expected an error for a malformed dump")
	}
}

func TestWriteTrail(t *testing.T) {
	var b strings.Builder
	if err := WriteTrail(&b, sampleSnapshot()); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 6 {
		t.Fatalf("trail has %d lines, want header + 5 rows", len(lines))
	}
	if lines[0] != "timestamp,checkset,probe,kind,label,status_code,latency_ms" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "service-reachability,frontend,success,running,200") {
		t.Fatalf("unexpected first row: %q", lines[1])
	}
}

// Package report renders a frozen audit result. The core hands it a
// detached snapshot; nothing here reaches back into the audit run.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"stackaudit/internal/audit"
	"stackaudit/internal/probe"
)

const sectionRule = "----------------------------------------"

// RenderText produces the human-readable sectioned report. Section order is
// fixed: summary, service status, login tests, api tests, database tests,
// errors, warnings, successes.
func RenderText(snap audit.Snapshot) string {
	var b strings.Builder

	rule := strings.Repeat("=", 78)
	b.WriteString(rule + "\n")
	b.WriteString("SYSTEM AUDIT REPORT\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Run started: %s\n\n", snap.StartedAt.Format("2006-01-02 15:04:05 MST"))

	section(&b, "SUMMARY", func() {
		fmt.Fprintf(&b, "Total successes: %d\n", snap.Summary.Successes)
		fmt.Fprintf(&b, "Total errors: %d\n", snap.Summary.Errors)
		fmt.Fprintf(&b, "Total warnings: %d\n", snap.Summary.Warnings)
	})

	checksetSection(&b, "SERVICE STATUS", snap, "service-reachability")
	checksetSection(&b, "LOGIN TESTS", snap, "login-scenarios")
	checksetSection(&b, "API TESTS", snap, "api-surface")
	checksetSection(&b, "DATABASE TESTS", snap, "database-integrity")

	kindSection(&b, "ERRORS", snap, probe.OutcomeError, "No errors found.")
	kindSection(&b, "WARNINGS", snap, probe.OutcomeFailure, "No warnings.")
	kindSection(&b, "SUCCESSES", snap, probe.OutcomeSuccess, "No successful checks.")

	return b.String()
}

func section(b *strings.Builder, title string, body func()) {
	b.WriteString(title + "\n")
	b.WriteString(sectionRule + "\n")
	body()
	b.WriteString("\n")
}

func checksetSection(b *strings.Builder, title string, snap audit.Snapshot, checkset string) {
	section(b, title, func() {
		found := false
		for _, e := range snap.Entries {
			if e.Checkset != checkset {
				continue
			}
			found = true
			fmt.Fprintf(b, "%s: %s%s\n", e.Probe, e.Outcome.Label, entrySuffix(e))
		}
		if !found {
			b.WriteString("No entries recorded.\n")
		}
	})
}

func kindSection(b *strings.Builder, title string, snap audit.Snapshot, kind probe.OutcomeKind, empty string) {
	section(b, title, func() {
		n := 0
		for _, e := range snap.Entries {
			if e.Outcome.Kind != kind {
				continue
			}
			n++
			fmt.Fprintf(b, "%d. [%s] %s: %s%s\n", n, e.Checkset, e.Probe, e.Outcome.Label, entrySuffix(e))
		}
		if n == 0 {
			b.WriteString(empty + "\n")
		}
	})
}

// entrySuffix appends the most useful detail fields in a stable order.
func entrySuffix(e audit.CheckEntry) string {
	var parts []string
	for _, key := range []string{"status_code", "row_count", "entry_count", "item_count", "has_token", "message"} {
		if v, ok := e.Outcome.Detail[key]; ok {
			parts = append(parts, fmt.Sprintf("%s=%v", key, v))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

// RenderJSON produces the machine-readable dump mirroring the snapshot.
func RenderJSON(snap audit.Snapshot) ([]byte, error) {
	return json.MarshalIndent(snap, "", "  ")
}

// ParseJSON reads a previously written dump back into a snapshot.
func ParseJSON(data []byte) (audit.Snapshot, error) {
	var snap audit.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return audit.Snapshot{}, fmt.Errorf("parse audit dump: %w", err)
	}
	return snap, nil
}

package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"stackaudit/internal/audit"
)

// trailHeader fixes the column order of the CSV probe trail.
var trailHeader = []string{
	"timestamp",
	"checkset",
	"probe",
	"kind",
	"label",
	"status_code",
	"latency_ms",
}

// WriteTrail emits one CSV row per check entry, an operator-greppable
// companion to the full JSON dump.
func WriteTrail(w io.Writer, snap audit.Snapshot) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(trailHeader); err != nil {
		return fmt.Errorf("write trail header: %w", err)
	}

	for _, e := range snap.Entries {
		status := ""
		if v, ok := e.Outcome.Detail["status_code"]; ok {
			status = fmt.Sprintf("%v", v)
		}
		row := []string{
			e.At.Format("2006-01-02T15:04:05Z07:00"),
			e.Checkset,
			e.Probe,
			string(e.Outcome.Kind),
			e.Outcome.Label,
			status,
			fmt.Sprintf("%.3f", e.Outcome.LatencyMS),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write trail row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

package probe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// runDatabase opens the store read-only and verifies one table, recording
// its row count when present. Connection failures are Error outcomes; an
// absent table is a completed probe with a negative answer.
func runDatabase(ctx context.Context, def CheckDefinition) Outcome {
	dsn := fmt.Sprintf("file:%s?mode=ro", def.Target.DB)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return errOutcome("connection failed", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return transportErr(ctx, err)
	}

	detail := map[string]any{"table": def.Target.Table}

	var name string
	row := db.QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, def.Target.Table)
	if err := row.Scan(&name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return failure("table missing", detail)
		}
		return transportErr(ctx, err)
	}

	var count int
	// Identifier, not a value: quote it instead of binding.
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %q`, def.Target.Table)
	if err := db.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return transportErr(ctx, err)
	}
	detail["row_count"] = count
	return success("table present", detail)
}

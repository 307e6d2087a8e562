package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/rollcall/internal/ports/primary"
)

// LogAdapter translates the log command to LogService calls.
type LogAdapter struct {
	service primary.LogService
	out     io.Writer
}

// NewLogAdapter creates a new LogAdapter.
func NewLogAdapter(service primary.LogService, out io.Writer) *LogAdapter {
	return &LogAdapter{
		service: service,
		out:     out,
	}
}

// List prints resolution log entries, newest first.
func (a *LogAdapter) List(ctx context.Context, runID string, limit int) error {
	entries, err := a.service.ListLogs(ctx, primary.LogFilters{RunID: runID, Limit: limit})
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No log entries found")
		return nil
	}

	for _, e := range entries {
		change := ""
		if e.Action == "update" {
			change = fmt.Sprintf(" %s: %q -> %q", e.FieldName, e.OldValue, e.NewValue)
		}
		fmt.Fprintf(a.out, "%s %s %-7s %s %s%s\n", e.CreatedAt, shortRun(e.RunID), e.Action, e.EntityType, e.EntityID, change)
	}
	return nil
}

func shortRun(runID string) string {
	if len(runID) > 8 {
		return runID[:8]
	}
	if runID == "" {
		return "--------"
	}
	return runID
}

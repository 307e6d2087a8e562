// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import "context"

// RunIDKey is the context key for the pipeline run id.
// Exported so it can be used consistently across packages.
type RunIDKey struct{}

// WithRunID returns a context with the run id embedded.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey{}, runID)
}

// RunIDFromContext returns the run id from context, or empty string if not set.
func RunIDFromContext(ctx context.Context) string {
	if v := ctx.Value(RunIDKey{}); v != nil {
		return v.(string)
	}
	return ""
}

package primary

import (
	"context"

	"github.com/example/rollcall/internal/core/dedupe"
)

// MergeService defines the primary port for duplicate member detection.
type MergeService interface {
	// FindDuplicates plans member merges and, when asked, executes them.
	FindDuplicates(ctx context.Context, req FindDuplicatesRequest) (*FindDuplicatesResponse, error)
}

// FindDuplicatesRequest contains parameters for a merge run.
type FindDuplicatesRequest struct {
	Write bool
}

// FindDuplicatesResponse contains the plan and what was executed.
type FindDuplicatesResponse struct {
	Plan   *dedupe.Plan
	Merged []int64 // anchors whose migration ran
}

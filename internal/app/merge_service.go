package app

import (
	"context"
	"fmt"

	"github.com/example/rollcall/internal/core/dedupe"
	"github.com/example/rollcall/internal/ports/primary"
	"github.com/example/rollcall/internal/ports/secondary"
)

// MergeServiceImpl implements the MergeService interface.
type MergeServiceImpl struct {
	memberRepo  secondary.MemberRepository
	serviceRepo secondary.ServiceRepository
	planner     *dedupe.Planner
	executor    EffectExecutor
}

// NewMergeService creates a new MergeService with injected dependencies.
func NewMergeService(
	memberRepo secondary.MemberRepository,
	serviceRepo secondary.ServiceRepository,
	planner *dedupe.Planner,
	executor EffectExecutor,
) *MergeServiceImpl {
	return &MergeServiceImpl{
		memberRepo:  memberRepo,
		serviceRepo: serviceRepo,
		planner:     planner,
		executor:    executor,
	}
}

// FindDuplicates plans merges over the whole member table. With Write, each
// decision's migration runs in turn; a failure stops the run and leaves the
// remaining decisions for the next one.
func (s *MergeServiceImpl) FindDuplicates(ctx context.Context, req primary.FindDuplicatesRequest) (*primary.FindDuplicatesResponse, error) {
	memberRecords, err := s.memberRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}
	serviceRecords, err := s.serviceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load service: %w", err)
	}

	plan, err := s.planner.Plan(membersFromRecords(memberRecords), servicesFromRecords(serviceRecords))
	if err != nil {
		return nil, fmt.Errorf("failed to plan merges: %w", err)
	}

	resp := &primary.FindDuplicatesResponse{Plan: plan}
	if !req.Write {
		return resp, nil
	}

	for _, d := range plan.Decisions {
		if len(d.Merged) == 0 {
			continue
		}
		if err := s.executor.Execute(ctx, dedupe.PlanMigration(d)); err != nil {
			return resp, fmt.Errorf("failed to merge into member %d: %w", d.AnchorID, err)
		}
		resp.Merged = append(resp.Merged, d.AnchorID)
	}
	return resp, nil
}

// Ensure MergeServiceImpl implements the interface
var _ primary.MergeService = (*MergeServiceImpl)(nil)

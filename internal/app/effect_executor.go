// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"github.com/example/rollcall/internal/core/dedupe"
	"github.com/example/rollcall/internal/core/effects"
	"github.com/example/rollcall/internal/core/votematch"
	"github.com/example/rollcall/internal/ctxutil"
	"github.com/example/rollcall/internal/ports/secondary"
)

// EffectExecutor interprets and executes effects.
// This is the "Imperative Shell" - the only place I/O happens.
type EffectExecutor interface {
	Execute(ctx context.Context, effs []effects.Effect) error
}

// DefaultEffectExecutor implements EffectExecutor against the repositories.
// Every persisted change is also written to the resolution log.
type DefaultEffectExecutor struct {
	memberRepo  secondary.MemberRepository
	serviceRepo secondary.ServiceRepository
	voteRepo    secondary.VoteRepository
	logWriter   secondary.LogWriter
	logger      *slog.Logger
}

// NewEffectExecutor creates a new DefaultEffectExecutor. logWriter may be nil.
func NewEffectExecutor(
	memberRepo secondary.MemberRepository,
	serviceRepo secondary.ServiceRepository,
	voteRepo secondary.VoteRepository,
	logWriter secondary.LogWriter,
) *DefaultEffectExecutor {
	return &DefaultEffectExecutor{
		memberRepo:  memberRepo,
		serviceRepo: serviceRepo,
		voteRepo:    voteRepo,
		logWriter:   logWriter,
		logger:      slog.Default(),
	}
}

// Execute processes a slice of effects, executing each in sequence.
func (e *DefaultEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) error {
	for _, eff := range effs {
		if err := e.executeOne(ctx, eff); err != nil {
			return fmt.Errorf("failed to execute %s effect: %w", eff.EffectType(), err)
		}
	}
	return nil
}

func (e *DefaultEffectExecutor) executeOne(ctx context.Context, eff effects.Effect) error {
	switch typed := eff.(type) {
	case effects.PersistEffect:
		return e.executePersist(ctx, typed)
	case effects.CompositeEffect:
		return e.Execute(ctx, typed.Effects)
	case effects.NoEffect:
		return nil
	case effects.LogEffect:
		e.executeLog(ctx, typed)
		return nil
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

func (e *DefaultEffectExecutor) executeLog(ctx context.Context, eff effects.LogEffect) {
	level := slog.LevelInfo
	switch eff.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	attrs := make([]any, 0, 2*len(eff.Fields)+2)
	if runID := ctxutil.RunIDFromContext(ctx); runID != "" {
		attrs = append(attrs, "run", runID)
	}
	keys := make([]string, 0, len(eff.Fields))
	for k := range eff.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, k, eff.Fields[k])
	}
	e.logger.Log(ctx, level, eff.Message, attrs...)
}

func (e *DefaultEffectExecutor) executePersist(ctx context.Context, eff effects.PersistEffect) error {
	switch eff.Entity {
	case effects.EntityVote:
		return e.executeVoteOp(ctx, eff)
	case effects.EntityMember:
		return e.executeMemberOp(ctx, eff)
	case effects.EntityService:
		return e.executeServiceOp(ctx, eff)
	default:
		return fmt.Errorf("unknown entity: %s", eff.Entity)
	}
}

func (e *DefaultEffectExecutor) executeVoteOp(ctx context.Context, eff effects.PersistEffect) error {
	switch eff.Operation {
	case effects.OpAssign:
		data, ok := eff.Data.(votematch.Assignment)
		if !ok {
			return fmt.Errorf("invalid vote assign data type: %T", eff.Data)
		}
		n, err := e.voteRepo.AssignMember(ctx, data.Name, data.SessionIDs, data.RollIDs, data.MemberID)
		if err != nil {
			return err
		}
		if n > 0 {
			if err := e.logUpdate(ctx, "vote", data.Name, "member_id", "", idText(data.MemberID)); err != nil {
				return err
			}
		}
		if n != int64(data.Rows) {
			return fmt.Errorf("assigned %d votes for %q, planned %d", n, data.Name, data.Rows)
		}
		return nil
	case effects.OpReassign:
		data, ok := eff.Data.(dedupe.VoteReassignment)
		if !ok {
			return fmt.Errorf("invalid vote reassign data type: %T", eff.Data)
		}
		n, err := e.voteRepo.ReassignMember(ctx, data.From, data.To)
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		return e.logUpdate(ctx, "vote", "member:"+idText(data.From), "member_id", idText(data.From), idText(data.To))
	default:
		return fmt.Errorf("unknown vote operation: %s", eff.Operation)
	}
}

func (e *DefaultEffectExecutor) executeMemberOp(ctx context.Context, eff effects.PersistEffect) error {
	switch eff.Operation {
	case effects.OpUpdate:
		data, ok := eff.Data.(dedupe.MemberUpdate)
		if !ok {
			return fmt.Errorf("invalid member update data type: %T", eff.Data)
		}
		before, err := e.memberRepo.GetByID(ctx, data.ID)
		if err != nil {
			return err
		}
		identifiers := make(map[string]int64, len(data.IDs))
		for field, v := range data.IDs {
			identifiers[field.String()] = v
		}
		if err := e.memberRepo.Update(ctx, data.ID, data.Names, identifiers); err != nil {
			return err
		}
		old := memberColumns(before)
		for _, column := range sortedColumns(data.Names) {
			if err := e.logUpdate(ctx, "member", idText(data.ID), column, old[column], data.Names[column]); err != nil {
				return err
			}
		}
		for _, column := range sortedColumns(identifiers) {
			if err := e.logUpdate(ctx, "member", idText(data.ID), column, old[column], idText(identifiers[column])); err != nil {
				return err
			}
		}
		return nil
	case effects.OpDelete:
		data, ok := eff.Data.(dedupe.MemberRemoval)
		if !ok {
			return fmt.Errorf("invalid member delete data type: %T", eff.Data)
		}
		if err := e.memberRepo.Delete(ctx, data.ID); err != nil {
			return err
		}
		return e.logDelete(ctx, "member", idText(data.ID))
	default:
		return fmt.Errorf("unknown member operation: %s", eff.Operation)
	}
}

func (e *DefaultEffectExecutor) executeServiceOp(ctx context.Context, eff effects.PersistEffect) error {
	switch eff.Operation {
	case effects.OpReassign:
		data, ok := eff.Data.(dedupe.ServiceMove)
		if !ok {
			return fmt.Errorf("invalid service reassign data type: %T", eff.Data)
		}
		if err := e.serviceRepo.Reassign(ctx, data.ServiceID, data.To); err != nil {
			return err
		}
		return e.logUpdate(ctx, "service", idText(data.ServiceID), "member_id", "", idText(data.To))
	case effects.OpDelete:
		switch data := eff.Data.(type) {
		case dedupe.ServiceDrop:
			if err := e.serviceRepo.Delete(ctx, data.ServiceID); err != nil {
				return err
			}
			return e.logDelete(ctx, "service", idText(data.ServiceID))
		case dedupe.MemberRemoval:
			n, err := e.serviceRepo.DeleteByMember(ctx, data.ID)
			if err != nil {
				return err
			}
			if n == 0 {
				return nil
			}
			return e.logDelete(ctx, "service", "member:"+idText(data.ID))
		default:
			return fmt.Errorf("invalid service delete data type: %T", eff.Data)
		}
	default:
		return fmt.Errorf("unknown service operation: %s", eff.Operation)
	}
}

func (e *DefaultEffectExecutor) logUpdate(ctx context.Context, entityType, entityID, field, oldValue, newValue string) error {
	if e.logWriter == nil {
		return nil
	}
	return e.logWriter.LogUpdate(ctx, entityType, entityID, field, oldValue, newValue)
}

func (e *DefaultEffectExecutor) logDelete(ctx context.Context, entityType, entityID string) error {
	if e.logWriter == nil {
		return nil
	}
	return e.logWriter.LogDelete(ctx, entityType, entityID)
}

// memberColumns renders a member record as column -> value text.
func memberColumns(r *secondary.MemberRecord) map[string]string {
	cols := map[string]string{
		"first":  r.First,
		"middle": r.Middle,
		"last":   r.Last,
		"suffix": r.Suffix,
	}
	for column, v := range map[string]int64{
		"house_archive_id":  r.HouseArchiveID,
		"house_current_id":  r.HouseCurrentID,
		"senate_archive_id": r.SenateArchiveID,
		"senate_current_id": r.SenateCurrentID,
	} {
		if v != 0 {
			cols[column] = idText(v)
		}
	}
	return cols
}

func sortedColumns[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func idText(v int64) string {
	return strconv.FormatInt(v, 10)
}

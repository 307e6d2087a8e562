// Package sqlite contains SQL implementations of repository interfaces.
// Queries are written for SQLite and rebound for the configured engine.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/rollcall/internal/db"
)

// inChunk bounds the size of generated IN lists.
const inChunk = 500

// store carries the connection and the engine its queries are bound for.
type store struct {
	db     *sql.DB
	engine string
}

func newStore(conn *sql.DB, engine string) store {
	if engine == "" {
		engine = db.EngineSQLite
	}
	return store{db: conn, engine: engine}
}

func (s store) q(query string) string {
	return db.Rebind(s.engine, query)
}

// insert runs an INSERT and returns the new row id. lib/pq has no
// LastInsertId, so postgres reads it back with RETURNING.
func (s store) insert(ctx context.Context, query string, args ...any) (int64, error) {
	if s.engine == db.EnginePostgres {
		var id int64
		if err := s.db.QueryRowContext(ctx, s.q(query+" RETURNING id"), args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}
	res, err := s.db.ExecContext(ctx, s.q(query), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// exec runs a statement and returns the number of rows it changed.
func (s store) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := s.db.ExecContext(ctx, s.q(query), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func chunks(ids []int64) [][]int64 {
	var out [][]int64
	for len(ids) > inChunk {
		out = append(out, ids[:inChunk])
		ids = ids[inChunk:]
	}
	if len(ids) > 0 {
		out = append(out, ids)
	}
	return out
}

func int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

func nullInt(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: v != 0}
}

func notFound(entity string, id int64) error {
	return fmt.Errorf("%s %d not found", entity, id)
}

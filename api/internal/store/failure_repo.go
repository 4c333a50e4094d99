package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"proofreader/api/internal/proofread"
)

const createFailuresTable = `
create table if not exists proofread_failures (
  id          bigserial primary key,
  created_at  timestamptz not null default now(),
  engine      text not null,
  model       text not null,
  kind        text not null,
  input       text not null,
  raw_output  text not null,
  error       text not null
)`

type FailureRepo struct{ DB *sql.DB }

func NewFailureRepo(db *sql.DB) *FailureRepo { return &FailureRepo{DB: db} }

// FailureRow is a stored rejected output.
type FailureRow struct {
	ID        int64
	CreatedAt time.Time
	proofread.Failure
}

// EnsureSchema creates the failures table when missing.
func (r *FailureRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, createFailuresTable)
	return err
}

// RecordFailure implements proofread.Recorder.
func (r *FailureRepo) RecordFailure(ctx context.Context, f proofread.Failure) error {
	const q = `
insert into proofread_failures (engine, model, kind, input, raw_output, error)
values ($1,$2,$3,$4,$5,$6)`
	_, err := r.DB.ExecContext(ctx, q, f.Engine, f.Model, f.Kind, f.Input, f.RawOutput, f.Error)
	return err
}

// Recent returns the newest failures first, optionally filtered by kind.
func (r *FailureRepo) Recent(ctx context.Context, kind string, limit int) ([]FailureRow, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
select id, created_at, engine, model, kind, input, raw_output, error
from proofread_failures
where ($1 = '' or kind = $1)
order by created_at desc
limit $2`
	rows, err := r.DB.QueryContext(ctx, q, kind, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FailureRow
	for rows.Next() {
		var fr FailureRow
		if err := rows.Scan(&fr.ID, &fr.CreatedAt, &fr.Engine, &fr.Model, &fr.Kind,
			&fr.Input, &fr.RawOutput, &fr.Error); err != nil {
			return nil, err
		}
		out = append(out, fr)
	}
	return out, rows.Err()
}

// PurgeOlderThan deletes diagnostics older than the given age.
func (r *FailureRepo) PurgeOlderThan(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, errors.New("olderThan must be > 0")
	}
	cutoff := time.Now().Add(-olderThan)
	res, err := r.DB.ExecContext(ctx, `delete from proofread_failures where created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	aff, _ := res.RowsAffected()
	return aff, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// MarkedDateRepo handles blackout and highlight days.
type MarkedDateRepo struct {
	db DBTX
}

func NewMarkedDateRepo(db DBTX) *MarkedDateRepo { return &MarkedDateRepo{db: db} }

// MarkedDateID derives the stable id of a (kind, day) pair so repeated
// imports of the same day collapse onto one row.
func MarkedDateID(kind Kind, day string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(string(kind)+":"+day)).String()
}

// DayString formats t as the stored day key.
func DayString(t time.Time) string {
	return t.Format(time.DateOnly)
}

// Upsert inserts d or updates the label of the existing row.
func (r *MarkedDateRepo) Upsert(ctx context.Context, d MarkedDate) error {
	if d.ID == "" {
		d.ID = MarkedDateID(d.Kind, d.Day)
	}
	if d.Source == "" {
		d.Source = SourceManual
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO marked_dates(id, day, kind, label, source) VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET label=excluded.label, source=excluded.source;
	`, d.ID, d.Day, string(d.Kind), d.Label, d.Source)
	return err
}

// InsertIfAbsent inserts d and reports whether a new row was written.
func (r *MarkedDateRepo) InsertIfAbsent(ctx context.Context, d MarkedDate) (bool, error) {
	if d.ID == "" {
		d.ID = MarkedDateID(d.Kind, d.Day)
	}
	if d.Source == "" {
		d.Source = SourceManual
	}
	res, err := r.db.ExecContext(ctx, `
	INSERT INTO marked_dates(id, day, kind, label, source) VALUES (?, ?, ?, ?, ?)
	ON CONFLICT DO NOTHING;
	`, d.ID, d.Day, string(d.Kind), d.Label, d.Source)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes the (kind, day) row and reports whether it existed.
func (r *MarkedDateRepo) Delete(ctx context.Context, kind Kind, day string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM marked_dates WHERE kind = ? AND day = ?`, string(kind), day)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Get returns the (kind, day) row or nil when absent.
func (r *MarkedDateRepo) Get(ctx context.Context, kind Kind, day string) (*MarkedDate, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, day, kind, label, source, created_at FROM marked_dates WHERE kind = ? AND day = ?
	`, string(kind), day)
	d, err := scanMarkedDate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

// List returns rows of kind ordered by day. An empty kind lists every row.
func (r *MarkedDateRepo) List(ctx context.Context, kind Kind) ([]MarkedDate, error) {
	query := `SELECT id, day, kind, label, source, created_at FROM marked_dates`
	var args []any
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, string(kind))
	}
	query += ` ORDER BY day, kind`
	return r.query(ctx, query, args...)
}

// Between returns rows of kind with from <= day < to.
func (r *MarkedDateRepo) Between(ctx context.Context, kind Kind, from, to string) ([]MarkedDate, error) {
	return r.query(ctx, `
	SELECT id, day, kind, label, source, created_at FROM marked_dates
	WHERE kind = ? AND day >= ? AND day < ? ORDER BY day
	`, string(kind), from, to)
}

func (r *MarkedDateRepo) query(ctx context.Context, query string, args ...any) ([]MarkedDate, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []MarkedDate
	for rows.Next() {
		d, err := scanMarkedDate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMarkedDate(s scanner) (MarkedDate, error) {
	var d MarkedDate
	var kind string
	if err := s.Scan(&d.ID, &d.Day, &kind, &d.Label, &d.Source, &d.CreatedAt); err != nil {
		return MarkedDate{}, err
	}
	d.Kind = Kind(kind)
	return d, nil
}

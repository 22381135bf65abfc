package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/tratlus/internal/db"
	"github.com/alexanderramin/tratlus/internal/domain"
)

// SQLiteProfileRepo implements ProfileRepo using a SQLite database.
type SQLiteProfileRepo struct {
	db db.DBTX
}

// NewSQLiteProfileRepo creates a new SQLiteProfileRepo.
func NewSQLiteProfileRepo(conn db.DBTX) *SQLiteProfileRepo {
	return &SQLiteProfileRepo{db: conn}
}

const profileColumns = `id, scores, progress, swiped_ids, trip, created_at, updated_at`

func (r *SQLiteProfileRepo) Upsert(ctx context.Context, p *domain.PreferenceProfile) error {
	scores, err := encodeJSON(orEmptyMap(p.Scores))
	if err != nil {
		return err
	}
	progress, err := encodeJSON(orEmptyProgress(p.Progress))
	if err != nil {
		return err
	}
	swiped := p.SwipedIDs
	if swiped == nil {
		swiped = []string{}
	}
	swipedJSON, err := encodeJSON(swiped)
	if err != nil {
		return err
	}
	var trip any
	if p.Trip != nil {
		if trip, err = encodeJSON(p.Trip); err != nil {
			return err
		}
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO preference_profiles (`+profileColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   scores = excluded.scores,
		   progress = excluded.progress,
		   swiped_ids = excluded.swiped_ids,
		   trip = excluded.trip,
		   updated_at = excluded.updated_at`,
		p.ID, scores, progress, swipedJSON, trip, formatTime(p.CreatedAt), formatTime(p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("upserting preference profile: %w", err)
	}
	return nil
}

func (r *SQLiteProfileRepo) GetByID(ctx context.Context, id string) (*domain.PreferenceProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM preference_profiles WHERE id = ?`, id)
	return scanProfile(row)
}

func (r *SQLiteProfileRepo) Latest(ctx context.Context) (*domain.PreferenceProfile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM preference_profiles ORDER BY updated_at DESC, id LIMIT 1`)
	return scanProfile(row)
}

func (r *SQLiteProfileRepo) List(ctx context.Context) ([]*domain.PreferenceProfile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+profileColumns+` FROM preference_profiles ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing preference profiles: %w", err)
	}
	defer rows.Close()

	var out []*domain.PreferenceProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *SQLiteProfileRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM preference_profiles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting preference profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("preference profile %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanProfile(s scanner) (*domain.PreferenceProfile, error) {
	var p domain.PreferenceProfile
	var scores, progress, swiped string
	var trip sql.NullString
	var created, updated string

	if err := s.Scan(&p.ID, &scores, &progress, &swiped, &trip, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("preference profile: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning preference profile: %w", err)
	}
	for _, col := range []struct {
		raw string
		dst any
	}{{scores, &p.Scores}, {progress, &p.Progress}, {swiped, &p.SwipedIDs}} {
		if _, err := decodeNullableJSON(sql.NullString{String: col.raw, Valid: true}, col.dst); err != nil {
			return nil, fmt.Errorf("preference profile %s: %w", p.ID, err)
		}
	}
	var t domain.TripPreferences
	ok, err := decodeNullableJSON(trip, &t)
	if err != nil {
		return nil, fmt.Errorf("preference profile %s: %w", p.ID, err)
	}
	if ok {
		p.Trip = &t
	}
	p.CreatedAt = parseTime(created)
	p.UpdatedAt = parseTime(updated)
	return &p, nil
}

func orEmptyMap(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return m
}

func orEmptyProgress(m map[domain.CardCategory]int) map[domain.CardCategory]int {
	if m == nil {
		return map[domain.CardCategory]int{}
	}
	return m
}

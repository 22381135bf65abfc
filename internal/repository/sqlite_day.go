package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tratlus/internal/db"
	"github.com/alexanderramin/tratlus/internal/domain"
)

// SQLiteDayRepo implements DayRepo using a SQLite database.
type SQLiteDayRepo struct {
	db db.DBTX
}

// NewSQLiteDayRepo creates a new SQLiteDayRepo. Replace issues several
// statements, so pass a transaction when atomicity matters.
func NewSQLiteDayRepo(conn db.DBTX) *SQLiteDayRepo {
	return &SQLiteDayRepo{db: conn}
}

const dayColumns = `category, title, location, notes, start_min, duration_min`

func (r *SQLiteDayRepo) Get(ctx context.Context, dateKey string) ([]domain.ActivityBlock, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+dayColumns+` FROM day_blocks WHERE date_key = ? ORDER BY position`, dateKey)
	if err != nil {
		return nil, fmt.Errorf("querying day %s: %w", dateKey, err)
	}
	defer rows.Close()

	blocks := []domain.ActivityBlock{}
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating day %s: %w", dateKey, err)
	}
	return blocks, nil
}

func (r *SQLiteDayRepo) Replace(ctx context.Context, dateKey string, blocks []domain.ActivityBlock) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM day_blocks WHERE date_key = ?`, dateKey); err != nil {
		return fmt.Errorf("clearing day %s: %w", dateKey, err)
	}
	now := formatTime(nowUTC())
	for i, b := range blocks {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO day_blocks (date_key, position, `+dayColumns+`, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			dateKey, i, string(b.Category), b.Title, b.Location, b.Notes, b.StartMin, b.DurationMin, now)
		if err != nil {
			return fmt.Errorf("inserting block %d of %s: %w", i, dateKey, err)
		}
	}
	return nil
}

func (r *SQLiteDayRepo) ListAll(ctx context.Context) (map[string][]domain.ActivityBlock, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date_key, `+dayColumns+` FROM day_blocks ORDER BY date_key, position`)
	if err != nil {
		return nil, fmt.Errorf("listing days: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.ActivityBlock)
	for rows.Next() {
		var key string
		var b domain.ActivityBlock
		var category string
		if err := rows.Scan(&key, &category, &b.Title, &b.Location, &b.Notes, &b.StartMin, &b.DurationMin); err != nil {
			return nil, fmt.Errorf("scanning block: %w", err)
		}
		b.Category = domain.Category(category)
		out[key] = append(out[key], b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating days: %w", err)
	}
	return out, nil
}

func (r *SQLiteDayRepo) ListKeys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT date_key FROM day_blocks ORDER BY date_key`)
	if err != nil {
		return nil, fmt.Errorf("listing day keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning day key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func scanBlock(s scanner) (domain.ActivityBlock, error) {
	var b domain.ActivityBlock
	var category string
	if err := s.Scan(&category, &b.Title, &b.Location, &b.Notes, &b.StartMin, &b.DurationMin); err != nil {
		return domain.ActivityBlock{}, fmt.Errorf("scanning block: %w", err)
	}
	b.Category = domain.Category(category)
	return b, nil
}

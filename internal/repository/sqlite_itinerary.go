package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/tratlus/internal/db"
	"github.com/alexanderramin/tratlus/internal/domain"
)

// SQLiteItineraryRepo implements ItineraryRepo using a SQLite database.
type SQLiteItineraryRepo struct {
	db db.DBTX
}

// NewSQLiteItineraryRepo creates a new SQLiteItineraryRepo.
func NewSQLiteItineraryRepo(conn db.DBTX) *SQLiteItineraryRepo {
	return &SQLiteItineraryRepo{db: conn}
}

const itineraryColumns = `id, profile_id, body, nearby, created_at, updated_at`

func (r *SQLiteItineraryRepo) Create(ctx context.Context, s *domain.SavedItinerary) error {
	body, nearby, err := encodeItinerary(s)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO itineraries (id, profile_id, destination, start_date, end_date, total_cost, body, nearby, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, nullIfEmpty(s.ProfileID), s.Itinerary.Destination,
		s.Itinerary.TripDates.StartDate, s.Itinerary.TripDates.EndDate, s.Itinerary.TotalEstimatedCost,
		body, nearby, formatTime(s.CreatedAt), formatTime(s.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting itinerary: %w", err)
	}
	return nil
}

func (r *SQLiteItineraryRepo) GetByID(ctx context.Context, id string) (*domain.SavedItinerary, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+itineraryColumns+` FROM itineraries WHERE id = ?`, id)
	return scanItinerary(row)
}

func (r *SQLiteItineraryRepo) Resolve(ctx context.Context, idOrPrefix string) (*domain.SavedItinerary, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return nil, fmt.Errorf("itinerary: %w", ErrNotFound)
	}
	if s, err := r.GetByID(ctx, idOrPrefix); err == nil {
		return s, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+itineraryColumns+` FROM itineraries WHERE id LIKE ? || '%' ESCAPE '\' LIMIT 2`,
		escapeLike(idOrPrefix))
	if err != nil {
		return nil, fmt.Errorf("resolving itinerary %q: %w", idOrPrefix, err)
	}
	defer rows.Close()

	var matches []*domain.SavedItinerary
	for rows.Next() {
		s, err := scanItinerary(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("resolving itinerary %q: %w", idOrPrefix, err)
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("itinerary %q: %w", idOrPrefix, ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("itinerary %q: %w", idOrPrefix, ErrAmbiguousID)
	}
}

func (r *SQLiteItineraryRepo) List(ctx context.Context) ([]*domain.SavedItinerary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+itineraryColumns+` FROM itineraries ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing itineraries: %w", err)
	}
	defer rows.Close()

	var out []*domain.SavedItinerary
	for rows.Next() {
		s, err := scanItinerary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteItineraryRepo) Update(ctx context.Context, s *domain.SavedItinerary) error {
	body, nearby, err := encodeItinerary(s)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE itineraries SET profile_id = ?, destination = ?, start_date = ?, end_date = ?,
		   total_cost = ?, body = ?, nearby = ?, updated_at = ?
		 WHERE id = ?`,
		nullIfEmpty(s.ProfileID), s.Itinerary.Destination,
		s.Itinerary.TripDates.StartDate, s.Itinerary.TripDates.EndDate, s.Itinerary.TotalEstimatedCost,
		body, nearby, formatTime(s.UpdatedAt), s.ID)
	if err != nil {
		return fmt.Errorf("updating itinerary: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("itinerary %s: %w", s.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteItineraryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM itineraries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting itinerary: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("itinerary %s: %w", id, ErrNotFound)
	}
	return nil
}

func encodeItinerary(s *domain.SavedItinerary) (body, nearby string, err error) {
	if body, err = encodeJSON(s.Itinerary); err != nil {
		return "", "", err
	}
	places := s.Nearby
	if places == nil {
		places = []domain.Activity{}
	}
	if nearby, err = encodeJSON(places); err != nil {
		return "", "", err
	}
	return body, nearby, nil
}

func scanItinerary(s scanner) (*domain.SavedItinerary, error) {
	var out domain.SavedItinerary
	var profileID sql.NullString
	var body, nearby, created, updated string

	if err := s.Scan(&out.ID, &profileID, &body, &nearby, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("itinerary: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning itinerary: %w", err)
	}
	out.ProfileID = profileID.String
	if _, err := decodeNullableJSON(sql.NullString{String: body, Valid: true}, &out.Itinerary); err != nil {
		return nil, fmt.Errorf("itinerary %s body: %w", out.ID, err)
	}
	if _, err := decodeNullableJSON(sql.NullString{String: nearby, Valid: true}, &out.Nearby); err != nil {
		return nil, fmt.Errorf("itinerary %s nearby: %w", out.ID, err)
	}
	out.CreatedAt = parseTime(created)
	out.UpdatedAt = parseTime(updated)
	return &out, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

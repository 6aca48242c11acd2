package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/shelfview/internal/layout"
)

// LayoutSummary describes a stored layout without its floors.
type LayoutSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Floors    int       `json:"floors"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LayoutRecord is a stored layout. Its occupancy list is kept separately,
// see Occupied.
type LayoutRecord struct {
	LayoutSummary
	Layout *layout.Layout `json:"layout"`
}

// document is the stored form of a layout: name and floors only.
type document struct {
	Name   string         `yaml:"name"`
	Floors []layout.Floor `yaml:"floors"`
}

func encodeLayout(l *layout.Layout) (string, error) {
	data, err := yaml.Marshal(document{Name: l.Name, Floors: l.Floors})
	if err != nil {
		return "", fmt.Errorf("encoding layout: %w", err)
	}
	return string(data), nil
}

// CreateLayout stores a new layout and its occupancy list.
func (s *Store) CreateLayout(ctx context.Context, l *layout.Layout) (uuid.UUID, error) {
	doc, err := encodeLayout(l)
	if err != nil {
		return uuid.Nil, err
	}
	id := uuid.New()
	now := time.Now().UnixMilli()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
        INSERT INTO layouts (id, name, document, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?)
    `, id.String(), l.Name, doc, now, now); err != nil {
		return uuid.Nil, fmt.Errorf("insert layout: %w", err)
	}
	if err := replaceOccupied(ctx, tx, id, l.Occupied); err != nil {
		return uuid.Nil, err
	}
	if err := tx.Commit(); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// UpdateLayout replaces the name and floors of a stored layout. The
// occupancy list is left alone.
func (s *Store) UpdateLayout(ctx context.Context, id uuid.UUID, l *layout.Layout) error {
	doc, err := encodeLayout(l)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
        UPDATE layouts SET name = ?, document = ?, updated_at = ?
        WHERE id = ?
    `, l.Name, doc, time.Now().UnixMilli(), id.String())
	if err != nil {
		return fmt.Errorf("update layout: %w", err)
	}
	return expectOne(res)
}

// GetLayout loads a layout with its occupancy list.
func (s *Store) GetLayout(ctx context.Context, id uuid.UUID) (*LayoutRecord, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT name, document, created_at, updated_at
        FROM layouts
        WHERE id = ?
    `, id.String())

	var (
		rec              LayoutRecord
		doc              string
		created, updated int64
	)
	if err := row.Scan(&rec.Name, &doc, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("layout %s: %w", id, ErrNotFound)
		}
		return nil, err
	}

	l, err := layout.Parse([]byte(doc))
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", id, err)
	}
	occ, err := s.Occupied(ctx, id)
	if err != nil {
		return nil, err
	}
	l.Occupied = occ

	rec.ID = id
	rec.Floors = len(l.Floors)
	rec.CreatedAt = time.UnixMilli(created).UTC()
	rec.UpdatedAt = time.UnixMilli(updated).UTC()
	rec.Layout = l
	return &rec, nil
}

// ListLayouts returns every stored layout, oldest first.
func (s *Store) ListLayouts(ctx context.Context) ([]LayoutSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, name, document, created_at, updated_at
        FROM layouts
        ORDER BY created_at, id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LayoutSummary
	for rows.Next() {
		var (
			sum              LayoutSummary
			rawID, doc       string
			created, updated int64
		)
		if err := rows.Scan(&rawID, &sum.Name, &doc, &created, &updated); err != nil {
			return nil, err
		}
		if sum.ID, err = uuid.Parse(rawID); err != nil {
			return nil, fmt.Errorf("layout id %q: %w", rawID, err)
		}
		if l, err := layout.Parse([]byte(doc)); err == nil {
			sum.Floors = len(l.Floors)
		}
		sum.CreatedAt = time.UnixMilli(created).UTC()
		sum.UpdatedAt = time.UnixMilli(updated).UTC()
		out = append(out, sum)
	}
	return out, rows.Err()
}

// DeleteLayout removes a layout together with its occupancy list and
// selection log.
func (s *Store) DeleteLayout(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM layouts WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete layout: %w", err)
	}
	return expectOne(res)
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

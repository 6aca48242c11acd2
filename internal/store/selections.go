package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/Faultbox/shelfview/internal/shelf"
)

// Selection is one entry of the selection log.
type Selection struct {
	ID        ulid.ULID      `json:"id"`
	LayoutID  uuid.UUID      `json:"layout_id"`
	SessionID string         `json:"session_id"`
	Source    string         `json:"source"`
	Location  shelf.Location `json:"location"`
	At        time.Time      `json:"at"`
}

// RecordSelection appends to the selection log. A zero ID or time is filled
// in.
func (s *Store) RecordSelection(ctx context.Context, sel *Selection) error {
	if sel.At.IsZero() {
		sel.At = time.Now().UTC()
	}
	if sel.ID == (ulid.ULID{}) {
		sel.ID = ulid.MustNew(ulid.Timestamp(sel.At), ulid.DefaultEntropy())
	}
	loc := sel.Location
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO selections (id, layout_id, session_id, source, floor, group_id, group_row, group_column, group_depth, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `, sel.ID.String(), sel.LayoutID.String(), sel.SessionID, sel.Source,
		loc.Floor, loc.GroupID, loc.GroupRow, loc.GroupColumn, nullDepth(loc.GroupDepth),
		sel.At.UnixMilli())
	if err != nil {
		return fmt.Errorf("insert selection: %w", err)
	}
	return nil
}

// Selections returns the newest entries of a layout's selection log, newest
// first. limit <= 0 returns everything.
func (s *Store) Selections(ctx context.Context, layoutID uuid.UUID, limit int) ([]Selection, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, session_id, source, floor, group_id, group_row, group_column, group_depth, created_at
        FROM selections
        WHERE layout_id = ?
        ORDER BY id DESC
        LIMIT ?
    `, layoutID.String(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Selection{}
	for rows.Next() {
		var (
			sel   Selection
			rawID string
			depth sql.NullInt64
			at    int64
		)
		if err := rows.Scan(&rawID, &sel.SessionID, &sel.Source,
			&sel.Location.Floor, &sel.Location.GroupID, &sel.Location.GroupRow, &sel.Location.GroupColumn,
			&depth, &at); err != nil {
			return nil, err
		}
		if sel.ID, err = ulid.ParseStrict(rawID); err != nil {
			return nil, fmt.Errorf("selection id %q: %w", rawID, err)
		}
		sel.LayoutID = layoutID
		sel.Location.GroupDepth = depthPtr(depth)
		sel.At = time.UnixMilli(at).UTC()
		out = append(out, sel)
	}
	return out, rows.Err()
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/Faultbox/shelfview/internal/shelf"
)

// Occupied returns the occupancy list of a layout in insertion order.
func (s *Store) Occupied(ctx context.Context, layoutID uuid.UUID) ([]shelf.Location, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT floor, group_id, group_row, group_column, group_depth
        FROM occupied
        WHERE layout_id = ?
        ORDER BY rowid
    `, layoutID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []shelf.Location{}
	for rows.Next() {
		var (
			loc   shelf.Location
			depth sql.NullInt64
		)
		if err := rows.Scan(&loc.Floor, &loc.GroupID, &loc.GroupRow, &loc.GroupColumn, &depth); err != nil {
			return nil, err
		}
		loc.GroupDepth = depthPtr(depth)
		out = append(out, loc)
	}
	return out, rows.Err()
}

// SetOccupied replaces the occupancy list of a layout.
func (s *Store) SetOccupied(ctx context.Context, layoutID uuid.UUID, list []shelf.Location) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM layouts WHERE id = ?`, layoutID.String()).Scan(&exists)
	if err != nil {
		return err
	}
	if exists == 0 {
		return fmt.Errorf("layout %s: %w", layoutID, ErrNotFound)
	}

	if err := replaceOccupied(ctx, tx, layoutID, list); err != nil {
		return err
	}
	return tx.Commit()
}

func replaceOccupied(ctx context.Context, tx *sql.Tx, layoutID uuid.UUID, list []shelf.Location) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM occupied WHERE layout_id = ?`, layoutID.String()); err != nil {
		return fmt.Errorf("clear occupied: %w", err)
	}
	for _, loc := range list {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO occupied (layout_id, floor, group_id, group_row, group_column, group_depth)
            VALUES (?, ?, ?, ?, ?, ?)
        `, layoutID.String(), loc.Floor, loc.GroupID, loc.GroupRow, loc.GroupColumn, nullDepth(loc.GroupDepth)); err != nil {
			return fmt.Errorf("insert occupied %v: %w", loc, err)
		}
	}
	return nil
}

package watchlist

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// PromoteEntry marks a queued entry as watching and records its day
// assignment in one transaction. Returns false when the entry was not in
// the queued state (nothing is mutated in that case).
func (s *Store) PromoteEntry(ctx context.Context, entryID int64, weekday int) (bool, error) {
	promoted := false
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(
			ctx,
			`UPDATE watchlist_entries SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
			StatusWatching,
			time.Now().UTC().Format(time.RFC3339Nano),
			entryID,
			StatusQueued,
		)
		if err != nil {
			return fmt.Errorf("promote entry: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return nil
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO day_assignments (entry_id, weekday, created_at) VALUES (?, ?, ?)`,
			entryID,
			weekday,
			time.Now().UTC().Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("insert assignment: %w", err)
		}
		promoted = true
		return nil
	})
	return promoted, err
}

// DemoteEntry clears a watching entry's assignments and returns it to the
// queue. Returns false when the entry was not watching.
func (s *Store) DemoteEntry(ctx context.Context, entryID int64) (bool, error) {
	demoted := false
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(
			ctx,
			`UPDATE watchlist_entries SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
			StatusQueued,
			time.Now().UTC().Format(time.RFC3339Nano),
			entryID,
			StatusWatching,
		)
		if err != nil {
			return fmt.Errorf("demote entry: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return nil
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM day_assignments WHERE entry_id = ?`, entryID); err != nil {
			return fmt.Errorf("clear assignments: %w", err)
		}
		demoted = true
		return nil
	})
	return demoted, err
}

// FinishEntry clears all assignments and moves the entry to the target
// status (finished for ended shows, queued for ongoing ones waiting on new
// episodes). Assignment cleanup runs regardless of the entry's prior status.
func (s *Store) FinishEntry(ctx context.Context, entryID int64, target Status) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM day_assignments WHERE entry_id = ?`, entryID); err != nil {
			return fmt.Errorf("clear assignments: %w", err)
		}
		if _, err := tx.ExecContext(
			ctx,
			`UPDATE watchlist_entries SET status = ?, updated_at = ? WHERE id = ?`,
			target,
			time.Now().UTC().Format(time.RFC3339Nano),
			entryID,
		); err != nil {
			return fmt.Errorf("finish entry: %w", err)
		}
		return nil
	})
}

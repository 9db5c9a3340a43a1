package watchlist

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

func (s *Store) attachAssignments(ctx context.Context, entry *Entry) error {
	if entry == nil {
		return nil
	}
	assignments, err := s.AssignmentsForEntry(ctx, entry.ID)
	if err != nil {
		return err
	}
	entry.Assignments = assignments
	return nil
}

// AssignmentsForEntry returns an entry's day assignments ordered by weekday.
func (s *Store) AssignmentsForEntry(ctx context.Context, entryID int64) ([]DayAssignment, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, entry_id, weekday, created_at FROM day_assignments WHERE entry_id = ? ORDER BY weekday`,
		entryID,
	)
	if err != nil {
		return nil, fmt.Errorf("query assignments: %w", err)
	}
	defer rows.Close()
	return scanAssignments(rows)
}

// WatchingAssignment pairs a day assignment with the watching entry that
// holds it, carrying everything capacity scoring and generation need.
type WatchingAssignment struct {
	Assignment DayAssignment
	Entry      *Entry
}

// WatchingAssignments returns all assignments held by watching entries,
// optionally filtered to one weekday (pass -1 for all). Results are ordered
// by entry priority then entry id so generation output is deterministic.
func (s *Store) WatchingAssignments(ctx context.Context, weekday int) ([]WatchingAssignment, error) {
	query := `SELECT a.id, a.entry_id, a.weekday, a.created_at, ` + prefixedEntryColumns("e") + `
        FROM day_assignments a
        JOIN watchlist_entries e ON e.id = a.entry_id
        WHERE e.status = ?`
	args := []any{StatusWatching}
	if weekday >= 0 {
		query += ` AND a.weekday = ?`
		args = append(args, weekday)
	}
	query += ` ORDER BY e.priority, e.id, a.weekday`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query watching assignments: %w", err)
	}
	defer rows.Close()

	var results []WatchingAssignment
	for rows.Next() {
		var assignment DayAssignment
		var createdRaw sql.NullString
		var row entryRow
		dest := []any{&assignment.ID, &assignment.EntryID, &assignment.Weekday, &createdRaw}
		dest = append(dest, row.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		if created, err := parseTimeString(createdRaw.String); err == nil {
			assignment.CreatedAt = created
		}
		results = append(results, WatchingAssignment{Assignment: assignment, Entry: row.entry()})
	}
	return results, rows.Err()
}

// ReplaceAssignments swaps an entry's full assignment set for the given
// weekdays inside one transaction.
func (s *Store) ReplaceAssignments(ctx context.Context, entryID int64, weekdays []int) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return replaceAssignmentsTx(ctx, tx, entryID, weekdays)
	})
}

func replaceAssignmentsTx(ctx context.Context, tx *sql.Tx, entryID int64, weekdays []int) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM day_assignments WHERE entry_id = ?`, entryID); err != nil {
		return fmt.Errorf("clear assignments: %w", err)
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	for _, weekday := range weekdays {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO day_assignments (entry_id, weekday, created_at) VALUES (?, ?, ?)`,
			entryID,
			weekday,
			timestamp,
		); err != nil {
			return fmt.Errorf("insert assignment: %w", err)
		}
	}
	return nil
}

func scanAssignments(rows *sql.Rows) ([]DayAssignment, error) {
	var assignments []DayAssignment
	for rows.Next() {
		var assignment DayAssignment
		var createdRaw sql.NullString
		if err := rows.Scan(&assignment.ID, &assignment.EntryID, &assignment.Weekday, &createdRaw); err != nil {
			return nil, err
		}
		if created, err := parseTimeString(createdRaw.String); err == nil {
			assignment.CreatedAt = created
		}
		assignments = append(assignments, assignment)
	}
	return assignments, rows.Err()
}

func prefixedEntryColumns(alias string) string {
	return alias + ".id, " + alias + ".show_id, " + alias + ".title, " + alias + ".genres_json, " +
		alias + ".runtime_minutes, " + alias + ".total_seasons, " + alias + ".total_episodes, " +
		alias + ".lifecycle, " + alias + ".status, " + alias + ".priority, " +
		alias + ".current_season, " + alias + ".current_episode, " +
		alias + ".start_season, " + alias + ".start_episode, " +
		alias + ".created_at, " + alias + ".updated_at"
}

package watchlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"slate/internal/catalog"
)

// NewEntryParams carries the catalog snapshot and starting position for a
// newly followed show.
type NewEntryParams struct {
	Show         *catalog.Show
	Priority     int
	StartSeason  int
	StartEpisode int
}

// Follow inserts a new queued entry for a show. At most one entry may exist
// per show; following an already-followed show fails.
func (s *Store) Follow(ctx context.Context, params NewEntryParams) (*Entry, error) {
	if params.Show == nil {
		return nil, errors.New("show is nil")
	}
	startSeason := params.StartSeason
	if startSeason < 1 {
		startSeason = 1
	}
	startEpisode := params.StartEpisode
	if startEpisode < 1 {
		startEpisode = 1
	}

	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO watchlist_entries (
            show_id, title, genres_json, runtime_minutes, total_seasons, total_episodes,
            lifecycle, status, priority, current_season, current_episode,
            start_season, start_episode, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		params.Show.ID,
		params.Show.Title,
		encodeGenres(params.Show.Genres),
		params.Show.RuntimeMinutes,
		params.Show.TotalSeasons,
		params.Show.TotalEpisodes,
		string(params.Show.Lifecycle),
		StatusQueued,
		params.Priority,
		startSeason,
		startEpisode,
		startSeason,
		startEpisode,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

// Unfollow deletes an entry and, via foreign keys, its assignments and any
// scheduled episodes.
func (s *Store) Unfollow(ctx context.Context, id int64) (bool, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM watchlist_entries WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// GetByID fetches an entry by identifier, including its day assignments.
func (s *Store) GetByID(ctx context.Context, id int64) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM watchlist_entries WHERE id = ?`, id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	if err := s.attachAssignments(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// GetByShowID fetches an entry by its catalog show identifier.
func (s *Store) GetByShowID(ctx context.Context, showID int64) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM watchlist_entries WHERE show_id = ?`, showID)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry by show: %w", err)
	}
	if err := s.attachAssignments(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns entries filtered by status set (or all entries when no status
// is provided), ordered by priority then id.
func (s *Store) List(ctx context.Context, statuses ...Status) ([]*Entry, error) {
	var (
		rows *sql.Rows
		err  error
	)

	baseQuery := `SELECT ` + entryColumns + ` FROM watchlist_entries`
	orderClause := ` ORDER BY priority, id`

	if len(statuses) == 0 {
		rows, err = s.db.QueryContext(ctx, baseQuery+orderClause)
	} else {
		placeholders := makePlaceholders(len(statuses))
		args := make([]any, len(statuses))
		for i, status := range statuses {
			args[i] = status
		}
		query := baseQuery + ` WHERE status IN (` + placeholders + `)` + orderClause
		rows, err = s.db.QueryContext(ctx, query, args...)
	}
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if err := s.attachAssignments(ctx, entry); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// UpdateSnapshot refreshes the catalog metadata columns for an entry.
func (s *Store) UpdateSnapshot(ctx context.Context, id int64, show *catalog.Show) error {
	if show == nil {
		return errors.New("show is nil")
	}
	_, err := s.execWithRetry(
		ctx,
		`UPDATE watchlist_entries
         SET title = ?, genres_json = ?, runtime_minutes = ?, total_seasons = ?,
             total_episodes = ?, lifecycle = ?, updated_at = ?
         WHERE id = ?`,
		show.Title,
		encodeGenres(show.Genres),
		show.RuntimeMinutes,
		show.TotalSeasons,
		show.TotalEpisodes,
		string(show.Lifecycle),
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return fmt.Errorf("update snapshot: %w", err)
	}
	return nil
}

// UpdatePriority reorders an entry within the queue.
func (s *Store) UpdatePriority(ctx context.Context, id int64, priority int) error {
	_, err := s.execWithRetry(
		ctx,
		`UPDATE watchlist_entries SET priority = ?, updated_at = ? WHERE id = ?`,
		priority,
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return fmt.Errorf("update priority: %w", err)
	}
	return nil
}

// UpdateStatus sets an entry's status without touching assignments. Used for
// the explicit drop action; lifecycle transitions go through the dedicated
// transactional methods.
func (s *Store) UpdateStatus(ctx context.Context, id int64, status Status) error {
	_, err := s.execWithRetry(
		ctx,
		`UPDATE watchlist_entries SET status = ?, updated_at = ? WHERE id = ?`,
		status,
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	return nil
}

// UpdatePosition moves an entry's next-episode pointer.
func (s *Store) UpdatePosition(ctx context.Context, id int64, position Position) error {
	_, err := s.execWithRetry(
		ctx,
		`UPDATE watchlist_entries SET current_season = ?, current_episode = ?, updated_at = ? WHERE id = ?`,
		position.Season,
		position.Episode,
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return fmt.Errorf("update position: %w", err)
	}
	return nil
}

// Stats returns a count of entries grouped by status.
func (s *Store) Stats(ctx context.Context) (map[Status]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(1) FROM watchlist_entries GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("watchlist stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[Status]int)
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

const entryColumns = "id, show_id, title, genres_json, runtime_minutes, total_seasons, total_episodes, lifecycle, status, priority, current_season, current_episode, start_season, start_episode, created_at, updated_at"

// entryRow holds raw column values while scanning; entry() converts them to
// the exported model.
type entryRow struct {
	id             int64
	showID         int64
	title          string
	genresRaw      sql.NullString
	runtimeMinutes int
	totalSeasons   int
	totalEpisodes  int
	lifecycle      string
	statusStr      string
	priority       int
	currentSeason  int
	currentEpisode int
	startSeason    int
	startEpisode   int
	createdRaw     sql.NullString
	updatedRaw     sql.NullString
}

func (r *entryRow) dest() []any {
	return []any{
		&r.id,
		&r.showID,
		&r.title,
		&r.genresRaw,
		&r.runtimeMinutes,
		&r.totalSeasons,
		&r.totalEpisodes,
		&r.lifecycle,
		&r.statusStr,
		&r.priority,
		&r.currentSeason,
		&r.currentEpisode,
		&r.startSeason,
		&r.startEpisode,
		&r.createdRaw,
		&r.updatedRaw,
	}
}

func (r *entryRow) entry() *Entry {
	entry := &Entry{
		ID:             r.id,
		ShowID:         r.showID,
		Title:          r.title,
		Genres:         decodeGenres(r.genresRaw),
		RuntimeMinutes: r.runtimeMinutes,
		TotalSeasons:   r.totalSeasons,
		TotalEpisodes:  r.totalEpisodes,
		Lifecycle:      catalog.Lifecycle(r.lifecycle),
		Status:         Status(r.statusStr),
		Priority:       r.priority,
		CurrentSeason:  r.currentSeason,
		CurrentEpisode: r.currentEpisode,
		StartSeason:    r.startSeason,
		StartEpisode:   r.startEpisode,
	}
	if created, err := parseTimeString(r.createdRaw.String); err == nil {
		entry.CreatedAt = created
	}
	if updated, err := parseTimeString(r.updatedRaw.String); err == nil {
		entry.UpdatedAt = updated
	}
	return entry
}

func scanEntry(scanner interface{ Scan(dest ...any) error }) (*Entry, error) {
	var row entryRow
	if err := scanner.Scan(row.dest()...); err != nil {
		return nil, err
	}
	return row.entry(), nil
}

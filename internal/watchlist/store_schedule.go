package watchlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// RebuildDay upserts the ScheduleDay for a date and replaces its episode
// list wholesale, committing the advanced entry positions in the same
// transaction. Episodes are stored in slice order.
func (s *Store) RebuildDay(ctx context.Context, date time.Time, plannedMinutes int, episodes []ScheduledEpisode, positions map[int64]Position) (*ScheduleDay, error) {
	dateKey := date.Format(dateLayout)
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		now := time.Now().UTC().Format(time.RFC3339Nano)
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO schedule_days (date, planned_minutes, created_at, updated_at)
             VALUES (?, ?, ?, ?)
             ON CONFLICT(date) DO UPDATE SET planned_minutes = excluded.planned_minutes, updated_at = excluded.updated_at`,
			dateKey,
			plannedMinutes,
			now,
			now,
		); err != nil {
			return fmt.Errorf("upsert schedule day: %w", err)
		}

		var dayID int64
		if err := tx.QueryRowContext(ctx, `SELECT id FROM schedule_days WHERE date = ?`, dateKey).Scan(&dayID); err != nil {
			return fmt.Errorf("load schedule day id: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM scheduled_episodes WHERE day_id = ?`, dayID); err != nil {
			return fmt.Errorf("clear scheduled episodes: %w", err)
		}

		for i, ep := range episodes {
			status := ep.Status
			if status == "" {
				status = EpisodePending
			}
			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO scheduled_episodes (day_id, entry_id, season, episode, runtime_minutes, position, status)
                 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				dayID,
				ep.EntryID,
				ep.Season,
				ep.Episode,
				ep.RuntimeMinutes,
				i,
				status,
			); err != nil {
				return fmt.Errorf("insert scheduled episode: %w", err)
			}
		}

		for entryID, position := range positions {
			if _, err := tx.ExecContext(
				ctx,
				`UPDATE watchlist_entries SET current_season = ?, current_episode = ?, updated_at = ? WHERE id = ?`,
				position.Season,
				position.Episode,
				now,
				entryID,
			); err != nil {
				return fmt.Errorf("advance entry position: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetDay(ctx, date)
}

// GetDay fetches a schedule day by date with its ordered episode list.
// Returns nil when no schedule exists for the date.
func (s *Store) GetDay(ctx context.Context, date time.Time) (*ScheduleDay, error) {
	dateKey := date.Format(dateLayout)
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, date, planned_minutes, created_at, updated_at FROM schedule_days WHERE date = ?`,
		dateKey,
	)
	day, err := scanScheduleDay(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get schedule day: %w", err)
	}
	if err := s.attachEpisodes(ctx, day); err != nil {
		return nil, err
	}
	return day, nil
}

// Days returns the schedule days in [start, end] that have been generated,
// ordered by date, episodes included.
func (s *Store) Days(ctx context.Context, start, end time.Time) ([]*ScheduleDay, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, date, planned_minutes, created_at, updated_at FROM schedule_days
         WHERE date >= ? AND date <= ? ORDER BY date`,
		start.Format(dateLayout),
		end.Format(dateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("query schedule days: %w", err)
	}
	defer rows.Close()

	var days []*ScheduleDay
	for rows.Next() {
		day, err := scanScheduleDay(rows)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, day := range days {
		if err := s.attachEpisodes(ctx, day); err != nil {
			return nil, err
		}
	}
	return days, nil
}

// SetEpisodeStatus records a check-in on a scheduled episode. Only the
// status column is mutable after generation.
func (s *Store) SetEpisodeStatus(ctx context.Context, episodeID int64, status EpisodeStatus) (bool, error) {
	res, err := s.execWithRetry(
		ctx,
		`UPDATE scheduled_episodes SET status = ? WHERE id = ?`,
		status,
		episodeID,
	)
	if err != nil {
		return false, fmt.Errorf("set episode status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

func (s *Store) attachEpisodes(ctx context.Context, day *ScheduleDay) error {
	if day == nil {
		return nil
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT ep.id, ep.day_id, ep.entry_id, e.show_id, e.title,
                ep.season, ep.episode, ep.runtime_minutes, ep.position, ep.status
         FROM scheduled_episodes ep
         JOIN watchlist_entries e ON e.id = ep.entry_id
         WHERE ep.day_id = ?
         ORDER BY ep.position`,
		day.ID,
	)
	if err != nil {
		return fmt.Errorf("query scheduled episodes: %w", err)
	}
	defer rows.Close()

	var episodes []ScheduledEpisode
	for rows.Next() {
		var ep ScheduledEpisode
		var statusStr string
		if err := rows.Scan(
			&ep.ID,
			&ep.DayID,
			&ep.EntryID,
			&ep.ShowID,
			&ep.Title,
			&ep.Season,
			&ep.Episode,
			&ep.RuntimeMinutes,
			&ep.Position,
			&statusStr,
		); err != nil {
			return err
		}
		ep.Status = EpisodeStatus(statusStr)
		episodes = append(episodes, ep)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	day.Episodes = episodes
	return nil
}

func scanScheduleDay(scanner interface{ Scan(dest ...any) error }) (*ScheduleDay, error) {
	var (
		id             int64
		dateRaw        string
		plannedMinutes int
		createdRaw     sql.NullString
		updatedRaw     sql.NullString
	)
	if err := scanner.Scan(&id, &dateRaw, &plannedMinutes, &createdRaw, &updatedRaw); err != nil {
		return nil, err
	}

	day := &ScheduleDay{ID: id, PlannedMinutes: plannedMinutes}
	if date, err := time.Parse(dateLayout, dateRaw); err == nil {
		day.Date = date
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		day.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		day.UpdatedAt = updated
	}
	return day, nil
}

package watchlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"slate/internal/planner"
)

// DefaultSettings returns the settings used before any row is persisted.
func DefaultSettings() Settings {
	return Settings{
		WeekdayMinutes: planner.DefaultWeekdayMinutes,
		WeekendMinutes: planner.DefaultWeekendMinutes,
		SchedulingMode: "sequential",
	}
}

// SeedSettings persists seed as the settings row when none exists yet. An
// existing row always wins over configuration values.
func (s *Store) SeedSettings(ctx context.Context, seed Settings) error {
	_, err := s.execWithRetry(
		ctx,
		`INSERT INTO settings (id, weekday_minutes, weekend_minutes, scheduling_mode, auto_promote, updated_at)
         VALUES (1, ?, ?, ?, ?, ?)
         ON CONFLICT(id) DO NOTHING`,
		seed.WeekdayMinutes,
		seed.WeekendMinutes,
		seed.SchedulingMode,
		boolToInt(seed.AutoPromote),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	return nil
}

// GetSettings loads the singleton settings row, falling back to defaults
// when none has been persisted yet.
func (s *Store) GetSettings(ctx context.Context) (Settings, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT weekday_minutes, weekend_minutes,
                override_sunday, override_monday, override_tuesday, override_wednesday,
                override_thursday, override_friday, override_saturday,
                scheduling_mode, auto_promote, updated_at
         FROM settings WHERE id = 1`,
	)

	var (
		settings    Settings
		overrides   [7]sql.NullInt64
		autoPromote int
		updatedRaw  sql.NullString
	)
	err := row.Scan(
		&settings.WeekdayMinutes,
		&settings.WeekendMinutes,
		&overrides[0],
		&overrides[1],
		&overrides[2],
		&overrides[3],
		&overrides[4],
		&overrides[5],
		&overrides[6],
		&settings.SchedulingMode,
		&autoPromote,
		&updatedRaw,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("get settings: %w", err)
	}

	for i, override := range overrides {
		if override.Valid {
			value := int(override.Int64)
			settings.Overrides[i] = &value
		}
	}
	settings.AutoPromote = autoPromote != 0
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		settings.UpdatedAt = updated
	}
	return settings, nil
}

// SaveSettings upserts the singleton settings row.
func (s *Store) SaveSettings(ctx context.Context, settings Settings) error {
	_, err := s.execWithRetry(
		ctx,
		`INSERT INTO settings (
            id, weekday_minutes, weekend_minutes,
            override_sunday, override_monday, override_tuesday, override_wednesday,
            override_thursday, override_friday, override_saturday,
            scheduling_mode, auto_promote, updated_at
        ) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            weekday_minutes = excluded.weekday_minutes,
            weekend_minutes = excluded.weekend_minutes,
            override_sunday = excluded.override_sunday,
            override_monday = excluded.override_monday,
            override_tuesday = excluded.override_tuesday,
            override_wednesday = excluded.override_wednesday,
            override_thursday = excluded.override_thursday,
            override_friday = excluded.override_friday,
            override_saturday = excluded.override_saturday,
            scheduling_mode = excluded.scheduling_mode,
            auto_promote = excluded.auto_promote,
            updated_at = excluded.updated_at`,
		settings.WeekdayMinutes,
		settings.WeekendMinutes,
		nullableInt(settings.Overrides[0]),
		nullableInt(settings.Overrides[1]),
		nullableInt(settings.Overrides[2]),
		nullableInt(settings.Overrides[3]),
		nullableInt(settings.Overrides[4]),
		nullableInt(settings.Overrides[5]),
		nullableInt(settings.Overrides[6]),
		settings.SchedulingMode,
		boolToInt(settings.AutoPromote),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// BudgetPolicy converts the settings row into the planner's budget policy.
func (s Settings) BudgetPolicy() planner.BudgetPolicy {
	return planner.BudgetPolicy{
		WeekdayMinutes: s.WeekdayMinutes,
		WeekendMinutes: s.WeekendMinutes,
		Overrides:      s.Overrides,
	}
}

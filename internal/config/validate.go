package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateBudget(); err != nil {
		return err
	}
	if err := c.validateScheduling(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateCatalog() error {
	if c.Catalog.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/slate/config.toml"
		}
		return fmt.Errorf("catalog.api_key is required. Set TMDB_API_KEY env var or edit %s (create with 'slate config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateBudget() error {
	if c.Budget.WeekdayMinutes < 0 {
		return errors.New("budget.weekday_minutes must not be negative")
	}
	if c.Budget.WeekendMinutes < 0 {
		return errors.New("budget.weekend_minutes must not be negative")
	}
	return nil
}

func (c *Config) validateScheduling() error {
	switch c.Scheduling.Mode {
	case "sequential", "round_robin":
	default:
		return fmt.Errorf("scheduling.mode: unsupported value %q (use sequential or round_robin)", c.Scheduling.Mode)
	}
	if c.Scheduling.DefaultHorizonDays > 90 {
		return errors.New("scheduling.default_horizon_days must not exceed 90")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	return nil
}

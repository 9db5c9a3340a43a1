package config

const (
	defaultDataDir         = "~/.local/share/slate"
	defaultLogDir          = "~/.local/share/slate/logs"
	defaultCatalogBaseURL  = "https://api.themoviedb.org/3"
	defaultCatalogLanguage = "en-US"
	defaultCatalogTimeout  = 10
	defaultCatalogCacheTTL = 15
	defaultWeekdayMinutes  = 120
	defaultWeekendMinutes  = 240
	defaultSchedulingMode  = "sequential"
	defaultHorizonDays     = 7
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Catalog: Catalog{
			BaseURL:         defaultCatalogBaseURL,
			Language:        defaultCatalogLanguage,
			RequestTimeout:  defaultCatalogTimeout,
			CacheTTLMinutes: defaultCatalogCacheTTL,
		},
		Budget: Budget{
			WeekdayMinutes: defaultWeekdayMinutes,
			WeekendMinutes: defaultWeekendMinutes,
		},
		Scheduling: Scheduling{
			Mode:               defaultSchedulingMode,
			DefaultHorizonDays: defaultHorizonDays,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

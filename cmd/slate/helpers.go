package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

func statusLabel(value string) string {
	return titleCaser.String(strings.ReplaceAll(value, "_", " "))
}

func formatPosition(season, episode int) string {
	return fmt.Sprintf("S%02dE%02d", season, episode)
}

func weekdayName(weekday int) string {
	if weekday < 0 || weekday > 6 {
		return strconv.Itoa(weekday)
	}
	return time.Weekday(weekday).String()[:3]
}

func formatWeekdays(weekdays []int) string {
	if len(weekdays) == 0 {
		return "-"
	}
	names := make([]string, 0, len(weekdays))
	for _, weekday := range weekdays {
		names = append(names, weekdayName(weekday))
	}
	return strings.Join(names, ", ")
}

// parseWeekday accepts either a numeric index (0=Sunday) or a day name.
func parseWeekday(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if number, err := strconv.Atoi(trimmed); err == nil {
		if number < 0 || number > 6 {
			return 0, fmt.Errorf("weekday %d out of range 0-6", number)
		}
		return number, nil
	}
	lowered := strings.ToLower(trimmed)
	for day := time.Sunday; day <= time.Saturday; day++ {
		name := strings.ToLower(day.String())
		if lowered == name || (len(lowered) >= 3 && strings.HasPrefix(name, lowered)) {
			return int(day), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", value)
}

func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", value)
	}
	return parsed, nil
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

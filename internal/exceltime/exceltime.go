// Package exceltime converts between the split date/time string columns the
// workbook uses and the UTC timestamps the database stores.
package exceltime

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// SystemTimezone is the sentinel meaning "use the host machine's zone"
	SystemTimezone = "system"

	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// windowsZoneAliases maps Windows timezone display names to IANA
// identifiers. Hosts that report a display name instead of a canonical zone
// (typical on Windows) are resolved through this table.
var windowsZoneAliases = map[string]string{
	"Central European Standard Time": "Europe/Prague",
	"Central European Time":          "Europe/Prague",
	"Central Europe Standard Time":   "Europe/Prague",
	"W. Europe Standard Time":        "Europe/Berlin",
	"GMT Standard Time":              "Europe/London",
	"Eastern Standard Time":          "America/New_York",
}

// ResolveLocation returns the timezone used for workbook date/time strings.
//
// name is either an IANA zone identifier or the sentinel "system". When the
// requested zone cannot be resolved, even through the Windows alias table,
// the fallback zone is used and a warning is logged. UTC is the last resort
// if the fallback itself is broken.
func ResolveLocation(name, fallback string, log zerolog.Logger) *time.Location {
	if strings.EqualFold(strings.TrimSpace(name), SystemTimezone) {
		return resolveSystemLocation(fallback, log)
	}

	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	if canonical, ok := windowsZoneAliases[name]; ok {
		if loc, err := time.LoadLocation(canonical); err == nil {
			return loc
		}
	}

	log.Warn().Str("timezone", name).Str("fallback", fallback).
		Msg("Unknown Excel timezone, using fallback")
	return loadOrUTC(fallback, log)
}

func resolveSystemLocation(fallback string, log zerolog.Logger) *time.Location {
	local := time.Local
	name := local.String()

	// "Local" means the runtime could not name the zone; the location still
	// tracks the host's offset rules, so it is usable as-is.
	if name == "Local" {
		return local
	}
	if _, err := time.LoadLocation(name); err == nil {
		return local
	}
	if canonical, ok := windowsZoneAliases[name]; ok {
		if loc, err := time.LoadLocation(canonical); err == nil {
			return loc
		}
	}

	log.Warn().Str("timezone", name).Str("fallback", fallback).
		Msg("Could not determine system timezone, using fallback")
	return loadOrUTC(fallback, log)
}

func loadOrUTC(name string, log zerolog.Logger) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Warn().Str("timezone", name).Msg("Fallback timezone not loadable, using UTC")
		return time.UTC
	}
	return loc
}

// Codec converts between workbook-local date/time string pairs and UTC
// timestamps. Conversions are lossy below one second.
type Codec struct {
	loc *time.Location
}

// NewCodec creates a codec rendering strings in the given location
func NewCodec(loc *time.Location) *Codec {
	return &Codec{loc: loc}
}

// Location returns the workbook display zone
func (c *Codec) Location() *time.Location {
	return c.loc
}

// Parse combines a YYYY-MM-DD date and an HH:MM:SS or HH:MM time, interprets
// the pair in the workbook zone, and returns the instant in UTC.
func (c *Codec) Parse(dateStr, timeStr string) (time.Time, error) {
	datePart := strings.TrimSpace(dateStr)
	timePart := strings.TrimSpace(timeStr)
	if timePart == "" {
		timePart = "00:00:00"
	}

	combined := datePart + " " + timePart
	t, err := time.ParseInLocation(dateLayout+" "+timeLayout, combined, c.loc)
	if err != nil {
		// Some callers write times without seconds
		t, err = time.ParseInLocation(dateLayout+" 15:04", combined, c.loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse workbook datetime %q: %w", combined, err)
		}
	}
	return t.UTC(), nil
}

// Format renders a timestamp as workbook-local date and time strings
func (c *Codec) Format(t time.Time) (dateStr, timeStr string) {
	local := t.In(c.loc)
	return local.Format(dateLayout), local.Format(timeLayout)
}

// ResolveOvernight applies the midnight-rollover heuristic: a shift whose end
// falls before its start on the same nominal date is assumed to have crossed
// midnight, so the end is pushed to the next day. Shifts longer than 24 hours
// cannot be represented by the split date/time columns and come out wrong.
func ResolveOvernight(start, end time.Time) time.Time {
	if end.Before(start) {
		return end.Add(24 * time.Hour)
	}
	return end
}

// TruncateToMinute drops seconds and below; used for matching-window keys
func TruncateToMinute(t time.Time) time.Time {
	return t.Truncate(time.Minute)
}

// FormatDuration renders whole seconds as HH:MM:SS for the workbook's
// formatted duration column
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

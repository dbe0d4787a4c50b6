package entity

import (
	"math"
	"strings"
	"time"
)

var (
	startCandidates = []string{"startTime", "clockIn", "inTime"}
	endCandidates   = []string{"endTime", "clockOut", "outTime"}
	breakCandidates = []string{"breakMinutes", "breakDuration", "breakTime"}
	totalCandidates = []string{"totalHours", "workedHours", "hours", "durationHours"}
)

var clockLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// NormalizeTimesheet fills the canonical timesheet shape from whichever
// field names the backend used, preferring the entry over the fallback
// for every candidate. Worked hours are taken verbatim when the backend
// supplied any numeric total, and derived from start/end/break otherwise.
// A total that cannot be resolved either way stays absent, never zero.
func NormalizeTimesheet(entry, fallback Record) Record {
	out := make(Record, len(entry)+len(fallback)+4)
	for k, v := range fallback {
		out[k] = v
	}
	for k, v := range entry {
		out[k] = v
	}

	start, startOK := resolve(entry, fallback, startCandidates)
	if startOK {
		out["startTime"] = start
	}
	end, endOK := resolve(entry, fallback, endCandidates)
	if endOK {
		out["endTime"] = end
	}

	breakMinutes := 0.0
	if raw, ok := resolve(entry, fallback, breakCandidates); ok {
		if parsed, numeric := Number(raw); numeric {
			breakMinutes = parsed
			out["breakMinutes"] = parsed
		}
	}

	if raw, ok := resolve(entry, fallback, totalCandidates); ok {
		if parsed, numeric := Number(raw); numeric {
			out["totalHours"] = parsed
			return out
		}
	}
	if startOK && endOK {
		if hours, ok := deriveHours(start, end, breakMinutes); ok {
			out["totalHours"] = hours
		}
	}
	return out
}

func resolve(entry, fallback Record, candidates []string) (any, bool) {
	if value, ok := First(entry, candidates...); ok {
		return value, true
	}
	return First(fallback, candidates...)
}

// deriveHours computes max(0, (end-start) - break) / 60 rounded to two
// decimals. It applies only when both times resolve to a time of day and
// the end is strictly after the start.
func deriveHours(start, end any, breakMinutes float64) (float64, bool) {
	startMin, ok := clockMinutes(start)
	if !ok {
		return 0, false
	}
	endMin, ok := clockMinutes(end)
	if !ok {
		return 0, false
	}
	if endMin <= startMin {
		return 0, false
	}
	worked := float64(endMin-startMin) - breakMinutes
	if worked < 0 {
		worked = 0
	}
	return math.Round(worked/60*100) / 100, true
}

// clockMinutes resolves a wire time value to minutes since midnight. The
// backend emits "HH:MM" strings, full date/times, or raw minute counts;
// anything else is unresolvable.
func clockMinutes(value any) (int, bool) {
	switch v := value.(type) {
	case string:
		trimmed := strings.TrimSpace(v)
		if minutes, ok := parseClockString(trimmed); ok {
			return minutes, true
		}
		for _, layout := range clockLayouts {
			if parsed, err := time.Parse(layout, trimmed); err == nil {
				return parsed.Hour()*60 + parsed.Minute(), true
			}
		}
		return 0, false
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

func parseClockString(s string) (int, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, false
	}
	hour, ok := digits(parts[0])
	if !ok || hour > 23 {
		return 0, false
	}
	minute, ok := digits(parts[1])
	if !ok || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

func digits(s string) (int, bool) {
	if s == "" || len(s) > 2 {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

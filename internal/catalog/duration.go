package catalog

import (
	"strconv"
	"strings"
)

// SentinelMinutes is assigned to any duration text that cannot be parsed.
// It is large enough to fail every realistic time constraint, so bad data is
// excluded instead of silently passing.
const SentinelMinutes = 999

// ParseDuration normalises a free-text duration to minutes. Recognised forms
// are "25분", "1시간 5분", "1시간", "25 minutes", "1 hour 5 minutes" and the
// singular/abbreviated variants ("min", "hr"). Anything else maps to
// SentinelMinutes.
func ParseDuration(text string) int {
	s := strings.TrimSpace(text)
	if s == "" {
		return SentinelMinutes
	}

	if strings.Contains(s, "시간") {
		return parseKoreanHourMinute(s)
	}
	if strings.Contains(s, "분") {
		if n, ok := parseLeadingInt(strings.TrimSuffix(s, "분")); ok {
			return n
		}
		return SentinelMinutes
	}

	if mins, ok := parseEnglish(s); ok {
		return mins
	}
	return SentinelMinutes
}

func parseKoreanHourMinute(s string) int {
	parts := strings.SplitN(strings.ReplaceAll(s, "분", ""), "시간", 2)
	hours, ok := parseLeadingInt(parts[0])
	if !ok {
		return SentinelMinutes
	}
	minutes := 0
	if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
		minutes, ok = parseLeadingInt(parts[1])
		if !ok {
			return SentinelMinutes
		}
	}
	return hours*60 + minutes
}

func parseEnglish(s string) (int, bool) {
	fields := strings.Fields(strings.ToLower(s))
	total := 0
	matched := false
	for i := 0; i+1 < len(fields); i += 2 {
		n, ok := parseLeadingInt(fields[i])
		if !ok {
			return 0, false
		}
		switch unit := strings.TrimSuffix(fields[i+1], "s"); unit {
		case "hour", "hr":
			total += n * 60
		case "minute", "min":
			total += n
		default:
			return 0, false
		}
		matched = true
	}
	if !matched || len(fields)%2 != 0 {
		return 0, false
	}
	return total, true
}

func parseLeadingInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// VenueMinutes returns the normalised duration for the venue under the given
// meal mode ("delivery" selects the delivery estimate, anything else dine-in).
func VenueMinutes(v Venue, delivery bool) int {
	if delivery {
		return ParseDuration(v.DeliveryDuration)
	}
	return ParseDuration(v.DineInDuration)
}

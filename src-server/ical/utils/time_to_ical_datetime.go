package utils

import (
	"strconv"
	"strings"
	"time"
)

const (
	icalDate          = "20060102"
	icalLocalDatetime = "20060102T150405"
	icalUTCDatetime   = "20060102T150405Z"
)

// Convert a time to a string in iCalendar format:
//   - dateOnly: YYYYMMDD, the calendar date of the time as given
//   - loc != nil: YYYYMMDDTHHMMSS in that location, to be paired with TZID
//   - floating: YYYYMMDDTHHMMSS as the wall clock of the time itself
//   - otherwise: YYYYMMDDTHHMMSSZ in UTC
func TimeToIcalDatetime(t time.Time, loc *time.Location, dateOnly bool, floating bool) string {
	switch {
	case dateOnly:
		return t.Format(icalDate)
	case loc != nil:
		return t.In(loc).Format(icalLocalDatetime)
	case floating:
		return t.Format(icalLocalDatetime)
	default:
		return t.UTC().Format(icalUTCDatetime)
	}
}

// Convert a number of seconds into an iCalendar DURATION, e.g. 600 -> PT10M,
// -90000 -> -P1DT1H, 0 -> PT0S
func SecondsToIcalDuration(seconds int) string {
	var sb strings.Builder
	if seconds < 0 {
		sb.WriteByte('-')
		seconds = -seconds
	}
	sb.WriteByte('P')

	if days := seconds / 86400; days > 0 {
		sb.WriteString(strconv.Itoa(days) + "D")
		seconds %= 86400
		if seconds == 0 {
			return sb.String()
		}
	}

	sb.WriteByte('T')
	if hours := seconds / 3600; hours > 0 {
		sb.WriteString(strconv.Itoa(hours) + "H")
		seconds %= 3600
	}
	if minutes := seconds / 60; minutes > 0 {
		sb.WriteString(strconv.Itoa(minutes) + "M")
		seconds %= 60
	}
	if seconds > 0 || strings.HasSuffix(sb.String(), "T") {
		sb.WriteString(strconv.Itoa(seconds) + "S")
	}
	return sb.String()
}

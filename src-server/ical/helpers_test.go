package ical_test

import (
	"strings"
	"testing"
	"time"

	"icsgen/src-server/ical"

	"github.com/stretchr/testify/require"
)

var (
	testStart     = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	testEnd       = time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	testTimestamp = time.Date(2024, 2, 20, 12, 0, 0, 0, time.UTC)
)

func newTestEvent(t *testing.T, data ical.EventData) *ical.Event {
	t.Helper()
	calendar, err := ical.NewCalendar(ical.CalendarData{})
	require.NoError(t, err)
	event, err := calendar.CreateEvent(data)
	require.NoError(t, err)
	return event
}

// Join content lines the way a block is serialized when no line needs folding
func crlf(lines ...string) string {
	return strings.Join(lines, "\r\n") + "\r\n"
}

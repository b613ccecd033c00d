package ical_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"icsgen/src-server/ical"

	"github.com/AlekSi/pointer"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullEventData() ical.EventData {
	status := ical.EventStatus("confirmed")
	busyStatus := ical.EventBusyStatusBusy
	transparency := ical.EventTransparencyOpaque
	class := ical.EventClassPublic
	return ical.EventData{
		ID:           pointer.ToString("evt-1"),
		Sequence:     pointer.ToInt(2),
		Start:        pointer.ToTime(testStart),
		End:          pointer.ToTime(testEnd),
		Timestamp:    pointer.ToTime(testTimestamp),
		Summary:      pointer.ToString("Planning; Q2"),
		Location:     pointer.ToString("Room 4"),
		Description:  pointer.ToString("Line 1\nLine 2"),
		URL:          pointer.ToString("https://example.com/e/1"),
		Status:       &status,
		BusyStatus:   &busyStatus,
		Transparency: &transparency,
		Priority:     pointer.ToInt(5),
		Class:        &class,
		Organizer:    &ical.Organizer{Name: "Boss", Email: "boss@example.com"},
		Created:      pointer.ToTime(testTimestamp),
		LastModified: pointer.ToTime(testTimestamp),
		Attendees:    []ical.AttendeeData{{Email: pointer.ToString("a@example.com")}},
		Alarms:       []ical.AlarmData{{}},
		Categories: []ical.CategoryData{
			{Name: pointer.ToString("Work")},
			{Name: pointer.ToString("Planning")},
		},
		Attachments: []ical.AttachmentData{{URL: pointer.ToString("https://example.com/a.pdf")}},
		X:           ical.XFromTuples([]string{"x-a", "1"}),
	}
}

func TestEventToIcal(t *testing.T) {
	event := newTestEvent(t, fullEventData())

	output, err := event.ToIcal()
	require.NoError(t, err)
	assert.Equal(t, crlf(
		"BEGIN:VEVENT",
		"UID:evt-1",
		"SEQUENCE:2",
		"DTSTAMP:20240220T120000Z",
		"DTSTART:20240301T090000Z",
		"DTEND:20240301T103000Z",
		`SUMMARY:Planning\; Q2`,
		"LOCATION:Room 4",
		`DESCRIPTION:Line 1\nLine 2`,
		"URL;VALUE=URI:https://example.com/e/1",
		`ORGANIZER;CN="Boss":mailto:boss@example.com`,
		"ATTENDEE;ROLE=REQ-PARTICIPANT:MAILTO:a@example.com",
		"CATEGORIES:Work,Planning",
		"ATTACH:https://example.com/a.pdf",
		"STATUS:CONFIRMED",
		"X-MICROSOFT-CDO-BUSYSTATUS:BUSY",
		"X-MICROSOFT-CDO-INTENDEDSTATUS:BUSY",
		"PRIORITY:5",
		"TRANSP:OPAQUE",
		"CLASS:PUBLIC",
		"CREATED:20240220T120000Z",
		"LAST-MODIFIED:20240220T120000Z",
		"BEGIN:VALARM",
		"ACTION:DISPLAY",
		"TRIGGER:-PT10M",
		`DESCRIPTION:Planning\; Q2`,
		"END:VALARM",
		"X-A:1",
		"END:VEVENT",
	), output)
}

func TestEventDefaults(t *testing.T) {
	event := newTestEvent(t, ical.EventData{})

	_, err := uuid.Parse(event.GetID())
	assert.NoError(t, err)
	assert.Equal(t, 0, event.GetSequence())
	assert.WithinDuration(t, time.Now(), *event.GetStart(), 5*time.Second)
	assert.WithinDuration(t, time.Now(), *event.GetTimestamp(), 5*time.Second)
	assert.Nil(t, event.GetEnd())
	assert.False(t, event.GetAllDay())
	assert.False(t, event.GetFloating())

	output, err := event.ToIcal()
	require.NoError(t, err)
	assert.Contains(t, output, "SUMMARY:\r\n")

	previous := event.GetID()
	assert.NotEqual(t, previous, event.SetID("").GetID())
	assert.Equal(t, "custom", event.SetID("custom").GetID())
}

func TestEventMissingParent(t *testing.T) {
	event, err := ical.NewEvent(ical.EventData{Summary: pointer.ToString("x")}, nil)
	assert.Nil(t, event)
	assert.ErrorIs(t, err, ical.ErrMissingDependency)
}

func TestEventDates(t *testing.T) {
	t.Run("calendar timezone", func(t *testing.T) {
		calendar, err := ical.NewCalendar(ical.CalendarData{Timezone: pointer.ToString("Europe/Berlin")})
		require.NoError(t, err)
		event, err := calendar.CreateEvent(ical.EventData{
			Start:     pointer.ToTime(testStart),
			End:       pointer.ToTime(testEnd),
			Timestamp: pointer.ToTime(testTimestamp),
		})
		require.NoError(t, err)

		output, err := event.ToIcal()
		require.NoError(t, err)
		assert.Contains(t, output, "DTSTART;TZID=Europe/Berlin:20240301T100000\r\n")
		assert.Contains(t, output, "DTEND;TZID=Europe/Berlin:20240301T113000\r\n")
		assert.Contains(t, output, "DTSTAMP:20240220T120000Z\r\n")
	})

	t.Run("event timezone overrides the calendar", func(t *testing.T) {
		calendar, err := ical.NewCalendar(ical.CalendarData{Timezone: pointer.ToString("Europe/Berlin")})
		require.NoError(t, err)
		event, err := calendar.CreateEvent(ical.EventData{
			Start:    pointer.ToTime(testStart),
			Timezone: pointer.ToString("Asia/Tokyo"),
		})
		require.NoError(t, err)

		output, err := event.ToIcal()
		require.NoError(t, err)
		assert.Contains(t, output, "DTSTART;TZID=Asia/Tokyo:20240301T180000\r\n")
	})

	t.Run("all day", func(t *testing.T) {
		event := newTestEvent(t, ical.EventData{
			Start:  pointer.ToTime(testStart),
			End:    pointer.ToTime(testStart.AddDate(0, 0, 1)),
			AllDay: pointer.ToBool(true),
		})

		output, err := event.ToIcal()
		require.NoError(t, err)
		assert.Contains(t, output, "DTSTART;VALUE=DATE:20240301\r\n")
		assert.Contains(t, output, "DTEND;VALUE=DATE:20240302\r\n")
	})

	t.Run("floating", func(t *testing.T) {
		local := time.Date(2024, 3, 1, 18, 0, 0, 0, time.FixedZone("UTC+7", 7*3600))
		event := newTestEvent(t, ical.EventData{
			Start:    pointer.ToTime(local),
			Floating: pointer.ToBool(true),
		})

		output, err := event.ToIcal()
		require.NoError(t, err)
		assert.Contains(t, output, "DTSTART:20240301T180000\r\n")
	})

	t.Run("floating and timezone exclude each other", func(t *testing.T) {
		event := newTestEvent(t, ical.EventData{Timezone: pointer.ToString("Europe/Berlin")})
		assert.Equal(t, "Europe/Berlin", *event.GetTimezone())

		event.SetFloating(true)
		assert.Nil(t, event.GetTimezone())

		_, err := event.SetTimezone("Europe/Paris")
		require.NoError(t, err)
		assert.False(t, event.GetFloating())
		assert.Equal(t, "Europe/Paris", *event.GetTimezone())
	})

	t.Run("unknown timezone", func(t *testing.T) {
		event := newTestEvent(t, ical.EventData{})
		_, err := event.SetTimezone("Mars/Olympus_Mons")
		assert.ErrorIs(t, err, ical.ErrInvalidArgument)
		assert.Nil(t, event.GetTimezone())
	})
}

func TestEventRepeating(t *testing.T) {
	event := newTestEvent(t, ical.EventData{Start: pointer.ToTime(testStart)})

	_, err := event.SetRepeating("RRULE:FREQ=WEEKLY;COUNT=4")
	require.NoError(t, err)
	repeating := *event.GetRepeating()
	assert.Contains(t, repeating, "FREQ=WEEKLY")
	assert.Contains(t, repeating, "COUNT=4")
	assert.NotContains(t, repeating, "RRULE:")

	event.SetExclude(testStart.AddDate(0, 0, 7), time.Time{})
	assert.Len(t, event.GetExclude(), 1)

	output, err := event.ToIcal()
	require.NoError(t, err)
	assert.Contains(t, output, "RRULE:"+repeating+"\r\n")
	assert.Contains(t, output, "EXDATE:20240308T090000Z\r\n")

	for _, rule := range []string{
		"FREQ=SOMETIMES",
		"DTSTART:20240301T090000Z\nRRULE:FREQ=DAILY",
	} {
		_, err := event.SetRepeating(rule)
		assert.ErrorIs(t, err, ical.ErrInvalidArgument, rule)
	}
	assert.Equal(t, repeating, *event.GetRepeating())

	// exclusions are only meaningful with a rule
	_, err = event.SetRepeating("")
	require.NoError(t, err)
	assert.Nil(t, event.GetRepeating())
	output, err = event.ToIcal()
	require.NoError(t, err)
	assert.NotContains(t, output, "EXDATE")
}

func TestEventValidation(t *testing.T) {
	event := newTestEvent(t, ical.EventData{Start: pointer.ToTime(testEnd)})

	event.SetEnd(testStart)
	_, err := event.ToIcal()
	assert.ErrorIs(t, err, ical.ErrInvalidArgument)

	event.SetEnd(time.Time{})
	assert.NoError(t, event.Validate())

	event.SetStart(time.Time{})
	assert.ErrorIs(t, event.Validate(), ical.ErrInvalidArgument)

	event.SetStart(testStart)
	_, err = event.CreateAttendee(ical.AttendeeData{Name: pointer.ToString("no email")})
	require.NoError(t, err)
	assert.ErrorIs(t, event.Validate(), ical.ErrInvalidArgument)
}

func TestEventSetters(t *testing.T) {
	event := newTestEvent(t, ical.EventData{})

	assert.Nil(t, event.SetSummary("").GetSummary())
	assert.Nil(t, event.SetLocation("").GetLocation())
	assert.Nil(t, event.SetDescription("").GetDescription())

	_, err := event.SetURL("not a url")
	assert.ErrorIs(t, err, ical.ErrInvalidArgument)
	_, err = event.SetURL("")
	require.NoError(t, err)
	assert.Nil(t, event.GetURL())

	_, err = event.SetSequence(-1)
	assert.ErrorIs(t, err, ical.ErrInvalidArgument)

	_, err = event.SetPriority(pointer.ToInt(10))
	assert.ErrorIs(t, err, ical.ErrInvalidArgument)
	_, err = event.SetPriority(pointer.ToInt(0))
	require.NoError(t, err)
	assert.Equal(t, 0, *event.GetPriority())
	_, err = event.SetPriority(nil)
	require.NoError(t, err)
	assert.Nil(t, event.GetPriority())

	_, err = event.SetStatus("postponed")
	assert.ErrorIs(t, err, ical.ErrInvalidArgument)
	_, err = event.SetStatus("tentative")
	require.NoError(t, err)
	assert.Equal(t, ical.EventStatusTentative, *event.GetStatus())
	_, err = event.SetStatus("")
	require.NoError(t, err)
	assert.Nil(t, event.GetStatus())

	_, err = event.SetBusyStatus("away")
	assert.ErrorIs(t, err, ical.ErrInvalidArgument)
	_, err = event.SetTransparency("opaque-ish")
	assert.ErrorIs(t, err, ical.ErrInvalidArgument)
	_, err = event.SetClass("secret")
	assert.ErrorIs(t, err, ical.ErrInvalidArgument)

	_, err = event.SetOrganizer(&ical.Organizer{Email: "boss@example.com"})
	assert.ErrorIs(t, err, ical.ErrInvalidArgument)
	// the email is the ORGANIZER value, a line without it doesn't parse
	_, err = event.SetOrganizer(&ical.Organizer{Name: "Boss"})
	assert.ErrorIs(t, err, ical.ErrInvalidArgument)
	assert.Nil(t, event.GetOrganizer())
	_, err = ical.NewCalendar(ical.CalendarData{Events: []ical.EventData{{
		Organizer: &ical.Organizer{Name: "Boss"},
	}}})
	assert.ErrorIs(t, err, ical.ErrInvalidArgument)
	organizer := &ical.Organizer{Name: "Boss", SentBy: "assistant@example.com", Email: "boss@example.com"}
	_, err = event.SetOrganizer(organizer)
	require.NoError(t, err)
	organizer.Name = "changed"
	assert.Equal(t, "Boss", event.GetOrganizer().Name)

	output, err := event.ToIcal()
	require.NoError(t, err)
	assert.Contains(t, output, `ORGANIZER;SENT-BY="mailto:assistant@example.com";CN="Boss":mailto:boss@example.com`+"\r\n")

	_, err = event.SetOrganizer(&ical.Organizer{Name: `The "Boss"`, Email: "boss@example.com"})
	require.NoError(t, err)
	output, err = event.ToIcal()
	require.NoError(t, err)
	assert.Contains(t, output, `ORGANIZER;CN="The ^'Boss^'":mailto:boss@example.com`+"\r\n")
}

func TestEventDuplicateExtensionKeys(t *testing.T) {
	busyStatus := ical.EventBusyStatusBusy
	event := newTestEvent(t, ical.EventData{BusyStatus: &busyStatus})
	event.AddX("X-MICROSOFT-CDO-BUSYSTATUS", "FREE")

	output, err := event.ToIcal()
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(output, "X-MICROSOFT-CDO-BUSYSTATUS:"))
	assert.Contains(t, output, "X-MICROSOFT-CDO-BUSYSTATUS:BUSY\r\n")
	assert.Contains(t, output, "X-MICROSOFT-CDO-BUSYSTATUS:FREE\r\n")
}

func TestEventFoldsLongLines(t *testing.T) {
	event := newTestEvent(t, ical.EventData{Description: pointer.ToString(strings.Repeat("lorem ipsum ", 20))})

	output, err := event.ToIcal()
	require.NoError(t, err)
	for _, line := range strings.Split(strings.TrimSuffix(output, "\r\n"), "\r\n") {
		assert.LessOrEqual(t, len(line), 75)
	}
	assert.Contains(t, strings.ReplaceAll(output, "\r\n ", ""), "DESCRIPTION:"+strings.Repeat("lorem ipsum ", 20)+"\r\n")
}

func TestEventToJSON(t *testing.T) {
	event := newTestEvent(t, fullEventData())
	snapshot := event.ToJSON()

	// later mutation doesn't leak into the snapshot
	event.SetSummary("changed").AddX("X-NEW", "1")
	assert.Equal(t, "Planning; Q2", *snapshot.Summary)

	encoded, err := json.Marshal(snapshot)
	require.NoError(t, err)

	var decoded ical.EventData
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	rehydrated := newTestEvent(t, decoded)

	encodedAgain, err := json.Marshal(rehydrated.ToJSON())
	require.NoError(t, err)
	assert.JSONEq(t, string(encoded), string(encodedAgain))

	// rendering doesn't depend on which copy is used
	fromData := newTestEvent(t, fullEventData())
	expected, err := fromData.ToIcal()
	require.NoError(t, err)
	actual, err := rehydrated.ToIcal()
	require.NoError(t, err)
	assert.Equal(t, expected, actual)
}

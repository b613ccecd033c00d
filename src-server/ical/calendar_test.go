package ical_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"icsgen/src-server/ical"

	"github.com/AlekSi/pointer"
	goical "github.com/emersion/go-ical"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const retroDescription = "Agenda: what went well, what didn't, and action items for the next sprint. Bring your notes; we start on time."

func teamCalendarData() ical.CalendarData {
	method := ical.CalendarMethodPublish
	accepted := ical.AttendeePartStatAccepted
	confirmed := ical.EventStatusConfirmed
	transparent := ical.EventTransparencyTransparent
	offsite := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	return ical.CalendarData{
		ProdID:      pointer.ToString("-//Example//Team Calendar//EN"),
		Method:      &method,
		Name:        pointer.ToString("Team"),
		Description: pointer.ToString("Shared, team-wide events"),
		Timezone:    pointer.ToString("Europe/Berlin"),
		URL:         pointer.ToString("https://example.com/team.ics"),
		Scale:       pointer.ToString("gregorian"),
		TTL:         pointer.ToInt(3600),
		X:           ical.XFromMap(map[string]string{"X-APPLE-CALENDAR-COLOR": "#FF2968"}),
		Events: []ical.EventData{
			{
				ID:          pointer.ToString("retro-2024-03"),
				Start:       pointer.ToTime(testStart),
				End:         pointer.ToTime(testEnd),
				Timestamp:   pointer.ToTime(testTimestamp),
				Summary:     pointer.ToString("Sprint retro"),
				Location:    pointer.ToString("Room 4, 2nd floor"),
				Description: pointer.ToString(retroDescription),
				Organizer:   &ical.Organizer{Name: "Alex Kim", Email: "alex@example.com"},
				Attendees: []ical.AttendeeData{{
					Name:   pointer.ToString("Sam Lee"),
					Email:  pointer.ToString("sam@example.com"),
					Status: &accepted,
				}},
				Categories: []ical.CategoryData{
					{Name: pointer.ToString("Team")},
					{Name: pointer.ToString("Retro")},
				},
				Attachments: []ical.AttachmentData{{
					FileName: pointer.ToString("notes.pdf"),
					URL:      pointer.ToString("https://example.com/notes.pdf"),
					X:        ical.XFromTuples([]string{"x-size", "2048"}),
				}},
				Status: &confirmed,
				Alarms: []ical.AlarmData{{Trigger: pointer.ToInt(900)}},
				X:      ical.XFromList(ical.XAttr{Key: "X-ROOM-ID", Value: "4.01"}),
			},
			{
				ID:           pointer.ToString("offsite-2024"),
				Sequence:     pointer.ToInt(1),
				Start:        pointer.ToTime(offsite),
				End:          pointer.ToTime(offsite.AddDate(0, 0, 1)),
				Timestamp:    pointer.ToTime(testTimestamp),
				AllDay:       pointer.ToBool(true),
				Summary:      pointer.ToString("Team offsite"),
				Transparency: &transparent,
			},
		},
	}
}

func TestCalendarToIcalGolden(t *testing.T) {
	calendar, err := ical.NewCalendar(teamCalendarData())
	require.NoError(t, err)

	output, err := calendar.ToIcal()
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(output, "END:VCALENDAR\r\n"))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "team_calendar", []byte(strings.ReplaceAll(output, "\r\n", "\n")))
}

func TestCalendarToIcalDecodes(t *testing.T) {
	calendar, err := ical.NewCalendar(teamCalendarData())
	require.NoError(t, err)
	output, err := calendar.ToIcal()
	require.NoError(t, err)

	decoded, err := goical.NewDecoder(strings.NewReader(output)).Decode()
	require.NoError(t, err)

	text := func(props goical.Props, name string) string {
		t.Helper()
		prop := props.Get(name)
		require.NotNil(t, prop, name)
		value, err := prop.Text()
		require.NoError(t, err, name)
		return value
	}

	assert.Equal(t, "-//Example//Team Calendar//EN", text(decoded.Props, goical.PropProductID))
	assert.Equal(t, "Shared, team-wide events", text(decoded.Props, "X-WR-CALDESC"))
	assert.Equal(t, "#FF2968", decoded.Props.Get("X-APPLE-CALENDAR-COLOR").Value)

	events := decoded.Events()
	require.Len(t, events, 2)

	retro := events[0]
	assert.Equal(t, "retro-2024-03", text(retro.Props, goical.PropUID))
	assert.Equal(t, "Sprint retro", text(retro.Props, goical.PropSummary))
	assert.Equal(t, "Room 4, 2nd floor", text(retro.Props, goical.PropLocation))
	assert.Equal(t, retroDescription, text(retro.Props, goical.PropDescription))
	assert.Equal(t, "4.01", retro.Props.Get("X-ROOM-ID").Value)

	start, err := retro.Props.Get(goical.PropDateTimeStart).DateTime(time.UTC)
	require.NoError(t, err)
	assert.True(t, start.Equal(testStart), "start %s", start)
	assert.Equal(t, "Europe/Berlin", retro.Props.Get(goical.PropDateTimeStart).Params.Get(goical.ParamTimezoneID))

	attendee := retro.Props.Get(goical.PropAttendee)
	require.NotNil(t, attendee)
	assert.Equal(t, "Sam Lee", attendee.Params.Get(goical.ParamCommonName))
	assert.Equal(t, "ACCEPTED", attendee.Params.Get(goical.ParamParticipationStatus))

	require.Len(t, retro.Children, 1)
	assert.Equal(t, goical.CompAlarm, retro.Children[0].Name)
	assert.Equal(t, "-PT15M", retro.Children[0].Props.Get(goical.PropTrigger).Value)

	offsite := events[1]
	assert.Equal(t, "DATE", offsite.Props.Get(goical.PropDateTimeStart).Params.Get(goical.ParamValue))
	assert.Equal(t, "20240315", offsite.Props.Get(goical.PropDateTimeStart).Value)
	assert.Equal(t, "TRANSPARENT", offsite.Props.Get(goical.PropTransparency).Value)
}

func TestCalendarDefaults(t *testing.T) {
	calendar, err := ical.NewCalendar(ical.CalendarData{})
	require.NoError(t, err)

	assert.Equal(t, ical.DefaultProdID, calendar.GetProdID())
	assert.Equal(t, 0, calendar.Length())

	output, err := calendar.ToIcal()
	require.NoError(t, err)
	assert.Equal(t, crlf(
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:"+ical.DefaultProdID,
		"END:VCALENDAR",
	), output)

	assert.Equal(t, ical.DefaultProdID, calendar.SetProdID("-//x//y//EN").SetProdID("").GetProdID())
}

func TestCalendarSetters(t *testing.T) {
	calendar, err := ical.NewCalendar(ical.CalendarData{})
	require.NoError(t, err)

	_, err = calendar.SetMethod("broadcast")
	assert.ErrorIs(t, err, ical.ErrInvalidArgument)
	_, err = calendar.SetMethod("request")
	require.NoError(t, err)
	assert.Equal(t, ical.CalendarMethodRequest, *calendar.GetMethod())

	_, err = calendar.SetTimezone("Nowhere/Special")
	assert.ErrorIs(t, err, ical.ErrInvalidArgument)
	_, err = calendar.SetURL("::")
	assert.ErrorIs(t, err, ical.ErrInvalidArgument)
	_, err = calendar.SetTTL(pointer.ToInt(0))
	assert.ErrorIs(t, err, ical.ErrInvalidArgument)

	assert.Nil(t, calendar.SetName("").GetName())
	assert.Nil(t, calendar.SetDescription("").GetDescription())
	assert.Nil(t, calendar.SetScale("").GetScale())
	assert.Equal(t, "GREGORIAN", *calendar.SetScale("gregorian").GetScale())

	_, err = ical.NewCalendar(ical.CalendarData{Timezone: pointer.ToString("Nowhere/Special")})
	assert.ErrorIs(t, err, ical.ErrInvalidArgument)
}

func TestCalendarEvents(t *testing.T) {
	calendar, err := ical.NewCalendar(ical.CalendarData{})
	require.NoError(t, err)

	_, err = calendar.CreateEvent(ical.EventData{Summary: pointer.ToString("one")})
	require.NoError(t, err)
	_, err = calendar.CreateEvent(ical.EventData{
		Start: pointer.ToTime(testEnd),
		End:   pointer.ToTime(testStart),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calendar.Length())

	// an invalid event fails the whole document
	_, err = calendar.ToIcal()
	assert.ErrorIs(t, err, ical.ErrInvalidArgument)

	calendar.Clear()
	assert.Empty(t, calendar.GetEvents())

	priority := 12
	_, err = calendar.CreateEvent(ical.EventData{Priority: &priority})
	assert.ErrorIs(t, err, ical.ErrInvalidArgument)
	assert.Equal(t, 0, calendar.Length())
}

func TestCalendarXDispatcher(t *testing.T) {
	calendar, err := ical.NewCalendar(ical.CalendarData{})
	require.NoError(t, err)

	_, err = calendar.X(ical.XPair{Key: "x-wr-relcalid", Value: "abc"})
	require.NoError(t, err)
	list, err := calendar.X(ical.XGet{})
	require.NoError(t, err)
	assert.Equal(t, []ical.XAttr{{Key: "x-wr-relcalid", Value: "abc"}}, list)

	output, err := calendar.ToIcal()
	require.NoError(t, err)
	assert.Contains(t, output, "\r\nX-WR-RELCALID:abc\r\nEND:VCALENDAR\r\n")
}

func TestCalendarToJSON(t *testing.T) {
	calendar, err := ical.NewCalendar(teamCalendarData())
	require.NoError(t, err)

	snapshot := calendar.ToJSON()
	encoded, err := json.Marshal(snapshot)
	require.NoError(t, err)

	var decoded ical.CalendarData
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	rehydrated, err := ical.NewCalendar(decoded)
	require.NoError(t, err)

	encodedAgain, err := json.Marshal(rehydrated.ToJSON())
	require.NoError(t, err)
	assert.JSONEq(t, string(encoded), string(encodedAgain))

	expected, err := calendar.ToIcal()
	require.NoError(t, err)
	actual, err := rehydrated.ToIcal()
	require.NoError(t, err)
	assert.Equal(t, expected, actual)
}

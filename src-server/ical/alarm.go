package ical

import (
	"strconv"
	"strings"
	"time"

	"icsgen/src-server/ical/utils"

	"github.com/AlekSi/pointer"
)

type (
	AlarmType      string
	AlarmRelatesTo string
)

const (
	AlarmTypeDisplay AlarmType = "display"
	AlarmTypeAudio   AlarmType = "audio"
	AlarmTypeEmail   AlarmType = "email"

	AlarmRelatesToStart AlarmRelatesTo = "START"
	AlarmRelatesToEnd   AlarmRelatesTo = "END"

	// seconds before the event start
	defaultAlarmTrigger = 600
	defaultAlarmSound   = "Basso"
)

// How often and in which interval (seconds) the alarm repeats after the
// first trigger
type AlarmRepeat struct {
	Times    int `json:"times" yaml:"times"`
	Interval int `json:"interval" yaml:"interval"`
}

type AlarmAttach struct {
	URI  string `json:"uri" yaml:"uri"`
	MIME string `json:"mime,omitempty" yaml:"mime,omitempty"`
}

type AlarmData struct {
	Type        *AlarmType      `json:"type" yaml:"type"`
	Trigger     *int            `json:"trigger" yaml:"trigger"`
	TriggerAt   *time.Time      `json:"triggerAt" yaml:"triggerAt"`
	RelatesTo   *AlarmRelatesTo `json:"relatesTo" yaml:"relatesTo"`
	Repeat      *AlarmRepeat    `json:"repeat" yaml:"repeat"`
	Attach      *AlarmAttach    `json:"attach" yaml:"attach"`
	Description *string         `json:"description" yaml:"description"`
	Summary     *string         `json:"summary" yaml:"summary"`
	Attendees   []AttendeeData  `json:"attendees" yaml:"attendees"`
	X           XInput          `json:"x" yaml:"x"`
}

// A reminder attached to an event, rendered as a VALARM block
type Alarm struct {
	event *Event

	alarmType AlarmType
	// seconds before the event start, negative for after; unused when triggerAt is set
	trigger     *int
	triggerAt   *time.Time
	relatesTo   *AlarmRelatesTo
	repeat      *AlarmRepeat
	attach      *AlarmAttach
	description *string
	summary     *string
	attendees   []*Attendee
	x           extensions
}

// Create a new alarm owned by the given event. Without data it is a display
// alarm firing 10 minutes before the event starts.
func NewAlarm(data AlarmData, event *Event) (*Alarm, error) {
	if event == nil {
		return nil, missingParent("alarm")
	}

	a := &Alarm{
		event:     event,
		alarmType: AlarmTypeDisplay,
		trigger:   pointer.ToInt(defaultAlarmTrigger),
	}
	if data.Type != nil {
		if _, err := a.SetType(*data.Type); err != nil {
			return nil, err
		}
	}
	if data.Trigger != nil {
		a.SetTrigger(*data.Trigger)
	}
	if data.TriggerAt != nil {
		a.SetTriggerAt(*data.TriggerAt)
	}
	if data.RelatesTo != nil {
		if _, err := a.SetRelatesTo(*data.RelatesTo); err != nil {
			return nil, err
		}
	}
	if data.Repeat != nil {
		if _, err := a.SetRepeat(data.Repeat); err != nil {
			return nil, err
		}
	}
	if data.Attach != nil {
		a.SetAttach(data.Attach)
	}
	if data.Description != nil {
		a.SetDescription(*data.Description)
	}
	if data.Summary != nil {
		a.SetSummary(*data.Summary)
	}
	for _, attendeeData := range data.Attendees {
		if _, err := a.CreateAttendee(attendeeData); err != nil {
			return nil, err
		}
	}
	if _, err := a.SetX(data.X); err != nil {
		return nil, err
	}
	return a, nil
}

// #region Getters

func (a *Alarm) GetType() AlarmType {
	return a.alarmType
}

// Get the trigger in seconds before the event start, nil when the alarm
// uses an absolute trigger
func (a *Alarm) GetTrigger() *int {
	return cloneInt(a.trigger)
}

// Get the absolute trigger time, nil when the alarm uses a relative trigger
func (a *Alarm) GetTriggerAt() *time.Time {
	return cloneTime(a.triggerAt)
}

func (a *Alarm) GetRelatesTo() *AlarmRelatesTo {
	if a.relatesTo == nil {
		return nil
	}
	relatesTo := *a.relatesTo
	return &relatesTo
}

func (a *Alarm) GetRepeat() *AlarmRepeat {
	if a.repeat == nil {
		return nil
	}
	repeat := *a.repeat
	return &repeat
}

func (a *Alarm) GetAttach() *AlarmAttach {
	if a.attach == nil {
		return nil
	}
	attach := *a.attach
	return &attach
}

func (a *Alarm) GetDescription() *string {
	return cloneString(a.description)
}

func (a *Alarm) GetSummary() *string {
	return cloneString(a.summary)
}

func (a *Alarm) GetAttendees() []*Attendee {
	return append([]*Attendee(nil), a.attendees...)
}

func (a *Alarm) GetX() []XAttr {
	return a.x.list()
}

// Resolve the timezone through the owning event
func (a *Alarm) GetTimezone() *string {
	return a.event.GetTimezone()
}

// #endregion

// #region Setters

func (a *Alarm) SetType(alarmType AlarmType) (*Alarm, error) {
	switch normalized := AlarmType(strings.ToLower(string(alarmType))); normalized {
	case AlarmTypeDisplay, AlarmTypeAudio, AlarmTypeEmail:
		a.alarmType = normalized
		return a, nil
	default:
		return a, invalidArgument("invalid alarm type", map[string]any{"type": alarmType})
	}
}

// Fire the given number of seconds before the event start (negative for
// after). Replaces an absolute trigger.
func (a *Alarm) SetTrigger(secondsBefore int) *Alarm {
	a.trigger = pointer.ToInt(secondsBefore)
	a.triggerAt = nil
	return a
}

// Fire at a fixed point in time. Replaces a relative trigger; a zero time
// restores the default relative trigger.
func (a *Alarm) SetTriggerAt(at time.Time) *Alarm {
	a.triggerAt = timeOrNil(at)
	if a.triggerAt == nil {
		a.trigger = pointer.ToInt(defaultAlarmTrigger)
		return a
	}
	a.trigger = nil
	return a
}

// Set what a relative trigger is measured from, an empty value clears it
func (a *Alarm) SetRelatesTo(relatesTo AlarmRelatesTo) (*Alarm, error) {
	switch normalized := AlarmRelatesTo(strings.ToUpper(string(relatesTo))); normalized {
	case "":
		a.relatesTo = nil
		return a, nil
	case AlarmRelatesToStart, AlarmRelatesToEnd:
		a.relatesTo = &normalized
		return a, nil
	default:
		return a, invalidArgument("invalid alarm relatesTo", map[string]any{"relatesTo": relatesTo})
	}
}

// Set the repetition, nil clears it
func (a *Alarm) SetRepeat(repeat *AlarmRepeat) (*Alarm, error) {
	if repeat == nil {
		a.repeat = nil
		return a, nil
	}
	if repeat.Times <= 0 || repeat.Interval <= 0 {
		return a, invalidArgument("alarm repeat times and interval must be positive", map[string]any{
			"times":    repeat.Times,
			"interval": repeat.Interval,
		})
	}
	cloned := *repeat
	a.repeat = &cloned
	return a, nil
}

// Set the attachment, nil or an empty URI clears it
func (a *Alarm) SetAttach(attach *AlarmAttach) *Alarm {
	if attach == nil || attach.URI == "" {
		a.attach = nil
		return a
	}
	cloned := *attach
	a.attach = &cloned
	return a
}

func (a *Alarm) SetDescription(description string) *Alarm {
	a.description = pointer.ToStringOrNil(description)
	return a
}

func (a *Alarm) SetSummary(summary string) *Alarm {
	a.summary = pointer.ToStringOrNil(summary)
	return a
}

// Create an attendee owned by the alarm and add it; used by email alarms
func (a *Alarm) CreateAttendee(data AttendeeData) (*Attendee, error) {
	attendee, err := NewAttendee(data, a)
	if err != nil {
		return nil, err
	}
	a.attendees = append(a.attendees, attendee)
	return attendee, nil
}

func (a *Alarm) SetX(in XInput) (*Alarm, error) {
	if err := a.x.append(in); err != nil {
		return a, err
	}
	return a, nil
}

func (a *Alarm) AddX(key string, value string) *Alarm {
	a.x.add(key, value)
	return a
}

// #endregion

func (a *Alarm) X(call XCall) ([]XAttr, error) {
	return a.x.apply(call)
}

func (a *Alarm) Validate() error {
	switch {
	case a.trigger == nil && a.triggerAt == nil:
		return invalidArgument("alarm trigger is required", nil)
	case a.alarmType == AlarmTypeEmail && len(a.attendees) == 0:
		return invalidArgument("email alarm requires an attendee", nil)
	}
	for _, attendee := range a.attendees {
		if err := attendee.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Convert the alarm into an iCalendar block, folded and CRLF terminated
func (a *Alarm) ToIcal() (string, error) {
	if err := a.Validate(); err != nil {
		return "", err
	}
	return foldLines(a.icalLines()), nil
}

// The unfolded content lines of the VALARM block
func (a *Alarm) icalLines() []string {
	lines := []string{
		"BEGIN:VALARM",
		"ACTION:" + strings.ToUpper(string(a.alarmType)),
	}

	if a.triggerAt != nil {
		lines = append(lines, "TRIGGER;VALUE=DATE-TIME:"+utils.TimeToIcalDatetime(*a.triggerAt, nil, false, false))
	} else {
		trigger := "TRIGGER"
		if a.relatesTo != nil {
			trigger += ";RELATED=" + string(*a.relatesTo)
		}
		lines = append(lines, trigger+":"+utils.SecondsToIcalDuration(-pointer.GetInt(a.trigger)))
	}

	if a.repeat != nil {
		lines = append(lines,
			"REPEAT:"+strconv.Itoa(a.repeat.Times),
			"DURATION:"+utils.SecondsToIcalDuration(a.repeat.Interval),
		)
	}

	switch {
	case a.attach != nil && a.attach.MIME != "":
		lines = append(lines, "ATTACH;FMTTYPE="+a.attach.MIME+":"+a.attach.URI)
	case a.attach != nil:
		lines = append(lines, "ATTACH:"+a.attach.URI)
	case a.alarmType == AlarmTypeAudio:
		lines = append(lines, "ATTACH;VALUE=URI:"+defaultAlarmSound)
	}

	if a.alarmType == AlarmTypeDisplay || a.alarmType == AlarmTypeEmail {
		description := a.description
		if description == nil {
			description = a.event.summary
		}
		lines = append(lines, "DESCRIPTION:"+utils.Escape(pointer.GetString(description)))
	}
	if a.alarmType == AlarmTypeEmail {
		summary := a.summary
		if summary == nil {
			summary = a.event.summary
		}
		lines = append(lines, "SUMMARY:"+utils.Escape(pointer.GetString(summary)))
		for _, attendee := range a.attendees {
			lines = append(lines, attendee.String())
		}
	}

	lines = append(lines, a.x.lines()...)
	lines = append(lines, "END:VALARM")
	return lines
}

func (a *Alarm) ToJSON() AlarmData {
	alarmType := a.alarmType
	attendees := make([]AttendeeData, 0, len(a.attendees))
	for _, attendee := range a.attendees {
		attendees = append(attendees, attendee.ToJSON())
	}
	return AlarmData{
		Type:        &alarmType,
		Trigger:     cloneInt(a.trigger),
		TriggerAt:   cloneTime(a.triggerAt),
		RelatesTo:   a.GetRelatesTo(),
		Repeat:      a.GetRepeat(),
		Attach:      a.GetAttach(),
		Description: cloneString(a.description),
		Summary:     cloneString(a.summary),
		Attendees:   attendees,
		X:           XFromList(a.x.list()...),
	}
}

package ical

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"icsgen/src-server/ical/utils"

	"github.com/AlekSi/pointer"
	"github.com/google/uuid"
	"github.com/xyedo/rrule"
)

type (
	EventStatus       string
	EventBusyStatus   string
	EventTransparency string
	EventClass        string
)

const (
	EventStatusConfirmed EventStatus = "CONFIRMED"
	EventStatusTentative EventStatus = "TENTATIVE"
	EventStatusCancelled EventStatus = "CANCELLED"

	EventBusyStatusFree      EventBusyStatus = "FREE"
	EventBusyStatusTentative EventBusyStatus = "TENTATIVE"
	EventBusyStatusBusy      EventBusyStatus = "BUSY"
	EventBusyStatusOOF       EventBusyStatus = "OOF" // out of office

	EventTransparencyOpaque      EventTransparency = "OPAQUE"
	EventTransparencyTransparent EventTransparency = "TRANSPARENT"

	EventClassPublic       EventClass = "PUBLIC"
	EventClassPrivate      EventClass = "PRIVATE"
	EventClassConfidential EventClass = "CONFIDENTIAL"
)

// The person who organizes an event
type Organizer struct {
	Name   string `json:"name" yaml:"name"`
	Email  string `json:"email,omitempty" yaml:"email,omitempty"`
	SentBy string `json:"sentBy,omitempty" yaml:"sentBy,omitempty"`
}

type EventData struct {
	ID           *string            `json:"id" yaml:"id"`
	Sequence     *int               `json:"sequence" yaml:"sequence"`
	Start        *time.Time         `json:"start" yaml:"start"`
	End          *time.Time         `json:"end" yaml:"end"`
	Timestamp    *time.Time         `json:"timestamp" yaml:"timestamp"`
	Timezone     *string            `json:"timezone" yaml:"timezone"`
	AllDay       *bool              `json:"allDay" yaml:"allDay"`
	Floating     *bool              `json:"floating" yaml:"floating"`
	Repeating    *string            `json:"repeating" yaml:"repeating"`
	Exclude      []time.Time        `json:"exclude" yaml:"exclude"`
	Summary      *string            `json:"summary" yaml:"summary"`
	Location     *string            `json:"location" yaml:"location"`
	Description  *string            `json:"description" yaml:"description"`
	URL          *string            `json:"url" yaml:"url"`
	Status       *EventStatus       `json:"status" yaml:"status"`
	BusyStatus   *EventBusyStatus   `json:"busyStatus" yaml:"busyStatus"`
	Transparency *EventTransparency `json:"transparency" yaml:"transparency"`
	Priority     *int               `json:"priority" yaml:"priority"`
	Class        *EventClass        `json:"class" yaml:"class"`
	Organizer    *Organizer         `json:"organizer" yaml:"organizer"`
	Created      *time.Time         `json:"created" yaml:"created"`
	LastModified *time.Time         `json:"lastModified" yaml:"lastModified"`
	Attendees    []AttendeeData     `json:"attendees" yaml:"attendees"`
	Alarms       []AlarmData        `json:"alarms" yaml:"alarms"`
	Categories   []CategoryData     `json:"categories" yaml:"categories"`
	Attachments  []AttachmentData   `json:"attachments" yaml:"attachments"`
	X            XInput             `json:"x" yaml:"x"`
}

// A VEVENT and everything it owns
type Event struct {
	calendar *Calendar

	id        string // required
	sequence  int
	start     *time.Time // required
	end       *time.Time
	timestamp *time.Time
	timezone  *string
	allDay    bool
	floating  bool

	repeating *string // normalized RRULE value, without the `RRULE:` prefix
	exclude   []time.Time

	summary      *string
	location     *string
	description  *string
	url          *string
	status       *EventStatus
	busyStatus   *EventBusyStatus
	transparency *EventTransparency
	priority     *int
	class        *EventClass
	organizer    *Organizer
	created      *time.Time
	lastModified *time.Time

	attendees   []*Attendee
	alarms      []*Alarm
	categories  []*Category
	attachments []*Attachment
	x           extensions
}

// Create a new event owned by the given calendar. The ID defaults to a new
// UUID, start and timestamp default to the current time.
func NewEvent(data EventData, calendar *Calendar) (*Event, error) {
	if calendar == nil {
		return nil, missingParent("event")
	}

	now := time.Now().UTC().Truncate(time.Second)
	e := &Event{
		calendar:  calendar,
		id:        uuid.NewString(),
		start:     pointer.ToTime(now),
		timestamp: pointer.ToTime(now),
	}
	if err := e.apply(data); err != nil {
		return nil, err
	}
	return e, nil
}

// Route every provided field through its setter
func (e *Event) apply(data EventData) error {
	if data.ID != nil {
		e.SetID(*data.ID)
	}
	if data.Sequence != nil {
		if _, err := e.SetSequence(*data.Sequence); err != nil {
			return err
		}
	}
	if data.Start != nil {
		e.SetStart(*data.Start)
	}
	if data.End != nil {
		e.SetEnd(*data.End)
	}
	if data.Timestamp != nil {
		e.SetTimestamp(*data.Timestamp)
	}
	if data.Timezone != nil {
		if _, err := e.SetTimezone(*data.Timezone); err != nil {
			return err
		}
	}
	if data.AllDay != nil {
		e.SetAllDay(*data.AllDay)
	}
	if data.Floating != nil {
		e.SetFloating(*data.Floating)
	}
	if data.Repeating != nil {
		if _, err := e.SetRepeating(*data.Repeating); err != nil {
			return err
		}
	}
	if data.Exclude != nil {
		e.SetExclude(data.Exclude...)
	}
	if data.Summary != nil {
		e.SetSummary(*data.Summary)
	}
	if data.Location != nil {
		e.SetLocation(*data.Location)
	}
	if data.Description != nil {
		e.SetDescription(*data.Description)
	}
	if data.URL != nil {
		if _, err := e.SetURL(*data.URL); err != nil {
			return err
		}
	}
	if data.Status != nil {
		if _, err := e.SetStatus(*data.Status); err != nil {
			return err
		}
	}
	if data.BusyStatus != nil {
		if _, err := e.SetBusyStatus(*data.BusyStatus); err != nil {
			return err
		}
	}
	if data.Transparency != nil {
		if _, err := e.SetTransparency(*data.Transparency); err != nil {
			return err
		}
	}
	if data.Priority != nil {
		if _, err := e.SetPriority(data.Priority); err != nil {
			return err
		}
	}
	if data.Class != nil {
		if _, err := e.SetClass(*data.Class); err != nil {
			return err
		}
	}
	if data.Organizer != nil {
		if _, err := e.SetOrganizer(data.Organizer); err != nil {
			return err
		}
	}
	if data.Created != nil {
		e.SetCreated(*data.Created)
	}
	if data.LastModified != nil {
		e.SetLastModified(*data.LastModified)
	}

	for _, attendeeData := range data.Attendees {
		if _, err := e.CreateAttendee(attendeeData); err != nil {
			return err
		}
	}
	for _, alarmData := range data.Alarms {
		if _, err := e.CreateAlarm(alarmData); err != nil {
			return err
		}
	}
	for _, categoryData := range data.Categories {
		if _, err := e.CreateCategory(categoryData); err != nil {
			return err
		}
	}
	for _, attachmentData := range data.Attachments {
		if _, err := e.CreateAttachment(attachmentData); err != nil {
			return err
		}
	}

	if _, err := e.SetX(data.X); err != nil {
		return err
	}
	return nil
}

// #region Getters

func (e *Event) GetCalendar() *Calendar {
	return e.calendar
}

func (e *Event) GetID() string {
	return e.id
}

func (e *Event) GetSequence() int {
	return e.sequence
}

func (e *Event) GetStart() *time.Time {
	return cloneTime(e.start)
}

func (e *Event) GetEnd() *time.Time {
	return cloneTime(e.end)
}

// Get the DTSTAMP
func (e *Event) GetTimestamp() *time.Time {
	return cloneTime(e.timestamp)
}

// Get the event timezone, falling back to the calendar's. Floating events have
// none.
func (e *Event) GetTimezone() *string {
	if e.floating {
		return nil
	}
	if e.timezone != nil {
		return cloneString(e.timezone)
	}
	return e.calendar.GetTimezone()
}

func (e *Event) GetAllDay() bool {
	return e.allDay
}

func (e *Event) GetFloating() bool {
	return e.floating
}

// Get the RRULE value, e.g. `FREQ=WEEKLY;COUNT=4`
func (e *Event) GetRepeating() *string {
	return cloneString(e.repeating)
}

func (e *Event) GetExclude() []time.Time {
	return cloneTimes(e.exclude)
}

func (e *Event) GetSummary() *string {
	return cloneString(e.summary)
}

func (e *Event) GetLocation() *string {
	return cloneString(e.location)
}

func (e *Event) GetDescription() *string {
	return cloneString(e.description)
}

func (e *Event) GetURL() *string {
	return cloneString(e.url)
}

func (e *Event) GetStatus() *EventStatus {
	return cloneEnum(e.status)
}

func (e *Event) GetBusyStatus() *EventBusyStatus {
	return cloneEnum(e.busyStatus)
}

func (e *Event) GetTransparency() *EventTransparency {
	return cloneEnum(e.transparency)
}

func (e *Event) GetPriority() *int {
	return cloneInt(e.priority)
}

func (e *Event) GetClass() *EventClass {
	return cloneEnum(e.class)
}

func (e *Event) GetOrganizer() *Organizer {
	if e.organizer == nil {
		return nil
	}
	organizer := *e.organizer
	return &organizer
}

func (e *Event) GetCreated() *time.Time {
	return cloneTime(e.created)
}

func (e *Event) GetLastModified() *time.Time {
	return cloneTime(e.lastModified)
}

func (e *Event) GetAttendees() []*Attendee {
	return append([]*Attendee(nil), e.attendees...)
}

func (e *Event) GetAlarms() []*Alarm {
	return append([]*Alarm(nil), e.alarms...)
}

func (e *Event) GetCategories() []*Category {
	return append([]*Category(nil), e.categories...)
}

func (e *Event) GetAttachments() []*Attachment {
	return append([]*Attachment(nil), e.attachments...)
}

func (e *Event) GetX() []XAttr {
	return e.x.list()
}

// #endregion

// #region Setters

// Set the UID, an empty ID generates a new one
func (e *Event) SetID(id string) *Event {
	if id == "" {
		id = uuid.NewString()
	}
	e.id = id
	return e
}

func (e *Event) SetSequence(sequence int) (*Event, error) {
	if sequence < 0 {
		return e, invalidArgument("sequence must be non-negative", map[string]any{"sequence": sequence})
	}
	e.sequence = sequence
	return e, nil
}

// Set the start. A zero time clears it, which fails validation.
func (e *Event) SetStart(start time.Time) *Event {
	e.start = timeOrNil(start)
	return e
}

func (e *Event) SetEnd(end time.Time) *Event {
	e.end = timeOrNil(end)
	return e
}

func (e *Event) SetTimestamp(timestamp time.Time) *Event {
	e.timestamp = timeOrNil(timestamp)
	return e
}

// Set an IANA timezone such as `Europe/Berlin`, overriding the calendar's.
// Any timezone makes the event non-floating; an empty string clears it.
func (e *Event) SetTimezone(timezone string) (*Event, error) {
	if timezone == "" {
		e.timezone = nil
		return e, nil
	}
	if _, err := loadLocation(timezone); err != nil {
		return e, err
	}
	e.timezone = pointer.ToString(timezone)
	e.floating = false
	return e, nil
}

// Render start, end and excluded dates as DATE values
func (e *Event) SetAllDay(allDay bool) *Event {
	e.allDay = allDay
	return e
}

// Render dates as wall clock time without timezone. Clears the event timezone.
func (e *Event) SetFloating(floating bool) *Event {
	e.floating = floating
	if floating {
		e.timezone = nil
	}
	return e
}

// Set the recurrence rule, with or without the `RRULE:` prefix. The rule is
// anchored at the event start, so it can't carry its own DTSTART. An empty
// rule clears it.
func (e *Event) SetRepeating(rule string) (*Event, error) {
	rule = strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(rule)), "RRULE:")
	if rule == "" {
		e.repeating = nil
		return e, nil
	}
	if strings.Contains(rule, "DTSTART") {
		return e, invalidArgument("recurrence rule must not contain DTSTART", map[string]any{"rule": rule})
	}

	parsed, err := rrule.StrToRRule(rule)
	if err != nil {
		return e, invalidArgument("invalid recurrence rule", map[string]any{
			"rule": rule,
			"err":  err,
		})
	}
	normalized := parsed.String()
	if i := strings.LastIndex(normalized, "RRULE:"); i >= 0 {
		normalized = normalized[i+len("RRULE:"):]
	}
	e.repeating = pointer.ToString(normalized)
	return e, nil
}

// Replace the dates excluded from the recurrence (EXDATE). Zero times are dropped.
func (e *Event) SetExclude(dates ...time.Time) *Event {
	e.exclude = nil
	for _, date := range dates {
		if !date.IsZero() {
			e.exclude = append(e.exclude, date)
		}
	}
	return e
}

func (e *Event) SetSummary(summary string) *Event {
	e.summary = pointer.ToStringOrNil(summary)
	return e
}

func (e *Event) SetLocation(location string) *Event {
	e.location = pointer.ToStringOrNil(location)
	return e
}

func (e *Event) SetDescription(description string) *Event {
	e.description = pointer.ToStringOrNil(description)
	return e
}

// Set the URL, which must be absolute. An empty URL clears it.
func (e *Event) SetURL(url_ string) (*Event, error) {
	if url_ == "" {
		e.url = nil
		return e, nil
	}
	if _, err := url.ParseRequestURI(url_); err != nil {
		return e, invalidArgument("invalid url", map[string]any{"url": url_})
	}
	e.url = pointer.ToString(url_)
	return e, nil
}

func (e *Event) SetStatus(status EventStatus) (*Event, error) {
	normalized, err := normalizeEnum(status, "status",
		EventStatusConfirmed, EventStatusTentative, EventStatusCancelled)
	if err != nil {
		return e, err
	}
	e.status = normalized
	return e, nil
}

// Set the busy status shown by Microsoft clients (X-MICROSOFT-CDO-BUSYSTATUS and
// X-MICROSOFT-CDO-INTENDEDSTATUS)
func (e *Event) SetBusyStatus(busyStatus EventBusyStatus) (*Event, error) {
	normalized, err := normalizeEnum(busyStatus, "busyStatus",
		EventBusyStatusFree, EventBusyStatusTentative, EventBusyStatusBusy, EventBusyStatusOOF)
	if err != nil {
		return e, err
	}
	e.busyStatus = normalized
	return e, nil
}

func (e *Event) SetTransparency(transparency EventTransparency) (*Event, error) {
	normalized, err := normalizeEnum(transparency, "transparency",
		EventTransparencyOpaque, EventTransparencyTransparent)
	if err != nil {
		return e, err
	}
	e.transparency = normalized
	return e, nil
}

// Set the priority between 0 (undefined) and 9 (lowest), nil clears it
func (e *Event) SetPriority(priority *int) (*Event, error) {
	if priority == nil {
		e.priority = nil
		return e, nil
	}
	if *priority < 0 || *priority > 9 {
		return e, invalidArgument("priority must be between 0 and 9", map[string]any{"priority": *priority})
	}
	e.priority = pointer.ToInt(*priority)
	return e, nil
}

func (e *Event) SetClass(class EventClass) (*Event, error) {
	normalized, err := normalizeEnum(class, "class",
		EventClassPublic, EventClassPrivate, EventClassConfidential)
	if err != nil {
		return e, err
	}
	e.class = normalized
	return e, nil
}

// Set the organizer, nil clears it. Name and email are required: the email is
// the ORGANIZER value.
func (e *Event) SetOrganizer(organizer *Organizer) (*Event, error) {
	if organizer == nil {
		e.organizer = nil
		return e, nil
	}
	if organizer.Name == "" {
		return e, invalidArgument("organizer name is required", map[string]any{"email": organizer.Email})
	}
	if organizer.Email == "" {
		return e, invalidArgument("organizer email is required", map[string]any{"name": organizer.Name})
	}
	cloned := *organizer
	e.organizer = &cloned
	return e, nil
}

func (e *Event) SetCreated(created time.Time) *Event {
	e.created = timeOrNil(created)
	return e
}

func (e *Event) SetLastModified(lastModified time.Time) *Event {
	e.lastModified = timeOrNil(lastModified)
	return e
}

// Create an attendee owned by the event and add it
func (e *Event) CreateAttendee(data AttendeeData) (*Attendee, error) {
	attendee, err := NewAttendee(data, e)
	if err != nil {
		return nil, err
	}
	e.attendees = append(e.attendees, attendee)
	return attendee, nil
}

// Create an alarm owned by the event and add it
func (e *Event) CreateAlarm(data AlarmData) (*Alarm, error) {
	alarm, err := NewAlarm(data, e)
	if err != nil {
		return nil, err
	}
	e.alarms = append(e.alarms, alarm)
	return alarm, nil
}

// Create a category owned by the event and add it
func (e *Event) CreateCategory(data CategoryData) (*Category, error) {
	category, err := NewCategory(data, e)
	if err != nil {
		return nil, err
	}
	e.categories = append(e.categories, category)
	return category, nil
}

// Create an attachment owned by the event and add it
func (e *Event) CreateAttachment(data AttachmentData) (*Attachment, error) {
	attachment, err := NewAttachment(data, e)
	if err != nil {
		return nil, err
	}
	e.attachments = append(e.attachments, attachment)
	return attachment, nil
}

func (e *Event) SetX(in XInput) (*Event, error) {
	if err := e.x.append(in); err != nil {
		return e, err
	}
	return e, nil
}

func (e *Event) AddX(key string, value string) *Event {
	e.x.add(key, value)
	return e
}

// #endregion

func (e *Event) X(call XCall) ([]XAttr, error) {
	return e.x.apply(call)
}

func (e *Event) Validate() error {
	switch {
	case e.start == nil:
		return invalidArgument("start date not set", map[string]any{"id": e.id})
	case e.end != nil && e.end.Before(*e.start):
		return invalidArgument("start date is after end date", map[string]any{"id": e.id})
	}
	for _, attendee := range e.attendees {
		if err := attendee.Validate(); err != nil {
			return err
		}
	}
	for _, alarm := range e.alarms {
		if err := alarm.Validate(); err != nil {
			return err
		}
	}
	for _, category := range e.categories {
		if err := category.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Convert the event into an iCalendar block, folded and CRLF terminated
func (e *Event) ToIcal() (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}
	return foldLines(e.icalLines()), nil
}

// The unfolded content lines of the VEVENT block, alarms included
func (e *Event) icalLines() []string {
	lines := []string{
		"BEGIN:VEVENT",
		"UID:" + e.id,
		"SEQUENCE:" + strconv.Itoa(e.sequence),
	}

	// dates
	if e.timestamp != nil {
		lines = append(lines, "DTSTAMP:"+utils.TimeToIcalDatetime(*e.timestamp, nil, false, false))
	}
	lines = append(lines, e.dateProperty("DTSTART", *e.start))
	if e.end != nil {
		lines = append(lines, e.dateProperty("DTEND", *e.end))
	}
	if e.repeating != nil {
		lines = append(lines, "RRULE:"+*e.repeating)
		for _, date := range e.exclude {
			lines = append(lines, e.dateProperty("EXDATE", date))
		}
	}

	// basic properties
	lines = append(lines, "SUMMARY:"+utils.Escape(pointer.GetString(e.summary)))
	if e.location != nil {
		lines = append(lines, "LOCATION:"+utils.Escape(*e.location))
	}
	if e.description != nil {
		lines = append(lines, "DESCRIPTION:"+utils.Escape(*e.description))
	}
	if e.url != nil {
		lines = append(lines, "URL;VALUE=URI:"+*e.url)
	}

	// involved people
	if e.organizer != nil {
		lines = append(lines, e.organizerLine())
	}
	for _, attendee := range e.attendees {
		lines = append(lines, attendee.String())
	}

	// miscellaneous
	if len(e.categories) > 0 {
		names := make([]string, 0, len(e.categories))
		for _, category := range e.categories {
			names = append(names, category.String())
		}
		lines = append(lines, "CATEGORIES:"+strings.Join(names, ","))
	}
	for _, attachment := range e.attachments {
		lines = append(lines, attachment.String())
	}
	if e.status != nil {
		lines = append(lines, "STATUS:"+string(*e.status))
	}
	if e.busyStatus != nil {
		lines = append(lines,
			"X-MICROSOFT-CDO-BUSYSTATUS:"+string(*e.busyStatus),
			"X-MICROSOFT-CDO-INTENDEDSTATUS:"+string(*e.busyStatus),
		)
	}
	if e.priority != nil {
		lines = append(lines, "PRIORITY:"+strconv.Itoa(*e.priority))
	}
	if e.transparency != nil {
		lines = append(lines, "TRANSP:"+string(*e.transparency))
	}
	if e.class != nil {
		lines = append(lines, "CLASS:"+string(*e.class))
	}
	if e.created != nil {
		lines = append(lines, "CREATED:"+utils.TimeToIcalDatetime(*e.created, nil, false, false))
	}
	if e.lastModified != nil {
		lines = append(lines, "LAST-MODIFIED:"+utils.TimeToIcalDatetime(*e.lastModified, nil, false, false))
	}

	for _, alarm := range e.alarms {
		lines = append(lines, alarm.icalLines()...)
	}

	// custom properties
	lines = append(lines, e.x.lines()...)
	lines = append(lines, "END:VEVENT")
	return lines
}

// Render a date property the way the event is configured: DATE for all-day,
// local time with TZID when a timezone resolves, wall clock for floating and
// UTC otherwise
func (e *Event) dateProperty(name string, t time.Time) string {
	switch {
	case e.allDay:
		return name + ";VALUE=DATE:" + utils.TimeToIcalDatetime(t, nil, true, false)
	case e.floating:
		return name + ":" + utils.TimeToIcalDatetime(t, nil, false, true)
	}
	if timezone := e.GetTimezone(); timezone != nil {
		if loc, err := loadLocation(*timezone); err == nil {
			return name + ";TZID=" + *timezone + ":" + utils.TimeToIcalDatetime(t, loc, false, false)
		}
	}
	return name + ":" + utils.TimeToIcalDatetime(t, nil, false, false)
}

func (e *Event) organizerLine() string {
	var sb strings.Builder
	sb.WriteString("ORGANIZER")
	if e.organizer.SentBy != "" {
		sb.WriteString(";SENT-BY=" + utils.QuoteParam("mailto:"+e.organizer.SentBy))
	}
	sb.WriteString(";CN=" + utils.QuoteParam(e.organizer.Name))
	sb.WriteString(":mailto:" + e.organizer.Email)
	return sb.String()
}

// Take a snapshot that shares nothing with the event
func (e *Event) ToJSON() EventData {
	id := e.id
	sequence := e.sequence
	allDay := e.allDay
	floating := e.floating

	attendees := make([]AttendeeData, 0, len(e.attendees))
	for _, attendee := range e.attendees {
		attendees = append(attendees, attendee.ToJSON())
	}
	alarms := make([]AlarmData, 0, len(e.alarms))
	for _, alarm := range e.alarms {
		alarms = append(alarms, alarm.ToJSON())
	}
	categories := make([]CategoryData, 0, len(e.categories))
	for _, category := range e.categories {
		categories = append(categories, category.ToJSON())
	}
	attachments := make([]AttachmentData, 0, len(e.attachments))
	for _, attachment := range e.attachments {
		attachments = append(attachments, attachment.ToJSON())
	}

	return EventData{
		ID:           &id,
		Sequence:     &sequence,
		Start:        cloneTime(e.start),
		End:          cloneTime(e.end),
		Timestamp:    cloneTime(e.timestamp),
		Timezone:     cloneString(e.timezone),
		AllDay:       &allDay,
		Floating:     &floating,
		Repeating:    cloneString(e.repeating),
		Exclude:      cloneTimes(e.exclude),
		Summary:      cloneString(e.summary),
		Location:     cloneString(e.location),
		Description:  cloneString(e.description),
		URL:          cloneString(e.url),
		Status:       cloneEnum(e.status),
		BusyStatus:   cloneEnum(e.busyStatus),
		Transparency: cloneEnum(e.transparency),
		Priority:     cloneInt(e.priority),
		Class:        cloneEnum(e.class),
		Organizer:    e.GetOrganizer(),
		Created:      cloneTime(e.created),
		LastModified: cloneTime(e.lastModified),
		Attendees:    attendees,
		Alarms:       alarms,
		Categories:   categories,
		Attachments:  attachments,
		X:            XFromList(e.x.list()...),
	}
}

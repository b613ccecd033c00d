// The `ical` package builds calendars in memory and serializes them into
// iCalendar text.
//
// # References:
// - RFC5545: https://datatracker.ietf.org/doc/html/rfc5545
// - RFC7986: https://datatracker.ietf.org/doc/html/rfc7986
//
// # Notes:
// - Every sub-entity is created through its owner (Calendar.CreateEvent,
//   Event.CreateAlarm, ...) and keeps a reference back to it, used to resolve
//   the timezone.
// - String fields treat "" as unset. Getters return copies, never the stored
//   pointer.
// - Vendor extension (X-) attributes are kept in insertion order and never
//   deduplicated. See XInput and XCall.
// - Only Calendar.ToIcal, Event.ToIcal and Alarm.ToIcal fold lines at 75
//   octets; the single-line String() methods return unfolded lines.
//
// # Example usage:
//
// Create a calendar with one event
//
//	calendar, _ := ical.NewCalendar(ical.CalendarData{Name: pointer.ToString("Team")})
//	event, _ := calendar.CreateEvent(ical.EventData{Summary: pointer.ToString("Standup")})
//	event.AddX("X-ROOM", "4.01")
//
// Marshal to a string -> file
//
//	output, _ := calendar.ToIcal()
//	_ = os.WriteFile("path/to/output/calendar.ics", []byte(output), 0644)
//
// Snapshot and re-hydrate
//
//	copied, _ := ical.NewCalendar(calendar.ToJSON())
package ical

import (
	"net/url"
	"strings"

	"icsgen/src-server/ical/utils"

	"github.com/AlekSi/pointer"
)

type CalendarMethod string

const (
	CalendarMethodPublish        CalendarMethod = "PUBLISH"
	CalendarMethodRequest        CalendarMethod = "REQUEST"
	CalendarMethodReply          CalendarMethod = "REPLY"
	CalendarMethodAdd            CalendarMethod = "ADD"
	CalendarMethodCancel         CalendarMethod = "CANCEL"
	CalendarMethodRefresh        CalendarMethod = "REFRESH"
	CalendarMethodCounter        CalendarMethod = "COUNTER"
	CalendarMethodDeclineCounter CalendarMethod = "DECLINECOUNTER"

	DefaultProdID = "-//icsgen//icsgen//EN"
)

type CalendarData struct {
	ProdID      *string         `json:"prodId" yaml:"prodId"`
	Method      *CalendarMethod `json:"method" yaml:"method"`
	Name        *string         `json:"name" yaml:"name"`
	Description *string         `json:"description" yaml:"description"`
	Timezone    *string         `json:"timezone" yaml:"timezone"`
	URL         *string         `json:"url" yaml:"url"`
	Scale       *string         `json:"scale" yaml:"scale"`
	TTL         *int            `json:"ttl" yaml:"ttl"`
	Events      []EventData     `json:"events" yaml:"events"`
	X           XInput          `json:"x" yaml:"x"`
}

// The main struct of the package, the root of every entity tree
type Calendar struct {
	prodID      string
	method      *CalendarMethod
	name        *string
	description *string
	timezone    *string
	url         *string
	scale       *string
	// seconds between refreshes suggested to subscribers
	ttl    *int
	events []*Event
	x      extensions
}

// Initialize a new calendar. It has no parent, so unlike the other entities
// construction only fails on invalid data.
func NewCalendar(data CalendarData) (*Calendar, error) {
	c := &Calendar{prodID: DefaultProdID}

	if data.ProdID != nil {
		c.SetProdID(*data.ProdID)
	}
	if data.Method != nil {
		if _, err := c.SetMethod(*data.Method); err != nil {
			return nil, err
		}
	}
	if data.Name != nil {
		c.SetName(*data.Name)
	}
	if data.Description != nil {
		c.SetDescription(*data.Description)
	}
	if data.Timezone != nil {
		if _, err := c.SetTimezone(*data.Timezone); err != nil {
			return nil, err
		}
	}
	if data.URL != nil {
		if _, err := c.SetURL(*data.URL); err != nil {
			return nil, err
		}
	}
	if data.Scale != nil {
		c.SetScale(*data.Scale)
	}
	if data.TTL != nil {
		if _, err := c.SetTTL(data.TTL); err != nil {
			return nil, err
		}
	}
	for _, eventData := range data.Events {
		if _, err := c.CreateEvent(eventData); err != nil {
			return nil, err
		}
	}
	if _, err := c.SetX(data.X); err != nil {
		return nil, err
	}
	return c, nil
}

// #region Getters

func (c *Calendar) GetProdID() string {
	return c.prodID
}

func (c *Calendar) GetMethod() *CalendarMethod {
	return cloneEnum(c.method)
}

// Get the calendar name
func (c *Calendar) GetName() *string {
	return cloneString(c.name)
}

// Get the calendar description
func (c *Calendar) GetDescription() *string {
	return cloneString(c.description)
}

// Get the calendar-wide timezone, inherited by events without their own
func (c *Calendar) GetTimezone() *string {
	return cloneString(c.timezone)
}

func (c *Calendar) GetURL() *string {
	return cloneString(c.url)
}

func (c *Calendar) GetScale() *string {
	return cloneString(c.scale)
}

// Get the refresh interval in seconds
func (c *Calendar) GetTTL() *int {
	return cloneInt(c.ttl)
}

func (c *Calendar) GetEvents() []*Event {
	return append([]*Event(nil), c.events...)
}

func (c *Calendar) GetX() []XAttr {
	return c.x.list()
}

// Get the number of events in the calendar
func (c *Calendar) Length() int {
	return len(c.events)
}

// #endregion

// #region Setters

// Set the PRODID, an empty value restores the default
func (c *Calendar) SetProdID(prodID string) *Calendar {
	if prodID == "" {
		prodID = DefaultProdID
	}
	c.prodID = prodID
	return c
}

func (c *Calendar) SetMethod(method CalendarMethod) (*Calendar, error) {
	normalized, err := normalizeEnum(method, "method",
		CalendarMethodPublish, CalendarMethodRequest, CalendarMethodReply, CalendarMethodAdd,
		CalendarMethodCancel, CalendarMethodRefresh, CalendarMethodCounter, CalendarMethodDeclineCounter)
	if err != nil {
		return c, err
	}
	c.method = normalized
	return c, nil
}

// Set the calendar name
func (c *Calendar) SetName(name string) *Calendar {
	c.name = pointer.ToStringOrNil(name)
	return c
}

// Set the calendar description
func (c *Calendar) SetDescription(description string) *Calendar {
	c.description = pointer.ToStringOrNil(description)
	return c
}

// Set an IANA timezone such as `Europe/Berlin`, an empty string clears it
func (c *Calendar) SetTimezone(timezone string) (*Calendar, error) {
	if timezone == "" {
		c.timezone = nil
		return c, nil
	}
	if _, err := loadLocation(timezone); err != nil {
		return c, err
	}
	c.timezone = pointer.ToString(timezone)
	return c, nil
}

func (c *Calendar) SetURL(url_ string) (*Calendar, error) {
	if url_ == "" {
		c.url = nil
		return c, nil
	}
	if _, err := url.ParseRequestURI(url_); err != nil {
		return c, invalidArgument("invalid url", map[string]any{"url": url_})
	}
	c.url = pointer.ToString(url_)
	return c, nil
}

// Set the CALSCALE, e.g. `GREGORIAN`. The value is uppercased.
func (c *Calendar) SetScale(scale string) *Calendar {
	c.scale = pointer.ToStringOrNil(strings.ToUpper(scale))
	return c
}

// Set the refresh interval in seconds, nil clears it
func (c *Calendar) SetTTL(ttl *int) (*Calendar, error) {
	if ttl == nil {
		c.ttl = nil
		return c, nil
	}
	if *ttl <= 0 {
		return c, invalidArgument("ttl must be positive", map[string]any{"ttl": *ttl})
	}
	c.ttl = pointer.ToInt(*ttl)
	return c, nil
}

// Create an event owned by the calendar and add it
func (c *Calendar) CreateEvent(data EventData) (*Event, error) {
	event, err := NewEvent(data, c)
	if err != nil {
		return nil, err
	}
	c.events = append(c.events, event)
	return event, nil
}

// Remove all events
func (c *Calendar) Clear() *Calendar {
	c.events = nil
	return c
}

func (c *Calendar) SetX(in XInput) (*Calendar, error) {
	if err := c.x.append(in); err != nil {
		return c, err
	}
	return c, nil
}

func (c *Calendar) AddX(key string, value string) *Calendar {
	c.x.add(key, value)
	return c
}

// #endregion

func (c *Calendar) X(call XCall) ([]XAttr, error) {
	return c.x.apply(call)
}

func (c *Calendar) Validate() error {
	for _, event := range c.events {
		if err := event.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Marshal the calendar into an iCalendar document: every line folded at 75
// octets and terminated by CRLF.
func (c *Calendar) ToIcal() (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	return foldLines(c.icalLines()), nil
}

func (c *Calendar) icalLines() []string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + utils.Escape(c.prodID),
	}
	if c.method != nil {
		lines = append(lines, "METHOD:"+string(*c.method))
	}
	if c.name != nil {
		name := utils.Escape(*c.name)
		lines = append(lines, "NAME:"+name, "X-WR-CALNAME:"+name)
	}
	if c.description != nil {
		lines = append(lines, "X-WR-CALDESC:"+utils.Escape(*c.description))
	}
	if c.timezone != nil {
		lines = append(lines, "TIMEZONE-ID:"+*c.timezone, "X-WR-TIMEZONE:"+*c.timezone)
	}
	if c.url != nil {
		lines = append(lines, "URL:"+*c.url)
	}
	if c.scale != nil {
		lines = append(lines, "CALSCALE:"+*c.scale)
	}
	if c.ttl != nil {
		ttl := utils.SecondsToIcalDuration(*c.ttl)
		lines = append(lines, "REFRESH-INTERVAL;VALUE=DURATION:"+ttl, "X-PUBLISHED-TTL:"+ttl)
	}

	for _, event := range c.events {
		lines = append(lines, event.icalLines()...)
	}

	lines = append(lines, c.x.lines()...)
	lines = append(lines, "END:VCALENDAR")
	return lines
}

// Take a snapshot that can be fed back into NewCalendar
func (c *Calendar) ToJSON() CalendarData {
	prodID := c.prodID
	events := make([]EventData, 0, len(c.events))
	for _, event := range c.events {
		events = append(events, event.ToJSON())
	}
	return CalendarData{
		ProdID:      &prodID,
		Method:      cloneEnum(c.method),
		Name:        cloneString(c.name),
		Description: cloneString(c.description),
		Timezone:    cloneString(c.timezone),
		URL:         cloneString(c.url),
		Scale:       cloneString(c.scale),
		TTL:         cloneInt(c.ttl),
		Events:      events,
		X:           XFromList(c.x.list()...),
	}
}

// Fold and join content lines into one CRLF terminated block
func foldLines(lines []string) string {
	var sb strings.Builder
	write := utils.Split75wrapper(sb.WriteString)
	for _, line := range lines {
		// strings.Builder never fails
		_, _ = write(line)
	}
	return sb.String()
}

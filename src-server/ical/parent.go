package ical

import (
	"strings"
	"time"

	"github.com/AlekSi/pointer"
)

// Parent is the non-owning reference every sub-entity keeps to the entity that
// created it. It is only read, never mutated, and lets sub-entities resolve
// calendar-wide context such as the timezone.
//
// Implemented by *Calendar, *Event and *Alarm.
type Parent interface {
	GetTimezone() *string
}

// A typed nil pointer stored in an interface doesn't compare equal to nil
func isNilParent(parent Parent) bool {
	switch p := parent.(type) {
	case nil:
		return true
	case *Calendar:
		return p == nil
	case *Event:
		return p == nil
	case *Alarm:
		return p == nil
	default:
		return false
	}
}

func cloneString(p *string) *string {
	return pointer.ToStringOrNil(pointer.GetString(p))
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	return pointer.ToInt(*p)
}

func cloneBool(p *bool) *bool {
	if p == nil {
		return nil
	}
	return pointer.ToBool(*p)
}

func cloneTime(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	return pointer.ToTime(*p)
}

// Zero times collapse to null like empty strings do
func timeOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return pointer.ToTime(t)
}

func cloneTimes(times []time.Time) []time.Time {
	if times == nil {
		return nil
	}
	return append([]time.Time(nil), times...)
}

func loadLocation(timezone string) (*time.Location, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, invalidArgument("unknown timezone", map[string]any{
			"timezone": timezone,
			"err":      err,
		})
	}
	return loc, nil
}

func cloneEnum[T ~string](p *T) *T {
	if p == nil {
		return nil
	}
	value := *p
	return &value
}

// Uppercase the value and check it against the allowed set. An empty value
// clears the field.
func normalizeEnum[T ~string](value T, field string, allowed ...T) (*T, error) {
	if value == "" {
		return nil, nil
	}
	normalized := T(strings.ToUpper(string(value)))
	for _, candidate := range allowed {
		if normalized == candidate {
			return &normalized, nil
		}
	}
	return nil, invalidArgument("invalid "+field, map[string]any{field: value})
}

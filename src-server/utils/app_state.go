package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// Accepted date layouts, tried in order before natural language
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

type AppState struct {
	Config *Config
	When   *when.Parser

	// the reference point of relative dates like "tomorrow"
	Now func() time.Time
}

func NewAppState(config *Config) *AppState {
	as := &AppState{
		Config: config,
		Now:    time.Now,
	}

	// date parser
	as.When = when.New(nil)
	as.When.Add(en.All...)
	as.When.Add(common.All...)

	return as
}

// Resolve a date string. Absolute layouts come first: RFC 3339 keeps its own
// offset, the others are read in the configured location. Anything else goes
// through the natural language parser, relative to Now.
func (as *AppState) ParseDate(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, fmt.Errorf("ParseDate: empty date")
	}

	loc := as.Config.GetLocation()
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, text, loc); err == nil {
			return t, nil
		}
	}

	result, err := as.When.Parse(text, as.Now().In(loc))
	switch {
	case err != nil:
		return time.Time{}, fmt.Errorf("ParseDate: can't parse %q: %w", text, err)
	case result == nil:
		return time.Time{}, fmt.Errorf("ParseDate: can't parse %q", text)
	}
	return result.Time, nil
}

// The `loader` package reads calendar documents (JSON or YAML) into an
// *ical.Calendar.
//
// A document has the shape of ical.CalendarData. Date fields accept RFC 3339,
// a few shorter layouts and natural language like "tomorrow at 10am", see
// utils.AppState.ParseDate.
package loader

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"icsgen/src-server/ical"
	"icsgen/src-server/utils"

	"gopkg.in/yaml.v3"
)

// Mapping keys holding a date or a list of dates, at any depth
var dateKeys = map[string]struct{}{
	"start":        {},
	"end":          {},
	"timestamp":    {},
	"created":      {},
	"lastModified": {},
	"triggerAt":    {},
	"exclude":      {},
}

// Read a calendar document from a `.json`, `.yaml` or `.yml` file
func Load(path string, as *utils.AppState) (*ical.Calendar, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", ".yaml", ".yml":
	default:
		return nil, fmt.Errorf("Load: unsupported file extension %q", ext)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	defer file.Close()

	slog.Debug("loading calendar document", "path", path)
	calendar, err := Decode(file, as)
	if err != nil {
		return nil, fmt.Errorf("Load %s: %w", path, err)
	}
	return calendar, nil
}

// Read a calendar document from r. JSON is decoded by the YAML parser, which
// keeps object keys in document order.
func Decode(r io.Reader, as *utils.AppState) (*ical.Calendar, error) {
	data, err := DecodeData(r, as)
	if err != nil {
		return nil, err
	}

	calendar, err := ical.NewCalendar(data)
	if err != nil {
		return nil, fmt.Errorf("can't build calendar: %w", err)
	}
	slog.Debug("calendar loaded", "events", calendar.Length())
	return calendar, nil
}

// Read a calendar document into its construction data, with dates resolved
// and config defaults applied
func DecodeData(r io.Reader, as *utils.AppState) (ical.CalendarData, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return ical.CalendarData{}, fmt.Errorf("can't read document: %w", err)
	}

	var root yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(raw)).Decode(&root); err != nil {
		if err == io.EOF {
			return ical.CalendarData{}, fmt.Errorf("empty document")
		}
		return ical.CalendarData{}, fmt.Errorf("can't parse document: %w", err)
	}

	if err := resolveDates(&root, as); err != nil {
		return ical.CalendarData{}, err
	}

	var data ical.CalendarData
	if err := root.Decode(&data); err != nil {
		return ical.CalendarData{}, fmt.Errorf("can't decode document: %w", err)
	}

	if data.ProdID == nil && as.Config.GetProdID() != "" {
		prodID := as.Config.GetProdID()
		data.ProdID = &prodID
	}
	if data.Timezone == nil && as.Config.GetTimezone() != "" {
		timezone := as.Config.GetTimezone()
		data.Timezone = &timezone
	}
	return data, nil
}

// Walk the document and rewrite every date scalar into a tagged RFC 3339
// timestamp, so the YAML decoder fills time.Time fields. Extension
// attributes are left alone.
func resolveDates(node *yaml.Node, as *utils.AppState) error {
	switch node.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, child := range node.Content {
			if err := resolveDates(child, as); err != nil {
				return err
			}
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if key.Value == "x" {
				continue
			}
			if _, ok := dateKeys[key.Value]; ok {
				if err := resolveDateValue(key.Value, value, as); err != nil {
					return err
				}
				continue
			}
			if err := resolveDates(value, as); err != nil {
				return err
			}
		}
	}
	return nil
}

func resolveDateValue(field string, node *yaml.Node, as *utils.AppState) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil
		}
		t, err := as.ParseDate(node.Value)
		if err != nil {
			return fmt.Errorf("invalid %s at line %d: %w", field, node.Line, err)
		}
		slog.Debug("date resolved", "field", field, "input", node.Value, "date", t)
		node.Tag = "!!timestamp"
		node.Style = 0
		node.Value = t.Format(time.RFC3339Nano)
	case yaml.SequenceNode:
		for _, item := range node.Content {
			if err := resolveDateValue(field, item, as); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("invalid %s at line %d: expected a date", field, node.Line)
	}
	return nil
}

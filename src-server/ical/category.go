package ical

import (
	"icsgen/src-server/ical/utils"

	"github.com/AlekSi/pointer"
)

type CategoryData struct {
	Name *string `json:"name" yaml:"name"`
}

// One entry of an event's CATEGORIES line
type Category struct {
	event *Event

	name *string
}

// Create a new category owned by the given event
func NewCategory(data CategoryData, event *Event) (*Category, error) {
	if event == nil {
		return nil, missingParent("category")
	}

	c := &Category{event: event}
	if data.Name != nil {
		c.SetName(*data.Name)
	}
	return c, nil
}

// Get the category name
func (c *Category) GetName() *string {
	return cloneString(c.name)
}

// Set the category name, an empty string clears it
func (c *Category) SetName(name string) *Category {
	c.name = pointer.ToStringOrNil(name)
	return c
}

func (c *Category) Validate() error {
	if c.name == nil {
		return invalidArgument("category name is required", nil)
	}
	return nil
}

// Render the escaped name. The event joins all of its categories with `,`.
func (c *Category) String() string {
	return utils.Escape(pointer.GetString(c.name))
}

func (c *Category) ToJSON() CategoryData {
	return CategoryData{Name: cloneString(c.name)}
}

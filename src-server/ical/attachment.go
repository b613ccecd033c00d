package ical

import (
	"strings"

	"github.com/AlekSi/pointer"
)

// The loosely-typed construction input of an Attachment, also returned by
// Attachment.ToJSON
type AttachmentData struct {
	FileName *string `json:"fileName" yaml:"fileName"`
	URL      *string `json:"url" yaml:"url"`
	X        XInput  `json:"x" yaml:"x"`
}

// A file attached to an event, rendered as a single ATTACH line
type Attachment struct {
	event *Event

	fileName *string
	url      *string
	x        extensions
}

// Create a new attachment owned by the given event. Fails with
// ErrMissingDependency when the event is nil.
func NewAttachment(data AttachmentData, event *Event) (*Attachment, error) {
	if event == nil {
		return nil, missingParent("attachment")
	}

	a := &Attachment{event: event}
	if data.FileName != nil {
		a.SetFileName(*data.FileName)
	}
	if data.URL != nil {
		a.SetURL(*data.URL)
	}
	if _, err := a.SetX(data.X); err != nil {
		return nil, err
	}
	return a, nil
}

// #region Getters

// Get the file name, nil when unset
func (a *Attachment) GetFileName() *string {
	return cloneString(a.fileName)
}

// Get the URL, nil when unset
func (a *Attachment) GetURL() *string {
	return cloneString(a.url)
}

// Get the extension attributes in insertion order
func (a *Attachment) GetX() []XAttr {
	return a.x.list()
}

// #endregion

// #region Setters

// Set the file name, an empty string clears it
func (a *Attachment) SetFileName(fileName string) *Attachment {
	a.fileName = pointer.ToStringOrNil(fileName)
	return a
}

// Set the URL, an empty string clears it
func (a *Attachment) SetURL(url string) *Attachment {
	a.url = pointer.ToStringOrNil(url)
	return a
}

// Append a batch of extension attributes
func (a *Attachment) SetX(in XInput) (*Attachment, error) {
	if err := a.x.append(in); err != nil {
		return a, err
	}
	return a, nil
}

// Append a single extension attribute
func (a *Attachment) AddX(key string, value string) *Attachment {
	a.x.add(key, value)
	return a
}

// #endregion

// Get or append extension attributes in one call
func (a *Attachment) X(call XCall) ([]XAttr, error) {
	return a.x.apply(call)
}

// Render the ATTACH line, e.g.
//
//	ATTACH;FILENAME=a.png:http://x/a.png;X-FOO=bar\,baz
//
// The file name and URL go out as they were stored: only extension values
// are escaped.
func (a *Attachment) String() string {
	var sb strings.Builder
	sb.WriteString("ATTACH")
	if a.fileName != nil {
		sb.WriteString(";FILENAME=" + *a.fileName)
	}
	sb.WriteString(":" + pointer.GetString(a.url))
	sb.WriteString(a.x.params())
	return sb.String()
}

// Take a snapshot that shares nothing with the attachment
func (a *Attachment) ToJSON() AttachmentData {
	return AttachmentData{
		FileName: cloneString(a.fileName),
		URL:      cloneString(a.url),
		X:        XFromList(a.x.list()...),
	}
}

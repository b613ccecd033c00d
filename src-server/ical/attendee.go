package ical

import (
	"strconv"
	"strings"

	"icsgen/src-server/ical/utils"

	"github.com/AlekSi/pointer"
)

type (
	AttendeeRole              string
	AttendeeCustomertype      string
	AttendeeParticipantStatus string
)

const (
	AttendeeRoleChair AttendeeRole = "CHAIR"           // organizer
	AttendeeRoleReq   AttendeeRole = "REQ-PARTICIPANT" // required participant
	AttendeeRoleOpt   AttendeeRole = "OPT-PARTICIPANT" // optional participant
	AttendeeRoleNon   AttendeeRole = "NON-PARTICIPANT" // for information only

	AttendeeCutypeIndividual AttendeeCustomertype = "INDIVIDUAL"
	AttendeeCutypeGroup      AttendeeCustomertype = "GROUP"
	AttendeeCutypeResource   AttendeeCustomertype = "RESOURCE"
	AttendeeCutypeRoom       AttendeeCustomertype = "ROOM"
	AttendeeCutypeUnknown    AttendeeCustomertype = "UNKNOWN"

	AttendeePartStatNeedsAction AttendeeParticipantStatus = "NEEDS-ACTION"
	AttendeePartStatAccepted    AttendeeParticipantStatus = "ACCEPTED"
	AttendeePartStatDeclined    AttendeeParticipantStatus = "DECLINED"
	AttendeePartStatTentative   AttendeeParticipantStatus = "TENTATIVE"
	AttendeePartStatDelegated   AttendeeParticipantStatus = "DELEGATED"
)

type AttendeeData struct {
	Name          *string                    `json:"name" yaml:"name"`
	Email         *string                    `json:"email" yaml:"email"`
	Mailto        *string                    `json:"mailto" yaml:"mailto"`
	SentBy        *string                    `json:"sentBy" yaml:"sentBy"`
	Status        *AttendeeParticipantStatus `json:"status" yaml:"status"`
	Role          *AttendeeRole              `json:"role" yaml:"role"`
	RSVP          *bool                      `json:"rsvp" yaml:"rsvp"`
	Type          *AttendeeCustomertype      `json:"type" yaml:"type"`
	DelegatedTo   *string                    `json:"delegatedTo" yaml:"delegatedTo"`
	DelegatedFrom *string                    `json:"delegatedFrom" yaml:"delegatedFrom"`
	X             XInput                     `json:"x" yaml:"x"`
}

// A participant of an event or a recipient of an email alarm, rendered as a
// single ATTENDEE line
type Attendee struct {
	parent Parent

	name  *string
	email *string
	// overrides email as the calendar address when set
	mailto *string
	sentBy *string
	status *AttendeeParticipantStatus
	role   AttendeeRole
	// Répondez s'il vous plaît, French for "Please respond"
	rsvp *bool
	// Calendar user type
	cuType        *AttendeeCustomertype
	delegatedTo   *string
	delegatedFrom *string
	x             extensions
}

// Create a new attendee owned by an event or an alarm. The role defaults to
// REQ-PARTICIPANT.
func NewAttendee(data AttendeeData, parent Parent) (*Attendee, error) {
	if isNilParent(parent) {
		return nil, missingParent("attendee")
	}

	a := &Attendee{
		parent: parent,
		role:   AttendeeRoleReq,
	}
	if data.Name != nil {
		a.SetName(*data.Name)
	}
	if data.Email != nil {
		a.SetEmail(*data.Email)
	}
	if data.Mailto != nil {
		a.SetMailto(*data.Mailto)
	}
	if data.SentBy != nil {
		a.SetSentBy(*data.SentBy)
	}
	if data.Role != nil {
		if _, err := a.SetRole(*data.Role); err != nil {
			return nil, err
		}
	}
	if data.RSVP != nil {
		a.SetRSVP(*data.RSVP)
	}
	if data.Type != nil {
		if _, err := a.SetType(*data.Type); err != nil {
			return nil, err
		}
	}
	if data.DelegatedFrom != nil {
		a.SetDelegatedFrom(*data.DelegatedFrom)
	}
	if data.DelegatedTo != nil {
		a.SetDelegatedTo(*data.DelegatedTo)
	}
	// after delegatedTo, so an explicit status wins over the implied one
	if data.Status != nil {
		if _, err := a.SetStatus(*data.Status); err != nil {
			return nil, err
		}
	}
	if _, err := a.SetX(data.X); err != nil {
		return nil, err
	}
	return a, nil
}

// #region Getters

func (a *Attendee) GetName() *string {
	return cloneString(a.name)
}

func (a *Attendee) GetEmail() *string {
	return cloneString(a.email)
}

func (a *Attendee) GetMailto() *string {
	return cloneString(a.mailto)
}

func (a *Attendee) GetSentBy() *string {
	return cloneString(a.sentBy)
}

func (a *Attendee) GetStatus() *AttendeeParticipantStatus {
	if a.status == nil {
		return nil
	}
	status := *a.status
	return &status
}

func (a *Attendee) GetRole() AttendeeRole {
	return a.role
}

func (a *Attendee) GetRSVP() *bool {
	return cloneBool(a.rsvp)
}

func (a *Attendee) GetType() *AttendeeCustomertype {
	if a.cuType == nil {
		return nil
	}
	cuType := *a.cuType
	return &cuType
}

func (a *Attendee) GetDelegatedTo() *string {
	return cloneString(a.delegatedTo)
}

func (a *Attendee) GetDelegatedFrom() *string {
	return cloneString(a.delegatedFrom)
}

func (a *Attendee) GetX() []XAttr {
	return a.x.list()
}

// #endregion

// #region Setters

// Set the common name (CN)
func (a *Attendee) SetName(name string) *Attendee {
	a.name = pointer.ToStringOrNil(name)
	return a
}

func (a *Attendee) SetEmail(email string) *Attendee {
	a.email = pointer.ToStringOrNil(email)
	return a
}

// Set the address used after MAILTO: instead of the email
func (a *Attendee) SetMailto(mailto string) *Attendee {
	a.mailto = pointer.ToStringOrNil(mailto)
	return a
}

// Set the email of the person acting on behalf of the attendee (SENT-BY)
func (a *Attendee) SetSentBy(sentBy string) *Attendee {
	a.sentBy = pointer.ToStringOrNil(sentBy)
	return a
}

// Set the participation status (PARTSTAT), an empty status clears it
func (a *Attendee) SetStatus(status AttendeeParticipantStatus) (*Attendee, error) {
	normalized, err := normalizeEnum(status, "status",
		AttendeePartStatNeedsAction, AttendeePartStatAccepted, AttendeePartStatDeclined,
		AttendeePartStatTentative, AttendeePartStatDelegated)
	if err != nil {
		return a, err
	}
	a.status = normalized
	return a, nil
}

// Set the role, an empty role resets it to REQ-PARTICIPANT
func (a *Attendee) SetRole(role AttendeeRole) (*Attendee, error) {
	normalized, err := normalizeEnum(role, "role",
		AttendeeRoleChair, AttendeeRoleReq, AttendeeRoleOpt, AttendeeRoleNon)
	if err != nil {
		return a, err
	}
	a.role = AttendeeRoleReq
	if normalized != nil {
		a.role = *normalized
	}
	return a, nil
}

func (a *Attendee) SetRSVP(rsvp bool) *Attendee {
	a.rsvp = pointer.ToBool(rsvp)
	return a
}

// Remove the RSVP parameter from the output
func (a *Attendee) ClearRSVP() *Attendee {
	a.rsvp = nil
	return a
}

// Set the calendar user type (CUTYPE), an empty type clears it
func (a *Attendee) SetType(cuType AttendeeCustomertype) (*Attendee, error) {
	normalized, err := normalizeEnum(cuType, "type",
		AttendeeCutypeIndividual, AttendeeCutypeGroup, AttendeeCutypeResource,
		AttendeeCutypeRoom, AttendeeCutypeUnknown)
	if err != nil {
		return a, err
	}
	a.cuType = normalized
	return a, nil
}

// Set the email the attendee delegated to. The status becomes DELEGATED.
func (a *Attendee) SetDelegatedTo(email string) *Attendee {
	a.delegatedTo = pointer.ToStringOrNil(email)
	if a.delegatedTo != nil {
		status := AttendeePartStatDelegated
		a.status = &status
	}
	return a
}

// Set the email the attendee was delegated from
func (a *Attendee) SetDelegatedFrom(email string) *Attendee {
	a.delegatedFrom = pointer.ToStringOrNil(email)
	return a
}

func (a *Attendee) SetX(in XInput) (*Attendee, error) {
	if err := a.x.append(in); err != nil {
		return a, err
	}
	return a, nil
}

func (a *Attendee) AddX(key string, value string) *Attendee {
	a.x.add(key, value)
	return a
}

// #endregion

func (a *Attendee) X(call XCall) ([]XAttr, error) {
	return a.x.apply(call)
}

func (a *Attendee) Validate() error {
	if a.email == nil {
		return invalidArgument("attendee email is required", map[string]any{
			"name": pointer.GetString(a.name),
		})
	}
	return nil
}

// Render the ATTENDEE line, e.g.
//
//	ATTENDEE;ROLE=REQ-PARTICIPANT;PARTSTAT=ACCEPTED;CN="Jane":MAILTO:jane@example.com
//
// Call Validate first, an attendee without email renders an empty address.
func (a *Attendee) String() string {
	var sb strings.Builder
	sb.WriteString("ATTENDEE;ROLE=" + string(a.role))
	if a.cuType != nil {
		sb.WriteString(";CUTYPE=" + string(*a.cuType))
	}
	if a.status != nil {
		sb.WriteString(";PARTSTAT=" + string(*a.status))
	}
	if a.rsvp != nil {
		sb.WriteString(";RSVP=" + strings.ToUpper(strconv.FormatBool(*a.rsvp)))
	}
	if a.sentBy != nil {
		sb.WriteString(";SENT-BY=" + utils.QuoteParam("mailto:"+*a.sentBy))
	}
	if a.delegatedTo != nil {
		sb.WriteString(";DELEGATED-TO=" + utils.QuoteParam("mailto:"+*a.delegatedTo))
	}
	if a.delegatedFrom != nil {
		sb.WriteString(";DELEGATED-FROM=" + utils.QuoteParam("mailto:"+*a.delegatedFrom))
	}
	if a.name != nil {
		sb.WriteString(";CN=" + utils.QuoteParam(*a.name))
	}
	if a.email != nil && a.mailto != nil {
		sb.WriteString(";EMAIL=" + utils.QuoteParam(*a.email))
	}
	sb.WriteString(a.x.params())

	address := a.mailto
	if address == nil {
		address = a.email
	}
	sb.WriteString(":MAILTO:" + utils.Escape(pointer.GetString(address)))
	return sb.String()
}

func (a *Attendee) ToJSON() AttendeeData {
	role := a.role
	return AttendeeData{
		Name:          cloneString(a.name),
		Email:         cloneString(a.email),
		Mailto:        cloneString(a.mailto),
		SentBy:        cloneString(a.sentBy),
		Status:        a.GetStatus(),
		Role:          &role,
		RSVP:          cloneBool(a.rsvp),
		Type:          a.GetType(),
		DelegatedTo:   cloneString(a.delegatedTo),
		DelegatedFrom: cloneString(a.delegatedFrom),
		X:             XFromList(a.x.list()...),
	}
}

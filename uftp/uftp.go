// Package uftp defines the Shapeshifter UFTP 3.x message model: the
// SignedMessage envelope, every business payload kind, their validation
// rules, the XML and JSON codecs and the static routing tables that
// describe which participant may send which kind to which other
// participant.
package uftp

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"time"
)

// Kind identifies a concrete payload message type by its schema name,
// for example "FlexOffer" or "AgrPortfolioUpdate".
type Kind string

// Role is the market role of a UFTP participant.
type Role string

const (
	RoleAGR Role = "AGR"
	RoleCRO Role = "CRO"
	RoleDSO Role = "DSO"
)

// Valid reports whether the role is one of the three known market roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAGR, RoleCRO, RoleDSO:
		return true
	}
	return false
}

// PayloadMessage is implemented by every inner (signed) message kind.
type PayloadMessage interface {
	// Meta returns the metadata attributes common to all payload messages.
	Meta() *PayloadMessageMeta
	// Kind returns the schema name of the concrete message type.
	Kind() Kind
	// Validate checks the message against the UFTP schema rules and
	// normalises defaulted fields. It must be called before sealing and
	// is called by the codecs after parsing.
	Validate() error
}

// ResponseMessage is implemented by every payload message that answers a
// previously received request.
type ResponseMessage interface {
	PayloadMessage
	// Response returns the result attributes common to all response kinds.
	Response() *PayloadMessageResponseMeta
	// SetReferenceID records the MessageID of the original request in the
	// typed reference attribute of the response (FlexOfferMessageID,
	// AGRPortfolioUpdateMessageID, ...).
	SetReferenceID(id string)
}

// PayloadMessageMeta carries the attributes common to every payload
// message. The attribute names and patterns follow the UFTP 3.x schema.
type PayloadMessageMeta struct {
	Version         string `xml:"Version,attr,omitempty" json:"version,omitempty"`
	SenderDomain    string `xml:"SenderDomain,attr,omitempty" json:"sender_domain,omitempty"`
	RecipientDomain string `xml:"RecipientDomain,attr,omitempty" json:"recipient_domain,omitempty"`
	TimeStamp       string `xml:"TimeStamp,attr,omitempty" json:"time_stamp,omitempty"`
	MessageID       string `xml:"MessageID,attr,omitempty" json:"message_id,omitempty"`
	ConversationID  string `xml:"ConversationID,attr,omitempty" json:"conversation_id,omitempty"`
}

// Meta implements PayloadMessage.
func (m *PayloadMessageMeta) Meta() *PayloadMessageMeta { return m }

func (m *PayloadMessageMeta) validate() error {
	if m.Version == "" {
		m.Version = DefaultVersion
	}
	if err := matchOptional("Version", m.Version, reVersion); err != nil {
		return err
	}
	if err := matchOptional("SenderDomain", m.SenderDomain, reDomain); err != nil {
		return err
	}
	if err := matchOptional("RecipientDomain", m.RecipientDomain, reDomain); err != nil {
		return err
	}
	if err := matchOptional("TimeStamp", m.TimeStamp, reTimestamp); err != nil {
		return err
	}
	if err := matchOptional("MessageID", m.MessageID, reUUID); err != nil {
		return err
	}
	return matchOptional("ConversationID", m.ConversationID, reUUID)
}

// AcceptedRejected is the functional result of a request message.
type AcceptedRejected string

const (
	Accepted AcceptedRejected = "Accepted"
	Rejected AcceptedRejected = "Rejected"
)

// PayloadMessageResponseMeta carries the result attributes common to
// every response kind.
type PayloadMessageResponseMeta struct {
	Result          AcceptedRejected `xml:"Result,attr,omitempty" json:"result,omitempty"`
	RejectionReason string           `xml:"RejectionReason,attr,omitempty" json:"rejection_reason,omitempty"`
}

// Response implements ResponseMessage.
func (m *PayloadMessageResponseMeta) Response() *PayloadMessageResponseMeta { return m }

// Rejected reports whether the response carries a functional rejection.
func (m *PayloadMessageResponseMeta) IsRejected() bool { return m.Result == Rejected }

func (m *PayloadMessageResponseMeta) validate() error {
	switch m.Result {
	case "", Accepted, Rejected:
		return nil
	}
	return fmt.Errorf("%w: Result must be Accepted or Rejected, got %q", ErrValidation, m.Result)
}

// FlexMessageMeta carries the attributes shared by all flexibility
// trading messages: the ISP grid they quantise onto and the congestion
// point they apply to.
type FlexMessageMeta struct {
	ISPDuration     Duration `xml:"ISP-Duration,attr,omitempty" json:"isp_duration,omitempty"`
	TimeZone        string   `xml:"TimeZone,attr,omitempty" json:"time_zone,omitempty"`
	Period          Date     `xml:"Period,attr,omitempty" json:"period,omitempty"`
	CongestionPoint string   `xml:"CongestionPoint,attr,omitempty" json:"congestion_point,omitempty"`
}

func (m *FlexMessageMeta) validate() error {
	if m.ISPDuration == 0 {
		return fmt.Errorf("%w: ISP-Duration is required", ErrValidation)
	}
	if m.TimeZone == "" {
		m.TimeZone = DefaultTimeZone
	}
	if err := matchOptional("TimeZone", m.TimeZone, reTimeZone); err != nil {
		return err
	}
	if m.Period.IsZero() {
		return fmt.Errorf("%w: Period is required", ErrValidation)
	}
	return match("CongestionPoint", m.CongestionPoint, reEntityAddress)
}

// DefaultVersion is the protocol version stamped on outgoing messages
// when the caller leaves it unset.
const DefaultVersion = "3.0.0"

// DefaultTimeZone applies to messages that carry a TimeZone attribute
// when the caller leaves it unset.
const DefaultTimeZone = "Europe/Amsterdam"

// DefaultCurrency is the ISO 4217 code used when a message that prices
// flexibility does not name a currency.
const DefaultCurrency = "EUR"

// Date is a calendar day (yyyy-mm-dd) used for Period attributes. The
// zero Date marshals to nothing, which is how optional periods are
// omitted from the wire.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate parses a yyyy-mm-dd string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: invalid date %q", ErrValidation, s)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return d == Date{} }

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// MarshalXMLAttr implements xml.MarshalerAttr. A zero Date omits the
// attribute entirely.
func (d Date) MarshalXMLAttr(name xml.Name) (xml.Attr, error) {
	if d.IsZero() {
		return xml.Attr{}, nil
	}
	return xml.Attr{Name: name, Value: d.String()}, nil
}

// UnmarshalXMLAttr implements xml.UnmarshalerAttr.
func (d *Date) UnmarshalXMLAttr(attr xml.Attr) error {
	parsed, err := ParseDate(attr.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Duration is an ISP duration expressed in whole minutes. It marshals as
// an ISO 8601 minutes-only interval such as PT15M, which is the only
// form the UFTP schema allows for ISP-Duration.
type Duration time.Duration

// Minutes returns a Duration of n minutes.
func Minutes(n int) Duration { return Duration(time.Duration(n) * time.Minute) }

// ParseDuration parses an ISO 8601 minutes-only interval (PTnM).
func ParseDuration(s string) (Duration, error) {
	var minutes int
	if _, err := fmt.Sscanf(s, "PT%dM", &minutes); err != nil || minutes <= 0 {
		return 0, fmt.Errorf("%w: invalid ISP duration %q, expected PTnM", ErrValidation, s)
	}
	return Minutes(minutes), nil
}

func (d Duration) String() string {
	return fmt.Sprintf("PT%dM", int(time.Duration(d).Minutes()))
}

// MarshalXMLAttr implements xml.MarshalerAttr. A zero Duration omits
// the attribute.
func (d Duration) MarshalXMLAttr(name xml.Name) (xml.Attr, error) {
	if d == 0 {
		return xml.Attr{}, nil
	}
	return xml.Attr{Name: name, Value: d.String()}, nil
}

// UnmarshalXMLAttr implements xml.UnmarshalerAttr.
func (d *Duration) UnmarshalXMLAttr(attr xml.Attr) error {
	parsed, err := ParseDuration(attr.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	if d == 0 {
		return []byte(`null`), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = 0
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDuration(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Timestamp formats a point in time the way the UFTP schema expects
// TimeStamp and ExpirationDateTime attributes: ISO 8601 with an explicit
// UTC offset.
func Timestamp(t time.Time) string {
	return t.Format("2006-01-02T15:04:05.000000000Z07:00")
}

package uftp

import (
	"encoding/xml"

	"github.com/shopspring/decimal"
)

// MeteringISP is a single metering value at the end of one ISP.
type MeteringISP struct {
	Start int             `xml:"Start,attr" json:"start"`
	Value decimal.Decimal `xml:"Value,attr" json:"value"`
}

func (i *MeteringISP) validate() error {
	if i.Start < 1 {
		return requiredError("Start")
	}
	return nil
}

// MeteringProfile carries a sequence of ISPs with one defined type of
// metering data.
type MeteringProfile struct {
	ISPs        []MeteringISP       `xml:"ISP" json:"isps"`
	ProfileType MeteringProfileType `xml:"ProfileType,attr" json:"profile_type"`
	Unit        MeteringUnit        `xml:"Unit,attr" json:"unit"`
}

func (p *MeteringProfile) validate() error {
	if err := ValidateList("ISP", p.ISPs, 1); err != nil {
		return err
	}
	for i := range p.ISPs {
		if err := p.ISPs[i].validate(); err != nil {
			return err
		}
	}
	if err := p.ProfileType.validate("ProfileType"); err != nil {
		return err
	}
	return p.Unit.validate("Unit")
}

// Metering reports measured power or energy per ISP for one meter on
// one day.
type Metering struct {
	XMLName xml.Name `xml:"Metering" json:"-"`
	PayloadMessageMeta
	Profiles    []MeteringProfile `xml:"Profile" json:"profiles"`
	Revision    int               `xml:"Revision,attr" json:"revision"`
	ISPDuration Duration          `xml:"ISP-Duration,attr,omitempty" json:"isp_duration,omitempty"`
	TimeZone    string            `xml:"TimeZone,attr,omitempty" json:"time_zone,omitempty"`
	Currency    string            `xml:"Currency,attr,omitempty" json:"currency,omitempty"`
	Period      Date              `xml:"Period,attr,omitempty" json:"period,omitempty"`
	EAN         string            `xml:"EAN,attr" json:"ean"`
}

func (m *Metering) Kind() Kind { return KindMetering }

func (m *Metering) Validate() error {
	if err := m.PayloadMessageMeta.validate(); err != nil {
		return err
	}
	if err := ValidateList("Profile", m.Profiles, 1); err != nil {
		return err
	}
	for i := range m.Profiles {
		if err := m.Profiles[i].validate(); err != nil {
			return err
		}
	}
	if m.ISPDuration == 0 {
		return requiredError("ISP-Duration")
	}
	if m.TimeZone == "" {
		m.TimeZone = DefaultTimeZone
	}
	if err := match("TimeZone", m.TimeZone, reTimeZone); err != nil {
		return err
	}
	if err := matchOptional("Currency", m.Currency, reCurrency); err != nil {
		return err
	}
	if m.Period.IsZero() {
		return requiredError("Period")
	}
	return match("EAN", m.EAN, reEAN)
}

// MeteringResponse answers a Metering message.
type MeteringResponse struct {
	XMLName xml.Name `xml:"MeteringResponse" json:"-"`
	PayloadMessageMeta
	PayloadMessageResponseMeta
	MeteringMessageID string `xml:"MeteringMessageID,attr,omitempty" json:"metering_message_id,omitempty"`
}

func (m *MeteringResponse) Kind() Kind { return KindMeteringResponse }

func (m *MeteringResponse) SetReferenceID(id string) { m.MeteringMessageID = id }

func (m *MeteringResponse) Validate() error {
	if err := m.PayloadMessageMeta.validate(); err != nil {
		return err
	}
	if err := m.PayloadMessageResponseMeta.validate(); err != nil {
		return err
	}
	return matchOptional("MeteringMessageID", m.MeteringMessageID, reUUID)
}

package uftp

import "encoding/xml"

// FlexReservationUpdateISP is the remaining reserved power on one or
// more consecutive ISPs.
type FlexReservationUpdateISP struct {
	Power    int `xml:"Power,attr" json:"power"`
	Start    int `xml:"Start,attr" json:"start"`
	Duration int `xml:"Duration,attr,omitempty" json:"duration,omitempty"`
}

func (i *FlexReservationUpdateISP) validate() error {
	if i.Duration == 0 {
		i.Duration = 1
	}
	if i.Start < 1 {
		return requiredError("Start")
	}
	return nil
}

// FlexReservationUpdate tells the AGR how much of the power reserved
// under a bilateral contract is still held.
type FlexReservationUpdate struct {
	XMLName xml.Name `xml:"FlexReservationUpdate" json:"-"`
	PayloadMessageMeta
	FlexMessageMeta
	ISPs       []FlexReservationUpdateISP `xml:"ISP" json:"isps"`
	ContractID string                     `xml:"ContractID,attr" json:"contract_id"`
	Reference  string                     `xml:"Reference,attr" json:"reference"`
}

func (m *FlexReservationUpdate) Kind() Kind { return KindFlexReservationUpdate }

func (m *FlexReservationUpdate) Validate() error {
	if err := m.PayloadMessageMeta.validate(); err != nil {
		return err
	}
	if err := m.FlexMessageMeta.validate(); err != nil {
		return err
	}
	if err := ValidateList("ISP", m.ISPs, 1); err != nil {
		return err
	}
	for i := range m.ISPs {
		if err := m.ISPs[i].validate(); err != nil {
			return err
		}
	}
	if m.ContractID == "" {
		return requiredError("ContractID")
	}
	if m.Reference == "" {
		return requiredError("Reference")
	}
	return nil
}

// FlexReservationUpdateResponse answers a FlexReservationUpdate.
type FlexReservationUpdateResponse struct {
	XMLName xml.Name `xml:"FlexReservationUpdateResponse" json:"-"`
	PayloadMessageMeta
	PayloadMessageResponseMeta
	FlexReservationUpdateMessageID string `xml:"FlexReservationUpdateMessageID,attr,omitempty" json:"flex_reservation_update_message_id,omitempty"`
}

func (m *FlexReservationUpdateResponse) Kind() Kind { return KindFlexReservationUpdateResponse }

func (m *FlexReservationUpdateResponse) SetReferenceID(id string) {
	m.FlexReservationUpdateMessageID = id
}

func (m *FlexReservationUpdateResponse) Validate() error {
	if err := m.PayloadMessageMeta.validate(); err != nil {
		return err
	}
	if err := m.PayloadMessageResponseMeta.validate(); err != nil {
		return err
	}
	return matchOptional("FlexReservationUpdateMessageID", m.FlexReservationUpdateMessageID, reUUID)
}

package uftp

import "encoding/xml"

// FlexRequestISP is the power band the DSO would like to see on one or
// more consecutive ISPs, with an optional disposition.
type FlexRequestISP struct {
	Disposition AvailableRequested `xml:"Disposition,attr,omitempty" json:"disposition,omitempty"`
	MinPower    int                `xml:"MinPower,attr" json:"min_power"`
	MaxPower    int                `xml:"MaxPower,attr" json:"max_power"`
	Start       int                `xml:"Start,attr" json:"start"`
	Duration    int                `xml:"Duration,attr,omitempty" json:"duration,omitempty"`
}

func (i *FlexRequestISP) validate() error {
	if i.Duration == 0 {
		i.Duration = 1
	}
	if err := i.Disposition.validate("Disposition"); err != nil {
		return err
	}
	if i.Start < 1 {
		return requiredError("Start")
	}
	return nil
}

// FlexRequest is the DSO's invitation to the AGR to offer flexibility
// on a congestion point.
type FlexRequest struct {
	XMLName xml.Name `xml:"FlexRequest" json:"-"`
	PayloadMessageMeta
	FlexMessageMeta
	ISPs               []FlexRequestISP `xml:"ISP" json:"isps"`
	Revision           int              `xml:"Revision,attr" json:"revision"`
	ExpirationDateTime string           `xml:"ExpirationDateTime,attr,omitempty" json:"expiration_date_time,omitempty"`
	ContractID         string           `xml:"ContractID,attr,omitempty" json:"contract_id,omitempty"`
	ServiceType        string           `xml:"ServiceType,attr,omitempty" json:"service_type,omitempty"`
}

func (m *FlexRequest) Kind() Kind { return KindFlexRequest }

func (m *FlexRequest) Validate() error {
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
	return match("ExpirationDateTime", m.ExpirationDateTime, reTimestamp)
}

// FlexRequestResponse answers a FlexRequest.
type FlexRequestResponse struct {
	XMLName xml.Name `xml:"FlexRequestResponse" json:"-"`
	PayloadMessageMeta
	PayloadMessageResponseMeta
	FlexRequestMessageID string `xml:"FlexRequestMessageID,attr,omitempty" json:"flex_request_message_id,omitempty"`
}

func (m *FlexRequestResponse) Kind() Kind { return KindFlexRequestResponse }

func (m *FlexRequestResponse) SetReferenceID(id string) { m.FlexRequestMessageID = id }

func (m *FlexRequestResponse) Validate() error {
	if err := m.PayloadMessageMeta.validate(); err != nil {
		return err
	}
	if err := m.PayloadMessageResponseMeta.validate(); err != nil {
		return err
	}
	return matchOptional("FlexRequestMessageID", m.FlexRequestMessageID, reUUID)
}

package uftp

import "encoding/xml"

// DPrognosisISP is the forecast power for one or more consecutive ISPs.
type DPrognosisISP struct {
	Power    int `xml:"Power,attr" json:"power"`
	Start    int `xml:"Start,attr" json:"start"`
	Duration int `xml:"Duration,attr,omitempty" json:"duration,omitempty"`
}

func (i *DPrognosisISP) validate() error {
	if i.Duration == 0 {
		i.Duration = 1
	}
	if i.Start < 1 {
		return requiredError("Start")
	}
	return nil
}

// DPrognosis is the AGR's demand prognosis for a congestion point on a
// given day. The combination of sender domain and revision must be
// unique.
type DPrognosis struct {
	XMLName xml.Name `xml:"D-Prognosis" json:"-"`
	PayloadMessageMeta
	FlexMessageMeta
	ISPs     []DPrognosisISP `xml:"ISP" json:"isps"`
	Revision int             `xml:"Revision,attr" json:"revision"`
}

func (m *DPrognosis) Kind() Kind { return KindDPrognosis }

func (m *DPrognosis) Validate() error {
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
	return nil
}

// FlexOrderStatus reports the validation state of a previously received
// FlexOrder inside a prognosis response.
type FlexOrderStatus struct {
	FlexOrderMessageID string `xml:"FlexOrderMessageID,attr" json:"flex_order_message_id"`
	IsValidated        bool   `xml:"IsValidated,attr" json:"is_validated"`
}

func (s *FlexOrderStatus) validate() error {
	return match("FlexOrderMessageID", s.FlexOrderMessageID, reUUID)
}

// DPrognosisResponse answers a DPrognosis.
type DPrognosisResponse struct {
	XMLName xml.Name `xml:"D-PrognosisResponse" json:"-"`
	PayloadMessageMeta
	PayloadMessageResponseMeta
	DPrognosisMessageID string            `xml:"D-PrognosisMessageID,attr,omitempty" json:"d_prognosis_message_id,omitempty"`
	FlexOrderStatuses   []FlexOrderStatus `xml:"FlexOrderStatus" json:"flex_order_statuses,omitempty"`
}

func (m *DPrognosisResponse) Kind() Kind { return KindDPrognosisResponse }

func (m *DPrognosisResponse) SetReferenceID(id string) { m.DPrognosisMessageID = id }

func (m *DPrognosisResponse) Validate() error {
	if err := m.PayloadMessageMeta.validate(); err != nil {
		return err
	}
	if err := m.PayloadMessageResponseMeta.validate(); err != nil {
		return err
	}
	if err := matchOptional("D-PrognosisMessageID", m.DPrognosisMessageID, reUUID); err != nil {
		return err
	}
	for i := range m.FlexOrderStatuses {
		if err := m.FlexOrderStatuses[i].validate(); err != nil {
			return err
		}
	}
	return nil
}

package uftp

import "encoding/xml"

// FlexOrderISP is the power ordered on one or more consecutive ISPs.
type FlexOrderISP struct {
	Power    int `xml:"Power,attr" json:"power"`
	Start    int `xml:"Start,attr" json:"start"`
	Duration int `xml:"Duration,attr,omitempty" json:"duration,omitempty"`
}

func (i *FlexOrderISP) validate() error {
	if i.Duration == 0 {
		i.Duration = 1
	}
	if i.Start < 1 {
		return requiredError("Start")
	}
	return nil
}

// FlexOrder is the DSO's acceptance of (an option from) a FlexOffer.
type FlexOrder struct {
	XMLName xml.Name `xml:"FlexOrder" json:"-"`
	PayloadMessageMeta
	FlexMessageMeta
	ISPs                []FlexOrderISP   `xml:"ISP" json:"isps"`
	FlexOfferMessageID  string           `xml:"FlexOfferMessageID,attr" json:"flex_offer_message_id"`
	ContractID          string           `xml:"ContractID,attr,omitempty" json:"contract_id,omitempty"`
	DPrognosisMessageID string           `xml:"D-PrognosisMessageID,attr,omitempty" json:"d_prognosis_message_id,omitempty"`
	BaselineReference   string           `xml:"BaselineReference,attr,omitempty" json:"baseline_reference,omitempty"`
	Price               Price            `xml:"Price,attr" json:"price"`
	Currency            string           `xml:"Currency,attr,omitempty" json:"currency,omitempty"`
	OrderReference      string           `xml:"OrderReference,attr" json:"order_reference"`
	OptionReference     string           `xml:"OptionReference,attr,omitempty" json:"option_reference,omitempty"`
	ActivationFactor    ActivationFactor `xml:"ActivationFactor,attr" json:"activation_factor"`
}

func (m *FlexOrder) Kind() Kind { return KindFlexOrder }

func (m *FlexOrder) Validate() error {
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
	if err := match("FlexOfferMessageID", m.FlexOfferMessageID, reUUID); err != nil {
		return err
	}
	if err := matchOptional("D-PrognosisMessageID", m.DPrognosisMessageID, reUUID); err != nil {
		return err
	}
	if err := match("Currency", m.Currency, reCurrency); err != nil {
		return err
	}
	if m.OrderReference == "" {
		return requiredError("OrderReference")
	}
	if m.ActivationFactor.IsZero() {
		m.ActivationFactor = FullActivation()
	}
	return m.ActivationFactor.Validate("ActivationFactor")
}

// FlexOrderResponse answers a FlexOrder.
type FlexOrderResponse struct {
	XMLName xml.Name `xml:"FlexOrderResponse" json:"-"`
	PayloadMessageMeta
	PayloadMessageResponseMeta
	FlexOrderMessageID string `xml:"FlexOrderMessageID,attr,omitempty" json:"flex_order_message_id,omitempty"`
}

func (m *FlexOrderResponse) Kind() Kind { return KindFlexOrderResponse }

func (m *FlexOrderResponse) SetReferenceID(id string) { m.FlexOrderMessageID = id }

func (m *FlexOrderResponse) Validate() error {
	if err := m.PayloadMessageMeta.validate(); err != nil {
		return err
	}
	if err := m.PayloadMessageResponseMeta.validate(); err != nil {
		return err
	}
	return matchOptional("FlexOrderMessageID", m.FlexOrderMessageID, reUUID)
}

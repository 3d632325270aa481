package uftp

import "encoding/xml"

// FlexOfferOptionISP is the power offered on one or more consecutive
// ISPs within an offer option.
type FlexOfferOptionISP struct {
	Power    int `xml:"Power,attr" json:"power"`
	Start    int `xml:"Start,attr" json:"start"`
	Duration int `xml:"Duration,attr,omitempty" json:"duration,omitempty"`
}

func (i *FlexOfferOptionISP) validate() error {
	if i.Duration == 0 {
		i.Duration = 1
	}
	if i.Start < 1 {
		return requiredError("Start")
	}
	return nil
}

// FlexOfferOption is one mutually exclusive way to fulfil a FlexRequest,
// with its own price and minimum activation factor.
type FlexOfferOption struct {
	ISPs                []FlexOfferOptionISP `xml:"ISP" json:"isps"`
	OptionReference     string               `xml:"OptionReference,attr" json:"option_reference"`
	Price               Price                `xml:"Price,attr" json:"price"`
	MinActivationFactor ActivationFactor     `xml:"MinActivationFactor,attr" json:"min_activation_factor"`
}

func (o *FlexOfferOption) validate() error {
	if err := ValidateList("ISP", o.ISPs, 1); err != nil {
		return err
	}
	for i := range o.ISPs {
		if err := o.ISPs[i].validate(); err != nil {
			return err
		}
	}
	if o.OptionReference == "" {
		return requiredError("OptionReference")
	}
	if o.MinActivationFactor.IsZero() {
		o.MinActivationFactor = FullActivation()
	}
	return o.MinActivationFactor.Validate("MinActivationFactor")
}

// FlexOffer is the AGR's offer of flexibility in response to a
// FlexRequest, or an unsolicited offer.
type FlexOffer struct {
	XMLName xml.Name `xml:"FlexOffer" json:"-"`
	PayloadMessageMeta
	FlexMessageMeta
	OfferOptions         []FlexOfferOption `xml:"OfferOption" json:"offer_options"`
	ExpirationDateTime   string            `xml:"ExpirationDateTime,attr,omitempty" json:"expiration_date_time,omitempty"`
	FlexRequestMessageID string            `xml:"FlexRequestMessageID,attr,omitempty" json:"flex_request_message_id,omitempty"`
	ContractID           string            `xml:"ContractID,attr,omitempty" json:"contract_id,omitempty"`
	DPrognosisMessageID  string            `xml:"D-PrognosisMessageID,attr,omitempty" json:"d_prognosis_message_id,omitempty"`
	BaselineReference    string            `xml:"BaselineReference,attr,omitempty" json:"baseline_reference,omitempty"`
	Currency             string            `xml:"Currency,attr,omitempty" json:"currency,omitempty"`
}

func (m *FlexOffer) Kind() Kind { return KindFlexOffer }

func (m *FlexOffer) Validate() error {
	if err := m.PayloadMessageMeta.validate(); err != nil {
		return err
	}
	if err := m.FlexMessageMeta.validate(); err != nil {
		return err
	}
	if err := ValidateList("OfferOption", m.OfferOptions, 1); err != nil {
		return err
	}
	for i := range m.OfferOptions {
		if err := m.OfferOptions[i].validate(); err != nil {
			return err
		}
	}
	if err := match("ExpirationDateTime", m.ExpirationDateTime, reTimestamp); err != nil {
		return err
	}
	if err := matchOptional("FlexRequestMessageID", m.FlexRequestMessageID, reUUID); err != nil {
		return err
	}
	if err := matchOptional("D-PrognosisMessageID", m.DPrognosisMessageID, reUUID); err != nil {
		return err
	}
	if m.Currency == "" {
		m.Currency = DefaultCurrency
	}
	return match("Currency", m.Currency, reCurrency)
}

// FlexOfferResponse answers a FlexOffer.
type FlexOfferResponse struct {
	XMLName xml.Name `xml:"FlexOfferResponse" json:"-"`
	PayloadMessageMeta
	PayloadMessageResponseMeta
	FlexOfferMessageID string `xml:"FlexOfferMessageID,attr,omitempty" json:"flex_offer_message_id,omitempty"`
}

func (m *FlexOfferResponse) Kind() Kind { return KindFlexOfferResponse }

func (m *FlexOfferResponse) SetReferenceID(id string) { m.FlexOfferMessageID = id }

func (m *FlexOfferResponse) Validate() error {
	if err := m.PayloadMessageMeta.validate(); err != nil {
		return err
	}
	if err := m.PayloadMessageResponseMeta.validate(); err != nil {
		return err
	}
	return matchOptional("FlexOfferMessageID", m.FlexOfferMessageID, reUUID)
}

package uftp

import "encoding/xml"

// FlexOfferRevocation withdraws a previously accepted FlexOffer.
type FlexOfferRevocation struct {
	XMLName xml.Name `xml:"FlexOfferRevocation" json:"-"`
	PayloadMessageMeta
	FlexOfferMessageID string `xml:"FlexOfferMessageID,attr" json:"flex_offer_message_id"`
}

func (m *FlexOfferRevocation) Kind() Kind { return KindFlexOfferRevocation }

func (m *FlexOfferRevocation) Validate() error {
	if err := m.PayloadMessageMeta.validate(); err != nil {
		return err
	}
	return match("FlexOfferMessageID", m.FlexOfferMessageID, reUUID)
}

// FlexOfferRevocationResponse answers a FlexOfferRevocation.
type FlexOfferRevocationResponse struct {
	XMLName xml.Name `xml:"FlexOfferRevocationResponse" json:"-"`
	PayloadMessageMeta
	PayloadMessageResponseMeta
	FlexOfferRevocationMessageID string `xml:"FlexOfferRevocationMessageID,attr,omitempty" json:"flex_offer_revocation_message_id,omitempty"`
}

func (m *FlexOfferRevocationResponse) Kind() Kind { return KindFlexOfferRevocationResponse }

func (m *FlexOfferRevocationResponse) SetReferenceID(id string) {
	m.FlexOfferRevocationMessageID = id
}

func (m *FlexOfferRevocationResponse) Validate() error {
	if err := m.PayloadMessageMeta.validate(); err != nil {
		return err
	}
	if err := m.PayloadMessageResponseMeta.validate(); err != nil {
		return err
	}
	return matchOptional("FlexOfferRevocationMessageID", m.FlexOfferRevocationMessageID, reUUID)
}

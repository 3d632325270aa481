package uftp

import "encoding/xml"

// AgrPortfolioUpdateConnection registers or deregisters a single
// connection with the CRO.
type AgrPortfolioUpdateConnection struct {
	EntityAddress string `xml:"EntityAddress,attr" json:"entity_address"`
	StartPeriod   Date   `xml:"StartPeriod,attr,omitempty" json:"start_period,omitempty"`
	EndPeriod     Date   `xml:"EndPeriod,attr,omitempty" json:"end_period,omitempty"`
}

func (c *AgrPortfolioUpdateConnection) validate() error {
	if err := match("EntityAddress", c.EntityAddress, reEntityAddress); err != nil {
		return err
	}
	if c.StartPeriod.IsZero() {
		return requiredError("StartPeriod")
	}
	return nil
}

// AgrPortfolioUpdate tells the CRO which connections the AGR represents
// from which day onward.
type AgrPortfolioUpdate struct {
	XMLName xml.Name `xml:"AGRPortfolioUpdate" json:"-"`
	PayloadMessageMeta
	Connections []AgrPortfolioUpdateConnection `xml:"Connection" json:"connections"`
	TimeZone    string                         `xml:"TimeZone,attr,omitempty" json:"time_zone,omitempty"`
}

func (m *AgrPortfolioUpdate) Kind() Kind { return KindAgrPortfolioUpdate }

func (m *AgrPortfolioUpdate) Validate() error {
	if err := m.PayloadMessageMeta.validate(); err != nil {
		return err
	}
	if err := ValidateList("Connection", m.Connections, 1); err != nil {
		return err
	}
	for i := range m.Connections {
		if err := m.Connections[i].validate(); err != nil {
			return err
		}
	}
	if m.TimeZone == "" {
		m.TimeZone = DefaultTimeZone
	}
	return match("TimeZone", m.TimeZone, reTimeZone)
}

// AgrPortfolioUpdateResponse answers an AgrPortfolioUpdate.
type AgrPortfolioUpdateResponse struct {
	XMLName xml.Name `xml:"AGRPortfolioUpdateResponse" json:"-"`
	PayloadMessageMeta
	PayloadMessageResponseMeta
	AGRPortfolioUpdateMessageID string `xml:"AGRPortfolioUpdateMessageID,attr,omitempty" json:"agr_portfolio_update_message_id,omitempty"`
}

func (m *AgrPortfolioUpdateResponse) Kind() Kind { return KindAgrPortfolioUpdateResponse }

func (m *AgrPortfolioUpdateResponse) SetReferenceID(id string) { m.AGRPortfolioUpdateMessageID = id }

func (m *AgrPortfolioUpdateResponse) Validate() error {
	if err := m.PayloadMessageMeta.validate(); err != nil {
		return err
	}
	if err := m.PayloadMessageResponseMeta.validate(); err != nil {
		return err
	}
	return matchOptional("AGRPortfolioUpdateMessageID", m.AGRPortfolioUpdateMessageID, reUUID)
}

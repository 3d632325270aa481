package uftp

import "encoding/xml"

// DsoPortfolioUpdateConnection adds a connection to, or removes one
// from, a congestion point.
type DsoPortfolioUpdateConnection struct {
	EntityAddress string `xml:"EntityAddress,attr" json:"entity_address"`
	StartPeriod   Date   `xml:"StartPeriod,attr,omitempty" json:"start_period,omitempty"`
	EndPeriod     Date   `xml:"EndPeriod,attr,omitempty" json:"end_period,omitempty"`
}

func (c *DsoPortfolioUpdateConnection) validate() error {
	if err := match("EntityAddress", c.EntityAddress, reEntityAddress); err != nil {
		return err
	}
	if c.StartPeriod.IsZero() {
		return requiredError("StartPeriod")
	}
	return nil
}

// DsoPortfolioUpdateCongestionPoint describes a congestion point the
// DSO wants the CRO to register or update.
type DsoPortfolioUpdateCongestionPoint struct {
	Connections          []DsoPortfolioUpdateConnection `xml:"Connection" json:"connections"`
	EntityAddress        string                         `xml:"EntityAddress,attr" json:"entity_address"`
	StartPeriod          Date                           `xml:"StartPeriod,attr,omitempty" json:"start_period,omitempty"`
	EndPeriod            Date                           `xml:"EndPeriod,attr,omitempty" json:"end_period,omitempty"`
	MutexOffersSupported bool                           `xml:"MutexOffersSupported,attr" json:"mutex_offers_supported"`
	DayAheadRedispatchBy RedispatchBy                   `xml:"DayAheadRedispatchBy,attr" json:"day_ahead_redispatch_by"`
	IntradayRedispatchBy RedispatchBy                   `xml:"IntradayRedispatchBy,attr,omitempty" json:"intraday_redispatch_by,omitempty"`
}

func (c *DsoPortfolioUpdateCongestionPoint) validate() error {
	if err := ValidateList("Connection", c.Connections, 1); err != nil {
		return err
	}
	for i := range c.Connections {
		if err := c.Connections[i].validate(); err != nil {
			return err
		}
	}
	if err := match("EntityAddress", c.EntityAddress, reEntityAddress); err != nil {
		return err
	}
	if c.StartPeriod.IsZero() {
		return requiredError("StartPeriod")
	}
	if err := c.DayAheadRedispatchBy.validate("DayAheadRedispatchBy", true); err != nil {
		return err
	}
	return c.IntradayRedispatchBy.validate("IntradayRedispatchBy", false)
}

// DsoPortfolioUpdate tells the CRO how the DSO's congestion points and
// their connections change over time.
type DsoPortfolioUpdate struct {
	XMLName xml.Name `xml:"DSOPortfolioUpdate" json:"-"`
	PayloadMessageMeta
	CongestionPoints []DsoPortfolioUpdateCongestionPoint `xml:"CongestionPoint" json:"congestion_points"`
	TimeZone         string                              `xml:"TimeZone,attr,omitempty" json:"time_zone,omitempty"`
}

func (m *DsoPortfolioUpdate) Kind() Kind { return KindDsoPortfolioUpdate }

func (m *DsoPortfolioUpdate) Validate() error {
	if err := m.PayloadMessageMeta.validate(); err != nil {
		return err
	}
	if err := ValidateList("CongestionPoint", m.CongestionPoints, 1); err != nil {
		return err
	}
	for i := range m.CongestionPoints {
		if err := m.CongestionPoints[i].validate(); err != nil {
			return err
		}
	}
	if m.TimeZone == "" {
		m.TimeZone = DefaultTimeZone
	}
	return match("TimeZone", m.TimeZone, reTimeZone)
}

// DsoPortfolioUpdateResponse answers a DsoPortfolioUpdate. Note that
// the reference attribute is named DSOPortfolioUpdateResponseMessageID
// on the wire, as fixed by the published schema.
type DsoPortfolioUpdateResponse struct {
	XMLName xml.Name `xml:"DSOPortfolioUpdateResponse" json:"-"`
	PayloadMessageMeta
	PayloadMessageResponseMeta
	DSOPortfolioUpdateMessageID string `xml:"DSOPortfolioUpdateResponseMessageID,attr,omitempty" json:"dso_portfolio_update_message_id,omitempty"`
}

func (m *DsoPortfolioUpdateResponse) Kind() Kind { return KindDsoPortfolioUpdateResponse }

func (m *DsoPortfolioUpdateResponse) SetReferenceID(id string) { m.DSOPortfolioUpdateMessageID = id }

func (m *DsoPortfolioUpdateResponse) Validate() error {
	if err := m.PayloadMessageMeta.validate(); err != nil {
		return err
	}
	if err := m.PayloadMessageResponseMeta.validate(); err != nil {
		return err
	}
	return matchOptional("DSOPortfolioUpdateResponseMessageID", m.DSOPortfolioUpdateMessageID, reUUID)
}

package uftp

import "encoding/xml"

// AgrPortfolioQuery asks the CRO for the set of connections the AGR
// represents on a given day.
type AgrPortfolioQuery struct {
	XMLName xml.Name `xml:"AGRPortfolioQuery" json:"-"`
	PayloadMessageMeta
	TimeZone string `xml:"TimeZone,attr,omitempty" json:"time_zone,omitempty"`
	Period   Date   `xml:"Period,attr,omitempty" json:"period,omitempty"`
}

func (m *AgrPortfolioQuery) Kind() Kind { return KindAgrPortfolioQuery }

func (m *AgrPortfolioQuery) Validate() error {
	if err := m.PayloadMessageMeta.validate(); err != nil {
		return err
	}
	if m.TimeZone == "" {
		m.TimeZone = DefaultTimeZone
	}
	if err := match("TimeZone", m.TimeZone, reTimeZone); err != nil {
		return err
	}
	if m.Period.IsZero() {
		return requiredError("Period")
	}
	return nil
}

// AgrPortfolioQueryResponseConnection is a single connection inside a
// portfolio query response.
type AgrPortfolioQueryResponseConnection struct {
	EntityAddress string `xml:"EntityAddress,attr" json:"entity_address"`
}

func (c *AgrPortfolioQueryResponseConnection) validate() error {
	return match("EntityAddress", c.EntityAddress, reEntityAddress)
}

// AgrPortfolioQueryResponseCongestionPoint groups the connections at one
// congestion point together with the redispatch responsibilities that
// apply there.
type AgrPortfolioQueryResponseCongestionPoint struct {
	Connections          []AgrPortfolioQueryResponseConnection `xml:"Connection" json:"connections"`
	EntityAddress        string                                `xml:"EntityAddress,attr" json:"entity_address"`
	MutexOffersSupported bool                                  `xml:"MutexOffersSupported,attr" json:"mutex_offers_supported"`
	DayAheadRedispatchBy RedispatchBy                          `xml:"DayAheadRedispatchBy,attr" json:"day_ahead_redispatch_by"`
	IntradayRedispatchBy RedispatchBy                          `xml:"IntradayRedispatchBy,attr,omitempty" json:"intraday_redispatch_by,omitempty"`
}

func (c *AgrPortfolioQueryResponseCongestionPoint) validate() error {
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
	if err := c.DayAheadRedispatchBy.validate("DayAheadRedispatchBy", true); err != nil {
		return err
	}
	return c.IntradayRedispatchBy.validate("IntradayRedispatchBy", false)
}

// AgrPortfolioQueryResponseDSOPortfolio lists the congestion points of
// one DSO that carry connections represented by the AGR.
type AgrPortfolioQueryResponseDSOPortfolio struct {
	CongestionPoints []AgrPortfolioQueryResponseCongestionPoint `xml:"CongestionPoint" json:"congestion_points"`
	DSODomain        string                                     `xml:"DSO-Domain,attr" json:"dso_domain"`
}

func (p *AgrPortfolioQueryResponseDSOPortfolio) validate() error {
	if err := ValidateList("CongestionPoint", p.CongestionPoints, 1); err != nil {
		return err
	}
	for i := range p.CongestionPoints {
		if err := p.CongestionPoints[i].validate(); err != nil {
			return err
		}
	}
	return match("DSO-Domain", p.DSODomain, reDomain)
}

// AgrPortfolioQueryResponseDSOView is the portfolio as seen from the
// DSO side, plus any connections not on a congestion point.
type AgrPortfolioQueryResponseDSOView struct {
	DSOPortfolios []AgrPortfolioQueryResponseDSOPortfolio `xml:"DSO-Portfolio" json:"dso_portfolios"`
	Connections   []AgrPortfolioQueryResponseConnection   `xml:"Connection" json:"connections,omitempty"`
}

func (v *AgrPortfolioQueryResponseDSOView) validate() error {
	if err := ValidateList("DSO-Portfolio", v.DSOPortfolios, 1); err != nil {
		return err
	}
	for i := range v.DSOPortfolios {
		if err := v.DSOPortfolios[i].validate(); err != nil {
			return err
		}
	}
	for i := range v.Connections {
		if err := v.Connections[i].validate(); err != nil {
			return err
		}
	}
	return nil
}

// AgrPortfolioQueryResponse answers an AgrPortfolioQuery.
type AgrPortfolioQueryResponse struct {
	XMLName xml.Name `xml:"AGRPortfolioQueryResponse" json:"-"`
	PayloadMessageMeta
	PayloadMessageResponseMeta
	AGRPortfolioQueryMessageID string                             `xml:"AGRPortfolioQueryMessageID,attr,omitempty" json:"agr_portfolio_query_message_id,omitempty"`
	DSOViews                   []AgrPortfolioQueryResponseDSOView `xml:"DSO-View" json:"dso_views"`
	TimeZone                   string                             `xml:"TimeZone,attr,omitempty" json:"time_zone,omitempty"`
	Period                     Date                               `xml:"Period,attr,omitempty" json:"period,omitempty"`
}

func (m *AgrPortfolioQueryResponse) Kind() Kind { return KindAgrPortfolioQueryResponse }

func (m *AgrPortfolioQueryResponse) SetReferenceID(id string) { m.AGRPortfolioQueryMessageID = id }

func (m *AgrPortfolioQueryResponse) Validate() error {
	if err := m.PayloadMessageMeta.validate(); err != nil {
		return err
	}
	if err := m.PayloadMessageResponseMeta.validate(); err != nil {
		return err
	}
	if err := matchOptional("AGRPortfolioQueryMessageID", m.AGRPortfolioQueryMessageID, reUUID); err != nil {
		return err
	}
	// A rejection carries no portfolio content.
	if m.IsRejected() {
		return nil
	}
	if err := ValidateList("DSO-View", m.DSOViews, 1); err != nil {
		return err
	}
	for i := range m.DSOViews {
		if err := m.DSOViews[i].validate(); err != nil {
			return err
		}
	}
	if m.TimeZone == "" {
		m.TimeZone = DefaultTimeZone
	}
	if err := match("TimeZone", m.TimeZone, reTimeZone); err != nil {
		return err
	}
	if m.Period.IsZero() {
		return requiredError("Period")
	}
	return nil
}

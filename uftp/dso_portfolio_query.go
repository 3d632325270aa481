package uftp

import "encoding/xml"

// DsoPortfolioQuery asks the CRO which AGRs represent the connections
// on one of the DSO's congestion points.
type DsoPortfolioQuery struct {
	XMLName xml.Name `xml:"DSOPortfolioQuery" json:"-"`
	PayloadMessageMeta
	TimeZone      string `xml:"TimeZone,attr,omitempty" json:"time_zone,omitempty"`
	Period        Date   `xml:"Period,attr,omitempty" json:"period,omitempty"`
	EntityAddress string `xml:"EntityAddress,attr" json:"entity_address"`
}

func (m *DsoPortfolioQuery) Kind() Kind { return KindDsoPortfolioQuery }

func (m *DsoPortfolioQuery) Validate() error {
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
	return match("EntityAddress", m.EntityAddress, reEntityAddress)
}

// DsoPortfolioQueryConnection is a connection on the queried congestion
// point, annotated with the AGR that represents it, if any.
type DsoPortfolioQueryConnection struct {
	EntityAddress string `xml:"EntityAddress,attr" json:"entity_address"`
	AGRDomain     string `xml:"AGR-Domain,attr,omitempty" json:"agr_domain,omitempty"`
}

func (c *DsoPortfolioQueryConnection) validate() error {
	if err := match("EntityAddress", c.EntityAddress, reEntityAddress); err != nil {
		return err
	}
	return matchOptional("AGR-Domain", c.AGRDomain, reDomain)
}

// DsoPortfolioQueryCongestionPoint is the queried congestion point with
// its connections.
type DsoPortfolioQueryCongestionPoint struct {
	Connections   []DsoPortfolioQueryConnection `xml:"Connection" json:"connections"`
	EntityAddress string                        `xml:"EntityAddress,attr" json:"entity_address"`
}

func (c *DsoPortfolioQueryCongestionPoint) validate() error {
	if err := ValidateList("Connection", c.Connections, 1); err != nil {
		return err
	}
	for i := range c.Connections {
		if err := c.Connections[i].validate(); err != nil {
			return err
		}
	}
	return match("EntityAddress", c.EntityAddress, reEntityAddress)
}

// DsoPortfolioQueryResponse answers a DsoPortfolioQuery.
type DsoPortfolioQueryResponse struct {
	XMLName xml.Name `xml:"DSOPortfolioQueryResponse" json:"-"`
	PayloadMessageMeta
	PayloadMessageResponseMeta
	DSOPortfolioQueryMessageID string                            `xml:"DSOPortfolioQueryMessageID,attr,omitempty" json:"dso_portfolio_query_message_id,omitempty"`
	CongestionPoint            *DsoPortfolioQueryCongestionPoint `xml:"CongestionPoint" json:"congestion_point,omitempty"`
	TimeZone                   string                            `xml:"TimeZone,attr,omitempty" json:"time_zone,omitempty"`
	Period                     Date                              `xml:"Period,attr,omitempty" json:"period,omitempty"`
}

func (m *DsoPortfolioQueryResponse) Kind() Kind { return KindDsoPortfolioQueryResponse }

func (m *DsoPortfolioQueryResponse) SetReferenceID(id string) { m.DSOPortfolioQueryMessageID = id }

func (m *DsoPortfolioQueryResponse) Validate() error {
	if err := m.PayloadMessageMeta.validate(); err != nil {
		return err
	}
	if err := m.PayloadMessageResponseMeta.validate(); err != nil {
		return err
	}
	if err := matchOptional("DSOPortfolioQueryMessageID", m.DSOPortfolioQueryMessageID, reUUID); err != nil {
		return err
	}
	if m.IsRejected() {
		return nil
	}
	if m.CongestionPoint != nil {
		if err := m.CongestionPoint.validate(); err != nil {
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

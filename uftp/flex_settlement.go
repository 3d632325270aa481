package uftp

import "encoding/xml"

// ContractSettlementISP breaks down the reserved, requested, offered
// and ordered power for one or more consecutive ISPs under a bilateral
// contract.
type ContractSettlementISP struct {
	Start          int  `xml:"Start,attr" json:"start"`
	Duration       int  `xml:"Duration,attr,omitempty" json:"duration,omitempty"`
	ReservedPower  int  `xml:"ReservedPower,attr" json:"reserved_power"`
	RequestedPower *int `xml:"RequestedPower,attr,omitempty" json:"requested_power,omitempty"`
	AvailablePower *int `xml:"AvailablePower,attr,omitempty" json:"available_power,omitempty"`
	OfferedPower   *int `xml:"OfferedPower,attr,omitempty" json:"offered_power,omitempty"`
	OrderedPower   *int `xml:"OrderedPower,attr,omitempty" json:"ordered_power,omitempty"`
}

func (i *ContractSettlementISP) validate() error {
	if i.Duration == 0 {
		i.Duration = 1
	}
	if i.Start < 1 {
		return requiredError("Start")
	}
	return nil
}

// ContractSettlementPeriod is one settled day under a contract.
type ContractSettlementPeriod struct {
	ISPs   []ContractSettlementISP `xml:"ISP" json:"isps"`
	Period Date                    `xml:"Period,attr,omitempty" json:"period,omitempty"`
}

func (p *ContractSettlementPeriod) validate() error {
	if err := ValidateList("ISP", p.ISPs, 1); err != nil {
		return err
	}
	for i := range p.ISPs {
		if err := p.ISPs[i].validate(); err != nil {
			return err
		}
	}
	if p.Period.IsZero() {
		return requiredError("Period")
	}
	return nil
}

// ContractSettlement settles the reservations made under one bilateral
// contract.
type ContractSettlement struct {
	Periods    []ContractSettlementPeriod `xml:"Period" json:"periods"`
	ContractID string                     `xml:"ContractID,attr,omitempty" json:"contract_id,omitempty"`
}

func (c *ContractSettlement) validate() error {
	if err := ValidateList("Period", c.Periods, 1); err != nil {
		return err
	}
	for i := range c.Periods {
		if err := c.Periods[i].validate(); err != nil {
			return err
		}
	}
	return nil
}

// FlexOrderSettlementISP compares ordered and delivered flex power for
// one or more consecutive ISPs.
type FlexOrderSettlementISP struct {
	Start              int `xml:"Start,attr" json:"start"`
	Duration           int `xml:"Duration,attr,omitempty" json:"duration,omitempty"`
	BaselinePower      int `xml:"BaselinePower,attr" json:"baseline_power"`
	OrderedFlexPower   int `xml:"OrderedFlexPower,attr" json:"ordered_flex_power"`
	ActualPower        int `xml:"ActualPower,attr" json:"actual_power"`
	DeliveredFlexPower int `xml:"DeliveredFlexPower,attr" json:"delivered_flex_power"`
	PowerDeficiency    int `xml:"PowerDeficiency,attr,omitempty" json:"power_deficiency,omitempty"`
}

func (i *FlexOrderSettlementISP) validate() error {
	if i.Duration == 0 {
		i.Duration = 1
	}
	if i.Start < 1 {
		return requiredError("Start")
	}
	return nil
}

// FlexOrderSettlement is the financial settlement of one FlexOrder.
type FlexOrderSettlement struct {
	ISPs                []FlexOrderSettlementISP `xml:"ISP" json:"isps"`
	OrderReference      string                   `xml:"OrderReference,attr,omitempty" json:"order_reference,omitempty"`
	Period              Date                     `xml:"Period,attr,omitempty" json:"period,omitempty"`
	ContractID          string                   `xml:"ContractID,attr,omitempty" json:"contract_id,omitempty"`
	DPrognosisMessageID string                   `xml:"D-PrognosisMessageID,attr,omitempty" json:"d_prognosis_message_id,omitempty"`
	BaselineReference   string                   `xml:"BaselineReference,attr,omitempty" json:"baseline_reference,omitempty"`
	CongestionPoint     string                   `xml:"CongestionPoint,attr" json:"congestion_point"`
	Price               Price                    `xml:"Price,attr" json:"price"`
	Penalty             Price                    `xml:"Penalty,attr" json:"penalty"`
	NetSettlement       Price                    `xml:"NetSettlement,attr" json:"net_settlement"`
}

func (s *FlexOrderSettlement) validate() error {
	if err := ValidateList("ISP", s.ISPs, 1); err != nil {
		return err
	}
	for i := range s.ISPs {
		if err := s.ISPs[i].validate(); err != nil {
			return err
		}
	}
	if s.Period.IsZero() {
		return requiredError("Period")
	}
	if err := matchOptional("D-PrognosisMessageID", s.DPrognosisMessageID, reUUID); err != nil {
		return err
	}
	return match("CongestionPoint", s.CongestionPoint, reEntityAddress)
}

// FlexSettlement is the DSO's periodic settlement of all FlexOrders and
// contract reservations for an AGR. Like all settlement messages it
// carries the response result attributes on the wire.
type FlexSettlement struct {
	XMLName xml.Name `xml:"FlexSettlement" json:"-"`
	PayloadMessageMeta
	PayloadMessageResponseMeta
	FlexOrderSettlements []FlexOrderSettlement `xml:"FlexOrderSettlement" json:"flex_order_settlements"`
	ContractSettlements  []ContractSettlement  `xml:"ContractSettlement" json:"contract_settlements"`
	PeriodStart          Date                  `xml:"PeriodStart,attr,omitempty" json:"period_start,omitempty"`
	PeriodEnd            Date                  `xml:"PeriodEnd,attr,omitempty" json:"period_end,omitempty"`
	Currency             string                `xml:"Currency,attr,omitempty" json:"currency,omitempty"`
}

func (m *FlexSettlement) Kind() Kind { return KindFlexSettlement }

func (m *FlexSettlement) Validate() error {
	if err := m.PayloadMessageMeta.validate(); err != nil {
		return err
	}
	if err := m.PayloadMessageResponseMeta.validate(); err != nil {
		return err
	}
	if err := ValidateList("FlexOrderSettlement", m.FlexOrderSettlements, 1); err != nil {
		return err
	}
	for i := range m.FlexOrderSettlements {
		if err := m.FlexOrderSettlements[i].validate(); err != nil {
			return err
		}
	}
	if err := ValidateList("ContractSettlement", m.ContractSettlements, 1); err != nil {
		return err
	}
	for i := range m.ContractSettlements {
		if err := m.ContractSettlements[i].validate(); err != nil {
			return err
		}
	}
	if m.PeriodStart.IsZero() {
		return requiredError("PeriodStart")
	}
	if m.PeriodEnd.IsZero() {
		return requiredError("PeriodEnd")
	}
	return match("Currency", m.Currency, reCurrency)
}

// FlexOrderSettlementStatus is the AGR's verdict on the settlement of
// one FlexOrder.
type FlexOrderSettlementStatus struct {
	OrderReference string           `xml:"OrderReference,attr,omitempty" json:"order_reference,omitempty"`
	Disposition    AcceptedDisputed `xml:"Disposition,attr" json:"disposition"`
	DisputeReason  string           `xml:"DisputeReason,attr,omitempty" json:"dispute_reason,omitempty"`
}

func (s *FlexOrderSettlementStatus) validate() error {
	return s.Disposition.validate("Disposition")
}

// FlexSettlementResponse answers a FlexSettlement, accepting or
// disputing each order settlement individually.
type FlexSettlementResponse struct {
	XMLName xml.Name `xml:"FlexSettlementResponse" json:"-"`
	PayloadMessageMeta
	PayloadMessageResponseMeta
	FlexSettlementMessageID     string                      `xml:"FlexSettlementMessageID,attr,omitempty" json:"flex_settlement_message_id,omitempty"`
	FlexOrderSettlementStatuses []FlexOrderSettlementStatus `xml:"FlexOrderSettlementStatus" json:"flex_order_settlement_statuses"`
}

func (m *FlexSettlementResponse) Kind() Kind { return KindFlexSettlementResponse }

func (m *FlexSettlementResponse) SetReferenceID(id string) { m.FlexSettlementMessageID = id }

func (m *FlexSettlementResponse) Validate() error {
	if err := m.PayloadMessageMeta.validate(); err != nil {
		return err
	}
	if err := m.PayloadMessageResponseMeta.validate(); err != nil {
		return err
	}
	if err := matchOptional("FlexSettlementMessageID", m.FlexSettlementMessageID, reUUID); err != nil {
		return err
	}
	if m.IsRejected() {
		return nil
	}
	if err := ValidateList("FlexOrderSettlementStatus", m.FlexOrderSettlementStatuses, 1); err != nil {
		return err
	}
	for i := range m.FlexOrderSettlementStatuses {
		if err := m.FlexOrderSettlementStatuses[i].validate(); err != nil {
			return err
		}
	}
	return nil
}

package service

import (
	"github.com/uftp-dev/shapeshifter-go/client"
	"github.com/uftp-dev/shapeshifter-go/uftp"
)

// DsoHandler is the set of messages a distribution system operator
// service receives.
type DsoHandler interface {
	ProcessDPrognosis(message *uftp.DPrognosis) error
	ProcessDsoPortfolioQueryResponse(message *uftp.DsoPortfolioQueryResponse) error
	ProcessDsoPortfolioUpdateResponse(message *uftp.DsoPortfolioUpdateResponse) error
	ProcessFlexOffer(message *uftp.FlexOffer) error
	ProcessFlexOfferRevocation(message *uftp.FlexOfferRevocation) error
	ProcessFlexOrderResponse(message *uftp.FlexOrderResponse) error
	ProcessFlexRequestResponse(message *uftp.FlexRequestResponse) error
	ProcessFlexReservationUpdateResponse(message *uftp.FlexReservationUpdateResponse) error
	ProcessFlexSettlementResponse(message *uftp.FlexSettlementResponse) error
	ProcessMetering(message *uftp.Metering) error
}

// DsoService represents the distribution system operator in the UFTP
// communication. It receives trading messages from the AGR and
// portfolio responses from the CRO.
type DsoService struct {
	*Service
}

// NewDso builds a distribution system operator service around the
// given handler.
func NewDso(cfg Config, handler DsoHandler, opts ...Option) (*DsoService, error) {
	s, err := newService(uftp.RoleDSO, cfg, opts...)
	if err != nil {
		return nil, err
	}
	s.register(uftp.KindDPrognosis, func(m uftp.PayloadMessage) error {
		return handler.ProcessDPrognosis(m.(*uftp.DPrognosis))
	})
	s.register(uftp.KindDsoPortfolioQueryResponse, func(m uftp.PayloadMessage) error {
		return handler.ProcessDsoPortfolioQueryResponse(m.(*uftp.DsoPortfolioQueryResponse))
	})
	s.register(uftp.KindDsoPortfolioUpdateResponse, func(m uftp.PayloadMessage) error {
		return handler.ProcessDsoPortfolioUpdateResponse(m.(*uftp.DsoPortfolioUpdateResponse))
	})
	s.register(uftp.KindFlexOffer, func(m uftp.PayloadMessage) error {
		return handler.ProcessFlexOffer(m.(*uftp.FlexOffer))
	})
	s.register(uftp.KindFlexOfferRevocation, func(m uftp.PayloadMessage) error {
		return handler.ProcessFlexOfferRevocation(m.(*uftp.FlexOfferRevocation))
	})
	s.register(uftp.KindFlexOrderResponse, func(m uftp.PayloadMessage) error {
		return handler.ProcessFlexOrderResponse(m.(*uftp.FlexOrderResponse))
	})
	s.register(uftp.KindFlexRequestResponse, func(m uftp.PayloadMessage) error {
		return handler.ProcessFlexRequestResponse(m.(*uftp.FlexRequestResponse))
	})
	s.register(uftp.KindFlexReservationUpdateResponse, func(m uftp.PayloadMessage) error {
		return handler.ProcessFlexReservationUpdateResponse(m.(*uftp.FlexReservationUpdateResponse))
	})
	s.register(uftp.KindFlexSettlementResponse, func(m uftp.PayloadMessage) error {
		return handler.ProcessFlexSettlementResponse(m.(*uftp.FlexSettlementResponse))
	})
	s.register(uftp.KindMetering, func(m uftp.PayloadMessage) error {
		return handler.ProcessMetering(m.(*uftp.Metering))
	})
	return &DsoService{s}, nil
}

// AgrClient returns an outbound client for sending trading messages
// to the AGR at the given domain.
func (s *DsoService) AgrClient(domain string) (*client.DsoAgr, error) {
	c, err := s.clientFor(domain, uftp.RoleAGR)
	if err != nil {
		return nil, err
	}
	return &client.DsoAgr{Client: c}, nil
}

// CroClient returns an outbound client for sending portfolio messages
// to the CRO at the given domain.
func (s *DsoService) CroClient(domain string) (*client.DsoCro, error) {
	c, err := s.clientFor(domain, uftp.RoleCRO)
	if err != nil {
		return nil, err
	}
	return &client.DsoCro{Client: c}, nil
}

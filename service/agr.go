package service

import (
	"github.com/uftp-dev/shapeshifter-go/client"
	"github.com/uftp-dev/shapeshifter-go/uftp"
)

// AgrHandler is the set of messages an aggregator service receives.
// The embedding application supplies one method per acceptable kind;
// returned errors are logged, they do not produce a rejection since
// the message has already been acknowledged.
type AgrHandler interface {
	ProcessAgrPortfolioQueryResponse(message *uftp.AgrPortfolioQueryResponse) error
	ProcessAgrPortfolioUpdateResponse(message *uftp.AgrPortfolioUpdateResponse) error
	ProcessDPrognosisResponse(message *uftp.DPrognosisResponse) error
	ProcessFlexOfferResponse(message *uftp.FlexOfferResponse) error
	ProcessFlexOfferRevocationResponse(message *uftp.FlexOfferRevocationResponse) error
	ProcessFlexOrder(message *uftp.FlexOrder) error
	ProcessFlexRequest(message *uftp.FlexRequest) error
	ProcessFlexReservationUpdate(message *uftp.FlexReservationUpdate) error
	ProcessFlexSettlement(message *uftp.FlexSettlement) error
	ProcessMeteringResponse(message *uftp.MeteringResponse) error
}

// AgrService represents the aggregator in the UFTP communication. It
// receives requests from the DSO and responses from the CRO and DSO.
type AgrService struct {
	*Service
}

// NewAgr builds an aggregator service around the given handler.
func NewAgr(cfg Config, handler AgrHandler, opts ...Option) (*AgrService, error) {
	s, err := newService(uftp.RoleAGR, cfg, opts...)
	if err != nil {
		return nil, err
	}
	s.register(uftp.KindAgrPortfolioQueryResponse, func(m uftp.PayloadMessage) error {
		return handler.ProcessAgrPortfolioQueryResponse(m.(*uftp.AgrPortfolioQueryResponse))
	})
	s.register(uftp.KindAgrPortfolioUpdateResponse, func(m uftp.PayloadMessage) error {
		return handler.ProcessAgrPortfolioUpdateResponse(m.(*uftp.AgrPortfolioUpdateResponse))
	})
	s.register(uftp.KindDPrognosisResponse, func(m uftp.PayloadMessage) error {
		return handler.ProcessDPrognosisResponse(m.(*uftp.DPrognosisResponse))
	})
	s.register(uftp.KindFlexOfferResponse, func(m uftp.PayloadMessage) error {
		return handler.ProcessFlexOfferResponse(m.(*uftp.FlexOfferResponse))
	})
	s.register(uftp.KindFlexOfferRevocationResponse, func(m uftp.PayloadMessage) error {
		return handler.ProcessFlexOfferRevocationResponse(m.(*uftp.FlexOfferRevocationResponse))
	})
	s.register(uftp.KindFlexOrder, func(m uftp.PayloadMessage) error {
		return handler.ProcessFlexOrder(m.(*uftp.FlexOrder))
	})
	s.register(uftp.KindFlexRequest, func(m uftp.PayloadMessage) error {
		return handler.ProcessFlexRequest(m.(*uftp.FlexRequest))
	})
	s.register(uftp.KindFlexReservationUpdate, func(m uftp.PayloadMessage) error {
		return handler.ProcessFlexReservationUpdate(m.(*uftp.FlexReservationUpdate))
	})
	s.register(uftp.KindFlexSettlement, func(m uftp.PayloadMessage) error {
		return handler.ProcessFlexSettlement(m.(*uftp.FlexSettlement))
	})
	s.register(uftp.KindMeteringResponse, func(m uftp.PayloadMessage) error {
		return handler.ProcessMeteringResponse(m.(*uftp.MeteringResponse))
	})
	return &AgrService{s}, nil
}

// CroClient returns an outbound client for sending portfolio messages
// to the CRO at the given domain.
func (s *AgrService) CroClient(domain string) (*client.AgrCro, error) {
	c, err := s.clientFor(domain, uftp.RoleCRO)
	if err != nil {
		return nil, err
	}
	return &client.AgrCro{Client: c}, nil
}

// DsoClient returns an outbound client for sending trading messages
// to the DSO at the given domain.
func (s *AgrService) DsoClient(domain string) (*client.AgrDso, error) {
	c, err := s.clientFor(domain, uftp.RoleDSO)
	if err != nil {
		return nil, err
	}
	return &client.AgrDso{Client: c}, nil
}

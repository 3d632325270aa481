package service

import (
	"github.com/uftp-dev/shapeshifter-go/client"
	"github.com/uftp-dev/shapeshifter-go/uftp"
)

// CroHandler is the set of messages a common reference operator
// service receives.
type CroHandler interface {
	ProcessAgrPortfolioQuery(message *uftp.AgrPortfolioQuery) error
	ProcessAgrPortfolioUpdate(message *uftp.AgrPortfolioUpdate) error
	ProcessDsoPortfolioQuery(message *uftp.DsoPortfolioQuery) error
	ProcessDsoPortfolioUpdate(message *uftp.DsoPortfolioUpdate) error
}

// CroService represents the common reference operator in the UFTP
// communication. It receives portfolio messages from both the AGR and
// the DSO.
type CroService struct {
	*Service
}

// NewCro builds a common reference operator service around the given
// handler.
func NewCro(cfg Config, handler CroHandler, opts ...Option) (*CroService, error) {
	s, err := newService(uftp.RoleCRO, cfg, opts...)
	if err != nil {
		return nil, err
	}
	s.register(uftp.KindAgrPortfolioQuery, func(m uftp.PayloadMessage) error {
		return handler.ProcessAgrPortfolioQuery(m.(*uftp.AgrPortfolioQuery))
	})
	s.register(uftp.KindAgrPortfolioUpdate, func(m uftp.PayloadMessage) error {
		return handler.ProcessAgrPortfolioUpdate(m.(*uftp.AgrPortfolioUpdate))
	})
	s.register(uftp.KindDsoPortfolioQuery, func(m uftp.PayloadMessage) error {
		return handler.ProcessDsoPortfolioQuery(m.(*uftp.DsoPortfolioQuery))
	})
	s.register(uftp.KindDsoPortfolioUpdate, func(m uftp.PayloadMessage) error {
		return handler.ProcessDsoPortfolioUpdate(m.(*uftp.DsoPortfolioUpdate))
	})
	return &CroService{s}, nil
}

// AgrClient returns an outbound client for answering the AGR at the
// given domain.
func (s *CroService) AgrClient(domain string) (*client.CroAgr, error) {
	c, err := s.clientFor(domain, uftp.RoleAGR)
	if err != nil {
		return nil, err
	}
	return &client.CroAgr{Client: c}, nil
}

// DsoClient returns an outbound client for answering the DSO at the
// given domain.
func (s *CroService) DsoClient(domain string) (*client.CroDso, error) {
	c, err := s.clientFor(domain, uftp.RoleDSO)
	if err != nil {
		return nil, err
	}
	return &client.CroDso{Client: c}, nil
}

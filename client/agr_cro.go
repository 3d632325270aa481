package client

import (
	"context"

	"github.com/uftp-dev/shapeshifter-go/uftp"
)

// AgrCro connects an aggregator to a common reference operator.
type AgrCro struct {
	*Client
}

func NewAgrCro(cfg Config) (*AgrCro, error) {
	c, err := New(uftp.RoleAGR, uftp.RoleCRO, cfg)
	if err != nil {
		return nil, err
	}
	return &AgrCro{c}, nil
}

// SendAgrPortfolioUpdate announces on which connections the AGR
// represents prosumers.
func (c *AgrCro) SendAgrPortfolioUpdate(ctx context.Context, message *uftp.AgrPortfolioUpdate) (uftp.PayloadMessage, error) {
	return c.Send(ctx, message)
}

// SendAgrPortfolioQuery retrieves additional information on the
// connections in the AGR's portfolio.
func (c *AgrCro) SendAgrPortfolioQuery(ctx context.Context, message *uftp.AgrPortfolioQuery) (uftp.PayloadMessage, error) {
	return c.Send(ctx, message)
}

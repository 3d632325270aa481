package client

import (
	"context"

	"github.com/uftp-dev/shapeshifter-go/uftp"
)

// CroAgr connects a common reference operator to an aggregator.
type CroAgr struct {
	*Client
}

func NewCroAgr(cfg Config) (*CroAgr, error) {
	c, err := New(uftp.RoleCRO, uftp.RoleAGR, cfg)
	if err != nil {
		return nil, err
	}
	return &CroAgr{c}, nil
}

// SendAgrPortfolioUpdateResponse answers an AGRPortfolioUpdate.
func (c *CroAgr) SendAgrPortfolioUpdateResponse(ctx context.Context, message *uftp.AgrPortfolioUpdateResponse) (uftp.PayloadMessage, error) {
	return c.Send(ctx, message)
}

// SendAgrPortfolioQueryResponse answers an AGRPortfolioQuery.
func (c *CroAgr) SendAgrPortfolioQueryResponse(ctx context.Context, message *uftp.AgrPortfolioQueryResponse) (uftp.PayloadMessage, error) {
	return c.Send(ctx, message)
}

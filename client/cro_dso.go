package client

import (
	"context"

	"github.com/uftp-dev/shapeshifter-go/uftp"
)

// CroDso connects a common reference operator to a distribution system
// operator. Only the two portfolio responses flow in this direction,
// each answering a DSOPortfolioUpdate or DSOPortfolioQuery.
type CroDso struct {
	*Client
}

func NewCroDso(cfg Config) (*CroDso, error) {
	c, err := New(uftp.RoleCRO, uftp.RoleDSO, cfg)
	if err != nil {
		return nil, err
	}
	return &CroDso{c}, nil
}

// SendDsoPortfolioUpdateResponse answers a DSOPortfolioUpdate.
func (c *CroDso) SendDsoPortfolioUpdateResponse(ctx context.Context, message *uftp.DsoPortfolioUpdateResponse) (uftp.PayloadMessage, error) {
	return c.Send(ctx, message)
}

// SendDsoPortfolioQueryResponse answers a DSOPortfolioQuery.
func (c *CroDso) SendDsoPortfolioQueryResponse(ctx context.Context, message *uftp.DsoPortfolioQueryResponse) (uftp.PayloadMessage, error) {
	return c.Send(ctx, message)
}

package client

import (
	"context"

	"github.com/uftp-dev/shapeshifter-go/uftp"
)

// DsoCro connects a distribution system operator to a common reference
// operator.
type DsoCro struct {
	*Client
}

func NewDsoCro(cfg Config) (*DsoCro, error) {
	c, err := New(uftp.RoleDSO, uftp.RoleCRO, cfg)
	if err != nil {
		return nil, err
	}
	return &DsoCro{c}, nil
}

// SendDsoPortfolioUpdate announces on which congestion points the DSO
// wants to engage in flexibility trading.
func (c *DsoCro) SendDsoPortfolioUpdate(ctx context.Context, message *uftp.DsoPortfolioUpdate) (uftp.PayloadMessage, error) {
	return c.Send(ctx, message)
}

// SendDsoPortfolioQuery discovers which AGRs represent connections on
// the DSO's registered congestion points.
func (c *DsoCro) SendDsoPortfolioQuery(ctx context.Context, message *uftp.DsoPortfolioQuery) (uftp.PayloadMessage, error) {
	return c.Send(ctx, message)
}

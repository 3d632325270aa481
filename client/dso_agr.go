package client

import (
	"context"

	"github.com/uftp-dev/shapeshifter-go/uftp"
)

// DsoAgr connects a distribution system operator to an aggregator.
type DsoAgr struct {
	*Client
}

func NewDsoAgr(cfg Config) (*DsoAgr, error) {
	c, err := New(uftp.RoleDSO, uftp.RoleAGR, cfg)
	if err != nil {
		return nil, err
	}
	return &DsoAgr{c}, nil
}

// SendDPrognosisResponse confirms reception of a D-prognosis.
func (c *DsoAgr) SendDPrognosisResponse(ctx context.Context, message *uftp.DPrognosisResponse) (uftp.PayloadMessage, error) {
	return c.Send(ctx, message)
}

// SendFlexRequest requests flexibility from the AGR. Besides the ISPs
// with Disposition Requested it should also carry the remaining ISPs
// of the period with Disposition Available.
func (c *DsoAgr) SendFlexRequest(ctx context.Context, message *uftp.FlexRequest) (uftp.PayloadMessage, error) {
	return c.Send(ctx, message)
}

// SendFlexOfferResponse confirms reception of a flex offer.
func (c *DsoAgr) SendFlexOfferResponse(ctx context.Context, message *uftp.FlexOfferResponse) (uftp.PayloadMessage, error) {
	return c.Send(ctx, message)
}

// SendFlexOrder purchases flexibility based on a previous FlexOffer.
// The ISP list must be copied from the offer unmodified; AGR
// implementations reject orders whose ISPs differ from the offer.
func (c *DsoAgr) SendFlexOrder(ctx context.Context, message *uftp.FlexOrder) (uftp.PayloadMessage, error) {
	return c.Send(ctx, message)
}

// SendFlexReservationUpdate signals, for bilateral contracts, which
// part of the contracted volume remains reserved per ISP. Zero power
// means nothing is reserved for that ISP.
func (c *DsoAgr) SendFlexReservationUpdate(ctx context.Context, message *uftp.FlexReservationUpdate) (uftp.PayloadMessage, error) {
	return c.Send(ctx, message)
}

// SendFlexSettlement initiates settlement, typically monthly, listing
// all flex orders placed during the settlement period.
func (c *DsoAgr) SendFlexSettlement(ctx context.Context, message *uftp.FlexSettlement) (uftp.PayloadMessage, error) {
	return c.Send(ctx, message)
}

// SendFlexOfferRevocationResponse reports whether a received
// FlexOfferRevocation was handled successfully.
func (c *DsoAgr) SendFlexOfferRevocationResponse(ctx context.Context, message *uftp.FlexOfferRevocationResponse) (uftp.PayloadMessage, error) {
	return c.Send(ctx, message)
}

// SendMeteringResponse confirms reception of metering data.
func (c *DsoAgr) SendMeteringResponse(ctx context.Context, message *uftp.MeteringResponse) (uftp.PayloadMessage, error) {
	return c.Send(ctx, message)
}

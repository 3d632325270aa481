package client

import (
	"context"

	"github.com/uftp-dev/shapeshifter-go/uftp"
)

// AgrDso connects an aggregator to a distribution system operator.
type AgrDso struct {
	*Client
}

func NewAgrDso(cfg Config) (*AgrDso, error) {
	c, err := New(uftp.RoleAGR, uftp.RoleDSO, cfg)
	if err != nil {
		return nil, err
	}
	return &AgrDso{c}, nil
}

// SendDPrognosis communicates a D-prognosis for a period. A
// D-Prognosis always contains data for all ISPs of the period it
// applies to, even when sent after the period has started.
func (c *AgrDso) SendDPrognosis(ctx context.Context, message *uftp.DPrognosis) (uftp.PayloadMessage, error) {
	return c.Send(ctx, message)
}

// SendFlexRequestResponse reports whether a received FlexRequest was
// processed successfully.
func (c *AgrDso) SendFlexRequestResponse(ctx context.Context, message *uftp.FlexRequestResponse) (uftp.PayloadMessage, error) {
	return c.Send(ctx, message)
}

// SendFlexOffer offers flexibility to the DSO, either in reply to a
// FlexRequest or unsolicited. Multiple offers may reference a single
// request; the AGR must be able to deliver across all of them.
func (c *AgrDso) SendFlexOffer(ctx context.Context, message *uftp.FlexOffer) (uftp.PayloadMessage, error) {
	return c.Send(ctx, message)
}

// SendFlexOfferRevocation voids a previously sent FlexOffer, even when
// its validity time has not yet expired. Offers with accepted orders
// cannot be revoked.
func (c *AgrDso) SendFlexOfferRevocation(ctx context.Context, message *uftp.FlexOfferRevocation) (uftp.PayloadMessage, error) {
	return c.Send(ctx, message)
}

// SendFlexOrderResponse confirms a flex order.
func (c *AgrDso) SendFlexOrderResponse(ctx context.Context, message *uftp.FlexOrderResponse) (uftp.PayloadMessage, error) {
	return c.Send(ctx, message)
}

// SendFlexSettlementResponse reports whether a received FlexSettlement
// was handled successfully. On rejection the DSO should treat all
// order settlements in that message as potentially disputed.
func (c *AgrDso) SendFlexSettlementResponse(ctx context.Context, message *uftp.FlexSettlementResponse) (uftp.PayloadMessage, error) {
	return c.Send(ctx, message)
}

// SendFlexReservationUpdateResponse confirms a flex reservation update.
func (c *AgrDso) SendFlexReservationUpdateResponse(ctx context.Context, message *uftp.FlexReservationUpdateResponse) (uftp.PayloadMessage, error) {
	return c.Send(ctx, message)
}

// SendMetering delivers metering data to the DSO.
func (c *AgrDso) SendMetering(ctx context.Context, message *uftp.Metering) (uftp.PayloadMessage, error) {
	return c.Send(ctx, message)
}

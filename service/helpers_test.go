package service

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/uftp-dev/shapeshifter-go/transport"
	"github.com/uftp-dev/shapeshifter-go/uftp"
)

// recordingHandler implements AgrHandler, CroHandler and DsoHandler by
// forwarding every message to a channel.
type recordingHandler struct {
	received chan uftp.PayloadMessage
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{received: make(chan uftp.PayloadMessage, 16)}
}

func (h *recordingHandler) record(m uftp.PayloadMessage) error {
	h.received <- m
	return nil
}

// wait blocks until a message arrives or the deadline passes.
func (h *recordingHandler) wait(t *testing.T, timeout time.Duration) uftp.PayloadMessage {
	t.Helper()
	select {
	case m := <-h.received:
		return m
	case <-time.After(timeout):
		t.Fatal("no message received in time")
		return nil
	}
}

func (h *recordingHandler) ProcessAgrPortfolioQuery(m *uftp.AgrPortfolioQuery) error       { return h.record(m) }
func (h *recordingHandler) ProcessAgrPortfolioUpdate(m *uftp.AgrPortfolioUpdate) error     { return h.record(m) }
func (h *recordingHandler) ProcessDsoPortfolioQuery(m *uftp.DsoPortfolioQuery) error       { return h.record(m) }
func (h *recordingHandler) ProcessDsoPortfolioUpdate(m *uftp.DsoPortfolioUpdate) error     { return h.record(m) }
func (h *recordingHandler) ProcessDPrognosis(m *uftp.DPrognosis) error                     { return h.record(m) }
func (h *recordingHandler) ProcessFlexOffer(m *uftp.FlexOffer) error                       { return h.record(m) }
func (h *recordingHandler) ProcessFlexOfferRevocation(m *uftp.FlexOfferRevocation) error   { return h.record(m) }
func (h *recordingHandler) ProcessFlexOrder(m *uftp.FlexOrder) error                       { return h.record(m) }
func (h *recordingHandler) ProcessFlexRequest(m *uftp.FlexRequest) error                   { return h.record(m) }
func (h *recordingHandler) ProcessFlexReservationUpdate(m *uftp.FlexReservationUpdate) error {
	return h.record(m)
}
func (h *recordingHandler) ProcessFlexSettlement(m *uftp.FlexSettlement) error { return h.record(m) }
func (h *recordingHandler) ProcessMetering(m *uftp.Metering) error             { return h.record(m) }

func (h *recordingHandler) ProcessAgrPortfolioQueryResponse(m *uftp.AgrPortfolioQueryResponse) error {
	return h.record(m)
}
func (h *recordingHandler) ProcessAgrPortfolioUpdateResponse(m *uftp.AgrPortfolioUpdateResponse) error {
	return h.record(m)
}
func (h *recordingHandler) ProcessDsoPortfolioQueryResponse(m *uftp.DsoPortfolioQueryResponse) error {
	return h.record(m)
}
func (h *recordingHandler) ProcessDsoPortfolioUpdateResponse(m *uftp.DsoPortfolioUpdateResponse) error {
	return h.record(m)
}
func (h *recordingHandler) ProcessDPrognosisResponse(m *uftp.DPrognosisResponse) error { return h.record(m) }
func (h *recordingHandler) ProcessFlexOfferResponse(m *uftp.FlexOfferResponse) error   { return h.record(m) }
func (h *recordingHandler) ProcessFlexOfferRevocationResponse(m *uftp.FlexOfferRevocationResponse) error {
	return h.record(m)
}
func (h *recordingHandler) ProcessFlexOrderResponse(m *uftp.FlexOrderResponse) error { return h.record(m) }
func (h *recordingHandler) ProcessFlexRequestResponse(m *uftp.FlexRequestResponse) error {
	return h.record(m)
}
func (h *recordingHandler) ProcessFlexReservationUpdateResponse(m *uftp.FlexReservationUpdateResponse) error {
	return h.record(m)
}
func (h *recordingHandler) ProcessFlexSettlementResponse(m *uftp.FlexSettlementResponse) error {
	return h.record(m)
}
func (h *recordingHandler) ProcessMeteringResponse(m *uftp.MeteringResponse) error { return h.record(m) }

// Compile-time coverage of the role interfaces.
var (
	_ AgrHandler = (*recordingHandler)(nil)
	_ CroHandler = (*recordingHandler)(nil)
	_ DsoHandler = (*recordingHandler)(nil)
)

// directory is a static stand-in for DNS discovery, shared between
// test services.
type directory struct {
	mu        sync.Mutex
	endpoints map[string]string
	keys      map[string]string
}

func newDirectory() *directory {
	return &directory{
		endpoints: make(map[string]string),
		keys:      make(map[string]string),
	}
}

func (d *directory) add(domain string, role uftp.Role, endpoint, publicKey string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.endpoints[domain+"/"+string(role)] = endpoint
	d.keys[domain+"/"+string(role)] = publicKey
}

func (d *directory) Endpoint(_ context.Context, domain string, role uftp.Role) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	endpoint, ok := d.endpoints[domain+"/"+string(role)]
	if !ok {
		return "", fmt.Errorf("no endpoint registered for %s %s", role, domain)
	}
	return endpoint, nil
}

func (d *directory) Key(_ context.Context, domain string, role uftp.Role) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	key, ok := d.keys[domain+"/"+string(role)]
	if !ok {
		return "", fmt.Errorf("no key registered for %s %s", role, domain)
	}
	return key, nil
}

func keyPair(t *testing.T) transport.KeyPair {
	t.Helper()
	pair, err := transport.GenerateKeyPair()
	require.NoError(t, err)
	return pair
}

// sealedEnvelope builds the raw POST body for a message signed with
// the given private key, bypassing the client.
func sealedEnvelope(t *testing.T, message uftp.PayloadMessage, privateKey, envelopeDomain string, role uftp.Role) []byte {
	t.Helper()
	sealed, err := transport.Seal(message, privateKey)
	require.NoError(t, err)
	envelope, err := uftp.MarshalSignedMessage(&uftp.SignedMessage{
		SenderDomain: envelopeDomain,
		SenderRole:   role,
		Body:         sealed,
	})
	require.NoError(t, err)
	return envelope
}

// sealedGarbage returns an envelope whose body carries a valid
// signature over something that is not a payload message.
func sealedGarbage(t *testing.T, privateKey string) []byte {
	t.Helper()
	private, err := transport.DecodePrivateKey(privateKey)
	require.NoError(t, err)
	doc := []byte("<Hello />")
	sealed := append(ed25519.Sign(private, doc), doc...)
	envelope, err := uftp.MarshalSignedMessage(&uftp.SignedMessage{
		SenderDomain: "agr.dev",
		SenderRole:   uftp.RoleAGR,
		Body:         sealed,
	})
	require.NoError(t, err)
	return envelope
}

// testMeta returns a fully populated payload meta for handcrafted
// messages.
func testMeta(senderDomain, recipientDomain string) uftp.PayloadMessageMeta {
	return uftp.PayloadMessageMeta{
		Version:         uftp.DefaultVersion,
		SenderDomain:    senderDomain,
		RecipientDomain: recipientDomain,
		TimeStamp:       uftp.Timestamp(time.Now().UTC()),
		MessageID:       "0b154bc9-0422-4bb9-ac44-44b0e5e4c0e8",
		ConversationID:  "49ee43f9-de15-4a25-bc37-1b66d93a3861",
	}
}

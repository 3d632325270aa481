package service

// End-to-end exchanges between in-process participants listening on
// loopback ports, with a static directory standing in for DNS.

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uftp-dev/shapeshifter-go/client"
	"github.com/uftp-dev/shapeshifter-go/oauth"
	"github.com/uftp-dev/shapeshifter-go/transport"
	"github.com/uftp-dev/shapeshifter-go/uftp"
)

type duo struct {
	agr        *AgrService
	cro        *CroService
	agrHandler *recordingHandler
	croHandler *recordingHandler
	dir        *directory
	agrKeys    transport.KeyPair
	croKeys    transport.KeyPair
}

func startDuo(t *testing.T) *duo {
	t.Helper()
	agrKeys, croKeys := keyPair(t), keyPair(t)
	d := &duo{
		agrHandler: newRecordingHandler(),
		croHandler: newRecordingHandler(),
		dir:        newDirectory(),
		agrKeys:    agrKeys,
		croKeys:    croKeys,
	}
	opts := []Option{WithKeyResolver(d.dir.Key), WithEndpointResolver(d.dir.Endpoint)}

	agr, err := NewAgr(Config{
		SenderDomain: "agr.dev",
		SigningKey:   agrKeys.Private,
		BindHost:     "127.0.0.1",
	}, d.agrHandler, opts...)
	require.NoError(t, err)
	cro, err := NewCro(Config{
		SenderDomain: "cro.dev",
		SigningKey:   croKeys.Private,
		BindHost:     "127.0.0.1",
	}, d.croHandler, opts...)
	require.NoError(t, err)

	// Route generic acknowledgements into the recorders so the tests
	// can observe rejections that have no dedicated response kind.
	agr.Service.register(uftp.KindTestMessageResponse, func(m uftp.PayloadMessage) error {
		d.agrHandler.received <- m
		return nil
	})

	require.NoError(t, agr.Start())
	require.NoError(t, cro.Start())
	t.Cleanup(func() {
		require.NoError(t, agr.Shutdown(context.Background()))
		require.NoError(t, cro.Shutdown(context.Background()))
	})

	d.dir.add("agr.dev", uftp.RoleAGR, agr.Endpoint(), agrKeys.Public)
	d.dir.add("cro.dev", uftp.RoleCRO, cro.Endpoint(), croKeys.Public)
	d.agr, d.cro = agr, cro
	return d
}

func TestScenarioHappyPath(t *testing.T) {
	d := startDuo(t)

	croClient, err := d.agr.CroClient("cro.dev")
	require.NoError(t, err)

	update := &uftp.AgrPortfolioUpdate{
		Connections: []uftp.AgrPortfolioUpdateConnection{
			{EntityAddress: "ean.123456789012", StartPeriod: uftp.NewDate(2023, 1, 1)},
		},
	}
	response, err := croClient.SendAgrPortfolioUpdate(context.Background(), update)
	require.NoError(t, err)
	assert.Nil(t, response, "the acknowledgement body is empty")

	received := d.croHandler.wait(t, 10*time.Second)
	typed, ok := received.(*uftp.AgrPortfolioUpdate)
	require.True(t, ok)
	assert.Equal(t, update.MessageID, typed.MessageID)
	assert.Equal(t, "agr.dev", typed.SenderDomain)
	assert.Equal(t, "ean.123456789012", typed.Connections[0].EntityAddress)
	assert.Equal(t, uftp.NewDate(2023, 1, 1), typed.Connections[0].StartPeriod)
}

func TestScenarioInvalidSender(t *testing.T) {
	d := startDuo(t)

	// The inner message claims a different sender than the envelope.
	update := &uftp.AgrPortfolioUpdate{
		PayloadMessageMeta: testMeta("fake.domain", "cro.dev"),
		Connections: []uftp.AgrPortfolioUpdateConnection{
			{EntityAddress: "ean.123456789012", StartPeriod: uftp.NewDate(2023, 1, 1)},
		},
	}
	envelope := sealedEnvelope(t, update, d.agrKeys.Private, "agr.dev", uftp.RoleAGR)

	resp, err := http.Post(d.cro.Endpoint(), "text/xml; charset=utf-8", bytes.NewReader(envelope))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	received := d.agrHandler.wait(t, 10*time.Second)
	typed, ok := received.(*uftp.AgrPortfolioUpdateResponse)
	require.True(t, ok)
	assert.Equal(t, uftp.Rejected, typed.Result)
	assert.Equal(t, "Invalid Sender", typed.RejectionReason)
	assert.Equal(t, update.ConversationID, typed.ConversationID)
	assert.Equal(t, update.MessageID, typed.AGRPortfolioUpdateMessageID)
}

func TestScenarioMalformedPayload(t *testing.T) {
	d := startDuo(t)

	envelope := sealedGarbage(t, d.agrKeys.Private)
	resp, err := http.Post(d.cro.Endpoint(), "text/xml; charset=utf-8", bytes.NewReader(envelope))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestScenarioMisdirectedKind(t *testing.T) {
	d := startDuo(t)

	croClient, err := d.agr.CroClient("cro.dev")
	require.NoError(t, err)

	// A FlexRequestResponse never travels to the CRO.
	response, err := croClient.Send(context.Background(), &uftp.FlexRequestResponse{})
	require.NoError(t, err)
	assert.Nil(t, response)

	received := d.agrHandler.wait(t, 10*time.Second)
	typed, ok := received.(*uftp.TestMessageResponse)
	require.True(t, ok)
	assert.Equal(t, uftp.Rejected, typed.Result)
	assert.Equal(t, "Invalid Message: 'FlexRequestResponse'", typed.RejectionReason)
}

func TestScenarioRetryExhaustion(t *testing.T) {
	d := startDuo(t)

	c, err := client.New(uftp.RoleAGR, uftp.RoleCRO, client.Config{
		SenderDomain:        "agr.dev",
		SigningKey:          d.agrKeys.Private,
		RecipientDomain:     "cro.dev",
		RecipientEndpoint:   "http://127.0.0.1:1",
		RecipientSigningKey: d.croKeys.Public,
		DeliveryAttempts:    2,
		RetryFactor:         0.1,
		RetryBase:           1.1,
	})
	require.NoError(t, err)
	t.Cleanup(c.Stop)

	var callbacks atomic.Int64
	c.Queue(&uftp.AgrPortfolioUpdate{
		Connections: []uftp.AgrPortfolioUpdateConnection{
			{EntityAddress: "ean.123456789012", StartPeriod: uftp.NewDate(2023, 1, 1)},
		},
	}, func(uftp.PayloadMessage) error {
		callbacks.Add(1)
		return nil
	})

	time.Sleep(2 * time.Second)
	assert.Zero(t, callbacks.Load(), "the callback only fires on success")
	select {
	case m := <-d.croHandler.received:
		t.Fatalf("the CRO must not have received anything, got %s", m.Kind())
	default:
	}
}

func TestScenarioOAuthBearerInjection(t *testing.T) {
	d := startDuo(t)

	var tokenRequests atomic.Int64
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		tokenRequests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "T", "token_type": "Bearer", "expires_in": 300,
		})
	}))
	t.Cleanup(tokenServer.Close)

	var mu sync.Mutex
	var authorizations []string
	recipient := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		authorizations = append(authorizations, r.Header.Get("Authorization"))
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(recipient.Close)

	c, err := client.New(uftp.RoleAGR, uftp.RoleCRO, client.Config{
		SenderDomain:        "agr.dev",
		SigningKey:          d.agrKeys.Private,
		RecipientDomain:     "cro.dev",
		RecipientEndpoint:   recipient.URL,
		RecipientSigningKey: d.croKeys.Public,
		Authenticator:       oauth.NewTokenManager(tokenServer.URL, "client-1", "hunter2"),
	})
	require.NoError(t, err)
	t.Cleanup(c.Stop)

	for i := 0; i < 2; i++ {
		_, err = c.Send(context.Background(), &uftp.TestMessage{})
		require.NoError(t, err)
	}
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, authorizations, 2)
	assert.Equal(t, "Bearer T", authorizations[0])
	assert.Equal(t, "Bearer T", authorizations[1])
	assert.Equal(t, int64(1), tokenRequests.Load(), "the token stays cached within its lifetime")
}

package service

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uftp-dev/shapeshifter-go/transport"
	"github.com/uftp-dev/shapeshifter-go/uftp"
)

type fixture struct {
	cro     *CroService
	handler *recordingHandler
	dir     *directory
	agrKeys transport.KeyPair
	croKeys transport.KeyPair
	url     string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		agrKeys: keyPair(t),
		croKeys: keyPair(t),
		dir:     newDirectory(),
		handler: newRecordingHandler(),
	}

	cro, err := NewCro(Config{
		SenderDomain: "cro.dev",
		SigningKey:   f.croKeys.Private,
	}, f.handler,
		WithKeyResolver(f.dir.Key),
		WithEndpointResolver(f.dir.Endpoint),
	)
	require.NoError(t, err)
	f.cro = cro
	t.Cleanup(func() {
		require.NoError(t, cro.Shutdown(context.Background()))
	})

	server := httptest.NewServer(cro.Service.router())
	t.Cleanup(server.Close)
	f.url = server.URL + cro.cfg.Path

	f.dir.add("agr.dev", uftp.RoleAGR, "http://127.0.0.1:1", f.agrKeys.Public)
	return f
}

func portfolioUpdate(senderDomain, recipientDomain string) *uftp.AgrPortfolioUpdate {
	return &uftp.AgrPortfolioUpdate{
		PayloadMessageMeta: testMeta(senderDomain, recipientDomain),
		Connections: []uftp.AgrPortfolioUpdateConnection{
			{EntityAddress: "ean.123456789012", StartPeriod: uftp.NewDate(2023, 1, 1)},
		},
	}
}

func post(t *testing.T, url string, body []byte) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "text/xml; charset=utf-8", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestEndpointAcceptsValidMessage(t *testing.T) {
	f := newFixture(t)

	update := portfolioUpdate("agr.dev", "cro.dev")
	envelope := sealedEnvelope(t, update, f.agrKeys.Private, "agr.dev", uftp.RoleAGR)

	resp := post(t, f.url, envelope)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Empty(t, body, "acknowledgement must have an empty body")

	received := f.handler.wait(t, 2*time.Second)
	typed, ok := received.(*uftp.AgrPortfolioUpdate)
	require.True(t, ok)
	assert.Equal(t, update.MessageID, typed.MessageID)
	assert.Equal(t, "ean.123456789012", typed.Connections[0].EntityAddress)
}

func TestEndpointRejectsWrongContentType(t *testing.T) {
	f := newFixture(t)
	resp, err := http.Post(f.url, "application/json", bytes.NewReader([]byte("{}")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEndpointRejectsMalformedXML(t *testing.T) {
	f := newFixture(t)
	resp := post(t, f.url, []byte("this is not xml"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEndpointRejectsUnknownRole(t *testing.T) {
	f := newFixture(t)
	envelope := []byte(`<?xml version="1.0" encoding="UTF-8"?>` +
		`<SignedMessage SenderDomain="agr.dev" SenderRole="BRP" Body="QUFBQQ=="></SignedMessage>`)
	resp := post(t, f.url, envelope)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEndpointUnresolvableKey(t *testing.T) {
	f := newFixture(t)

	update := portfolioUpdate("ghost.dev", "cro.dev")
	envelope := sealedEnvelope(t, update, f.agrKeys.Private, "ghost.dev", uftp.RoleAGR)

	resp := post(t, f.url, envelope)
	assert.Equal(t, 419, resp.StatusCode)
}

func TestEndpointRejectsBadSignature(t *testing.T) {
	f := newFixture(t)

	// Sealed with the CRO's key but presented as coming from the AGR.
	update := portfolioUpdate("agr.dev", "cro.dev")
	envelope := sealedEnvelope(t, update, f.croKeys.Private, "agr.dev", uftp.RoleAGR)

	resp := post(t, f.url, envelope)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestEndpointRejectsSealedGarbage(t *testing.T) {
	f := newFixture(t)

	resp := post(t, f.url, sealedGarbage(t, f.agrKeys.Private))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEndpointMissingContentLength(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/shapeshifter/api/v3/message", nil)
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.ContentLength = -1
	recorder := httptest.NewRecorder()
	f.cro.Service.handleMessage(recorder, req)
	assert.Equal(t, http.StatusLengthRequired, recorder.Code)
}

func TestEndpointRateLimited(t *testing.T) {
	keys := keyPair(t)
	entered := make(chan struct{})
	release := make(chan struct{})

	handler := newRecordingHandler()
	cro, err := NewCro(Config{
		SenderDomain: "cro.dev",
		SigningKey:   keys.Private,
		MaxInflight:  1,
	}, handler,
		WithKeyResolver(func(context.Context, string, uftp.Role) (string, error) {
			entered <- struct{}{}
			<-release
			return keys.Public, nil
		}),
		WithEndpointResolver(newDirectory().Endpoint),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, cro.Shutdown(context.Background()))
	})
	server := httptest.NewServer(cro.Service.router())
	t.Cleanup(server.Close)
	url := server.URL + cro.cfg.Path

	envelope := sealedEnvelope(t, portfolioUpdate("agr.dev", "cro.dev"), keys.Private, "agr.dev", uftp.RoleAGR)

	done := make(chan struct{})
	go func() {
		defer close(done)
		resp, err := http.Post(url, "text/xml; charset=utf-8", bytes.NewReader(envelope))
		if err == nil {
			resp.Body.Close()
		}
	}()
	<-entered // first request is now holding the only slot

	resp := post(t, url, envelope)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	close(release)
	<-done
}

func TestEndpointSenderMismatchIsRejectedFunctionally(t *testing.T) {
	f := newFixture(t)

	update := portfolioUpdate("fake.domain", "cro.dev")
	envelope := sealedEnvelope(t, update, f.agrKeys.Private, "agr.dev", uftp.RoleAGR)

	resp := post(t, f.url, envelope)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "functional rejections are not HTTP errors")

	require.Eventually(t, func() bool {
		return testutil.ToFloat64(f.cro.Service.metrics.rejected.WithLabelValues("Invalid Sender")) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestEndpointMisdirectedKindIsRejectedFunctionally(t *testing.T) {
	f := newFixture(t)

	request := &uftp.FlexRequestResponse{}
	request.PayloadMessageMeta = testMeta("agr.dev", "cro.dev")
	envelope := sealedEnvelope(t, request, f.agrKeys.Private, "agr.dev", uftp.RoleAGR)

	resp := post(t, f.url, envelope)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.Eventually(t, func() bool {
		reason := "Invalid Message: 'FlexRequestResponse'"
		return testutil.ToFloat64(f.cro.Service.metrics.rejected.WithLabelValues(reason)) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestEveryAcceptableKindHasARegisteredHandler(t *testing.T) {
	keys := keyPair(t)
	cfg := Config{SenderDomain: "svc.dev", SigningKey: keys.Private}
	dir := newDirectory()
	opts := []Option{WithKeyResolver(dir.Key), WithEndpointResolver(dir.Endpoint)}
	handler := newRecordingHandler()

	agr, err := NewAgr(cfg, handler, opts...)
	require.NoError(t, err)
	cro, err := NewCro(cfg, handler, opts...)
	require.NoError(t, err)
	dso, err := NewDso(cfg, handler, opts...)
	require.NoError(t, err)

	services := map[uftp.Role]*Service{
		uftp.RoleAGR: agr.Service,
		uftp.RoleCRO: cro.Service,
		uftp.RoleDSO: dso.Service,
	}
	for role, s := range services {
		for _, kind := range uftp.AcceptableMessages[role] {
			_, ok := s.handlers[kind]
			assert.True(t, ok, "%s has no handler for %s", role, kind)
		}
		_, ok := s.handlers[uftp.KindTestMessage]
		assert.True(t, ok)
	}
}

func TestCheckContentType(t *testing.T) {
	assert.NoError(t, checkContentType("text/xml"))
	assert.NoError(t, checkContentType("text/xml; charset=utf-8"))
	assert.NoError(t, checkContentType("text/xml; charset=UTF-8"))
	assert.Error(t, checkContentType(""))
	assert.Error(t, checkContentType("application/xml"))
	assert.Error(t, checkContentType("text/xml; charset=latin-1"))
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	assert.Equal(t, "0.0.0.0", cfg.BindHost)
	assert.Equal(t, "/shapeshifter/api/v3/message", cfg.Path)
	assert.Equal(t, 10, cfg.InboundWorkers)
	assert.Equal(t, 10, cfg.OutboundWorkers)
	assert.Equal(t, 10, cfg.DeliveryAttempts)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 1.0, cfg.RetryFactor)
	assert.Equal(t, 2.0, cfg.RetryBase)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
sender_domain: agr.example.org
signing_key: c2VjcmV0
bind_port: 9090
num_delivery_attempts: 3
request_timeout: 10s
exponential_retry_factor: 0.5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "agr.example.org", cfg.SenderDomain)
	assert.Equal(t, "c2VjcmV0", cfg.SigningKey)
	assert.Equal(t, 9090, cfg.BindPort)
	assert.Equal(t, 3, cfg.DeliveryAttempts)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 0.5, cfg.RetryFactor)
	assert.Equal(t, 2.0, cfg.RetryBase, "defaults apply to omitted keys")

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

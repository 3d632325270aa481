// Package client initiates UFTP conversations with a remote
// participant. A Client signs and seals outgoing payload messages,
// wraps them in a SignedMessage envelope and POSTs them to the
// recipient endpoint. Because the protocol is asynchronous, a
// successful delivery only acknowledges receipt; the functional answer
// arrives later on the local service.
//
// Messages can be sent directly with Send, or handed to Queue which
// retries failed deliveries on an exponential schedule using a small
// worker pool.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/uftp-dev/shapeshifter-go/discovery"
	"github.com/uftp-dev/shapeshifter-go/internal/workqueue"
	"github.com/uftp-dev/shapeshifter-go/oauth"
	"github.com/uftp-dev/shapeshifter-go/transport"
	"github.com/uftp-dev/shapeshifter-go/uftp"
)

const (
	defaultWorkers          = 10
	defaultDeliveryAttempts = 10
	defaultRequestTimeout   = 30 * time.Second

	defaultRetryFactor = 1.0
	defaultRetryBase   = 2.0
)

// TransportError is returned when the recipient endpoint answers an
// outgoing message with anything other than HTTP 200.
type TransportError struct {
	Status int
	Body   string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("client: request was not successful: HTTP %d: %s", e.Status, e.Body)
}

// Callback receives the unsealed reply to a queued message. The reply
// is nil when the recipient acknowledged with an empty body, which is
// the normal case for the asynchronous exchange pattern. A returned
// error is logged, not retried.
type Callback func(response uftp.PayloadMessage) error

// Config carries the connection settings shared by all role-pair
// clients. RecipientEndpoint and RecipientSigningKey are optional;
// when empty they are looked up through DNS and cached.
type Config struct {
	SenderDomain    string
	SigningKey      string
	RecipientDomain string

	RecipientEndpoint   string
	RecipientSigningKey string

	Authenticator oauth.Authenticator
	HTTPClient    *http.Client
	Resolver      *discovery.Resolver
	Logger        *slog.Logger

	// Retry tunables for the queued delivery path. Zero values take
	// the defaults: 10 workers, 10 attempts, 30 s timeout, delays of
	// 1 * 2^attempt seconds.
	Workers          int
	DeliveryAttempts int
	RequestTimeout   time.Duration
	RetryFactor      float64
	RetryBase        float64
}

// Client sends payload messages from one participant role to another.
// Use one of the role-pair constructors (NewAgrDso, NewDsoCro, ...)
// for a client with typed send methods.
type Client struct {
	senderRole    uftp.Role
	recipientRole uftp.Role

	senderDomain        string
	signingKey          string
	recipientDomain     string
	recipientEndpoint   string
	recipientSigningKey string

	auth       oauth.Authenticator
	httpClient *http.Client
	resolver   *discovery.Resolver
	logger     *slog.Logger

	deliveryAttempts int
	requestTimeout   time.Duration
	retryFactor      float64
	retryBase        float64

	queue     *workqueue.Queue[outgoing]
	pool      *workqueue.Pool[outgoing]
	scheduler *workqueue.Scheduler

	now   func() time.Time
	newID func() string
}

type outgoing struct {
	message  uftp.PayloadMessage
	callback Callback
	attempt  int
}

// New returns a client sending as senderRole to recipientRole. The
// typed role-pair constructors wrap this; it is exported for callers
// that route messages dynamically.
func New(senderRole, recipientRole uftp.Role, cfg Config) (*Client, error) {
	if !senderRole.Valid() || !recipientRole.Valid() {
		return nil, fmt.Errorf("client: invalid role pair %q -> %q", senderRole, recipientRole)
	}
	if cfg.SenderDomain == "" {
		return nil, errors.New("client: sender domain is required")
	}
	if cfg.SigningKey == "" {
		return nil, errors.New("client: signing key is required")
	}
	if cfg.RecipientDomain == "" && cfg.RecipientEndpoint == "" {
		return nil, errors.New("client: one of recipient domain or recipient endpoint is required")
	}

	c := &Client{
		senderRole:          senderRole,
		recipientRole:       recipientRole,
		senderDomain:        cfg.SenderDomain,
		signingKey:          cfg.SigningKey,
		recipientDomain:     cfg.RecipientDomain,
		recipientEndpoint:   cfg.RecipientEndpoint,
		recipientSigningKey: cfg.RecipientSigningKey,
		auth:                cfg.Authenticator,
		httpClient:          cfg.HTTPClient,
		resolver:            cfg.Resolver,
		logger:              cfg.Logger,
		deliveryAttempts:    cfg.DeliveryAttempts,
		requestTimeout:      cfg.RequestTimeout,
		retryFactor:         cfg.RetryFactor,
		retryBase:           cfg.RetryBase,
		now:                 time.Now,
		newID:               uuid.NewString,
	}
	if c.auth == nil {
		c.auth = oauth.Passthrough{}
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	if c.resolver == nil {
		c.resolver = discovery.NewResolver()
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.deliveryAttempts == 0 {
		c.deliveryAttempts = defaultDeliveryAttempts
	}
	if c.requestTimeout == 0 {
		c.requestTimeout = defaultRequestTimeout
	}
	if c.retryFactor == 0 {
		c.retryFactor = defaultRetryFactor
	}
	if c.retryBase == 0 {
		c.retryBase = defaultRetryBase
	}
	workers := cfg.Workers
	if workers == 0 {
		workers = defaultWorkers
	}

	c.queue = workqueue.NewQueue[outgoing]()
	c.pool = workqueue.NewPool(c.queue, workers, c.deliver)
	c.scheduler = workqueue.NewScheduler()
	return c, nil
}

// Send fills in the common payload attributes, seals the message and
// delivers it to the recipient endpoint. The returned message is the
// unsealed body of the reply, or nil when the recipient acknowledged
// with an empty body. The functional response to the payload always
// arrives asynchronously on the local service.
func (c *Client) Send(ctx context.Context, message uftp.PayloadMessage) (uftp.PayloadMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	c.fill(message)

	sealed, err := transport.Seal(message, c.signingKey)
	if err != nil {
		return nil, err
	}
	envelope, err := uftp.MarshalSignedMessage(&uftp.SignedMessage{
		SenderDomain: c.senderDomain,
		SenderRole:   c.senderRole,
		Body:         sealed,
	})
	if err != nil {
		return nil, err
	}

	endpoint := c.recipientEndpoint
	if endpoint == "" {
		endpoint, err = c.resolver.Endpoint(ctx, c.recipientDomain, c.recipientRole)
		if err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(envelope))
	if err != nil {
		return nil, fmt.Errorf("client: building request for %s: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	authHeader, err := c.auth.AuthorizationHeader(ctx)
	if err != nil {
		return nil, err
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client: sending %s to %s: %w", message.Kind(), endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("client: reading reply from %s: %w", endpoint, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Status: resp.StatusCode, Body: string(body)}
	}
	if len(body) == 0 {
		return nil, nil
	}

	signed, err := uftp.UnmarshalSignedMessage(body)
	if err != nil {
		return nil, err
	}
	key := c.recipientSigningKey
	if key == "" {
		key, err = c.resolver.SigningKey(ctx, c.recipientDomain, c.recipientRole)
		if err != nil {
			return nil, err
		}
	}
	return transport.Unseal(signed.Body, key)
}

// Queue hands the message to the outgoing worker pool. Failed
// deliveries are retried with exponential backoff; once delivered, the
// callback receives the reply. Pass a nil callback to fire and forget.
func (c *Client) Queue(message uftp.PayloadMessage, callback Callback) {
	c.pool.Start()
	c.queue.Push(outgoing{message: message, callback: callback, attempt: 1})
}

// Stop shuts down the retry scheduler and the outgoing workers,
// waiting for in-flight deliveries to finish. Messages still waiting
// on a retry delay are dropped.
func (c *Client) Stop() {
	c.scheduler.Stop()
	c.pool.Stop()
}

// fill populates the attributes common to every payload message, so
// that callers only provide the message content itself.
func (c *Client) fill(message uftp.PayloadMessage) {
	meta := message.Meta()
	meta.Version = uftp.DefaultVersion
	meta.SenderDomain = c.senderDomain
	meta.RecipientDomain = c.recipientDomain
	if meta.TimeStamp == "" {
		meta.TimeStamp = uftp.Timestamp(c.now().UTC())
	}
	if meta.MessageID == "" {
		meta.MessageID = c.newID()
	}
	if meta.ConversationID == "" {
		meta.ConversationID = c.newID()
	}
}

func (c *Client) deliver(item outgoing) {
	response, err := c.Send(context.Background(), item.message)
	if err != nil {
		if item.attempt <= c.deliveryAttempts {
			delay := c.retryDelay(item.attempt)
			c.logger.Warn("outgoing message could not be delivered, will retry",
				"kind", item.message.Kind(),
				"recipient", c.recipientDomain,
				"attempt", item.attempt,
				"delay", delay,
				"error", err)
			item.attempt++
			c.scheduler.After(delay, func() { c.queue.Push(item) })
			return
		}
		c.logger.Error("could not deliver outgoing message, giving up",
			"kind", item.message.Kind(),
			"recipient", c.recipientDomain,
			"recipient_role", c.recipientRole,
			"attempts", c.deliveryAttempts,
			"error", err)
		return
	}
	if item.callback == nil {
		return
	}
	if err := item.callback(response); err != nil {
		c.logger.Error("delivery callback failed",
			"kind", item.message.Kind(),
			"error", err)
	}
}

func (c *Client) retryDelay(attempt int) time.Duration {
	seconds := c.retryFactor * math.Pow(c.retryBase, float64(attempt))
	return time.Duration(seconds * float64(time.Second))
}

// Package service hosts the receiving side of a UFTP participant. A
// Service exposes the single message endpoint, verifies and unseals
// incoming envelopes, acknowledges them with an empty 200 and hands
// the payload to the registered handler on a worker pool. Functional
// violations detected by the framework are answered asynchronously
// with a signed rejection response.
//
// Use one of the role facades (NewAgr, NewCro, NewDso) rather than
// the core Service directly; they bind the role's acceptable message
// set to a typed handler interface.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/uftp-dev/shapeshifter-go/client"
	"github.com/uftp-dev/shapeshifter-go/discovery"
	"github.com/uftp-dev/shapeshifter-go/internal/workqueue"
	"github.com/uftp-dev/shapeshifter-go/oauth"
	"github.com/uftp-dev/shapeshifter-go/transport"
	"github.com/uftp-dev/shapeshifter-go/uftp"
)

// KeyResolver returns the base64 public signing key of a participant.
type KeyResolver func(ctx context.Context, domain string, role uftp.Role) (string, error)

// EndpointResolver returns the full message endpoint URL of a
// participant.
type EndpointResolver func(ctx context.Context, domain string, role uftp.Role) (string, error)

type handlerFunc func(message uftp.PayloadMessage) error

// rejection is an outbound job answering a functionally invalid
// message. The reply goes to the participant named on the envelope.
type rejection struct {
	message uftp.PayloadMessage
	domain  string
	role    uftp.Role
	reason  string
}

// Service is the role-independent core shared by the facades.
type Service struct {
	role uftp.Role
	cfg  Config

	keyResolver      KeyResolver
	endpointResolver EndpointResolver
	resolver         *discovery.Resolver
	auth             oauth.Authenticator
	logger           *slog.Logger
	registry         *prometheus.Registry
	metrics          *metrics

	handlers map[uftp.Kind]handlerFunc

	inboundQueue *workqueue.Queue[uftp.PayloadMessage]
	inboundPool  *workqueue.Pool[uftp.PayloadMessage]
	rejectQueue  *workqueue.Queue[rejection]
	rejectPool   *workqueue.Pool[rejection]

	inflight chan struct{}

	mu      sync.Mutex
	clients map[string]*client.Client

	listener net.Listener
	server   *http.Server
}

// Option adjusts a Service at construction time.
type Option func(*Service)

// WithKeyResolver overrides the DNS-based public key lookup.
func WithKeyResolver(f KeyResolver) Option {
	return func(s *Service) { s.keyResolver = f }
}

// WithEndpointResolver overrides the DNS-based endpoint lookup.
func WithEndpointResolver(f EndpointResolver) Option {
	return func(s *Service) { s.endpointResolver = f }
}

// WithResolver supplies the discovery resolver backing the default
// lookups.
func WithResolver(r *discovery.Resolver) Option {
	return func(s *Service) { s.resolver = r }
}

// WithAuthenticator attaches OAuth authentication to outgoing
// responses.
func WithAuthenticator(a oauth.Authenticator) Option {
	return func(s *Service) { s.auth = a }
}

// WithLogger overrides the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithRegistry supplies the Prometheus registry for the service
// metrics. Each service defaults to its own registry.
func WithRegistry(r *prometheus.Registry) Option {
	return func(s *Service) { s.registry = r }
}

func newService(role uftp.Role, cfg Config, opts ...Option) (*Service, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("service: invalid role %q", role)
	}
	cfg = cfg.withDefaults()
	if cfg.SenderDomain == "" {
		return nil, errors.New("service: sender domain is required")
	}
	if cfg.SigningKey == "" {
		return nil, errors.New("service: signing key is required")
	}

	s := &Service{
		role:     role,
		cfg:      cfg,
		handlers: make(map[uftp.Kind]handlerFunc),
		clients:  make(map[string]*client.Client),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With(slog.String("role", string(role)), slog.String("domain", cfg.SenderDomain))
	if s.keyResolver == nil || s.endpointResolver == nil {
		if s.resolver == nil {
			s.resolver = discovery.NewResolver()
		}
		if s.keyResolver == nil {
			s.keyResolver = s.resolver.SigningKey
		}
		if s.endpointResolver == nil {
			s.endpointResolver = s.resolver.Endpoint
		}
	}
	if s.auth == nil {
		s.auth = oauth.Passthrough{}
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = newMetrics(s.registry)

	s.inboundQueue = workqueue.NewQueue[uftp.PayloadMessage]()
	s.inboundPool = workqueue.NewPool(s.inboundQueue, cfg.InboundWorkers, s.processInbound)
	s.rejectQueue = workqueue.NewQueue[rejection]()
	s.rejectPool = workqueue.NewPool(s.rejectQueue, cfg.OutboundWorkers, s.sendRejection)
	if cfg.MaxInflight > 0 {
		s.inflight = make(chan struct{}, cfg.MaxInflight)
	}

	// Every role answers connectivity checks and generic
	// acknowledgements; facades register the domain kinds on top.
	s.register(uftp.KindTestMessage, func(m uftp.PayloadMessage) error {
		s.logger.Info("received test message", "sender", m.Meta().SenderDomain)
		return nil
	})
	s.register(uftp.KindTestMessageResponse, func(m uftp.PayloadMessage) error {
		response := m.(*uftp.TestMessageResponse)
		if response.IsRejected() {
			s.logger.Warn("peer rejected a message",
				"sender", response.SenderDomain,
				"reason", response.RejectionReason,
				"conversation_id", response.ConversationID)
		}
		return nil
	})

	s.server = &http.Server{Handler: s.router()}
	return s, nil
}

// Role returns the participant role this service represents.
func (s *Service) Role() uftp.Role { return s.role }

// Domain returns the configured sender domain.
func (s *Service) Domain() string { return s.cfg.SenderDomain }

func (s *Service) router() http.Handler {
	r := chi.NewRouter()
	r.Post(s.cfg.Path, s.handleMessage)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

// Start binds the listener and begins accepting messages. It returns
// once the service is reachable.
func (s *Service) Start() error {
	addr := net.JoinHostPort(s.cfg.BindHost, strconv.Itoa(s.cfg.BindPort))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("service: listening on %s: %w", addr, err)
	}
	s.listener = listener
	s.inboundPool.Start()
	s.rejectPool.Start()
	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server stopped", "error", err)
		}
	}()
	s.logger.Info("service listening", "addr", listener.Addr().String(), "path", s.cfg.Path)
	return nil
}

// Endpoint returns the full URL of the message route. Only valid
// after Start.
func (s *Service) Endpoint() string {
	if s.listener == nil {
		return ""
	}
	return "http://" + s.listener.Addr().String() + s.cfg.Path
}

// Shutdown stops accepting requests, then drains the worker pools.
// In-flight handlers are allowed to finish.
func (s *Service) Shutdown(ctx context.Context) error {
	var err error
	if s.listener != nil {
		err = s.server.Shutdown(ctx)
	}
	s.inboundPool.Stop()
	s.rejectPool.Stop()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clients {
		c.Stop()
	}
	return err
}

func (s *Service) register(kind uftp.Kind, fn handlerFunc) {
	s.handlers[kind] = fn
}

// handleMessage implements the message endpoint contract: transport
// violations map to HTTP statuses, functional violations are
// acknowledged with 200 and answered asynchronously.
func (s *Service) handleMessage(w http.ResponseWriter, r *http.Request) {
	if s.inflight != nil {
		select {
		case s.inflight <- struct{}{}:
			defer func() { <-s.inflight }()
		default:
			s.refuse(w, transport.ErrTooManyRequests)
			return
		}
	}

	if r.ContentLength < 0 {
		s.refuse(w, transport.ErrMissingContentLength)
		return
	}
	if err := checkContentType(r.Header.Get("Content-Type")); err != nil {
		s.refuse(w, err)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.refuse(w, fmt.Errorf("%w: reading request body: %v", transport.ErrSchema, err))
		return
	}
	signed, err := uftp.UnmarshalSignedMessage(body)
	if err != nil {
		s.refuse(w, fmt.Errorf("%w: %v", transport.ErrSchema, err))
		return
	}

	key, err := s.keyResolver(r.Context(), signed.SenderDomain, signed.SenderRole)
	if err != nil {
		s.refuse(w, fmt.Errorf("%w: no key for %s %s: %v",
			transport.ErrAuthenticationTimeout, signed.SenderRole, signed.SenderDomain, err))
		return
	}
	message, err := transport.Unseal(signed.Body, key)
	if err != nil {
		s.refuse(w, err)
		return
	}

	var reject *uftp.FunctionalError
	switch {
	case message.Meta().SenderDomain != signed.SenderDomain:
		s.logger.Warn("sender domain mismatch between envelope and payload",
			"envelope", signed.SenderDomain,
			"payload", message.Meta().SenderDomain)
		reject = uftp.ErrInvalidSender
	case !uftp.Acceptable(s.role, message.Kind()):
		s.logger.Warn("misdirected message",
			"kind", message.Kind(),
			"sender", signed.SenderDomain)
		reject = uftp.ErrInvalidMessage(message.Kind())
	}

	// The acknowledgement is always an empty 200; everything after
	// this point happens on the worker pools.
	w.WriteHeader(http.StatusOK)

	if reject != nil {
		s.metrics.rejected.WithLabelValues(reject.RejectionReason).Inc()
		s.rejectPool.Start()
		s.rejectQueue.Push(rejection{
			message: message,
			domain:  signed.SenderDomain,
			role:    signed.SenderRole,
			reason:  reject.RejectionReason,
		})
		return
	}

	s.metrics.received.WithLabelValues(uftp.SnakeCase(string(message.Kind()))).Inc()
	s.inboundPool.Start()
	s.inboundQueue.Push(message)
}

func (s *Service) refuse(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	var terr *transport.Error
	if errors.As(err, &terr) {
		status = terr.Status
	}
	s.metrics.transportErrors.WithLabelValues(strconv.Itoa(status)).Inc()
	s.logger.Warn("refusing request", "status", status, "error", err)
	w.WriteHeader(status)
}

func checkContentType(value string) error {
	mediaType, params, err := mime.ParseMediaType(value)
	if err != nil || mediaType != "text/xml" {
		return fmt.Errorf("%w: got %q", transport.ErrInvalidContentType, value)
	}
	if charset, ok := params["charset"]; ok && !strings.EqualFold(charset, "utf-8") {
		return fmt.Errorf("%w: unsupported charset %q", transport.ErrInvalidContentType, charset)
	}
	return nil
}

// processInbound runs the registered handler for an accepted message.
// Handler errors and panics are logged; they never stop the pool and
// never produce an automatic rejection, since the message has already
// been acknowledged.
func (s *Service) processInbound(message uftp.PayloadMessage) {
	kind := uftp.SnakeCase(string(message.Kind()))
	defer func() {
		if r := recover(); r != nil {
			s.metrics.handlerFailures.WithLabelValues(kind).Inc()
			s.logger.Error("handler panicked", "kind", kind, "panic", r)
		}
	}()

	fn, ok := s.handlers[message.Kind()]
	if !ok {
		s.logger.Warn("no handler registered", "kind", kind)
		return
	}
	if err := fn(message); err != nil {
		s.metrics.handlerFailures.WithLabelValues(kind).Inc()
		s.logger.Error("error processing message", "kind", kind, "error", err)
		return
	}
	s.metrics.processed.WithLabelValues(kind).Inc()
}

// sendRejection builds the response message for a functionally invalid
// request and queues it for delivery to the envelope sender.
func (s *Service) sendRejection(job rejection) {
	response, ok := uftp.NewResponseFor(job.message.Kind())
	if !ok {
		// Inbound kinds that are themselves responses have no
		// dedicated response kind; answer with the generic
		// acknowledgement message.
		response = &uftp.TestMessageResponse{}
	}
	response.Response().Result = uftp.Rejected
	response.Response().RejectionReason = job.reason
	response.Meta().ConversationID = job.message.Meta().ConversationID
	response.SetReferenceID(job.message.Meta().MessageID)

	peer, err := s.clientFor(job.domain, job.role)
	if err != nil {
		s.logger.Error("cannot reach participant for rejection",
			"recipient", job.domain,
			"recipient_role", job.role,
			"error", err)
		return
	}
	peer.Queue(response, nil)
}

// clientFor returns a cached outbound client for the given
// participant, resolving its endpoint and key on first use.
func (s *Service) clientFor(domain string, role uftp.Role) (*client.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cacheKey := domain + "/" + string(role)
	if c, ok := s.clients[cacheKey]; ok {
		return c, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.RequestTimeout)
	defer cancel()
	endpoint, err := s.endpointResolver(ctx, domain, role)
	if err != nil {
		return nil, err
	}
	signingKey, err := s.keyResolver(ctx, domain, role)
	if err != nil {
		return nil, err
	}

	c, err := client.New(s.role, role, client.Config{
		SenderDomain:        s.cfg.SenderDomain,
		SigningKey:          s.cfg.SigningKey,
		RecipientDomain:     domain,
		RecipientEndpoint:   endpoint,
		RecipientSigningKey: signingKey,
		Authenticator:       s.auth,
		Logger:              s.logger,
		Workers:             s.cfg.OutboundWorkers,
		DeliveryAttempts:    s.cfg.DeliveryAttempts,
		RequestTimeout:      s.cfg.RequestTimeout,
		RetryFactor:         s.cfg.RetryFactor,
		RetryBase:           s.cfg.RetryBase,
	})
	if err != nil {
		return nil, err
	}
	s.clients[cacheKey] = c
	return c, nil
}

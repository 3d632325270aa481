// Package discovery resolves the public keys, endpoints and protocol
// versions that UFTP participants publish in DNS.
//
// A participant advertises itself under well-known names: the supported
// protocol version as a TXT record at _usef.<domain>, the public key
// per role as a TXT record at _<role>._usef.<domain> (the value is
// "cs1." followed by the base64 key material), and the endpoint host as
// a CNAME at _http._<role>._usef.<domain>.
package discovery

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net"
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/uftp-dev/shapeshifter-go/transport"
	"github.com/uftp-dev/shapeshifter-go/uftp"
)

// ErrDiscovery is wrapped by every service-discovery failure that is
// not an authentication problem: unavailable DNS servers, missing
// endpoint records, malformed version strings.
var ErrDiscovery = errors.New("discovery: service discovery failed")

// DefaultTTL is how long resolved records are cached.
const DefaultTTL = time.Hour

// DNS is the subset of DNS lookups the resolver performs. The standard
// library resolver satisfies it; tests substitute a fake.
type DNS interface {
	LookupTXT(ctx context.Context, name string) ([]string, error)
	LookupCNAME(ctx context.Context, name string) (string, error)
}

// Keys is the base64-encoded public key material a participant
// publishes for one role. The encryption key is only present when the
// participant publishes the combined 64-byte form.
type Keys struct {
	Signing    string
	Encryption string
}

var reVersionString = regexp.MustCompile(`^[0-9]+\.[0-9]+\.[0-9]+$`)

const cacheSize = 1024

// Resolver performs the DNS lookups of the UFTP discovery scheme and
// caches the results for a fixed TTL.
type Resolver struct {
	dns       DNS
	versions  *expirable.LRU[string, string]
	keys      *expirable.LRU[string, Keys]
	endpoints *expirable.LRU[string, string]
}

// Option configures a Resolver.
type Option func(*options)

type options struct {
	dns DNS
	ttl time.Duration
}

// WithDNS substitutes the DNS implementation used for lookups.
func WithDNS(dns DNS) Option {
	return func(o *options) { o.dns = dns }
}

// WithTTL overrides how long resolved records are cached.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) { o.ttl = ttl }
}

// NewResolver returns a caching resolver backed by the system DNS
// resolver unless overridden.
func NewResolver(opts ...Option) *Resolver {
	o := options{dns: net.DefaultResolver, ttl: DefaultTTL}
	for _, opt := range opts {
		opt(&o)
	}
	return &Resolver{
		dns:       o.dns,
		versions:  expirable.NewLRU[string, string](cacheSize, nil, o.ttl),
		keys:      expirable.NewLRU[string, Keys](cacheSize, nil, o.ttl),
		endpoints: expirable.NewLRU[string, string](cacheSize, nil, o.ttl),
	}
}

// Version resolves the protocol version a participant publishes at
// _usef.<domain>.
func (r *Resolver) Version(ctx context.Context, domain string) (string, error) {
	if version, ok := r.versions.Get(domain); ok {
		return version, nil
	}
	name := fmt.Sprintf("_usef.%s", domain)
	records, err := r.dns.LookupTXT(ctx, name)
	if err != nil {
		return "", fmt.Errorf("%w: could not retrieve version at %s: %v", ErrDiscovery, name, err)
	}
	if len(records) == 0 {
		return "", fmt.Errorf("%w: no version record at %s", ErrDiscovery, name)
	}
	version := strings.TrimSpace(records[0])
	if !reVersionString.MatchString(version) {
		return "", fmt.Errorf("%w: version at %s is not in X.Y.Z form: %q", ErrDiscovery, name, version)
	}
	r.versions.Add(domain, version)
	return version, nil
}

// PublicKeys resolves the public keys a participant publishes for the
// given role. A missing record means the sender cannot be
// authenticated, which surfaces as transport.ErrAuthenticationTimeout;
// an unreachable DNS server is a discovery failure instead.
func (r *Resolver) PublicKeys(ctx context.Context, domain string, role uftp.Role) (Keys, error) {
	cacheKey := keyName(domain, role)
	if keys, ok := r.keys.Get(cacheKey); ok {
		return keys, nil
	}
	records, err := r.dns.LookupTXT(ctx, cacheKey)
	if err != nil {
		if isNotFound(err) {
			return Keys{}, fmt.Errorf("%w: no key record at %s", transport.ErrAuthenticationTimeout, cacheKey)
		}
		return Keys{}, fmt.Errorf("%w: could not retrieve key at %s: %v", ErrDiscovery, cacheKey, err)
	}
	if len(records) == 0 {
		return Keys{}, fmt.Errorf("%w: no key record at %s", transport.ErrAuthenticationTimeout, cacheKey)
	}
	keys, err := ParseKeyRecord(records[0])
	if err != nil {
		return Keys{}, fmt.Errorf("%w: record at %s: %v", transport.ErrAuthenticationTimeout, cacheKey, err)
	}
	r.keys.Add(cacheKey, keys)
	return keys, nil
}

// SigningKey resolves just the signature verification key for the given
// participant and role.
func (r *Resolver) SigningKey(ctx context.Context, domain string, role uftp.Role) (string, error) {
	keys, err := r.PublicKeys(ctx, domain, role)
	if err != nil {
		return "", err
	}
	return keys.Signing, nil
}

// Endpoint resolves the HTTPS URL messages for the given participant
// and role must be posted to.
func (r *Resolver) Endpoint(ctx context.Context, domain string, role uftp.Role) (string, error) {
	cacheKey := endpointName(domain, role)
	if endpoint, ok := r.endpoints.Get(cacheKey); ok {
		return endpoint, nil
	}
	target, err := r.dns.LookupCNAME(ctx, cacheKey)
	if err != nil {
		return "", fmt.Errorf("%w: could not retrieve endpoint at %s: %v", ErrDiscovery, cacheKey, err)
	}
	version, err := r.Version(ctx, domain)
	if err != nil {
		return "", err
	}
	major := strings.SplitN(version, ".", 2)[0]
	endpoint := fmt.Sprintf("https://%s/shapeshifter/api/v%s/message", strings.TrimSuffix(target, "."), major)
	r.endpoints.Add(cacheKey, endpoint)
	return endpoint, nil
}

// ParseKeyRecord decodes a published "cs1." key record into its base64
// key parts. The record carries either just the 32-byte signing key or
// the 64-byte concatenation of signing and encryption keys.
func ParseKeyRecord(record string) (Keys, error) {
	if !strings.HasPrefix(record, "cs1.") {
		return Keys{}, fmt.Errorf("key record must start with cs1., was %q", record)
	}
	if len(record) != 48 && len(record) != 92 {
		return Keys{}, fmt.Errorf("key record has length %d, expected 48 or 92", len(record))
	}
	raw, err := base64.StdEncoding.DecodeString(record[4:])
	if err != nil {
		return Keys{}, fmt.Errorf("key record is not valid base64: %w", err)
	}
	encode := base64.StdEncoding.EncodeToString
	switch len(raw) {
	case 32:
		return Keys{Signing: encode(raw)}, nil
	case 64:
		return Keys{Signing: encode(raw[:32]), Encryption: encode(raw[32:])}, nil
	}
	return Keys{}, fmt.Errorf("decoded key material is %d bytes, expected 32 or 64", len(raw))
}

func keyName(domain string, role uftp.Role) string {
	return fmt.Sprintf("_%s._usef.%s", strings.ToLower(string(role)), domain)
}

func endpointName(domain string, role uftp.Role) string {
	return fmt.Sprintf("_http._%s._usef.%s", strings.ToLower(string(role)), domain)
}

func isNotFound(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr) && dnsErr.IsNotFound
}

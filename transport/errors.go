// Package transport implements the cryptographic sealing of UFTP
// payload messages and the transport-level error taxonomy shared by the
// client and service layers.
//
// Sealing follows the libsodium crypto_sign construction: the sealed
// blob is the 64-byte Ed25519 signature followed by the UTF-8 XML
// document. Keys travel base64-encoded, a private key being the 64-byte
// concatenation of seed and public key.
package transport

import "fmt"

// Error is a transport-level failure. When returned from a service
// handler it maps onto the HTTP status code of the response.
type Error struct {
	// Status is the HTTP status code this failure maps onto.
	Status int
	// Reason is a short fixed description of the failure class.
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("transport: %s (HTTP %d)", e.Reason, e.Status)
}

// Transport failure classes, each mapped to its HTTP status code.
var (
	// ErrMissingContentLength is returned when a request lacks a
	// Content-Length header.
	ErrMissingContentLength = &Error{Status: 411, Reason: "missing content length"}

	// ErrInvalidContentType is returned when the Content-Type header is
	// not text/xml or the character set is not utf-8.
	ErrInvalidContentType = &Error{Status: 400, Reason: "invalid content type"}

	// ErrTooManyRequests is returned when the originating address makes
	// too many requests to the service.
	ErrTooManyRequests = &Error{Status: 429, Reason: "too many requests"}

	// ErrSchema is returned when a body cannot be parsed or does not
	// comply with the message schema.
	ErrSchema = &Error{Status: 400, Reason: "message does not conform to schema"}

	// ErrAuthenticationTimeout is returned when the sender's public key
	// could not be looked up in DNS.
	ErrAuthenticationTimeout = &Error{Status: 419, Reason: "could not retrieve sender public key"}

	// ErrInvalidSignature is returned when a sealed message fails
	// signature verification.
	ErrInvalidSignature = &Error{Status: 401, Reason: "invalid signature"}
)

package transport

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/uftp-dev/shapeshifter-go/uftp"
)

// SignatureSize is the length of the detached signature that prefixes a
// sealed message.
const SignatureSize = ed25519.SignatureSize

// KeyPair is a base64-encoded Ed25519 signing key pair. The private key
// encodes the 64-byte seed-plus-public-key form, the public key the
// 32-byte verify key. The public key is what a participant publishes in
// DNS behind the "cs1." prefix.
type KeyPair struct {
	Private string
	Public  string
}

// GenerateKeyPair creates a fresh signing key pair.
func GenerateKeyPair() (KeyPair, error) {
	public, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return KeyPair{}, fmt.Errorf("transport: generate key pair: %w", err)
	}
	return KeyPair{
		Private: base64.StdEncoding.EncodeToString(private),
		Public:  base64.StdEncoding.EncodeToString(public),
	}, nil
}

// DecodePrivateKey decodes a base64 private key into its 64-byte form.
func DecodePrivateKey(encoded string) (ed25519.PrivateKey, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("transport: private key is not valid base64: %w", err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("transport: private key must be %d bytes, got %d", ed25519.PrivateKeySize, len(raw))
	}
	return ed25519.PrivateKey(raw), nil
}

// DecodePublicKey decodes a base64 public key into its 32-byte form.
func DecodePublicKey(encoded string) (ed25519.PublicKey, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("transport: public key is not valid base64: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("transport: public key must be %d bytes, got %d", ed25519.PublicKeySize, len(raw))
	}
	return ed25519.PublicKey(raw), nil
}

// Seal serialises a payload message and signs it with the given base64
// private key. The result is the signature followed by the XML
// document, ready to be wrapped in a SignedMessage body.
func Seal(msg uftp.PayloadMessage, privateKey string) ([]byte, error) {
	key, err := DecodePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	doc, err := uftp.ToXML(msg)
	if err != nil {
		return nil, err
	}
	sealed := make([]byte, 0, SignatureSize+len(doc))
	sealed = append(sealed, ed25519.Sign(key, doc)...)
	return append(sealed, doc...), nil
}

// Unseal verifies a sealed blob against the given base64 public key and
// parses the inner XML document into a payload message. A bad signature
// yields ErrInvalidSignature; a valid signature over an invalid
// document yields ErrSchema.
func Unseal(sealed []byte, publicKey string) (uftp.PayloadMessage, error) {
	key, err := DecodePublicKey(publicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthenticationTimeout, err)
	}
	if len(sealed) < SignatureSize {
		return nil, fmt.Errorf("%w: sealed message shorter than a signature", ErrInvalidSignature)
	}
	signature, doc := sealed[:SignatureSize], sealed[SignatureSize:]
	if !ed25519.Verify(key, doc, signature) {
		return nil, ErrInvalidSignature
	}
	msg, err := uftp.FromXML(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return msg, nil
}

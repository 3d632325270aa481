package transport

import (
	"crypto/ed25519"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uftp-dev/shapeshifter-go/uftp"
)

func testMessage() *uftp.FlexRequestResponse {
	return &uftp.FlexRequestResponse{
		PayloadMessageMeta: uftp.PayloadMessageMeta{
			Version:         "3.0.0",
			SenderDomain:    "aggregator.example.org",
			RecipientDomain: "dso.example.org",
			TimeStamp:       "2024-03-01T10:15:30+01:00",
			MessageID:       "6e05e5a9-cd5c-4b0e-9ba9-34c8a6a1c52c",
			ConversationID:  "0686b1a5-77c6-4d1b-9d8f-2a4e6d7e8f90",
		},
		PayloadMessageResponseMeta: uftp.PayloadMessageResponseMeta{Result: uftp.Accepted},
		FlexRequestMessageID:       "9d3e3f53-2f4c-4b77-86b7-06c0a9a1e25f",
	}
}

func TestSealUnsealRoundTrip(t *testing.T) {
	keys, err := GenerateKeyPair()
	require.NoError(t, err)

	sealed, err := Seal(testMessage(), keys.Private)
	require.NoError(t, err)
	require.Greater(t, len(sealed), SignatureSize)

	msg, err := Unseal(sealed, keys.Public)
	require.NoError(t, err)
	require.Equal(t, uftp.KindFlexRequestResponse, msg.Kind())
	response, ok := msg.(*uftp.FlexRequestResponse)
	require.True(t, ok)
	assert.Equal(t, "aggregator.example.org", response.SenderDomain)
}

func TestUnsealRejectsFlippedBit(t *testing.T) {
	keys, err := GenerateKeyPair()
	require.NoError(t, err)

	sealed, err := Seal(testMessage(), keys.Private)
	require.NoError(t, err)

	// Flipping any single bit of the sealed blob must break the seal,
	// whether it lands in the signature or in the document.
	for _, position := range []int{0, SignatureSize / 2, SignatureSize + 10, len(sealed) - 1} {
		corrupted := make([]byte, len(sealed))
		copy(corrupted, sealed)
		corrupted[position] ^= 0x01

		_, err := Unseal(corrupted, keys.Public)
		require.Error(t, err, "bit flip at %d went unnoticed", position)
		assert.True(t, errors.Is(err, ErrInvalidSignature) || errors.Is(err, ErrSchema))
	}
}

func TestUnsealRejectsWrongKey(t *testing.T) {
	keys, err := GenerateKeyPair()
	require.NoError(t, err)
	otherKeys, err := GenerateKeyPair()
	require.NoError(t, err)

	sealed, err := Seal(testMessage(), keys.Private)
	require.NoError(t, err)

	_, err = Unseal(sealed, otherKeys.Public)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestUnsealRejectsTruncatedMessage(t *testing.T) {
	keys, err := GenerateKeyPair()
	require.NoError(t, err)

	_, err = Unseal([]byte("short"), keys.Public)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestUnsealReportsSchemaViolation(t *testing.T) {
	keys, err := GenerateKeyPair()
	require.NoError(t, err)
	private, err := DecodePrivateKey(keys.Private)
	require.NoError(t, err)

	// A valid signature over a document that is not a payload message.
	doc := []byte(`<Bogus/>`)
	sealed := append(ed25519.Sign(private, doc), doc...)

	_, err = Unseal(sealed, keys.Public)
	assert.ErrorIs(t, err, ErrSchema)
}

func TestDecodeKeyLengths(t *testing.T) {
	_, err := DecodePublicKey("Zm9v")
	assert.Error(t, err)
	_, err = DecodePrivateKey("Zm9v")
	assert.Error(t, err)
	_, err = DecodePublicKey("!!!not-base64!!!")
	assert.Error(t, err)
}

package cmd

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uftp-dev/shapeshifter-go/discovery"
	"github.com/uftp-dev/shapeshifter-go/transport"
)

// run executes the CLI with the given arguments and returns its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "shapeshifter version")
}

func TestKeysGenerate(t *testing.T) {
	out, err := run(t, "keys", "generate")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)

	private := strings.TrimSpace(strings.TrimPrefix(lines[0], "private key:"))
	public := strings.TrimSpace(strings.TrimPrefix(lines[1], "public key:"))

	privateKey, err := transport.DecodePrivateKey(private)
	require.NoError(t, err)
	publicKey, err := transport.DecodePublicKey(public)
	require.NoError(t, err)
	assert.Equal(t, []byte(publicKey), []byte(privateKey.Public().(ed25519.PublicKey)))
}

func TestKeysPublish(t *testing.T) {
	pair, err := transport.GenerateKeyPair()
	require.NoError(t, err)

	out, err := run(t, "keys", "publish",
		"--domain", "agr.example.com", "--role", "agr", "--public", pair.Public)
	require.NoError(t, err)

	assert.Contains(t, out, "_agr._usef.agr.example.com. TXT")

	record := out[strings.Index(out, `"`)+1 : strings.LastIndex(out, `"`)]
	keys, err := discovery.ParseKeyRecord(record)
	require.NoError(t, err)
	assert.Equal(t, pair.Public, keys.Signing)
}

func TestKeysPublishRejectsBadKey(t *testing.T) {
	_, err := run(t, "keys", "publish",
		"--domain", "agr.example.com", "--role", "AGR", "--public", "not-base64!")
	require.Error(t, err)
}

type fakeDNS struct {
	txt   map[string][]string
	cname map[string]string
}

func (d fakeDNS) LookupTXT(_ context.Context, name string) ([]string, error) {
	records, ok := d.txt[name]
	if !ok {
		return nil, fmt.Errorf("no TXT record for %s", name)
	}
	return records, nil
}

func (d fakeDNS) LookupCNAME(_ context.Context, name string) (string, error) {
	target, ok := d.cname[name]
	if !ok {
		return "", fmt.Errorf("no CNAME record for %s", name)
	}
	return target, nil
}

func TestLookup(t *testing.T) {
	pair, err := transport.GenerateKeyPair()
	require.NoError(t, err)

	dns := fakeDNS{
		txt: map[string][]string{
			"_usef.dso.example.com":      {"3.0.0"},
			"_dso._usef.dso.example.com": {"cs1." + pair.Public},
		},
		cname: map[string]string{
			"_http._dso._usef.dso.example.com": "ep.dso.example.com.",
		},
	}

	orig := newResolver
	newResolver = func() *discovery.Resolver {
		return discovery.NewResolver(discovery.WithDNS(dns))
	}
	t.Cleanup(func() { newResolver = orig })

	out, err := run(t, "lookup", "--domain", "dso.example.com", "--role", "DSO")
	require.NoError(t, err)

	assert.Contains(t, out, "version:  3.0.0")
	assert.Contains(t, out, "endpoint: https://ep.dso.example.com/shapeshifter/api/v3/message")
	assert.Contains(t, out, "signing key:    "+pair.Public)
	assert.NotContains(t, out, "encryption key:")
}

func TestLookupUnknownRole(t *testing.T) {
	_, err := run(t, "lookup", "--domain", "dso.example.com", "--role", "BRP")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown role")
}

package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/uftp-dev/shapeshifter-go/discovery"
	"github.com/uftp-dev/shapeshifter-go/uftp"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Resolve the DNS records a participant publishes",
	Long: `Resolve and print what a participant publishes for discovery:
the protocol version, the message endpoint and the public keys.

Examples:
  shapeshifter lookup --domain dso.example.com --role DSO`,
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().String("domain", "", "participant domain (required)")
	lookupCmd.Flags().String("role", "", "market role: AGR, CRO or DSO (required)")
	lookupCmd.Flags().Duration("timeout", 10*time.Second, "lookup timeout")
	_ = lookupCmd.MarkFlagRequired("domain")
	_ = lookupCmd.MarkFlagRequired("role")

	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	domain, _ := cmd.Flags().GetString("domain")
	roleStr, _ := cmd.Flags().GetString("role")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	role, err := parseRole(roleStr)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	resolver := newResolver()
	out := cmd.OutOrStdout()

	version, err := resolver.Version(ctx, domain)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "version:  %s\n", version)

	endpoint, err := resolver.Endpoint(ctx, domain, role)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "endpoint: %s\n", endpoint)

	keys, err := resolver.PublicKeys(ctx, domain, role)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "signing key:    %s\n", keys.Signing)
	if keys.Encryption != "" {
		fmt.Fprintf(out, "encryption key: %s\n", keys.Encryption)
	}
	return nil
}

// newResolver builds the resolver lookups run against. Swapped out by
// tests.
var newResolver = func() *discovery.Resolver {
	return discovery.NewResolver()
}

func parseRole(s string) (uftp.Role, error) {
	role := uftp.Role(strings.ToUpper(strings.TrimSpace(s)))
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q, expected AGR, CRO or DSO", s)
	}
	return role, nil
}

// discoveryKeyName is the DNS name a participant's key record lives at.
func discoveryKeyName(domain string, role uftp.Role) string {
	return fmt.Sprintf("_%s._usef.%s", strings.ToLower(string(role)), domain)
}

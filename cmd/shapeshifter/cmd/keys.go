package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uftp-dev/shapeshifter-go/transport"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage signing key pairs",
	Long: `Key management commands.

Examples:
  shapeshifter keys generate
  shapeshifter keys publish --domain agr.example.com --role AGR --public <base64>`,
}

var keysGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new Ed25519 signing key pair",
	Long: `Generate a new Ed25519 signing key pair and print both halves
base64-encoded.

Keep the private key secret; publish the public key in DNS so other
participants can verify your messages.`,
	RunE: runKeysGenerate,
}

var keysPublishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Print the DNS records that publish a public key",
	Long: `Print the TXT record a participant publishes so that other
participants can discover its public key.

Examples:
  shapeshifter keys publish --domain agr.example.com --role AGR --public <base64>`,
	RunE: runKeysPublish,
}

func init() {
	keysPublishCmd.Flags().String("domain", "", "participant domain (required)")
	keysPublishCmd.Flags().String("role", "", "market role: AGR, CRO or DSO (required)")
	keysPublishCmd.Flags().String("public", "", "base64-encoded public signing key (required)")
	_ = keysPublishCmd.MarkFlagRequired("domain")
	_ = keysPublishCmd.MarkFlagRequired("role")
	_ = keysPublishCmd.MarkFlagRequired("public")

	keysCmd.AddCommand(keysGenerateCmd)
	keysCmd.AddCommand(keysPublishCmd)

	rootCmd.AddCommand(keysCmd)
}

func runKeysGenerate(cmd *cobra.Command, args []string) error {
	pair, err := transport.GenerateKeyPair()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "private key: %s\n", pair.Private)
	fmt.Fprintf(cmd.OutOrStdout(), "public key:  %s\n", pair.Public)
	return nil
}

func runKeysPublish(cmd *cobra.Command, args []string) error {
	domain, _ := cmd.Flags().GetString("domain")
	roleStr, _ := cmd.Flags().GetString("role")
	public, _ := cmd.Flags().GetString("public")

	role, err := parseRole(roleStr)
	if err != nil {
		return err
	}
	if _, err := transport.DecodePublicKey(public); err != nil {
		return err
	}

	name := discoveryKeyName(domain, role)
	fmt.Fprintf(cmd.OutOrStdout(), "%s. TXT \"cs1.%s\"\n", name, public)
	return nil
}

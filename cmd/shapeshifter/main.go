// shapeshifter is the command-line companion to the UFTP library.
//
// Use it to generate signing key pairs and to inspect the DNS records
// other participants publish for discovery.
package main

import "github.com/uftp-dev/shapeshifter-go/cmd/shapeshifter/cmd"

func main() {
	cmd.Execute()
}

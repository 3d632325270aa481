package uftp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnakeCase(t *testing.T) {
	cases := map[string]string{
		"FlexOffer":          "flex_offer",
		"AgrPortfolioUpdate": "agr_portfolio_update",
		"HTTPRequest":        "http_request",
	}
	for input, want := range cases {
		assert.Equal(t, want, SnakeCase(input))
	}
}

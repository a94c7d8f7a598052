package prices

import "strings"

// tokenIDs maps common ticker symbols to the provider's canonical asset IDs.
// Extending token support means adding entries here.
var tokenIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"CRO":   "crypto-com-chain",
	"BNB":   "binancecoin",
	"NEXO":  "nexo",
	"PLU":   "pluton",
	"WXT":   "wirex",
	"XLM":   "stellar",
	"DOGE":  "dogecoin",
	"USDC":  "usd-coin",
	"USDT":  "tether",
	"SOL":   "solana",
	"ADA":   "cardano",
	"DOT":   "polkadot",
	"MATIC": "matic-network",
	"AVAX":  "avalanche-2",
	"LINK":  "chainlink",
	"UNI":   "uniswap",
	"ATOM":  "cosmos",
	"LTC":   "litecoin",
}

// TokenID returns the provider ID for a ticker, case-insensitively.
// Unknown tickers report ok=false rather than an error.
func TokenID(symbol string) (string, bool) {
	id, ok := tokenIDs[strings.ToUpper(symbol)]
	return id, ok
}

package service

import (
	"strings"

	"github.com/neoenginex/gemsutopia/internal/domain/order/model"
)

// PaymentDetails is the classifier's view of a payment; pure data, so the
// classification is deterministic.
type PaymentDetails struct {
	Method       string
	PaymentID    string
	Network      string
	Currency     string
	PayerAddress string
}

// ClassifierConfig captures the configured provider modes the heuristics
// depend on.
type ClassifierConfig struct {
	// StripeTestMode is true when the configured API key is a test key
	// (sk_test_ prefix).
	StripeTestMode bool
	// PayPalLive marks confirmed live PayPal credentials.
	PayPalLive bool
}

var testnetNetworks = map[string]bool{
	"testnet":      true,
	"sepolia":      true,
	"goerli":       true,
	"mumbai":       true,
	"base-sepolia": true,
	"regtest":      true,
}

// ClassifyTestOrder labels a payment as test (sandbox/testnet) vs live.
// Unclassifiable input is treated as test, the safe default: a real order
// mislabeled as test is visible in the dev view, while a test order
// mislabeled live would pollute revenue reporting and become undeletable.
func ClassifyTestOrder(d PaymentDetails, cfg ClassifierConfig) bool {
	switch d.Method {
	case model.MethodStripe:
		if strings.Contains(strings.ToLower(d.PaymentID), "test") {
			return true
		}
		return cfg.StripeTestMode

	case model.MethodPayPal:
		// TODO: replace with a capture-environment check once live PayPal
		// credentials are confirmed; until then only explicit configuration
		// promotes PayPal orders to live.
		return !cfg.PayPalLive

	case model.MethodCrypto:
		if testnetNetworks[strings.ToLower(d.Network)] {
			return true
		}
		if isTestnetCurrency(d.Currency) {
			return true
		}
		return isTestnetBitcoinAddress(d.PayerAddress)

	default:
		return true
	}
}

func isTestnetCurrency(currency string) bool {
	c := strings.ToUpper(currency)
	return strings.HasPrefix(c, "T") && (c == "TBTC" || c == "TETH" || c == "TLTC") ||
		strings.HasSuffix(c, "TEST")
}

// Bitcoin testnet addresses start with tb1 (bech32), m or n (P2PKH), or 2
// (P2SH).
func isTestnetBitcoinAddress(addr string) bool {
	if addr == "" {
		return false
	}
	if strings.HasPrefix(addr, "tb1") {
		return true
	}
	switch addr[0] {
	case 'm', 'n', '2':
		return true
	}
	return false
}

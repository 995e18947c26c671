package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/neoenginex/gemsutopia/internal/domain/order/model"
)

func TestClassifyTestOrder(t *testing.T) {
	liveCfg := ClassifierConfig{StripeTestMode: false, PayPalLive: true}
	testCfg := ClassifierConfig{StripeTestMode: true, PayPalLive: false}

	t.Run("stripe", func(t *testing.T) {
		cases := []struct {
			name string
			d    PaymentDetails
			cfg  ClassifierConfig
			want bool
		}{
			{"live key live id", PaymentDetails{Method: model.MethodStripe, PaymentID: "pi_3OqK8x2eZvKYlo2C"}, liveCfg, false},
			{"test marker in id", PaymentDetails{Method: model.MethodStripe, PaymentID: "pi_test_123"}, liveCfg, true},
			{"uppercase test marker", PaymentDetails{Method: model.MethodStripe, PaymentID: "pi_TEST_123"}, liveCfg, true},
			{"test mode key", PaymentDetails{Method: model.MethodStripe, PaymentID: "pi_3OqK8x2eZvKYlo2C"}, testCfg, true},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				assert.Equal(t, tc.want, ClassifyTestOrder(tc.d, tc.cfg))
			})
		}
	})

	t.Run("paypal follows configured mode only", func(t *testing.T) {
		d := PaymentDetails{Method: model.MethodPayPal, PaymentID: "5O190127TN364715T"}

		assert.True(t, ClassifyTestOrder(d, testCfg))
		assert.False(t, ClassifyTestOrder(d, liveCfg))
	})

	t.Run("crypto", func(t *testing.T) {
		cases := []struct {
			name string
			d    PaymentDetails
			want bool
		}{
			{"mainnet eth", PaymentDetails{Method: model.MethodCrypto, Network: "ethereum", Currency: "ETH"}, false},
			{"sepolia testnet", PaymentDetails{Method: model.MethodCrypto, Network: "sepolia", Currency: "ETH"}, true},
			{"generic testnet", PaymentDetails{Method: model.MethodCrypto, Network: "testnet", Currency: "BTC"}, true},
			{"testnet currency", PaymentDetails{Method: model.MethodCrypto, Network: "bitcoin", Currency: "tBTC"}, true},
			{"bech32 testnet address", PaymentDetails{Method: model.MethodCrypto, Network: "bitcoin", Currency: "BTC", PayerAddress: "tb1qw508d6qejxtdg4y5r3zarvary0c5xw7kxpjzsx"}, true},
			{"legacy testnet address m", PaymentDetails{Method: model.MethodCrypto, Network: "bitcoin", Currency: "BTC", PayerAddress: "mipcBbFg9gMiCh81Kj8tqqdgoZub1ZJRfn"}, true},
			{"p2sh testnet address", PaymentDetails{Method: model.MethodCrypto, Network: "bitcoin", Currency: "BTC", PayerAddress: "2MzQwSSnBHWHqSAqtTVQ6v47XtaisrJa1Vc"}, true},
			{"mainnet address", PaymentDetails{Method: model.MethodCrypto, Network: "bitcoin", Currency: "BTC", PayerAddress: "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4"}, false},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				assert.Equal(t, tc.want, ClassifyTestOrder(tc.d, liveCfg))
			})
		}
	})

	t.Run("unknown method defaults to test", func(t *testing.T) {
		assert.True(t, ClassifyTestOrder(PaymentDetails{Method: "carrier-pigeon"}, liveCfg))
		assert.True(t, ClassifyTestOrder(PaymentDetails{}, liveCfg))
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		d := PaymentDetails{Method: model.MethodCrypto, Network: "ethereum", Currency: "ETH"}
		first := ClassifyTestOrder(d, liveCfg)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, ClassifyTestOrder(d, liveCfg))
		}
	})
}

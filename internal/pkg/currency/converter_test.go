package currency

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, USD, Normalize("USD"))
	assert.Equal(t, USD, Normalize("usd"))
	assert.Equal(t, CAD, Normalize("CAD"))
	assert.Equal(t, CAD, Normalize(""))
	assert.Equal(t, CAD, Normalize("EUR"))
}

func TestConvert(t *testing.T) {
	ctx := context.Background()

	t.Run("same currency returns amount unchanged", func(t *testing.T) {
		cv := NewConverter("", nil)
		got := cv.Convert(ctx, decimal.NewFromFloat(99.99), CAD, CAD)
		assert.True(t, got.Equal(decimal.NewFromFloat(99.99)))
	})

	t.Run("live rate applied and rounded", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/CAD", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"result":"success","rates":{"USD":0.73}}`))
		}))
		defer srv.Close()

		cv := NewConverter(srv.URL, nil)
		got := cv.Convert(ctx, decimal.NewFromInt(100), CAD, USD)
		assert.True(t, got.Equal(decimal.NewFromInt(73)))
	})

	t.Run("unreachable source falls back to static rate", func(t *testing.T) {
		cv := NewConverter("http://127.0.0.1:1", nil)

		got := cv.Convert(ctx, decimal.NewFromInt(100), USD, CAD)
		assert.True(t, got.Equal(decimal.NewFromInt(135)))
	})

	t.Run("missing pair in response falls back", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"result":"success","rates":{"EUR":0.68}}`))
		}))
		defer srv.Close()

		cv := NewConverter(srv.URL, nil)
		got := cv.Convert(ctx, decimal.NewFromInt(100), CAD, USD)
		assert.True(t, got.Equal(decimal.NewFromInt(74)))
	})

	t.Run("non-positive rate rejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"result":"success","rates":{"USD":0}}`))
		}))
		defer srv.Close()

		cv := NewConverter(srv.URL, nil)
		got := cv.Convert(ctx, decimal.NewFromInt(100), CAD, USD)
		assert.True(t, got.Equal(decimal.NewFromInt(74)))
	})
}

package webhook_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"hotel/config"
	"hotel/infras/otel/mocks"
	"hotel/infras/webhook"
	"hotel/shared/constant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig(url string) *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "hotel"
	cfg.External.Webhook.URL = url
	cfg.External.Webhook.Secret = "s3cret"
	cfg.External.Webhook.TimeoutSeconds = 2

	return cfg
}

func TestDeliver_SignsPayload(t *testing.T) {
	payload := []byte(`{"booking_id":"b-1"}`)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, string(payload), string(body))
		assert.Equal(t, "booking.created", r.Header.Get("X-Hotel-Event"))
		assert.Equal(t, webhook.Sign("s3cret", payload), r.Header.Get(constant.RequestHeaderSignature))

		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := webhook.New(newConfig(server.URL), mocks.NewOtel())

	require.NoError(t, client.Deliver(context.Background(), "booking.created", payload))
}

func TestDeliver_RejectedStatus(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := webhook.New(newConfig(server.URL), mocks.NewOtel())

	err := client.Deliver(context.Background(), "booking.deleted", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Equal(t, int32(1), calls.Load())
}

func TestDeliver_NotConfigured(t *testing.T) {
	client := webhook.New(newConfig(""), mocks.NewOtel())

	assert.ErrorIs(t, client.Deliver(context.Background(), "booking.created", []byte(`{}`)), webhook.ErrNotConfigured)
}

func TestSign(t *testing.T) {
	assert.Equal(t, webhook.Sign("k", []byte("a")), webhook.Sign("k", []byte("a")))
	assert.NotEqual(t, webhook.Sign("k", []byte("a")), webhook.Sign("other", []byte("a")))
	assert.Len(t, webhook.Sign("k", nil), 64)
}

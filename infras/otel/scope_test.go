package otel_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel/infras/otel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestScope(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "booking.Create")
	scope := otel.NewScope(span)

	scope.SetAttributes(map[string]any{
		"room_id":  "R1",
		"nights":   2,
		"paid":     false,
		"total":    decimal.NewFromInt(150),
		"check_in": time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		"guests":   []string{"adult", "child"},
	})
	scope.AddEvent("availability.checked")
	scope.TraceIfError(nil)
	scope.TraceError(errors.New("room is already booked"))
	scope.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range ended[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}

	assert.Equal(t, "R1", attrs["room_id"].AsString())
	assert.Equal(t, int64(2), attrs["nights"].AsInt64())
	assert.False(t, attrs["paid"].AsBool())
	assert.Equal(t, "150", attrs["total"].AsString())
	assert.Equal(t, "2025-07-01T00:00:00Z", attrs["check_in"].AsString())
	assert.Equal(t, []string{"adult", "child"}, attrs["guests"].AsStringSlice())

	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "room is already booked", ended[0].Status().Description)
	assert.Len(t, ended[0].Events(), 2)
}

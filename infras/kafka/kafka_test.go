package kafka_test

import (
	"testing"

	"hotel/infras/kafka"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

func TestMessageToKafkaMessage(t *testing.T) {
	message := kafka.Message{Key: "booking-1", Value: payload{BookingID: "booking-1", Status: "Pending"}}

	msg, err := message.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("booking-1"), msg.Key)
	assert.JSONEq(t, `{"booking_id":"booking-1","status":"Pending"}`, string(msg.Value))

	bad := kafka.Message{Key: "x", Value: make(chan int)}
	_, err = bad.ToKafkaMessage()
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	got, err := kafka.Decode[payload](kafkaGo.Message{Value: []byte(`{"booking_id":"b-2","status":"Confirmed"}`)})
	require.NoError(t, err)
	assert.Equal(t, payload{BookingID: "b-2", Status: "Confirmed"}, got)

	_, err = kafka.Decode[payload](kafkaGo.Message{Value: []byte(`{`)})
	assert.Error(t, err)
}

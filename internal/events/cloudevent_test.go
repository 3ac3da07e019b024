package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewCloudEvent(t *testing.T) {
	evt := EstimateNotifiedEvent{
		Pickup:     "Perth WA",
		Delivery:   "Bunbury WA",
		Estimate:   "$1,200",
		Delivered:  true,
		OccurredAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	ce, err := NewCloudEvent("service-estimate", EstimateNotified, evt)
	require.NoError(t, err)

	assert.Equal(t, "1.0", ce.SpecVersion)
	assert.Equal(t, "service-estimate", ce.Source)
	assert.Equal(t, EstimateNotified, ce.Type)
	assert.NotEmpty(t, ce.ID)
	assert.Equal(t, "application/json", ce.DataContentType)

	raw, err := json.Marshal(ce)
	require.NoError(t, err)

	parsed, err := ParseCloudEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, ce.ID, parsed.ID)

	var got EstimateNotifiedEvent
	require.NoError(t, parsed.ParseData(&got))
	assert.Equal(t, evt, got)
}

func TestNewCloudEvent_Unmarshalable(t *testing.T) {
	_, err := NewCloudEvent("service-estimate", EstimateNotified, make(chan int))
	assert.Error(t, err)
}

func TestParseCloudEvent_Malformed(t *testing.T) {
	_, err := ParseCloudEvent([]byte("not json"))
	assert.Error(t, err)
}

func TestNopPublisher(t *testing.T) {
	var p NopPublisher
	assert.NoError(t, p.Publish(context.Background(), EstimateNotified, "k", nil))
	assert.NoError(t, p.Close())
}

func TestKafkaPublisher_PublishAfterClose(t *testing.T) {
	p := NewKafkaPublisher([]string{"localhost:9"}, TopicEstimateEvents, "service-estimate", zap.NewNop())
	require.NoError(t, p.Close())
	assert.NoError(t, p.Close())

	err := p.Publish(context.Background(), EstimateNotified, "k", EstimateNotifiedEvent{})

	assert.ErrorIs(t, err, ErrPublisherClosed)
}

func TestNewKafkaPublisher_ShortBatchTimeout(t *testing.T) {
	p := NewKafkaPublisher([]string{"localhost:9"}, TopicEstimateEvents, "service-estimate", zap.NewNop())
	defer func() { _ = p.Close() }()

	assert.Equal(t, TopicEstimateEvents, p.writer.Topic)
	assert.LessOrEqual(t, p.writer.BatchTimeout, 10*time.Millisecond)
}

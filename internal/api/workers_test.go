package api

import (
	"context"
	"errors"
	"testing"

	"RenewalSync/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDLQ struct {
	keys [][]byte
}

func (r *recordingDLQ) PublishToDLQ(_ context.Context, key, _ []byte, _ error) error {
	r.keys = append(r.keys, key)
	return nil
}

func TestWebhookMessageHandler(t *testing.T) {
	// given
	topic, group := "webhooks.workers-test", "workers-test"
	dlq := &recordingDLQ{}
	handler := webhookMessageHandler(topic, group, func(_ context.Context, key, _ []byte) error {
		if string(key) == "pay_failed" {
			return errors.New("gateway request failed")
		}
		return nil
	}, dlq)

	// when
	okErr := handler(context.Background(), []byte("pay_ok"), []byte(`{}`))
	failedErr := handler(context.Background(), []byte("pay_failed"), []byte(`{}`))

	// then
	require.NoError(t, okErr)
	require.NoError(t, failedErr, "failed deliveries are committed after dead-lettering")
	assert.Equal(t, [][]byte{[]byte("pay_failed")}, dlq.keys)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.KafkaMessagesProcessed.WithLabelValues(topic, group, "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.KafkaMessagesProcessed.WithLabelValues(topic, group, "error")))
}

package messaging

import (
	"context"
	"errors"
	"testing"

	"RenewalSync/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDLQ struct {
	err    error
	calls  int
	key    []byte
	value  []byte
	reason error
}

func (f *fakeDLQ) PublishToDLQ(_ context.Context, key, value []byte, err error) error {
	f.calls++
	f.key = key
	f.value = value
	f.reason = err
	return f.err
}

func TestWithDLQ(t *testing.T) {
	t.Run("should not publish successful messages", func(t *testing.T) {
		dlq := &fakeDLQ{}
		handler := WithDLQ(func(context.Context, []byte, []byte) error { return nil }, dlq)

		err := handler(context.Background(), []byte("k"), []byte("v"))

		require.NoError(t, err)
		assert.Zero(t, dlq.calls)
	})

	t.Run("should publish failed message once and swallow the error", func(t *testing.T) {
		dlq := &fakeDLQ{}
		attempts := 0
		failure := errors.New("gateway request failed")
		handler := WithDLQ(func(context.Context, []byte, []byte) error {
			attempts++
			return failure
		}, dlq)

		err := handler(context.Background(), []byte("pay_1"), []byte(`{}`))

		require.NoError(t, err)
		assert.Equal(t, 1, attempts)
		assert.Equal(t, 1, dlq.calls)
		assert.Equal(t, []byte("pay_1"), dlq.key)
		assert.ErrorIs(t, dlq.reason, failure)
	})

	t.Run("should count dead lettered messages by publish result", func(t *testing.T) {
		published := metrics.KafkaDeadLettered.WithLabelValues("published")
		dropped := metrics.KafkaDeadLettered.WithLabelValues("publish_failed")
		publishedBefore, droppedBefore := testutil.ToFloat64(published), testutil.ToFloat64(dropped)
		failing := func(context.Context, []byte, []byte) error { return assert.AnError }

		_ = WithDLQ(failing, &fakeDLQ{})(context.Background(), nil, nil)
		err := WithDLQ(failing, &fakeDLQ{err: errors.New("broker unavailable")})(context.Background(), nil, nil)

		require.NoError(t, err)
		assert.Equal(t, publishedBefore+1, testutil.ToFloat64(published))
		assert.Equal(t, droppedBefore+1, testutil.ToFloat64(dropped))
	})
}

func TestWithMetrics(t *testing.T) {
	topic, group := "webhooks.test", "metrics-test"
	handler := WithMetrics(topic, group, func(_ context.Context, key, _ []byte) error {
		if string(key) == "bad" {
			return assert.AnError
		}
		return nil
	})

	_ = handler(context.Background(), []byte("good"), nil)
	err := handler(context.Background(), []byte("bad"), nil)

	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.KafkaMessagesProcessed.WithLabelValues(topic, group, "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.KafkaMessagesProcessed.WithLabelValues(topic, group, "error")))
}

func TestNewEnvelope(t *testing.T) {
	t.Run("should keep raw json payload verbatim", func(t *testing.T) {
		raw := []byte(`{"event":"payment.authorized"}`)

		env, err := NewEnvelope("pay_1", "payment.authorized", jsonRaw(raw))

		require.NoError(t, err)
		assert.NotEmpty(t, env.EventID)
		assert.JSONEq(t, string(raw), string(env.Payload))
		assert.False(t, env.Timestamp.IsZero())
	})

	t.Run("should marshal structured payload", func(t *testing.T) {
		env, err := NewEnvelope("k", "t", map[string]string{"a": "b"})

		require.NoError(t, err)
		assert.JSONEq(t, `{"a":"b"}`, string(env.Payload))
	})
}

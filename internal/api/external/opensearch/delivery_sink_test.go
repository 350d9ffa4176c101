package opensearch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"RenewalSync/internal/api/domain/delivery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIndex = "webhook-deliveries"

func newTestSink(t *testing.T, handler http.HandlerFunc) *DeliverySink {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead && r.URL.Path == "/"+testIndex {
			w.WriteHeader(http.StatusOK)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	sink, err := NewDeliverySink(context.Background(), []string{server.URL}, testIndex)
	require.NoError(t, err)
	return sink
}

func TestNewDeliverySink(t *testing.T) {
	t.Run("should require addresses", func(t *testing.T) {
		_, err := NewDeliverySink(context.Background(), nil, testIndex)

		assert.Error(t, err)
	})

	t.Run("should create missing index", func(t *testing.T) {
		created := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.Method == http.MethodHead:
				w.WriteHeader(http.StatusNotFound)
			case r.Method == http.MethodPut && r.URL.Path == "/"+testIndex:
				created = true
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"acknowledged":true}`))
			default:
				w.WriteHeader(http.StatusBadRequest)
			}
		}))
		defer server.Close()

		_, err := NewDeliverySink(context.Background(), []string{server.URL}, testIndex)

		require.NoError(t, err)
		assert.True(t, created)
	})
}

func TestDeliverySink_Record(t *testing.T) {
	// given
	var indexed deliveryDoc
	sink := newTestSink(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/"+testIndex+"/_doc/"))
		assert.Equal(t, "true", r.URL.Query().Get("refresh"))

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &indexed))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	// when
	d, err := sink.Record(context.Background(), delivery.NewDelivery{
		ProviderEventID: "evt_1",
		Event:           "payment.failed",
		EntityID:        "pay_3",
		Result:          delivery.ResultHandled,
		Payload:         json.RawMessage(`{"event":"payment.failed"}`),
	})

	// then
	require.NoError(t, err)
	assert.Equal(t, d.ID, indexed.ID)
	assert.Equal(t, "evt_1", indexed.ProviderEventID)
	assert.Equal(t, delivery.ResultHandled, indexed.Result)
	assert.False(t, d.ReceivedAt.IsZero())
}

func TestDeliverySink_Seen(t *testing.T) {
	// given
	sink := newTestSink(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/"+testIndex+"/_count", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":2}`))
	})

	// when
	seen, err := sink.Seen(context.Background(), "evt_1")

	// then
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestDeliverySink_List(t *testing.T) {
	// given
	t1 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	var searchBody map[string]any
	sink := newTestSink(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/"+testIndex+"/_search", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &searchBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"hits":{"hits":[
			{"_id":"d2","_source":{"id":"d2","event":"payment.authorized","result":"handled","received_at":"2025-03-01T10:01:00Z"}},
			{"_id":"d1","_source":{"id":"d1","event":"payment.authorized","result":"ignored","received_at":"2025-03-01T10:00:00Z"}}
		]}}`))
	})

	// when
	page, err := sink.List(context.Background(), delivery.Query{Limit: 1, Events: []string{"payment.authorized"}})

	// then
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "d2", page.Items[0].ID)
	assert.True(t, page.HasMore)
	assert.NotEmpty(t, page.NextCursor)
	assert.EqualValues(t, 2, searchBody["size"])
	assert.True(t, t1.Before(page.Items[0].ReceivedAt))
}

func TestBuildSearchBody_InvalidCursor(t *testing.T) {
	_, err := buildSearchBody(delivery.Query{Limit: 10, Cursor: "%%%"})

	assert.ErrorIs(t, err, delivery.ErrInvalidQuery)
}

//go:build integration
// +build integration

package integration_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"RenewalSync/config"
	"RenewalSync/internal/api"
	"RenewalSync/internal/api/domain/delivery"
	"RenewalSync/internal/api/domain/webhook"
	"RenewalSync/internal/api/external/razorpay"
	"RenewalSync/internal/api/handlers"
	delivery_repo "RenewalSync/internal/api/repo/delivery"
	order_repo "RenewalSync/internal/api/repo/order"
	subscription_repo "RenewalSync/internal/api/repo/subscription"
	"RenewalSync/internal/shared/external/kafka"
	"RenewalSync/internal/shared/signature"
	asyncwebhook "RenewalSync/internal/shared/webhook"
	"RenewalSync/internal/testinfra"
	"RenewalSync/pkg/health"

	"github.com/google/go-querystring/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	webhookSecret = "integration-secret"
	operatorToken = "integration-operator"
)

var suite *testinfra.TestSuite

func TestMain(m *testing.M) {
	ctx := context.Background()

	var err error
	suite, err = testinfra.NewTestSuite(ctx, testinfra.SuiteOptions{
		WithKafka:    true,
		WithWiremock: true,
		MappingsPath: "testdata/razorpay",
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	suite.Cleanup(ctx)
	os.Exit(code)
}

func newSyncProcessor() *webhook.SyncProcessor {
	pool := suite.Postgres.Pool
	gw := razorpay.New(suite.Wiremock.BaseURL, "rzp_test", "secret", &http.Client{Timeout: 5 * time.Second})
	handler := webhook.NewHandler(
		gw,
		order_repo.NewPgOrderRepo(pool),
		subscription_repo.NewPgSubscriptionRepo(pool),
		webhook.NewSlogSink(slog.Default()),
		webhook.Config{AutoCapture: true, OrderNoteKey: "order_id"},
	)
	return webhook.NewSyncProcessor(handler, delivery_repo.NewPgDeliveryRepo(pool.Pool, pool.Builder))
}

func setupServer(t *testing.T, processor webhook.Processor) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, suite.Postgres.Truncate(ctx))
	require.NoError(t, suite.Wiremock.ResetRequests(ctx))

	pool := suite.Postgres.Pool
	engine := api.NewGinEngine()
	api.NewRouter(
		handlers.NewWebhookHandler(processor),
		handlers.NewDeliveryHandler(delivery_repo.NewPgDeliveryRepo(pool.Pool, pool.Builder)),
		webhookSecret,
		operatorToken,
		health.NewRegistry(health.NewPostgresChecker(pool.Pool)),
	).SetUp(engine)

	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)
	return server
}

func exec(t *testing.T, sql string, args ...any) {
	t.Helper()
	_, err := suite.Postgres.Pool.Pool.Exec(context.Background(), sql, args...)
	require.NoError(t, err)
}

func postWebhook(t *testing.T, baseURL, eventID, body string) (int, map[string]string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, baseURL+"/webhooks/razorpay", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(signature.HeaderName, signature.Sign([]byte(body), webhookSecret))
	req.Header.Set(handlers.EventIDHeader, eventID)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]string{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func orderState(t *testing.T, id string) (status, paymentID string) {
	t.Helper()
	err := suite.Postgres.Pool.Pool.QueryRow(context.Background(),
		"SELECT status, COALESCE(payment_id, '') FROM orders WHERE id = $1", id).Scan(&status, &paymentID)
	require.NoError(t, err)
	return status, paymentID
}

func subscriptionState(t *testing.T, id string) (status string, completed, failed int) {
	t.Helper()
	err := suite.Postgres.Pool.Pool.QueryRow(context.Background(),
		"SELECT status, completed_payment_count, failed_payment_count FROM platform_subscriptions WHERE id = $1", id).
		Scan(&status, &completed, &failed)
	require.NoError(t, err)
	return status, completed, failed
}

func listDeliveries(t *testing.T, baseURL string, q delivery.Query) delivery.Page {
	t.Helper()

	values, err := query.Values(q)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, baseURL+"/webhooks/deliveries?"+values.Encode(), nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+operatorToken)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page delivery.Page
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	return page
}

func TestOrderPayment(t *testing.T) {
	server := setupServer(t, newSyncProcessor())
	exec(t, `INSERT INTO orders (id, status, total, currency) VALUES ('100', 'pending', 499.00, 'INR')`)
	exec(t, `INSERT INTO orders (id, status, total, currency) VALUES ('101', 'pending', 1250.50, 'INR')`)

	captured := `{"event":"payment.authorized","payload":{"payment":{"entity":{"id":"pay_int_captured","notes":{"order_id":"100"}}}}}`

	t.Run("captured payment completes the order", func(t *testing.T) {
		status, body := postWebhook(t, server.URL, "evt_100", captured)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "handled", body["result"])
		orderStatus, paymentID := orderState(t, "100")
		assert.Equal(t, "processing", orderStatus)
		assert.Equal(t, "pay_int_captured", paymentID)
	})

	t.Run("redelivery leaves the paid order alone", func(t *testing.T) {
		status, body := postWebhook(t, server.URL, "evt_100", captured)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "ignored", body["result"])

		page := listDeliveries(t, server.URL, delivery.Query{ProviderEventIDs: []string{"evt_100"}, SortAsc: true})
		require.Len(t, page.Items, 2)
		assert.False(t, page.Items[0].Redelivery)
		assert.True(t, page.Items[1].Redelivery)
	})

	t.Run("authorized payment is captured for the order total", func(t *testing.T) {
		body := `{"event":"payment.authorized","payload":{"payment":{"entity":{"id":"pay_int_auth","notes":{"order_id":"101"}}}}}`

		status, _ := postWebhook(t, server.URL, "evt_101", body)

		assert.Equal(t, http.StatusOK, status)
		orderStatus, _ := orderState(t, "101")
		assert.Equal(t, "processing", orderStatus)

		count, err := suite.Wiremock.RequestCount(context.Background(), http.MethodPost, "/v1/payments/pay_int_auth/capture")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("unknown order is a 404", func(t *testing.T) {
		body := `{"event":"payment.authorized","payload":{"payment":{"entity":{"id":"pay_int_captured","notes":{"order_id":"999"}}}}}`

		status, _ := postWebhook(t, server.URL, "evt_999", body)

		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestSubscriptionRenewal(t *testing.T) {
	server := setupServer(t, newSyncProcessor())
	exec(t, `INSERT INTO orders (id, status, total, currency) VALUES ('200', 'processing', 299.00, 'INR')`)
	exec(t, `INSERT INTO platform_subscriptions (id, order_id, status, completed_payment_count) VALUES ('wc_sub_1', '200', 'active', 1)`)

	renewal := `{"event":"payment.authorized","payload":{"payment":{"entity":{"id":"pay_int_renewal","invoice_id":"inv_int_1"}}}}`

	t.Run("next expected renewal is paid once", func(t *testing.T) {
		status, body := postWebhook(t, server.URL, "evt_200", renewal)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, webhook.ReasonRenewalPaid, body["reason"])
		subStatus, completed, _ := subscriptionState(t, "wc_sub_1")
		assert.Equal(t, "active", subStatus)
		assert.Equal(t, 2, completed)
	})

	t.Run("replay with same gateway snapshot is a mismatch no-op", func(t *testing.T) {
		status, body := postWebhook(t, server.URL, "evt_200", renewal)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, webhook.ReasonCountMismatch, body["reason"])
		_, completed, _ := subscriptionState(t, "wc_sub_1")
		assert.Equal(t, 2, completed)
	})

	t.Run("failed renewal puts subscription on hold", func(t *testing.T) {
		failed := `{"event":"payment.failed","payload":{"payment":{"entity":{"id":"pay_int_failed","invoice_id":"inv_int_1"}}}}`

		status, _ := postWebhook(t, server.URL, "evt_201", failed)

		assert.Equal(t, http.StatusOK, status)
		subStatus, _, failedCount := subscriptionState(t, "wc_sub_1")
		assert.Equal(t, "on-hold", subStatus)
		assert.Equal(t, 1, failedCount)
	})

	t.Run("subscription fetch failure is reported to the sender", func(t *testing.T) {
		body := `{"event":"payment.authorized","payload":{"payment":{"entity":{"id":"pay_int_x","invoice_id":"inv_int_missing_sub"}}}}`

		status, resp := postWebhook(t, server.URL, "evt_202", body)

		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "Subscription fetch failed with message 'The id provided does not exist'", resp["message"])
	})
}

func TestDeliveryPagination(t *testing.T) {
	server := setupServer(t, newSyncProcessor())

	for _, id := range []string{"evt_p1", "evt_p2", "evt_p3", "evt_p4", "evt_p5"} {
		status, _ := postWebhook(t, server.URL, id, `{"event":"order.paid","payload":{}}`)
		require.Equal(t, http.StatusOK, status)
	}

	q := delivery.Query{Events: []string{"order.paid"}, Limit: 2, SortAsc: true}
	var seen []string
	for i := 0; i < 5; i++ {
		page := listDeliveries(t, server.URL, q)
		for _, d := range page.Items {
			seen = append(seen, d.ProviderEventID)
		}
		if !page.HasMore {
			break
		}
		q.Cursor = page.NextCursor
	}

	assert.Equal(t, []string{"evt_p1", "evt_p2", "evt_p3", "evt_p4", "evt_p5"}, seen)
}

func TestKafkaMode(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	publisher := kafka.NewPublisher(suite.Kafka.Brokers, suite.Kafka.WebhooksTopic)
	defer publisher.Close()

	server := setupServer(t, asyncwebhook.NewAsyncProcessor(publisher))
	exec(t, `INSERT INTO orders (id, status, total, currency) VALUES ('100', 'pending', 499.00, 'INR')`)

	cfg := config.Config{
		KafkaBrokers:               suite.Kafka.Brokers,
		KafkaWebhooksTopic:         suite.Kafka.WebhooksTopic,
		KafkaWebhooksDLQTopic:      suite.Kafka.DLQTopic,
		KafkaWebhooksConsumerGroup: suite.Kafka.Group,
	}
	api.StartWorkers(ctx, cfg, newSyncProcessor())

	body := `{"event":"payment.authorized","payload":{"payment":{"entity":{"id":"pay_int_captured","notes":{"order_id":"100"}}}}}`
	status, resp := postWebhook(t, server.URL, "evt_kafka_1", body)

	require.Equal(t, http.StatusAccepted, status)
	assert.Equal(t, "accepted", resp["result"])

	assert.Eventually(t, func() bool {
		orderStatus, _ := orderState(t, "100")
		return orderStatus == "processing"
	}, 30*time.Second, 250*time.Millisecond)
}

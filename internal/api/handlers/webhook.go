package handlers

import (
	"errors"
	"net/http"
	"time"

	"RenewalSync/internal/api/domain/order"
	"RenewalSync/internal/api/domain/subscription"
	"RenewalSync/internal/api/domain/webhook"
	"RenewalSync/internal/shared/signature"

	"github.com/gin-gonic/gin"
)

const EventIDHeader = "X-Razorpay-Event-Id"

type WebhookHandler struct {
	processor webhook.Processor
}

func NewWebhookHandler(p webhook.Processor) *WebhookHandler {
	return &WebhookHandler{processor: p}
}

// Webhook expects signature.Middleware in front of it.
func (h *WebhookHandler) Webhook(c *gin.Context) {
	body, err := signature.RawBody(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "unable to read body"})
		return
	}

	out, err := h.processor.Process(c.Request.Context(), webhook.Inbound{
		ProviderEventID: c.GetHeader(EventIDHeader),
		Body:            body,
		ReceivedAt:      time.Now().UTC(),
	})
	if err != nil {
		_ = c.Error(err)
		status, message := webhookErrorResponse(err)
		c.JSON(status, gin.H{"message": message})
		return
	}

	if out.Result == webhook.ResultAccepted {
		c.JSON(http.StatusAccepted, out)
		return
	}
	c.JSON(http.StatusOK, out)
}

// webhookErrorResponse maps processing errors to a status the gateway redelivers on.
// Only the subscription fetch diagnostic is echoed back verbatim.
func webhookErrorResponse(err error) (int, string) {
	var fetchErr *webhook.SubscriptionFetchError

	switch {
	case errors.Is(err, webhook.ErrInvalidPayload), errors.Is(err, webhook.ErrMissingField):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, order.ErrNotFound):
		return http.StatusNotFound, "Order not found"
	case errors.Is(err, subscription.ErrNotFound):
		return http.StatusNotFound, "Subscription not found"
	case errors.As(err, &fetchErr):
		return http.StatusInternalServerError, fetchErr.Error()
	default:
		return http.StatusInternalServerError, "Webhook processing failed"
	}
}

package handlers

import (
	"errors"
	"net/http"

	"RenewalSync/internal/api/domain/delivery"

	"github.com/gin-gonic/gin"
)

type DeliveryHandler struct {
	sink delivery.Sink
}

func NewDeliveryHandler(sink delivery.Sink) *DeliveryHandler {
	return &DeliveryHandler{sink: sink}
}

// List serves GET /webhooks/deliveries.
func (h *DeliveryHandler) List(c *gin.Context) {
	var query delivery.Query
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	page, err := h.sink.List(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, delivery.ErrInvalidQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list deliveries"})
		return
	}

	c.JSON(http.StatusOK, page)
}

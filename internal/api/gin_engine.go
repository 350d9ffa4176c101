package api

import (
	"RenewalSync/pkg/logger"
	"RenewalSync/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// NewGinEngine builds the engine shared by the API and ingest services.
func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(
		logger.CorrelationMiddleware(),
		metrics.GinMiddleware(),
		logger.RequestLogger(),
		gin.Recovery(),
	)
	return engine
}

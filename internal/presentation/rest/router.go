package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	pg "github.com/ledgerline/credit-engine/pkg/postgres"
)

const readyTimeout = 2 * time.Second

// NewRouter assembles the HTTP surface: the credit API under /api/v1, probes,
// and the Prometheus scrape endpoint.
func NewRouter(handler *CreditHandler, pool *pgxpool.Pool, serviceName string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": serviceName})
	})
	router.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()
		if err := pg.HealthCheck(ctx, pool); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "service": serviceName})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/applications", handler.submitApplication)
		v1.GET("/applications/:id", handler.getApplication)
		v1.POST("/applications/:id/eligibility", handler.computeEligibility)
		v1.POST("/applications/:id/disburse", handler.disburseLoan)

		v1.GET("/loans/:id", handler.getLoan)
		v1.POST("/loans/:id/payments", handler.recordPayment)
		v1.GET("/loans/:id/payments", handler.listLoanPayments)

		v1.POST("/borrowers/:id/credit-score/refresh", handler.refreshCreditScore)
		v1.GET("/borrowers/:id/credit-limit", handler.getCreditLimit)

		v1.POST("/ops/delinquency-sweep", handler.runDelinquencySweep)
	}

	return router
}

package http

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	api := router.Group("/api/v1")
	{
		api.GET("/exchanges", handler.ListExchanges)
		api.GET("/exchanges/:id/schedules", handler.ExchangeSchedules)
		api.GET("/exchange-codes", handler.ListExchangeCodes)
		api.GET("/exchange-codes/:code", handler.ExchangeCode)
		api.GET("/instruments", handler.ListInstruments)

		api.GET("/portfolio", handler.GetPortfolio)
		api.GET("/portfolio/positions/:ticker", handler.GetPosition)
		api.GET("/portfolio/tickers", handler.PortfolioTickers)

		api.GET("/tickers", handler.AllTickers)
		api.GET("/tickers/:ticker/alternate", handler.AlternateTicker)
		api.GET("/schedules/:id/exchange-code", handler.ScheduleExchangeCode)

		api.GET("/status", handler.Status)
		api.POST("/refresh", handler.Refresh)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}

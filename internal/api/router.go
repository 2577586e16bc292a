package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parking_lot/internal/api/handler"
	"parking_lot/internal/metrics"
	"parking_lot/internal/service"
)

func SetupRouter(ps *service.ParkingService) *gin.Engine {
	r := gin.Default()

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	parkingH := handler.NewParkingHandler(ps)
	v1 := r.Group("/api/v1/parking")
	{
		v1.POST("/entry", parkingH.VehicleEntry)
		v1.POST("/exit", parkingH.VehicleExit)
		v1.GET("/availability", parkingH.GetAvailability)
		v1.GET("/sessions/:id", parkingH.GetSessionByID)
	}
	return r
}

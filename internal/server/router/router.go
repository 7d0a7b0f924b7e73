package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/cafepos/internal/server/handlers"
)

// Handlers groups every HTTP adapter the register exposes.
type Handlers struct {
	Menu      *handlers.MenuHandler
	Orders    *handlers.OrderHandler
	Inventory *handlers.InventoryHandler
	Reports   *handlers.ReportHandler
	Kitchen   *handlers.KitchenHandler
	System    *handlers.SystemHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	menu := api.Group("/menu")
	menu.GET("", h.Menu.List)
	menu.GET("/categories", h.Menu.Categories)
	menu.GET("/available", h.Menu.Available)
	menu.POST("", h.Menu.Create)
	menu.PUT("/:id", h.Menu.Update)
	menu.DELETE("/:id", h.Menu.Delete)

	orders := api.Group("/orders")
	orders.GET("/options", h.Orders.Options)
	orders.GET("/current", h.Orders.Current)
	orders.POST("/current/lines", h.Orders.AddLine)
	orders.DELETE("/current/lines/:line", h.Orders.RemoveLine)
	orders.POST("/current/lines/remove", h.Orders.RemoveLineByLabel)
	orders.POST("/current/submit", h.Orders.Submit)
	orders.POST("/current/close", h.Orders.Close)

	inventory := api.Group("/inventory")
	inventory.GET("", h.Inventory.List)
	inventory.GET("/low", h.Inventory.Low)
	inventory.POST("/restock", h.Inventory.Restock)

	reports := api.Group("/reports")
	reports.GET("/x", h.Reports.X)
	reports.GET("/z", h.Reports.Z)
	reports.GET("/z/snapshot", h.Reports.Snapshot)
	reports.GET("/range", h.Reports.Range)
	reports.GET("/usage", h.Reports.Usage)

	kitchen := api.Group("/kitchen")
	kitchen.GET("/orders", h.Kitchen.Orders)
	kitchen.PATCH("/orders/:id", h.Kitchen.Complete)

	api.GET("/business-date", h.System.BusinessDate)
	api.PUT("/business-date", h.System.SetBusinessDate)
	api.GET("/weather", h.System.Weather)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}

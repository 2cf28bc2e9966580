package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	twilioDelivery "restaurant-voice-agent/internal/conversation/delivery/twilio"
	"restaurant-voice-agent/internal/model"
)

const headerRequestID = "X-Request-ID"

// requestID tags every request with an ID so webhook turns can be correlated
// across log lines. An inbound ID from the proxy is kept.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(headerRequestID, id)
		c.Next()
	}
}

func (srv *HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()
	srv.registerDomainRoutes()
	return nil
}

func (srv *HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())
	srv.gin.Use(requestID())

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "Server mode: production")
	} else {
		srv.l.Infof(ctx, "Server mode: %s", srv.environment)
	}
}

func (srv *HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers the voice webhooks and the staff API.
func (srv *HTTPServer) registerDomainRoutes() {
	ctx := context.Background()

	voice := srv.gin.Group("/webhooks/voice")
	voice.POST("/incoming", srv.twilioHandler.HandleIncomingCall)
	voice.POST("/gather", srv.twilioHandler.HandleGather)
	voice.POST("/status", srv.twilioHandler.HandleCallStatus)
	srv.l.Infof(ctx, "Voice webhook routes registered under POST /webhooks/voice (gather action: %s)", twilioDelivery.GatherPath)

	api := srv.gin.Group("/api")
	if srv.menuHandler != nil {
		api.GET("/menu", srv.menuHandler.GetMenu)
		srv.l.Infof(ctx, "Menu route registered at GET /api/menu")
	}
	if srv.orderHandler != nil {
		api.GET("/orders/history", srv.orderHandler.GetOrderHistory)
		srv.l.Infof(ctx, "Order history route registered at GET /api/orders/history")
	} else {
		srv.l.Infof(ctx, "Order handler not configured, skipping order history route")
	}
}

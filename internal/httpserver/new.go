package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	conversationHTTP "restaurant-voice-agent/internal/conversation/delivery/http"
	twilioDelivery "restaurant-voice-agent/internal/conversation/delivery/twilio"
	menuHTTP "restaurant-voice-agent/internal/menu/delivery/http"
	"restaurant-voice-agent/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Voice webhooks
	twilioHandler *twilioDelivery.Handler

	// Staff API
	menuHandler  menuHTTP.Handler
	orderHandler conversationHTTP.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	TwilioHandler *twilioDelivery.Handler
	MenuHandler   menuHTTP.Handler
	OrderHandler  conversationHTTP.Handler
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:             logger,
		gin:           gin.Default(),
		port:          cfg.Port,
		mode:          cfg.Mode,
		environment:   cfg.Environment,
		twilioHandler: cfg.TwilioHandler,
		menuHandler:   cfg.MenuHandler,
		orderHandler:  cfg.OrderHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.twilioHandler == nil {
		return errors.New("twilio handler is required")
	}
	return nil
}

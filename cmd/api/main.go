package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"restaurant-voice-agent/config"
	_ "restaurant-voice-agent/docs" // Swagger docs
	"restaurant-voice-agent/internal/conversation"
	conversationHTTP "restaurant-voice-agent/internal/conversation/delivery/http"
	twilioDelivery "restaurant-voice-agent/internal/conversation/delivery/twilio"
	"restaurant-voice-agent/internal/conversation/repository"
	"restaurant-voice-agent/internal/conversation/repository/postgre"
	"restaurant-voice-agent/internal/conversation/usecase"
	"restaurant-voice-agent/internal/httpserver"
	menuHTTP "restaurant-voice-agent/internal/menu/delivery/http"
	menuInmemory "restaurant-voice-agent/internal/menu/inmemory"
	"restaurant-voice-agent/pkg/log"
	"restaurant-voice-agent/pkg/openai"
)

// @title       Restaurant Voice Agent API
// @description Phone-order voice agent: Twilio voice webhooks driving an LLM-backed conversation state machine.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Restaurant Voice Agent...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Restaurant: %s (tax rate %.4f)", cfg.Restaurant.Name, cfg.Restaurant.TaxRate)

	// 3. Menu catalog
	menuRepo, err := menuInmemory.New(logger, cfg.Menu.File)
	if err != nil {
		logger.Error(ctx, "Failed to load menu: ", err)
		return
	}

	// 4. Intent extraction client
	llm, err := openai.New(openai.Config{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.Model,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize OpenAI client: ", err)
		return
	}

	// 5. Persistence (optional: the agent takes calls without a database,
	// orders are just not saved)
	var callRepo repository.CallRepository
	var orderRepo repository.OrderRepository
	var orderHandler conversationHTTP.Handler
	if cfg.Postgres.DSN != "" {
		db, dbErr := sql.Open("postgres", cfg.Postgres.DSN)
		if dbErr != nil {
			logger.Error(ctx, "Failed to open database: ", dbErr)
			return
		}
		defer db.Close()
		if pingErr := db.PingContext(ctx); pingErr != nil {
			logger.Error(ctx, "Failed to ping database: ", pingErr)
			return
		}

		repo := postgre.New(db, logger)
		callRepo = repo
		orderRepo = repo
		orderHandler = conversationHTTP.New(logger, orderRepo)
		logger.Info(ctx, "Postgres persistence initialized")
	} else {
		logger.Warn(ctx, "postgres.dsn not set, running without persistence")
	}

	// 6. Conversation domain
	store := conversation.NewStore()
	processor := conversation.NewProcessor(menuRepo, logger)
	engine := conversation.NewEngine(logger)
	governor := conversation.NewGovernor(cfg.Conversation.MaxTurns, cfg.Conversation.MaxFailures)
	composer := conversation.NewComposer(menuRepo, cfg.Restaurant.TaxRate)

	conversationUC := usecase.New(
		logger, llm, menuRepo, store,
		processor, engine, governor, composer,
		callRepo, orderRepo,
		cfg.Restaurant.Name,
	)

	// 7. Delivery
	twilioHandler := twilioDelivery.NewHandler(conversationUC, twilioDelivery.SecurityConfig{
		AuthToken:          cfg.Twilio.AuthToken,
		ValidateSignatures: cfg.Twilio.ValidateSignatures,
		RateLimitPerMin:    cfg.Webhook.RateLimitPerMin,
	}, logger)
	menuHandler := menuHTTP.New(logger, menuRepo)

	// 8. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:        logger,
		Port:          cfg.HTTPServer.Port,
		Mode:          cfg.HTTPServer.Mode,
		Environment:   cfg.Environment.Name,
		TwilioHandler: twilioHandler,
		MenuHandler:   menuHandler,
		OrderHandler:  orderHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 9. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

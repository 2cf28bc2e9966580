package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"restaurant-voice-agent/config"
	"restaurant-voice-agent/internal/conversation"
	"restaurant-voice-agent/internal/conversation/usecase"
	menuInmemory "restaurant-voice-agent/internal/menu/inmemory"
	"restaurant-voice-agent/pkg/log"
	"restaurant-voice-agent/pkg/openai"
)

// Drives a full ordering conversation from stdin, without Twilio or Postgres.
// Useful for prompt tuning and transition debugging against the live LLM.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run scripts/simulate-call/main.go <path/to/config.yaml>")
		fmt.Println("Example: go run scripts/simulate-call/main.go config/config.yaml")
		os.Exit(1)
	}
	os.Setenv("CONFIG_PATH", os.Args[1])

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:        "warn",
		Mode:         "development",
		ColorEnabled: true,
	})

	ctx := context.Background()

	menuRepo, err := menuInmemory.New(logger, cfg.Menu.File)
	if err != nil {
		fmt.Printf("Failed to load menu: %v\n", err)
		os.Exit(1)
	}

	llm, err := openai.New(openai.Config{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.Model,
	})
	if err != nil {
		fmt.Printf("Failed to initialize OpenAI client: %v\n", err)
		os.Exit(1)
	}

	store := conversation.NewStore()
	uc := usecase.New(
		logger, llm, menuRepo, store,
		conversation.NewProcessor(menuRepo, logger),
		conversation.NewEngine(logger),
		conversation.NewGovernor(cfg.Conversation.MaxTurns, cfg.Conversation.MaxFailures),
		conversation.NewComposer(menuRepo, cfg.Restaurant.TaxRate),
		nil, nil, // no persistence in simulation
		cfg.Restaurant.Name,
	)

	const callSID = "SIMULATED"
	start, err := uc.StartCall(ctx, callSID)
	if err != nil {
		fmt.Printf("StartCall failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("agent> %s\n", start.Greeting)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("caller> ")
		if !scanner.Scan() {
			break
		}

		out, err := uc.ProcessTurn(ctx, conversation.ProcessTurnInput{
			CallSID:   callSID,
			Utterance: scanner.Text(),
		})
		if err != nil {
			fmt.Printf("ProcessTurn failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("agent [%s]> %s\n", out.Stage, out.Reply)
		if out.HangUp {
			break
		}
	}

	if err := uc.EndCall(ctx, callSID, "completed"); err != nil {
		fmt.Printf("EndCall failed: %v\n", err)
	}
}

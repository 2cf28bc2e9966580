package usecase

import (
	"restaurant-voice-agent/internal/conversation"
	"restaurant-voice-agent/internal/conversation/repository"
	"restaurant-voice-agent/internal/menu"
	pkgLog "restaurant-voice-agent/pkg/log"
	"restaurant-voice-agent/pkg/openai"
)

type implUseCase struct {
	l          pkgLog.Logger
	llm        openai.IOpenAI
	menuRepo   menu.Repository
	store      *conversation.Store
	processor  *conversation.Processor
	engine     *conversation.Engine
	governor   *conversation.Governor
	composer   *conversation.Composer
	callRepo   repository.CallRepository
	orderRepo  repository.OrderRepository
	restaurant string
}

// New creates the session orchestrator UseCase. callRepo and orderRepo may be
// nil, in which case the agent runs without persistence.
func New(
	l pkgLog.Logger,
	llm openai.IOpenAI,
	menuRepo menu.Repository,
	store *conversation.Store,
	processor *conversation.Processor,
	engine *conversation.Engine,
	governor *conversation.Governor,
	composer *conversation.Composer,
	callRepo repository.CallRepository,
	orderRepo repository.OrderRepository,
	restaurant string,
) conversation.UseCase {
	return &implUseCase{
		l:          l,
		llm:        llm,
		menuRepo:   menuRepo,
		store:      store,
		processor:  processor,
		engine:     engine,
		governor:   governor,
		composer:   composer,
		callRepo:   callRepo,
		orderRepo:  orderRepo,
		restaurant: restaurant,
	}
}

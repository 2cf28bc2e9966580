package usecase

import (
	"context"
	"errors"
	"time"

	"restaurant-voice-agent/internal/conversation"
	"restaurant-voice-agent/internal/conversation/repository"
	"restaurant-voice-agent/internal/menu"
	"restaurant-voice-agent/internal/model"
	"restaurant-voice-agent/pkg/openai"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// scriptedLLM plays back a fixed sequence of extraction payloads, one per
// ChatCompletion call. An empty script or exhausted queue returns an error.
type scriptedLLM struct {
	script []string // raw JSON contents, or "ERR" to fail the call
	calls  int
}

func (s *scriptedLLM) ChatCompletion(ctx context.Context, req *openai.ChatRequest) (*openai.ChatResponse, error) {
	if s.calls >= len(s.script) {
		return nil, errors.New("scripted llm: no more responses")
	}
	content := s.script[s.calls]
	s.calls++
	if content == "ERR" {
		return nil, errors.New("scripted llm: simulated failure")
	}
	return &openai.ChatResponse{
		Choices: []openai.Choice{{Message: openai.Message{Role: "assistant", Content: content}}},
	}, nil
}

func (s *scriptedLLM) Model() string { return "gpt-test" }

// stubMenu is a fixed menu.Repository for tests.
type stubMenu struct {
	items []menu.Item
}

func (s *stubMenu) GetMenu(ctx context.Context) (menu.Menu, error) {
	return menu.Menu{Items: s.items}, nil
}

func (s *stubMenu) GetItem(ctx context.Context, name string) (menu.Item, bool, error) {
	for _, item := range s.items {
		if item.Name == name {
			return item, true, nil
		}
	}
	return menu.Item{}, false, nil
}

func (s *stubMenu) MenuText(ctx context.Context) (string, error) {
	return "Menu: test", nil
}

// mockCallRepo records call lifecycle updates.
type mockCallRepo struct {
	createErr error

	created     []string
	statuses    map[string]model.CallStatus
	transcripts map[string]string
}

func newMockCallRepo() *mockCallRepo {
	return &mockCallRepo{
		statuses:    make(map[string]model.CallStatus),
		transcripts: make(map[string]string),
	}
}

func (m *mockCallRepo) CreateCall(ctx context.Context, callSID string) (model.Call, error) {
	if m.createErr != nil {
		return model.Call{}, m.createErr
	}
	m.created = append(m.created, callSID)
	return model.Call{ID: int64(len(m.created)), CallSID: callSID, Status: model.CallStatusInProgress, StartedAt: time.Now()}, nil
}

func (m *mockCallRepo) GetCallBySID(ctx context.Context, callSID string) (model.Call, error) {
	for i, sid := range m.created {
		if sid == callSID {
			return model.Call{ID: int64(i + 1), CallSID: callSID}, nil
		}
	}
	return model.Call{}, nil
}

func (m *mockCallRepo) UpdateCallStatus(ctx context.Context, callSID string, status model.CallStatus, endedAt *time.Time) error {
	m.statuses[callSID] = status
	return nil
}

func (m *mockCallRepo) UpdateCallTranscript(ctx context.Context, callSID string, transcript string) error {
	m.transcripts[callSID] = transcript
	return nil
}

// mockOrderRepo records persisted orders.
type mockOrderRepo struct {
	createErr error

	orders    []repository.CreateOrderOptions
	confirmed []int64
}

func (m *mockOrderRepo) CreateOrder(ctx context.Context, opt repository.CreateOrderOptions) (model.Order, error) {
	if m.createErr != nil {
		return model.Order{}, m.createErr
	}
	m.orders = append(m.orders, opt)
	return model.Order{
		ID:        int64(len(m.orders)),
		CallID:    opt.CallID,
		Reference: "ref-1",
		Status:    model.OrderStatusPending,
		RawText:   opt.RawText,
		CreatedAt: time.Now(),
		Items:     opt.Items,
	}, nil
}

func (m *mockOrderRepo) ConfirmOrder(ctx context.Context, orderID int64) error {
	m.confirmed = append(m.confirmed, orderID)
	return nil
}

func (m *mockOrderRepo) CountOrdersForCall(ctx context.Context, callID int64) (int, error) {
	n := 0
	for _, o := range m.orders {
		if o.CallID == callID {
			n++
		}
	}
	return n, nil
}

func (m *mockOrderRepo) ListCallHistory(ctx context.Context, limit int) ([]model.Call, error) {
	return nil, nil
}

// testEnv bundles a fully wired orchestrator with its mocks.
type testEnv struct {
	uc        conversation.UseCase
	store     *conversation.Store
	llm       *scriptedLLM
	callRepo  *mockCallRepo
	orderRepo *mockOrderRepo
}

func newTestEnv(script []string, maxTurns, maxFailures int) *testEnv {
	l := &mockLogger{}
	m := &stubMenu{items: []menu.Item{
		{Name: "burger", Price: 10.00, Options: []string{"no onions", "extra cheese"}},
		{Name: "fries", Price: 3.99, Options: []string{"small", "medium", "large"}},
	}}
	llm := &scriptedLLM{script: script}
	store := conversation.NewStore()
	callRepo := newMockCallRepo()
	orderRepo := &mockOrderRepo{}

	uc := New(
		l, llm, m, store,
		conversation.NewProcessor(m, l),
		conversation.NewEngine(l),
		conversation.NewGovernor(maxTurns, maxFailures),
		conversation.NewComposer(m, 0.0925),
		callRepo, orderRepo,
		"Mario's Pizzeria",
	)
	return &testEnv{uc: uc, store: store, llm: llm, callRepo: callRepo, orderRepo: orderRepo}
}

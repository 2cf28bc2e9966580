package conversation

import (
	"context"

	"restaurant-voice-agent/internal/menu"
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

// stubMenu is a fixed in-memory menu.Repository for tests.
type stubMenu struct {
	items []menu.Item
}

func newStubMenu(items ...menu.Item) *stubMenu {
	return &stubMenu{items: items}
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

package twilio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"restaurant-voice-agent/internal/conversation"
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

// mockUseCase scripts the orchestrator behind the webhook handlers.
type mockUseCase struct {
	greeting string
	startErr error
	starts   []string

	turnOut  conversation.ProcessTurnOutput
	turnErrs []error // consumed one per ProcessTurn call
	turns    []conversation.ProcessTurnInput

	ended map[string]string
}

func newMockUseCase() *mockUseCase {
	return &mockUseCase{greeting: "Thanks for calling!", ended: make(map[string]string)}
}

func (m *mockUseCase) StartCall(ctx context.Context, callSID string) (conversation.StartCallOutput, error) {
	if m.startErr != nil {
		return conversation.StartCallOutput{}, m.startErr
	}
	m.starts = append(m.starts, callSID)
	return conversation.StartCallOutput{Greeting: m.greeting}, nil
}

func (m *mockUseCase) ProcessTurn(ctx context.Context, input conversation.ProcessTurnInput) (conversation.ProcessTurnOutput, error) {
	m.turns = append(m.turns, input)
	if len(m.turnErrs) > 0 {
		err := m.turnErrs[0]
		m.turnErrs = m.turnErrs[1:]
		if err != nil {
			return conversation.ProcessTurnOutput{}, err
		}
	}
	return m.turnOut, nil
}

func (m *mockUseCase) EndCall(ctx context.Context, callSID string, telephonyStatus string) error {
	m.ended[callSID] = telephonyStatus
	return nil
}

func newTestRouter(uc conversation.UseCase, cfg SecurityConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(uc, cfg, &mockLogger{})

	r := gin.New()
	r.POST("/webhooks/voice/incoming", h.HandleIncomingCall)
	r.POST("/webhooks/voice/gather", h.HandleGather)
	r.POST("/webhooks/voice/status", h.HandleCallStatus)
	return r
}

func postForm(r *gin.Engine, path string, form url.Values, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleIncomingCall(t *testing.T) {
	uc := newMockUseCase()
	r := newTestRouter(uc, SecurityConfig{})

	w := postForm(r, "/webhooks/voice/incoming", url.Values{"CallSid": {"CA1"}}, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "<Gather") || !strings.Contains(body, uc.greeting) {
		t.Errorf("expected greeting inside a Gather:\n%s", body)
	}
	if !strings.Contains(body, "/webhooks/voice/gather?CallSid=CA1") {
		t.Errorf("gather action should carry the call SID:\n%s", body)
	}
	if len(uc.starts) != 1 || uc.starts[0] != "CA1" {
		t.Errorf("StartCall calls = %v, want [CA1]", uc.starts)
	}
}

func TestHandleIncomingCallMissingSID(t *testing.T) {
	r := newTestRouter(newMockUseCase(), SecurityConfig{})

	w := postForm(r, "/webhooks/voice/incoming", url.Values{}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleGather(t *testing.T) {
	uc := newMockUseCase()
	uc.turnOut = conversation.ProcessTurnOutput{Reply: "Anything else?", Stage: conversation.StageOrdering}
	r := newTestRouter(uc, SecurityConfig{})

	w := postForm(r, "/webhooks/voice/gather", url.Values{
		"CallSid":      {"CA1"},
		"SpeechResult": {"a burger please"},
	}, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Anything else?") {
		t.Errorf("reply missing from TwiML:\n%s", w.Body.String())
	}
	if len(uc.turns) != 1 {
		t.Fatalf("ProcessTurn calls = %d, want 1", len(uc.turns))
	}
	if got := uc.turns[0]; got.CallSID != "CA1" || got.Utterance != "a burger please" {
		t.Errorf("unexpected turn input: %+v", got)
	}
}

func TestHandleGatherHangUp(t *testing.T) {
	uc := newMockUseCase()
	uc.turnOut = conversation.ProcessTurnOutput{Reply: "Goodbye!", Stage: conversation.StageConclusion, HangUp: true}
	r := newTestRouter(uc, SecurityConfig{})

	w := postForm(r, "/webhooks/voice/gather", url.Values{
		"CallSid":      {"CA1"},
		"SpeechResult": {"yes"},
	}, nil)

	body := w.Body.String()
	if !strings.Contains(body, "<Hangup") {
		t.Errorf("concluded turn must hang up:\n%s", body)
	}
	if strings.Contains(body, "<Gather") {
		t.Errorf("concluded turn must not gather again:\n%s", body)
	}
}

func TestHandleGatherRecreatesLostSession(t *testing.T) {
	uc := newMockUseCase()
	uc.turnOut = conversation.ProcessTurnOutput{Reply: "What can I get you?", Stage: conversation.StageOrdering}
	uc.turnErrs = []error{conversation.ErrSessionNotFound, nil}
	r := newTestRouter(uc, SecurityConfig{})

	w := postForm(r, "/webhooks/voice/gather", url.Values{
		"CallSid":      {"CA1"},
		"SpeechResult": {"hello"},
	}, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(uc.starts) != 1 {
		t.Errorf("expected one recovery StartCall, got %d", len(uc.starts))
	}
	if len(uc.turns) != 2 {
		t.Errorf("expected the turn to be retried, got %d calls", len(uc.turns))
	}
}

func TestHandleCallStatus(t *testing.T) {
	t.Run("terminal status ends the call", func(t *testing.T) {
		uc := newMockUseCase()
		r := newTestRouter(uc, SecurityConfig{})

		w := postForm(r, "/webhooks/voice/status", url.Values{
			"CallSid":    {"CA1"},
			"CallStatus": {"completed"},
		}, nil)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if uc.ended["CA1"] != "completed" {
			t.Errorf("EndCall not invoked with terminal status: %v", uc.ended)
		}
	})

	t.Run("intermediate status is ignored", func(t *testing.T) {
		uc := newMockUseCase()
		r := newTestRouter(uc, SecurityConfig{})

		w := postForm(r, "/webhooks/voice/status", url.Values{
			"CallSid":    {"CA1"},
			"CallStatus": {"ringing"},
		}, nil)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if len(uc.ended) != 0 {
			t.Errorf("EndCall must not fire on intermediate statuses: %v", uc.ended)
		}
	})
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	uc := newMockUseCase()
	r := newTestRouter(uc, SecurityConfig{AuthToken: "secret", ValidateSignatures: true})

	w := postForm(r, "/webhooks/voice/incoming", url.Values{"CallSid": {"CA1"}},
		http.Header{"X-Twilio-Signature": {"Zm9yZ2Vk"}})

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if len(uc.starts) != 0 {
		t.Errorf("unauthorized request must not reach the orchestrator: %v", uc.starts)
	}
}

func TestWebhookAcceptsValidSignature(t *testing.T) {
	uc := newMockUseCase()
	r := newTestRouter(uc, SecurityConfig{AuthToken: "secret", ValidateSignatures: true})

	form := url.Values{"CallSid": {"CA1"}}
	sig := signForm("secret", "http://example.com/webhooks/voice/incoming", form)

	w := postForm(r, "/webhooks/voice/incoming", form,
		http.Header{"X-Twilio-Signature": {sig}})

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

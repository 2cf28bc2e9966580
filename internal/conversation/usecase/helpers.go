package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"restaurant-voice-agent/internal/conversation"
	"restaurant-voice-agent/internal/conversation/repository"
	"restaurant-voice-agent/pkg/openai"
)

const (
	extractionTemperature = 0.3 // low temperature for deterministic JSON output
	extractionMaxTokens   = 512
)

// extract sends the turn to the extraction service and parses the structured
// result. Any transport or parse problem is reported as an error; the caller
// routes it through the failure governor.
func (uc *implUseCase) extract(ctx context.Context, st *conversation.State, userInput string) (extractionResult, error) {
	menuText, err := uc.menuRepo.MenuText(ctx)
	if err != nil {
		return extractionResult{}, fmt.Errorf("failed to load menu text: %w", err)
	}

	req := &openai.ChatRequest{
		Model: uc.llm.Model(),
		Messages: []openai.Message{
			{Role: "system", Content: openai.BuildOrderSystemPrompt(uc.restaurant, menuText)},
			{Role: "user", Content: openai.BuildOrderUserPrompt(
				st.TranscriptText(), userInput, st.Stage.String(), st.OrderSummary(),
			)},
		},
		Temperature:    extractionTemperature,
		MaxTokens:      extractionMaxTokens,
		ResponseFormat: &openai.ResponseFormat{Type: "json_object"},
	}

	resp, err := uc.llm.ChatCompletion(ctx, req)
	if err != nil {
		return extractionResult{}, fmt.Errorf("extraction request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return extractionResult{}, conversation.ErrExtractionFailed
	}

	raw := resp.Choices[0].Message.Content
	cleaned := sanitizeJSONResponse(raw)

	var result extractionResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		uc.l.Errorf(ctx, "extract: malformed extraction result. Raw=%q Cleaned=%q", raw, cleaned)
		return extractionResult{}, conversation.ErrExtractionFailed
	}
	if result.Response == "" {
		return extractionResult{}, conversation.ErrExtractionFailed
	}
	return result, nil
}

// sanitizeJSONResponse removes markdown code fences and leading/trailing prose
// that LLMs often add around JSON output.
func sanitizeJSONResponse(text string) string {
	re := regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")
	matches := re.FindStringSubmatch(text)
	if len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	// No code block: find first [ or { and last ] or }
	start := strings.IndexAny(text, "[{")
	if start == -1 {
		return text
	}
	end := strings.LastIndexAny(text, "]}")
	if end == -1 || end < start {
		return text
	}
	return strings.TrimSpace(text[start : end+1])
}

// concludeCall persists the order and returns the farewell to speak. On
// persistence failure the farewell is replaced with an apology; the session
// is torn down either way by the status callback.
func (uc *implUseCase) concludeCall(ctx context.Context, sess *conversation.Session) string {
	st := sess.State
	farewell := fmt.Sprintf(conversation.ReplyFarewellFmt, uc.restaurant)

	if !st.HasItems() {
		return farewell
	}
	if uc.orderRepo == nil {
		uc.l.Warnf(ctx, "concludeCall: call=%s persistence disabled, order not saved", sess.CallSID)
		return farewell
	}

	order, err := uc.orderRepo.CreateOrder(ctx, repository.CreateOrderOptions{
		CallID:  sess.CallID,
		RawText: st.TranscriptText(),
		Items:   st.OrderItems,
	})
	if err != nil {
		uc.l.Errorf(ctx, "concludeCall: call=%s failed to persist order: %v", sess.CallSID, err)
		return conversation.ReplyPersistFailed
	}

	if err := uc.orderRepo.ConfirmOrder(ctx, order.ID); err != nil {
		// The order row exists; leaving it pending is recoverable offline.
		uc.l.Warnf(ctx, "concludeCall: call=%s failed to confirm order %s: %v", sess.CallSID, order.Reference, err)
	}

	uc.l.Infof(ctx, "concludeCall: call=%s order %s persisted with %d items", sess.CallSID, order.Reference, len(order.Items))
	return farewell
}

// forceConclusion ends the conversation outside the normal transition rules
// (turn limit or repeated extraction failures). No order is persisted on this
// path; the status callback classifies the call.
func (uc *implUseCase) forceConclusion(ctx context.Context, sess *conversation.Session, reply string) conversation.ProcessTurnOutput {
	st := sess.State
	st.Stage = conversation.StageConclusion
	st.AddTranscript(conversation.RoleAgent, reply)
	uc.l.Warnf(ctx, "forceConclusion: call=%s turns=%d failures=%d", sess.CallSID, st.TurnCount, st.ConsecutiveFailures)
	return conversation.ProcessTurnOutput{
		Reply:  reply,
		Stage:  conversation.StageConclusion,
		HangUp: true,
	}
}

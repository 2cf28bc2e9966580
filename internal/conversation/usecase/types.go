package usecase

import "restaurant-voice-agent/internal/conversation"

// extractionResult mirrors the JSON contract the extraction service is
// prompted to return. Anything that does not unmarshal into this shape is a
// governed failure turn.
type extractionResult struct {
	Response string            `json:"response"`
	Intent   string            `json:"intent"`
	Action   *extractionAction `json:"action"`
}

type extractionAction struct {
	Type     string   `json:"type"`
	ItemName string   `json:"item_name"`
	Quantity int      `json:"quantity"`
	Notes    []string `json:"notes"`
}

// action converts the extraction payload into a validated Action. Unknown or
// missing action types come back as None; the stage guard is applied later by
// the orchestrator.
func (r extractionResult) action() conversation.Action {
	if r.Action == nil {
		return conversation.Action{Kind: conversation.ActionNone}
	}

	kind := conversation.ActionKind(r.Action.Type)
	switch kind {
	case conversation.ActionAddItem, conversation.ActionAddNotes,
		conversation.ActionRemoveItem, conversation.ActionModifyItem:
	default:
		kind = conversation.ActionNone
	}

	return conversation.Action{
		Kind:     kind,
		Name:     r.Action.ItemName,
		Quantity: r.Action.Quantity,
		Notes:    r.Action.Notes,
	}
}

package conversation

import (
	"fmt"
	"strings"
	"sync"

	"restaurant-voice-agent/internal/model"
)

// NoPending marks an empty pending-clarification slot.
const NoPending = -1

// State is the per-call conversation state. It is owned by exactly one
// Session and mutated only while that session's lock is held.
type State struct {
	Stage      Stage
	Transcript []string // role-tagged utterances, append-only
	OrderItems []model.OrderLineItem

	// PendingClarification indexes the one item awaiting customization
	// notes, or NoPending. It always indexes a live element of OrderItems.
	PendingClarification int

	// OrderReadBack records whether the current order has been read back
	// since the last entry into the review stage.
	OrderReadBack bool

	TurnCount           int
	ConsecutiveFailures int
}

// Session binds a call identifier to its conversation state. The mutex
// serializes turns; the telephony layer delivers one utterance at a time,
// so the lock is only contended by late or duplicate webhooks.
type Session struct {
	CallSID string
	CallID  int64 // database call record id

	mu    sync.Mutex
	State *State
}

// NewSession creates a session in the greeting stage.
func NewSession(callSID string, callID int64) *Session {
	return &Session{
		CallSID: callSID,
		CallID:  callID,
		State: &State{
			Stage:                StageGreeting,
			PendingClarification: NoPending,
		},
	}
}

// Lock acquires the session for one orchestration turn.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session.
func (s *Session) Unlock() { s.mu.Unlock() }

// AddTranscript appends a role-tagged utterance.
func (st *State) AddTranscript(role, text string) {
	st.Transcript = append(st.Transcript, fmt.Sprintf("%s: %s", role, text))
}

// TranscriptText returns the full transcript as one string.
func (st *State) TranscriptText() string {
	return strings.Join(st.Transcript, "\n")
}

// HasItems reports whether the order has at least one line item.
func (st *State) HasItems() bool {
	return len(st.OrderItems) > 0
}

// AddItem appends a line item and returns its index.
func (st *State) AddItem(item model.OrderLineItem) int {
	st.OrderItems = append(st.OrderItems, item)
	return len(st.OrderItems) - 1
}

// PendingItem returns the item awaiting clarification, if any.
func (st *State) PendingItem() (*model.OrderLineItem, bool) {
	if st.PendingClarification == NoPending {
		return nil, false
	}
	return &st.OrderItems[st.PendingClarification], true
}

// SetPending marks the item at idx as awaiting clarification.
func (st *State) SetPending(idx int) {
	st.PendingClarification = idx
}

// ClearPending empties the pending-clarification slot.
func (st *State) ClearPending() {
	st.PendingClarification = NoPending
}

// RemoveItem removes the first item matching name (case-insensitive exact
// match) and reports whether anything was removed. The pending index is kept
// valid: it is cleared if its item is removed and shifted if a preceding
// item is removed.
func (st *State) RemoveItem(name string) bool {
	for i, item := range st.OrderItems {
		if item.MatchesName(name) {
			st.OrderItems = append(st.OrderItems[:i], st.OrderItems[i+1:]...)
			switch {
			case st.PendingClarification == i:
				st.PendingClarification = NoPending
			case st.PendingClarification > i:
				st.PendingClarification--
			}
			return true
		}
	}
	return false
}

// FindItem returns the index of the first item matching name, or -1.
func (st *State) FindItem(name string) int {
	for i, item := range st.OrderItems {
		if item.MatchesName(name) {
			return i
		}
	}
	return -1
}

// OrderSummary returns a short plain-text listing of the order, used as LLM
// context. The caller-facing read-back is composed separately.
func (st *State) OrderSummary() string {
	if !st.HasItems() {
		return "No items in order yet."
	}
	lines := make([]string, 0, len(st.OrderItems))
	for _, item := range st.OrderItems {
		qtyStr := ""
		if item.Quantity > 1 {
			qtyStr = fmt.Sprintf("%dx ", item.Quantity)
		}
		notesStr := ""
		if len(item.Notes) > 0 {
			notesStr = fmt.Sprintf(" (%s)", strings.Join(item.Notes, ", "))
		}
		lines = append(lines, fmt.Sprintf("- %s%s%s", qtyStr, item.Name, notesStr))
	}
	return strings.Join(lines, "\n")
}

// NormalizeUtterance lowercases, trims and strips terminal punctuation from
// an utterance for phrase matching.
func NormalizeUtterance(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.TrimRight(s, ".!?, ")
}

// ContainsAny reports whether the normalized utterance contains any of the
// given phrases.
func ContainsAny(utterance string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(utterance, p) {
			return true
		}
	}
	return false
}

// IsNegativeAck reports whether the whole utterance reduces to a bare "no"
// answer ("no", "none", "no thanks", ...). Partial matches do not count:
// "no onions" is a real note, not a refusal.
func IsNegativeAck(utterance string) bool {
	norm := NormalizeUtterance(utterance)
	for _, p := range NegativeAckPhrases {
		if norm == p {
			return true
		}
	}
	return false
}

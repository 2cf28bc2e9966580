package conversation

import (
	"context"
	"strings"

	"restaurant-voice-agent/internal/menu"
	"restaurant-voice-agent/internal/model"
	pkgLog "restaurant-voice-agent/pkg/log"
)

// Processor applies a stage-validated action to the order held in a session.
// It mutates order items and the pending-clarification slot, nothing else.
type Processor struct {
	menu menu.Repository
	l    pkgLog.Logger
}

// NewProcessor creates an action processor backed by the given menu.
func NewProcessor(menuRepo menu.Repository, l pkgLog.Logger) *Processor {
	return &Processor{menu: menuRepo, l: l}
}

// Outcome reports what the processor did, so the orchestrator can compose
// the right follow-up reply.
type Outcome struct {
	// NeedsClarification is set when an item was added without notes and a
	// customization question should be asked. ClarifyItem is the menu entry
	// (options drive the question wording).
	NeedsClarification bool
	ClarifyItem        menu.Item

	// NotFoundName is set when a remove/modify target was not in the order.
	NotFoundName string

	// Removed reports a successful RemoveItem.
	Removed bool
}

// Apply executes the action against the state. The caller must have already
// validated the action against the stage table; Apply assumes it is legal.
// On UnknownItemError no state is mutated.
func (p *Processor) Apply(ctx context.Context, st *State, action Action, utterance string) (Outcome, error) {
	switch action.Kind {
	case ActionAddItem:
		return p.addItem(ctx, st, action)
	case ActionAddNotes:
		return p.addNotes(ctx, st, action, utterance)
	case ActionRemoveItem:
		return p.removeItem(ctx, st, action)
	case ActionModifyItem:
		return p.modifyItem(ctx, st, action)
	case ActionNone:
		return Outcome{}, nil
	default:
		p.l.Warnf(ctx, "processor: unknown action kind %q treated as none", action.Kind)
		return Outcome{}, nil
	}
}

func (p *Processor) addItem(ctx context.Context, st *State, action Action) (Outcome, error) {
	name := strings.TrimSpace(action.Name)
	if name == "" {
		return Outcome{}, nil
	}

	menuItem, ok, err := p.menu.GetItem(ctx, name)
	if err != nil {
		return Outcome{}, err
	}
	if !ok {
		return Outcome{}, &UnknownItemError{Name: name}
	}

	quantity := action.Quantity
	if quantity < 1 {
		quantity = 1
	}

	item := model.OrderLineItem{
		Name:     menuItem.Name,
		Quantity: quantity,
	}

	if len(action.Notes) > 0 {
		item.Notes = append(item.Notes, action.Notes...)
		st.AddItem(item)
		p.l.Infof(ctx, "processor: added %q qty=%d notes=%v", item.Name, quantity, item.Notes)
		return Outcome{}, nil
	}

	idx := st.AddItem(item)
	st.SetPending(idx)
	p.l.Infof(ctx, "processor: added %q qty=%d, awaiting clarification", item.Name, quantity)
	return Outcome{NeedsClarification: true, ClarifyItem: menuItem}, nil
}

func (p *Processor) addNotes(ctx context.Context, st *State, action Action, utterance string) (Outcome, error) {
	// At most one clarification may be outstanding, so the slot is cleared
	// on every branch.
	defer st.ClearPending()

	item, ok := st.PendingItem()
	if !ok {
		p.l.Warnf(ctx, "processor: add_notes with no pending item, ignored")
		return Outcome{}, nil
	}

	if IsNegativeAck(utterance) {
		p.l.Infof(ctx, "processor: no notes for %q", item.Name)
		return Outcome{}, nil
	}

	notes := action.Notes
	if len(notes) == 0 {
		if text := strings.TrimSpace(utterance); text != "" {
			notes = []string{NormalizeUtterance(text)}
		}
	}
	item.Notes = append(item.Notes, notes...)
	p.l.Infof(ctx, "processor: notes for %q: %v", item.Name, item.Notes)
	return Outcome{}, nil
}

func (p *Processor) removeItem(ctx context.Context, st *State, action Action) (Outcome, error) {
	name := strings.TrimSpace(action.Name)
	if name == "" {
		return Outcome{}, nil
	}

	if st.RemoveItem(name) {
		p.l.Infof(ctx, "processor: removed %q", name)
		return Outcome{Removed: true}, nil
	}
	return Outcome{NotFoundName: name}, nil
}

func (p *Processor) modifyItem(ctx context.Context, st *State, action Action) (Outcome, error) {
	name := strings.TrimSpace(action.Name)
	if name == "" {
		return Outcome{}, nil
	}

	idx := st.FindItem(name)
	if idx == -1 {
		return Outcome{NotFoundName: name}, nil
	}

	// Modify replaces the notes wholesale; empty notes clear them.
	st.OrderItems[idx].Notes = append([]string(nil), action.Notes...)
	p.l.Infof(ctx, "processor: modified %q notes=%v", name, action.Notes)
	return Outcome{}, nil
}

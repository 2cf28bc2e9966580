package conversation

import (
	"context"
	"fmt"
	"math"
	"strings"

	"restaurant-voice-agent/internal/menu"
	"restaurant-voice-agent/internal/model"
)

// Composer renders the deterministic caller-facing texts: the order
// read-back and the customization follow-up question. Read-back wording is
// never delegated to the extraction service, so what the customer is asked
// to confirm is always computed from the order itself.
type Composer struct {
	menu    menu.Repository
	taxRate float64
}

// NewComposer creates a reply composer.
func NewComposer(menuRepo menu.Repository, taxRate float64) *Composer {
	return &Composer{menu: menuRepo, taxRate: taxRate}
}

// ReadBack renders the order listing plus the taxed total. Calling it twice
// with the same items yields byte-identical text.
func (c *Composer) ReadBack(ctx context.Context, items []model.OrderLineItem) (string, error) {
	if len(items) == 0 {
		return ReplyNoItemsYet, nil
	}

	parts := make([]string, 0, len(items))
	var subtotal float64
	for _, item := range items {
		part := ""
		if item.Quantity > 1 {
			part = fmt.Sprintf("%d ", item.Quantity)
		}
		part += item.Name
		if len(item.Notes) > 0 {
			part += " with " + strings.Join(item.Notes, ", ")
		}
		parts = append(parts, part)

		menuItem, ok, err := c.menu.GetItem(ctx, item.Name)
		if err != nil {
			return "", err
		}
		if ok {
			subtotal += menuItem.Price * float64(item.Quantity)
		}
	}

	listing := joinConjunction(parts) + "."
	total := math.Round(subtotal*(1+c.taxRate)*100) / 100
	return fmt.Sprintf(ReplyReadBackFmt, listing, total), nil
}

// ClarifyQuestion renders the follow-up question for an item added without
// notes. Size-valued option sets ask for a size; free-text sets list up to
// three examples.
func (c *Composer) ClarifyQuestion(item menu.Item) string {
	if item.HasSizeOptions() {
		return fmt.Sprintf(ReplySizeQuestionFmt, item.Name)
	}

	question := fmt.Sprintf(ReplyNotesQuestionFmt, item.Name)
	if len(item.Options) > 0 {
		examples := item.Options
		if len(examples) > 3 {
			examples = examples[:3]
		}
		question += fmt.Sprintf(" For example %s.", joinConjunction(examples))
	}
	return question
}

// joinConjunction joins parts as a natural-language list:
// "a", "a and b", "a, b, and c".
func joinConjunction(parts []string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	case 2:
		return parts[0] + " and " + parts[1]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + ", and " + parts[len(parts)-1]
	}
}

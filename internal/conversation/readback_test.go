package conversation

import (
	"context"
	"strings"
	"testing"

	"restaurant-voice-agent/internal/menu"
	"restaurant-voice-agent/internal/model"
)

func TestReadBackEmptyOrder(t *testing.T) {
	c := NewComposer(newStubMenu(), 0.0925)
	got, err := c.ReadBack(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != ReplyNoItemsYet {
		t.Errorf("ReadBack(empty) = %q, want %q", got, ReplyNoItemsYet)
	}
}

func TestReadBackTotalWithTax(t *testing.T) {
	m := newStubMenu(menu.Item{Name: "burger", Price: 10.00})
	c := NewComposer(m, 0.0925)

	items := []model.OrderLineItem{{Name: "burger", Quantity: 1, Notes: []string{"no onions"}}}
	got, err := c.ReadBack(context.Background(), items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(got, "burger") {
		t.Errorf("read-back should contain the item name: %q", got)
	}
	if !strings.Contains(got, "Your total is $10.93.") {
		t.Errorf("read-back should contain the taxed total: %q", got)
	}
	if !strings.Contains(got, "with no onions") {
		t.Errorf("read-back should include the notes: %q", got)
	}
}

func TestReadBackDeterministic(t *testing.T) {
	m := newStubMenu(
		menu.Item{Name: "cheeseburger", Price: 8.99},
		menu.Item{Name: "fries", Price: 3.99},
		menu.Item{Name: "coca cola", Price: 2.99},
	)
	c := NewComposer(m, 0.0925)

	items := []model.OrderLineItem{
		{Name: "cheeseburger", Quantity: 2, Notes: []string{"no onions"}},
		{Name: "fries", Quantity: 1},
		{Name: "coca cola", Quantity: 1, Notes: []string{"large"}},
	}

	first, err := c.ReadBack(context.Background(), items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := c.ReadBack(context.Background(), items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("read-back must be byte-identical:\n%q\n%q", first, second)
	}
}

func TestReadBackListing(t *testing.T) {
	m := newStubMenu(
		menu.Item{Name: "cheeseburger", Price: 8.99},
		menu.Item{Name: "fries", Price: 3.99},
	)
	c := NewComposer(m, 0)

	got, err := c.ReadBack(context.Background(), []model.OrderLineItem{
		{Name: "cheeseburger", Quantity: 2},
		{Name: "fries", Quantity: 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "2 cheeseburger and fries.") {
		t.Errorf("unexpected listing: %q", got)
	}
}

func TestClarifyQuestionSizeOptions(t *testing.T) {
	c := NewComposer(newStubMenu(), 0)

	got := c.ClarifyQuestion(menu.Item{Name: "fries", Options: []string{"small", "medium", "large"}})
	if !strings.Contains(got, "small, medium, or large") {
		t.Errorf("size-valued options should ask for a size: %q", got)
	}
}

func TestClarifyQuestionFreeTextOptions(t *testing.T) {
	c := NewComposer(newStubMenu(), 0)

	got := c.ClarifyQuestion(menu.Item{
		Name:    "cheeseburger",
		Options: []string{"no onions", "extra cheese", "no pickles", "well done"},
	})
	if !strings.Contains(got, "cheeseburger") {
		t.Errorf("question should name the item: %q", got)
	}
	// At most three examples, joined as a conjunction list.
	if !strings.Contains(got, "no onions, extra cheese, and no pickles") {
		t.Errorf("expected first three options as examples: %q", got)
	}
	if strings.Contains(got, "well done") {
		t.Errorf("expected at most three examples: %q", got)
	}
}

package menu

import "context"

// Repository is the read-only menu catalog.
// An absent item is a normal outcome, not an error.
type Repository interface {
	// GetMenu returns the full menu.
	GetMenu(ctx context.Context) (Menu, error)

	// GetItem looks up an item by name (case-insensitive exact match).
	// The bool reports whether the item exists.
	GetItem(ctx context.Context, name string) (Item, bool, error)

	// MenuText returns the menu formatted as plain text for LLM context.
	MenuText(ctx context.Context) (string, error)
}

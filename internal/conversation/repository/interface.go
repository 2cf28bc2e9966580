package repository

import (
	"context"
	"time"

	"restaurant-voice-agent/internal/model"
)

// CallRepository persists call records.
type CallRepository interface {
	// CreateCall inserts a call record, or returns the existing one for the
	// same SID.
	CreateCall(ctx context.Context, callSID string) (model.Call, error)

	// GetCallBySID returns the call for the SID. Zero-value Call (ID == 0)
	// when not found — not-found is not an error.
	GetCallBySID(ctx context.Context, callSID string) (model.Call, error)

	// UpdateCallStatus sets the final status (and optionally the end time).
	UpdateCallStatus(ctx context.Context, callSID string, status model.CallStatus, endedAt *time.Time) error

	// UpdateCallTranscript stores the full transcript.
	UpdateCallTranscript(ctx context.Context, callSID string, transcript string) error
}

// OrderRepository persists completed orders.
type OrderRepository interface {
	// CreateOrder inserts an order with its items and returns it.
	CreateOrder(ctx context.Context, opt CreateOrderOptions) (model.Order, error)

	// ConfirmOrder marks an order confirmed.
	ConfirmOrder(ctx context.Context, orderID int64) error

	// CountOrdersForCall returns how many orders a call produced.
	CountOrdersForCall(ctx context.Context, callID int64) (int, error)

	// ListCallHistory returns recent calls with their orders and items,
	// newest first.
	ListCallHistory(ctx context.Context, limit int) ([]model.Call, error)
}

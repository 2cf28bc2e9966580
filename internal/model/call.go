package model

import "time"

// CallStatus is the persisted lifecycle status of a phone call.
type CallStatus string

const (
	CallStatusInProgress CallStatus = "in_progress"
	CallStatusCompleted  CallStatus = "completed"
	CallStatusFailed     CallStatus = "failed"
)

// TelephonyFailureStatus reports whether a telephony-layer status string
// indicates the call did not complete normally.
func TelephonyFailureStatus(status string) bool {
	switch status {
	case "failed", "busy", "no-answer":
		return true
	}
	return false
}

// Call is the persisted record of a phone call.
type Call struct {
	ID         int64
	CallSID    string
	StartedAt  time.Time
	EndedAt    *time.Time
	Status     CallStatus
	Transcript string
	Orders     []Order
}

// OrderStatus is the persisted status of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
)

// Order is the persisted artifact of a completed call.
type Order struct {
	ID        int64
	CallID    int64
	Reference string // external reference code (uuid)
	Status    OrderStatus
	RawText   string
	CreatedAt time.Time
	Items     []OrderLineItem
}

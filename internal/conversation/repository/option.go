package repository

import "restaurant-voice-agent/internal/model"

// CreateOrderOptions carries everything needed to persist one order.
type CreateOrderOptions struct {
	CallID  int64
	RawText string // full transcript at persistence time
	Items   []model.OrderLineItem
}

package http

import (
	"restaurant-voice-agent/internal/model"
	pkgResponse "restaurant-voice-agent/pkg/response"
)

type callHistoryItem struct {
	CallSID   string                `json:"call_sid"`
	Status    model.CallStatus      `json:"status"`
	StartedAt pkgResponse.DateTime  `json:"started_at"`
	EndedAt   *pkgResponse.DateTime `json:"ended_at,omitempty"`
	Orders    []orderItem           `json:"orders"`
}

type orderItem struct {
	Reference string               `json:"reference"`
	Status    model.OrderStatus    `json:"status"`
	CreatedAt pkgResponse.DateTime `json:"created_at"`
	Items     []orderLineItem      `json:"items"`
}

type orderLineItem struct {
	Name     string   `json:"name"`
	Quantity int      `json:"quantity"`
	Notes    []string `json:"notes,omitempty"`
}

func newCallHistory(calls []model.Call) []callHistoryItem {
	out := make([]callHistoryItem, 0, len(calls))
	for _, call := range calls {
		item := callHistoryItem{
			CallSID:   call.CallSID,
			Status:    call.Status,
			StartedAt: pkgResponse.DateTime(call.StartedAt),
			Orders:    make([]orderItem, 0, len(call.Orders)),
		}
		if call.EndedAt != nil {
			endedAt := pkgResponse.DateTime(*call.EndedAt)
			item.EndedAt = &endedAt
		}
		for _, order := range call.Orders {
			oi := orderItem{
				Reference: order.Reference,
				Status:    order.Status,
				CreatedAt: pkgResponse.DateTime(order.CreatedAt),
				Items:     make([]orderLineItem, 0, len(order.Items)),
			}
			for _, line := range order.Items {
				oi.Items = append(oi.Items, orderLineItem{
					Name:     line.Name,
					Quantity: line.Quantity,
					Notes:    line.Notes,
				})
			}
			item.Orders = append(item.Orders, oi)
		}
		out = append(out, item)
	}
	return out
}

package postgre

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	repo "restaurant-voice-agent/internal/conversation/repository"
	"restaurant-voice-agent/internal/model"
)

// CreateOrder inserts an order with its line items in one transaction and
// returns the created entity.
func (r *implRepository) CreateOrder(ctx context.Context, opt repo.CreateOrderOptions) (model.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "%s begin: %v", r.dsn("CreateOrder"), err)
		return model.Order{}, repo.ErrFailedToInsert
	}
	defer tx.Rollback()

	const orderQuery = `
		INSERT INTO orders (call_id, reference, status, raw_text, created_at)
		VALUES ($1, $2, 'pending', $3, NOW())
		RETURNING id, call_id, reference, status, raw_text, created_at`

	var order model.Order
	err = tx.QueryRowContext(ctx, orderQuery, opt.CallID, uuid.NewString(), opt.RawText).Scan(
		&order.ID, &order.CallID, &order.Reference, &order.Status, &order.RawText, &order.CreatedAt,
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateOrder"), err)
		return model.Order{}, repo.ErrFailedToInsert
	}

	const itemQuery = `
		INSERT INTO order_items (order_id, name, quantity, notes)
		VALUES ($1, $2, $3, $4)`

	for _, item := range opt.Items {
		if _, err := tx.ExecContext(ctx, itemQuery, order.ID, item.Name, item.Quantity, pq.Array(item.Notes)); err != nil {
			r.l.Errorf(ctx, "%s item %q: %v", r.dsn("CreateOrder"), item.Name, err)
			return model.Order{}, repo.ErrFailedToInsert
		}
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "%s commit: %v", r.dsn("CreateOrder"), err)
		return model.Order{}, repo.ErrFailedToInsert
	}

	order.Items = append([]model.OrderLineItem(nil), opt.Items...)
	return order, nil
}

// ConfirmOrder marks an order confirmed.
func (r *implRepository) ConfirmOrder(ctx context.Context, orderID int64) error {
	const query = `UPDATE orders SET status = 'confirmed' WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, orderID); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ConfirmOrder"), err)
		return repo.ErrFailedToUpdate
	}
	return nil
}

// CountOrdersForCall returns how many orders a call produced.
func (r *implRepository) CountOrdersForCall(ctx context.Context, callID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM orders WHERE call_id = $1`

	var total int
	if err := r.db.QueryRowContext(ctx, query, callID).Scan(&total); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CountOrdersForCall"), err)
		return 0, repo.ErrFailedToGet
	}
	return total, nil
}

// ListCallHistory returns recent calls with their orders and items, newest
// first.
func (r *implRepository) ListCallHistory(ctx context.Context, limit int) ([]model.Call, error) {
	const callQuery = `
		SELECT id, call_sid, status, started_at, ended_at, transcript
		FROM calls ORDER BY started_at DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, callQuery, limit)
	if err != nil {
		r.l.Errorf(ctx, "%s calls: %v", r.dsn("ListCallHistory"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	var calls []model.Call
	byID := make(map[int64]int)
	var ids []int64
	for rows.Next() {
		var call model.Call
		var endedAt sql.NullTime
		if err := rows.Scan(&call.ID, &call.CallSID, &call.Status, &call.StartedAt, &endedAt, &call.Transcript); err != nil {
			return nil, repo.ErrFailedToList
		}
		if endedAt.Valid {
			call.EndedAt = &endedAt.Time
		}
		byID[call.ID] = len(calls)
		ids = append(ids, call.ID)
		calls = append(calls, call)
	}
	if len(calls) == 0 {
		return calls, nil
	}

	const orderQuery = `
		SELECT o.id, o.call_id, o.reference, o.status, o.raw_text, o.created_at,
		       i.name, i.quantity, i.notes
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.call_id = ANY($1)
		ORDER BY o.created_at, i.id`

	orderRows, err := r.db.QueryContext(ctx, orderQuery, pq.Array(ids))
	if err != nil {
		r.l.Errorf(ctx, "%s orders: %v", r.dsn("ListCallHistory"), err)
		return nil, repo.ErrFailedToList
	}
	defer orderRows.Close()

	orders := make(map[int64]*model.Order)
	for orderRows.Next() {
		var order model.Order
		var itemName sql.NullString
		var itemQuantity sql.NullInt64
		var notes pq.StringArray
		if err := orderRows.Scan(
			&order.ID, &order.CallID, &order.Reference, &order.Status, &order.RawText, &order.CreatedAt,
			&itemName, &itemQuantity, &notes,
		); err != nil {
			return nil, repo.ErrFailedToList
		}

		existing, ok := orders[order.ID]
		if !ok {
			idx, found := byID[order.CallID]
			if !found {
				continue
			}
			calls[idx].Orders = append(calls[idx].Orders, order)
			existing = &calls[idx].Orders[len(calls[idx].Orders)-1]
			orders[order.ID] = existing
		}
		if itemName.Valid {
			existing.Items = append(existing.Items, model.OrderLineItem{
				Name:     itemName.String,
				Quantity: int(itemQuantity.Int64),
				Notes:    notes,
			})
		}
	}
	return calls, nil
}

package postgre

import (
	"context"
	"database/sql"
	"time"

	repo "restaurant-voice-agent/internal/conversation/repository"
	"restaurant-voice-agent/internal/model"
)

// CreateCall inserts a call row for the SID, or returns the existing row when
// the telephony provider retries the incoming-call webhook.
func (r *implRepository) CreateCall(ctx context.Context, callSID string) (model.Call, error) {
	const query = `
		INSERT INTO calls (call_sid, status, started_at, transcript)
		VALUES ($1, 'in_progress', NOW(), '')
		ON CONFLICT (call_sid) DO UPDATE SET call_sid = EXCLUDED.call_sid
		RETURNING id, call_sid, status, started_at, ended_at, transcript`

	var call model.Call
	var endedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, callSID).Scan(
		&call.ID, &call.CallSID, &call.Status, &call.StartedAt, &endedAt, &call.Transcript,
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateCall"), err)
		return model.Call{}, repo.ErrFailedToInsert
	}
	if endedAt.Valid {
		call.EndedAt = &endedAt.Time
	}
	return call, nil
}

// GetCallBySID retrieves a call by SID.
// Returns zero-value Call (ID == 0) when not found — do NOT return error for not-found.
func (r *implRepository) GetCallBySID(ctx context.Context, callSID string) (model.Call, error) {
	const query = `
		SELECT id, call_sid, status, started_at, ended_at, transcript
		FROM calls WHERE call_sid = $1 LIMIT 1`

	var call model.Call
	var endedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, callSID).Scan(
		&call.ID, &call.CallSID, &call.Status, &call.StartedAt, &endedAt, &call.Transcript,
	)
	if err == sql.ErrNoRows {
		return model.Call{}, nil // not found → zero value, no error
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetCallBySID"), err)
		return model.Call{}, repo.ErrFailedToGet
	}
	if endedAt.Valid {
		call.EndedAt = &endedAt.Time
	}
	return call, nil
}

// UpdateCallStatus sets the final status, and the end time when provided.
func (r *implRepository) UpdateCallStatus(ctx context.Context, callSID string, status model.CallStatus, endedAt *time.Time) error {
	const query = `UPDATE calls SET status = $1, ended_at = COALESCE($2, ended_at) WHERE call_sid = $3`

	var ts sql.NullTime
	if endedAt != nil {
		ts = sql.NullTime{Time: *endedAt, Valid: true}
	}
	if _, err := r.db.ExecContext(ctx, query, status, ts, callSID); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateCallStatus"), err)
		return repo.ErrFailedToUpdate
	}
	return nil
}

// UpdateCallTranscript stores the full transcript for the call.
func (r *implRepository) UpdateCallTranscript(ctx context.Context, callSID string, transcript string) error {
	const query = `UPDATE calls SET transcript = $1 WHERE call_sid = $2`

	if _, err := r.db.ExecContext(ctx, query, transcript, callSID); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateCallTranscript"), err)
		return repo.ErrFailedToUpdate
	}
	return nil
}

package usecase

import (
	"context"
	"time"

	"restaurant-voice-agent/internal/conversation"
	"restaurant-voice-agent/internal/model"
)

// EndCall tears down the session and records the final call status. A call
// that produced no order items is classified failed regardless of what the
// telephony layer reports; a call with items is completed unless the
// telephony status itself is a failure.
func (uc *implUseCase) EndCall(ctx context.Context, callSID string, telephonyStatus string) error {
	now := time.Now()

	var hasItems bool
	var transcript string
	if sess, ok := uc.store.Get(callSID); ok {
		sess.Lock()
		hasItems = sess.State.HasItems()
		transcript = sess.State.TranscriptText()
		sess.Unlock()
		uc.store.Remove(callSID)
	} else if uc.callRepo != nil && uc.orderRepo != nil {
		// Session already gone (restart or duplicate callback); fall back to
		// the persisted record.
		call, err := uc.callRepo.GetCallBySID(ctx, callSID)
		if err == nil && call.ID != 0 {
			if n, cntErr := uc.orderRepo.CountOrdersForCall(ctx, call.ID); cntErr == nil {
				hasItems = n > 0
			}
		}
	}

	status := model.CallStatusCompleted
	if !hasItems || model.TelephonyFailureStatus(telephonyStatus) {
		status = model.CallStatusFailed
	}

	uc.l.Infof(ctx, "EndCall: call=%s telephony=%q status=%s items=%t", callSID, telephonyStatus, status, hasItems)

	if uc.callRepo == nil {
		return nil
	}
	if transcript != "" {
		if err := uc.callRepo.UpdateCallTranscript(ctx, callSID, transcript); err != nil {
			uc.l.Warnf(ctx, "EndCall: call=%s failed to store transcript: %v", callSID, err)
		}
	}
	if err := uc.callRepo.UpdateCallStatus(ctx, callSID, status, &now); err != nil {
		uc.l.Errorf(ctx, "EndCall: call=%s failed to update status: %v", callSID, err)
		return err
	}
	return nil
}

var _ conversation.UseCase = (*implUseCase)(nil)

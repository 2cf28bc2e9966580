package usecase

import (
	"context"
	"fmt"

	"restaurant-voice-agent/internal/conversation"
)

// StartCall creates the session for an inbound call and returns the greeting.
// Creation is idempotent: a retried incoming-call webhook reuses the existing
// session and simply gets the greeting again.
func (uc *implUseCase) StartCall(ctx context.Context, callSID string) (conversation.StartCallOutput, error) {
	greeting := fmt.Sprintf(conversation.ReplyGreetingFmt, uc.restaurant)

	sess, created := uc.store.GetOrCreate(callSID, 0)
	if !created {
		uc.l.Infof(ctx, "StartCall: call=%s session already exists", callSID)
		return conversation.StartCallOutput{Greeting: greeting}, nil
	}

	if uc.callRepo != nil {
		call, err := uc.callRepo.CreateCall(ctx, callSID)
		if err != nil {
			// The conversation still runs; only persistence is degraded.
			uc.l.Warnf(ctx, "StartCall: call=%s failed to create call record: %v", callSID, err)
		} else {
			sess.CallID = call.ID
		}
	}

	sess.Lock()
	sess.State.AddTranscript(conversation.RoleAgent, greeting)
	sess.Unlock()

	uc.l.Infof(ctx, "StartCall: call=%s session created", callSID)
	return conversation.StartCallOutput{Greeting: greeting}, nil
}

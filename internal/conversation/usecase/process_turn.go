package usecase

import (
	"context"
	"fmt"

	"restaurant-voice-agent/internal/conversation"
)

// ProcessTurn drives one orchestration turn: governor admission, intent
// extraction, stage transition, action validation and application, then reply
// composition. Session state is mutated only after the extraction result is
// fully parsed and validated, so an abandoned turn leaves the order intact.
func (uc *implUseCase) ProcessTurn(ctx context.Context, input conversation.ProcessTurnInput) (conversation.ProcessTurnOutput, error) {
	sess, ok := uc.store.Get(input.CallSID)
	if !ok {
		return conversation.ProcessTurnOutput{}, conversation.ErrSessionNotFound
	}

	sess.Lock()
	defer sess.Unlock()
	st := sess.State

	if st.Stage == conversation.StageConclusion {
		// Late webhook for an already-concluded call.
		return conversation.ProcessTurnOutput{
			Reply:  fmt.Sprintf(conversation.ReplyFarewellFmt, uc.restaurant),
			Stage:  st.Stage,
			HangUp: true,
		}, nil
	}

	if !uc.governor.Admit(input.Utterance) {
		uc.l.Infof(ctx, "ProcessTurn: call=%s rejected near-empty utterance", input.CallSID)
		return conversation.ProcessTurnOutput{Reply: conversation.ReplyDidntCatch, Stage: st.Stage}, nil
	}

	st.AddTranscript(conversation.RoleCustomer, input.Utterance)

	if uc.governor.RecordTurn(st) {
		uc.l.Warnf(ctx, "ProcessTurn: call=%s turn limit reached at %d", input.CallSID, st.TurnCount)
		return uc.forceConclusion(ctx, sess, conversation.ReplyTurnLimit), nil
	}

	result, err := uc.extract(ctx, st, input.Utterance)
	if err != nil {
		uc.l.Errorf(ctx, "ProcessTurn: call=%s extraction failed: %v", input.CallSID, err)
		if uc.governor.RecordFailure(st) {
			return uc.forceConclusion(ctx, sess, conversation.ReplyFailureLimit), nil
		}
		st.AddTranscript(conversation.RoleAgent, conversation.ReplyExtractionFailed)
		return conversation.ProcessTurnOutput{Reply: conversation.ReplyExtractionFailed, Stage: st.Stage}, nil
	}
	uc.governor.RecordSuccess(st)

	normalized := conversation.NormalizeUtterance(input.Utterance)

	// Transitions run first: the engine owns control flow, and the action
	// guard below is checked against the stage the turn lands in.
	tr := uc.engine.Next(ctx, conversation.TransitionInput{
		Stage:     st.Stage,
		HasItems:  st.HasItems(),
		Utterance: normalized,
		Intent:    result.Intent,
		Reply:     result.Response,
	})
	st.Stage = tr.Stage
	if tr.ResetReadBack {
		st.OrderReadBack = false
	}
	reply := tr.Reply

	action := result.action()
	if !conversation.ActionAllowed(st.Stage, action.Kind) {
		uc.l.Warnf(ctx, "ProcessTurn: call=%s action %s illegal in stage %s, downgraded to none",
			input.CallSID, action.Kind, st.Stage)
		action = conversation.Action{Kind: conversation.ActionNone}
	}

	outcome, err := uc.processor.Apply(ctx, st, action, input.Utterance)
	if err != nil {
		if unknown, ok := conversation.IsUnknownItem(err); ok {
			reply = fmt.Sprintf(conversation.ReplyUnknownItemFmt, unknown.Name)
		} else {
			uc.l.Errorf(ctx, "ProcessTurn: call=%s action %s failed: %v", input.CallSID, action.Kind, err)
			reply = conversation.ReplyExtractionFailed
		}
	}

	switch {
	case outcome.NeedsClarification:
		reply = uc.composer.ClarifyQuestion(outcome.ClarifyItem)
	case outcome.NotFoundName != "":
		reply = fmt.Sprintf(conversation.ReplyNotInOrderFmt, outcome.NotFoundName)
	}

	hangUp := false
	switch {
	case st.Stage == conversation.StageConclusion:
		// The conclusion edge is the one persistence point per call.
		reply = uc.concludeCall(ctx, sess)
		hangUp = true

	case tr.ReplyCleared && st.Stage == conversation.StageReview && !st.OrderReadBack:
		readBack, rbErr := uc.composer.ReadBack(ctx, st.OrderItems)
		if rbErr != nil {
			uc.l.Errorf(ctx, "ProcessTurn: call=%s read-back failed: %v", input.CallSID, rbErr)
			readBack = conversation.ReplyExtractionFailed
		}
		reply = readBack
		st.OrderReadBack = true
	}

	if reply == "" {
		reply = result.Response
	}

	st.AddTranscript(conversation.RoleAgent, reply)
	return conversation.ProcessTurnOutput{Reply: reply, Stage: st.Stage, HangUp: hangUp}, nil
}

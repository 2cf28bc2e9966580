package conversation

import "context"

// UseCase is the session orchestrator: one method per telephony lifecycle
// signal.
type UseCase interface {
	// StartCall creates (or resumes) the session for a call and returns the
	// greeting to speak.
	StartCall(ctx context.Context, callSID string) (StartCallOutput, error)

	// ProcessTurn drives one orchestration turn for an inbound utterance.
	// It always returns a reply; errors are internal and already recovered
	// into caller-facing wording.
	ProcessTurn(ctx context.Context, input ProcessTurnInput) (ProcessTurnOutput, error)

	// EndCall tears the session down and records the final call status.
	EndCall(ctx context.Context, callSID string, telephonyStatus string) error
}

// StartCallOutput is the result of StartCall.
type StartCallOutput struct {
	Greeting string
}

// ProcessTurnInput is one inbound utterance for a call.
type ProcessTurnInput struct {
	CallSID   string
	Utterance string
}

// ProcessTurnOutput is the reply to speak plus call-control hints.
type ProcessTurnOutput struct {
	Reply string
	Stage Stage

	// HangUp is set once the conversation has concluded; the delivery layer
	// speaks the reply and ends the call.
	HangUp bool
}

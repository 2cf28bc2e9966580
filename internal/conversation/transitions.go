package conversation

import (
	"context"

	pkgLog "restaurant-voice-agent/pkg/log"
)

// Engine decides stage transitions. It is the sole authority over control
// flow: the extraction service proposes an intent, but the engine may force
// a different one and rewrite or clear the reply.
type Engine struct {
	l pkgLog.Logger
}

// NewEngine creates a stage transition engine.
func NewEngine(l pkgLog.Logger) *Engine {
	return &Engine{l: l}
}

// TransitionInput is a read-only snapshot of what the decision depends on.
type TransitionInput struct {
	Stage     Stage
	HasItems  bool
	Utterance string // normalized lowercase
	Intent    string
	Reply     string // reply proposed by extraction/processor layer
}

// TransitionResult is the decided next stage plus reply handling.
type TransitionResult struct {
	Stage  Stage
	Intent string
	Reply  string

	// ReplyCleared asks the orchestrator to substitute a deterministic
	// reply (order read-back or farewell) for the extraction wording.
	ReplyCleared bool

	// ResetReadBack forces a fresh read-back on (re-)entering review.
	ResetReadBack bool
}

// Next evaluates the transition rules in priority order.
func (e *Engine) Next(ctx context.Context, in TransitionInput) TransitionResult {
	out := TransitionResult{Stage: in.Stage, Intent: in.Intent, Reply: in.Reply}

	switch in.Stage {
	case StageGreeting:
		// Unconditional on the first turn after greeting.
		out.Stage = StageOrdering

	case StageOrdering:
		doneOrdering := in.Intent == IntentReviewing || ContainsAny(in.Utterance, DoneOrderingPhrases)
		if !doneOrdering {
			break
		}
		if !in.HasItems {
			e.l.Warnf(ctx, "transition: done-ordering with empty order, staying in ordering")
			out.Reply = ReplyEmptyOrderGuard
			out.Intent = IntentOrdering
			break
		}
		out.Stage = StageReview
		out.Intent = IntentReviewing
		out.Reply = ""
		out.ReplyCleared = true
		out.ResetReadBack = true

	case StageReview:
		wantsRevision := ContainsAny(in.Utterance, RevisionPhrases)
		isConfirming := ContainsAny(in.Utterance, ConfirmationPhrases)

		switch {
		case !in.HasItems:
			// Nothing to confirm; send the caller back to ordering.
			e.l.Warnf(ctx, "transition: review reached with empty order, redirecting to ordering")
			out.Stage = StageOrdering
			out.Intent = IntentOrdering
			out.Reply = ReplyEmptyOrderGuard

		// Revision is checked before confirmation so "yes, actually remove
		// the fries" is not misread as a pure confirmation.
		case wantsRevision && (in.Intent == IntentRevising || !isConfirming):
			out.Stage = StageRevision
			out.Intent = IntentRevising

		case in.Intent == IntentConcluding || isConfirming:
			out.Stage = StageConclusion
			out.Intent = IntentCompleting
			out.Reply = ""
			out.ReplyCleared = true
		}

	case StageRevision:
		doneRevising := in.Intent == IntentReviewing || ContainsAny(in.Utterance, DoneRevisingPhrases)
		if doneRevising {
			out.Stage = StageReview
			out.Intent = IntentReviewing
			out.Reply = ""
			out.ReplyCleared = true
			out.ResetReadBack = true
		}

	case StageConclusion:
		// Terminal: no rule matches.
	}

	if out.Stage != in.Stage {
		e.l.Infof(ctx, "transition: stage %s -> %s", in.Stage, out.Stage)
	}
	return out
}

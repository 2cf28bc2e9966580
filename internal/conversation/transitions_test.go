package conversation

import (
	"context"
	"testing"
)

func TestTransitions(t *testing.T) {
	e := NewEngine(&mockLogger{})

	tests := []struct {
		name          string
		in            TransitionInput
		wantStage     Stage
		wantIntent    string
		wantCleared   bool
		wantReply     string // checked when non-empty
		wantResetRead bool
	}{
		{
			name:       "greeting always advances to ordering",
			in:         TransitionInput{Stage: StageGreeting, Utterance: "hi", Intent: IntentOrdering, Reply: "hello"},
			wantStage:  StageOrdering,
			wantIntent: IntentOrdering,
		},
		{
			name:      "ordering self-loop on plain utterance",
			in:        TransitionInput{Stage: StageOrdering, HasItems: true, Utterance: "a cheeseburger", Intent: IntentAddingItem},
			wantStage: StageOrdering,
		},
		{
			name:          "ordering to review on done phrase",
			in:            TransitionInput{Stage: StageOrdering, HasItems: true, Utterance: "that's all", Intent: IntentOrdering, Reply: "ok"},
			wantStage:     StageReview,
			wantIntent:    IntentReviewing,
			wantCleared:   true,
			wantResetRead: true,
		},
		{
			name:          "ordering to review on reviewing intent",
			in:            TransitionInput{Stage: StageOrdering, HasItems: true, Utterance: "read it back", Intent: IntentReviewing},
			wantStage:     StageReview,
			wantIntent:    IntentReviewing,
			wantCleared:   true,
			wantResetRead: true,
		},
		{
			name:       "ordering to review refused when order empty",
			in:         TransitionInput{Stage: StageOrdering, HasItems: false, Utterance: "that's all", Intent: IntentOrdering, Reply: "ok"},
			wantStage:  StageOrdering,
			wantIntent: IntentOrdering,
			wantReply:  ReplyEmptyOrderGuard,
		},
		{
			name:       "review to revision on revision phrase",
			in:         TransitionInput{Stage: StageReview, HasItems: true, Utterance: "actually remove the fries", Intent: IntentOrdering},
			wantStage:  StageRevision,
			wantIntent: IntentRevising,
		},
		{
			name:       "revision wins over confirmation",
			in:         TransitionInput{Stage: StageReview, HasItems: true, Utterance: "yes, actually remove the fries", Intent: IntentRevising},
			wantStage:  StageRevision,
			wantIntent: IntentRevising,
		},
		{
			name:        "review to conclusion on confirmation",
			in:          TransitionInput{Stage: StageReview, HasItems: true, Utterance: "yes", Intent: IntentOrdering, Reply: "great"},
			wantStage:   StageConclusion,
			wantIntent:  IntentCompleting,
			wantCleared: true,
		},
		{
			name:        "review to conclusion on concluding intent",
			in:          TransitionInput{Stage: StageReview, HasItems: true, Utterance: "we're good", Intent: IntentConcluding},
			wantStage:   StageConclusion,
			wantIntent:  IntentCompleting,
			wantCleared: true,
		},
		{
			name:       "review with empty order redirects to ordering even on yes",
			in:         TransitionInput{Stage: StageReview, HasItems: false, Utterance: "yes", Intent: IntentConcluding},
			wantStage:  StageOrdering,
			wantIntent: IntentOrdering,
			wantReply:  ReplyEmptyOrderGuard,
		},
		{
			name:      "review self-loop on question",
			in:        TransitionInput{Stage: StageReview, HasItems: true, Utterance: "how much is that", Intent: IntentAsking},
			wantStage: StageReview,
		},
		{
			name:          "revision back to review on done phrase",
			in:            TransitionInput{Stage: StageRevision, HasItems: true, Utterance: "that's it", Intent: IntentRevising},
			wantStage:     StageReview,
			wantIntent:    IntentReviewing,
			wantCleared:   true,
			wantResetRead: true,
		},
		{
			name:      "revision self-loop while still revising",
			in:        TransitionInput{Stage: StageRevision, HasItems: true, Utterance: "remove the fries", Intent: IntentRevising},
			wantStage: StageRevision,
		},
		{
			name:      "conclusion is terminal",
			in:        TransitionInput{Stage: StageConclusion, HasItems: true, Utterance: "hello?", Intent: IntentOrdering},
			wantStage: StageConclusion,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := e.Next(context.Background(), tc.in)
			if out.Stage != tc.wantStage {
				t.Errorf("stage = %s, want %s", out.Stage, tc.wantStage)
			}
			if tc.wantIntent != "" && out.Intent != tc.wantIntent {
				t.Errorf("intent = %s, want %s", out.Intent, tc.wantIntent)
			}
			if out.ReplyCleared != tc.wantCleared {
				t.Errorf("replyCleared = %t, want %t", out.ReplyCleared, tc.wantCleared)
			}
			if tc.wantReply != "" && out.Reply != tc.wantReply {
				t.Errorf("reply = %q, want %q", out.Reply, tc.wantReply)
			}
			if out.ResetReadBack != tc.wantResetRead {
				t.Errorf("resetReadBack = %t, want %t", out.ResetReadBack, tc.wantResetRead)
			}
		})
	}
}

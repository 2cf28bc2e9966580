package conversation

// Governor defaults.
const (
	DefaultMaxTurns    = 20
	DefaultMaxFailures = 3

	// MinUtteranceLength is the minimum accepted utterance length. Anything
	// shorter is rejected without counting as a turn.
	MinUtteranceLength = 2
)

// DoneOrderingPhrases signal the customer has finished ordering.
var DoneOrderingPhrases = []string{
	"that's all",
	"that's it",
	"nothing else",
	"i'm done",
	"i'm finished",
	"that's everything",
	"no that's all",
	"no thanks that's all",
}

// RevisionPhrases signal the customer wants to change the order.
// Keep these specific to avoid false positives.
var RevisionPhrases = []string{
	"change",
	"remove",
	"delete",
	"don't want",
	"cancel",
	"take out",
	"take off",
	"take away",
	"actually",
	"wait",
	"hold on",
	"no wait",
}

// ConfirmationPhrases signal the customer is confirming the read-back.
// Checked only after revision phrases, so "yes, actually remove the fries"
// is treated as a revision, not a confirmation.
var ConfirmationPhrases = []string{
	"yes",
	"correct",
	"that's right",
	"sounds good",
	"perfect",
	"that works",
	"looks good",
}

// DoneRevisingPhrases signal the customer has finished revising.
var DoneRevisingPhrases = []string{
	"that's all",
	"that's it",
	"done",
}

// NegativeAckPhrases are bare "no" answers to the notes question. The whole
// utterance must reduce to one of these for the pending item to stay plain.
var NegativeAckPhrases = []string{
	"no",
	"none",
	"nothing",
	"no thanks",
	"no thank you",
	"nope",
	"that's fine",
}

// Canned caller-facing replies.
const (
	ReplyDidntCatch       = "I didn't catch that. Could you repeat?"
	ReplyEmptyOrderGuard  = "I don't see any items in your order yet. What would you like to order?"
	ReplyExtractionFailed = "I'm sorry, I'm having trouble understanding. Could you say that again?"
	ReplyTurnLimit        = "I'm sorry, this is taking longer than expected. Let me transfer you to a team member. Goodbye."
	ReplyFailureLimit     = "I'm having trouble understanding you. Let me transfer you to a team member who can help. Goodbye."
	ReplyPersistFailed    = "I'm sorry, I couldn't save your order. Please call back and we'll take care of you."
	ReplyNoItemsYet       = "No items in order yet. What would you like to order?"
)

// Reply templates (fmt.Sprintf).
const (
	ReplyUnknownItemFmt   = "I don't see '%s' on our menu. Could you try something else?"
	ReplyNotInOrderFmt    = "I don't see %s in your order. Anything else you'd like to change?"
	ReplySizeQuestionFmt  = "Would you like small, medium, or large for the %s?"
	ReplyNotesQuestionFmt = "Any notes for the %s?"
	ReplyGreetingFmt      = "Hello! Thank you for calling %s. What would you like to order today?"
	ReplyFarewellFmt      = "Perfect! Your order is confirmed. Thank you for calling %s. Goodbye!"
	ReplyReadBackFmt      = "Let me read that back: %s Your total is $%.2f. Is that correct?"
)

package conversation

// Stage is the coarse phase of a single call's conversation.
type Stage string

const (
	StageGreeting   Stage = "greeting"
	StageOrdering   Stage = "ordering"
	StageReview     Stage = "review"
	StageRevision   Stage = "revision"
	StageConclusion Stage = "conclusion"
)

func (s Stage) String() string { return string(s) }

// Intent is the extraction service's label for what the caller is doing.
const (
	IntentOrdering   = "ordering"
	IntentAddingItem = "adding_item"
	IntentAsking     = "asking_question"
	IntentReviewing  = "reviewing"
	IntentRevising   = "revising"
	IntentConcluding = "concluding"
	IntentCompleting = "completing"
)

// ActionKind tags the closed set of order-mutating actions.
type ActionKind string

const (
	ActionNone       ActionKind = "none"
	ActionAddItem    ActionKind = "add_item"
	ActionAddNotes   ActionKind = "add_notes"
	ActionRemoveItem ActionKind = "remove_item"
	ActionModifyItem ActionKind = "modify_item"
)

// Action is a structured, stage-validated instruction to mutate the order.
// Fields are interpreted per Kind:
//
//	AddItem:    Name, Quantity, Notes (optional)
//	AddNotes:   Notes (applies to the pending-clarification item)
//	RemoveItem: Name
//	ModifyItem: Name, Notes
//	None:       no fields
type Action struct {
	Kind     ActionKind
	Name     string
	Quantity int
	Notes    []string
}

// stageActions is the fixed table of legal action kinds per stage.
// Anything outside the set is downgraded to None before the processor runs.
var stageActions = map[Stage]map[ActionKind]bool{
	StageGreeting: {
		ActionNone: true,
	},
	StageOrdering: {
		ActionAddItem:  true,
		ActionAddNotes: true,
		ActionNone:     true,
	},
	StageReview: {
		ActionNone: true,
	},
	StageRevision: {
		ActionAddItem:    true,
		ActionRemoveItem: true,
		ActionModifyItem: true,
		ActionAddNotes:   true,
		ActionNone:       true,
	},
	StageConclusion: {
		ActionNone: true,
	},
}

// ActionAllowed reports whether the action kind is legal in the given stage.
func ActionAllowed(stage Stage, kind ActionKind) bool {
	allowed, ok := stageActions[stage]
	return ok && allowed[kind]
}

// Transcript roles.
const (
	RoleCustomer = "Customer"
	RoleAgent    = "Agent"
)

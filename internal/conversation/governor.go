package conversation

import "strings"

// Governor tracks turn count and consecutive failures per session and forces
// a graceful exit past its thresholds. It sits outside the conversational
// stage machine.
type Governor struct {
	maxTurns    int
	maxFailures int
}

// NewGovernor creates a governor; zero limits fall back to the defaults.
func NewGovernor(maxTurns, maxFailures int) *Governor {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	if maxFailures <= 0 {
		maxFailures = DefaultMaxFailures
	}
	return &Governor{maxTurns: maxTurns, maxFailures: maxFailures}
}

// Admit reports whether the utterance is substantial enough to count as a
// turn. Rejected utterances touch no counters.
func (g *Governor) Admit(utterance string) bool {
	return len(strings.TrimSpace(utterance)) >= MinUtteranceLength
}

// RecordTurn increments the turn counter and reports whether the turn limit
// has been reached. At the limit the caller must force conclusion.
func (g *Governor) RecordTurn(st *State) (limitReached bool) {
	st.TurnCount++
	return st.TurnCount >= g.maxTurns
}

// RecordFailure increments the consecutive-failure counter and reports
// whether the failure limit has been reached.
func (g *Governor) RecordFailure(st *State) (limitReached bool) {
	st.ConsecutiveFailures++
	return st.ConsecutiveFailures >= g.maxFailures
}

// RecordSuccess resets the consecutive-failure counter.
func (g *Governor) RecordSuccess(st *State) {
	st.ConsecutiveFailures = 0
}

package rules

import (
	"fmt"
	"strings"
)

// ActionKind identifies every move an actor can send to the engine.
type ActionKind int

const (
	// Base actions.
	ActionIncome ActionKind = iota + 1
	ActionForeignAid
	ActionCoup
	ActionTax
	ActionAssassinate
	ActionExchange
	ActionSteal

	// Challenge responses.
	ActionChallenge
	ActionNoChallenge

	// Counter responses.
	ActionCounter
	ActionNoCounter

	// Discard responses.
	ActionDiscard
	ActionDiscardTwo
)

var actionNames = map[ActionKind]string{
	ActionIncome:      "INCOME",
	ActionForeignAid:  "FOREIGN_AID",
	ActionCoup:        "COUP",
	ActionTax:         "TAX",
	ActionAssassinate: "ASSASSINATE",
	ActionExchange:    "EXCHANGE",
	ActionSteal:       "STEAL",
	ActionChallenge:   "CHALLENGE",
	ActionNoChallenge: "NO_CHALLENGE",
	ActionCounter:     "COUNTER",
	ActionNoCounter:   "NO_COUNTER",
	ActionDiscard:     "DISCARD",
	ActionDiscardTwo:  "DISCARD_TWO",
}

func (a ActionKind) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "UNKNOWN"
}

// ParseActionKind maps an action name (case-insensitive) to its kind.
func ParseActionKind(s string) (ActionKind, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for a, n := range actionNames {
		if n == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

// BaseActions returns the turn-initiating actions.
func BaseActions() []ActionKind {
	return []ActionKind{
		ActionIncome, ActionForeignAid, ActionCoup, ActionTax,
		ActionAssassinate, ActionExchange, ActionSteal,
	}
}

// ChallengeResponses returns the answers to a challenge window.
func ChallengeResponses() []ActionKind {
	return []ActionKind{ActionChallenge, ActionNoChallenge}
}

// CounterResponses returns the answers to a counter window.
func CounterResponses() []ActionKind {
	return []ActionKind{ActionCounter, ActionNoCounter}
}

// DiscardResponses returns the discard actions.
func DiscardResponses() []ActionKind {
	return []ActionKind{ActionDiscard, ActionDiscardTwo}
}

func (a ActionKind) IsBase() bool      { return a >= ActionIncome && a <= ActionSteal }
func (a ActionKind) IsChallenge() bool { return a == ActionChallenge || a == ActionNoChallenge }
func (a ActionKind) IsCounter() bool   { return a == ActionCounter || a == ActionNoCounter }
func (a ActionKind) IsDiscard() bool   { return a == ActionDiscard || a == ActionDiscardTwo }

// Format renders the reply shape an actor must write for this action,
// e.g. "STEAL <target>" or "DISCARD <card1> <card2>".
func (a ActionKind) Format() string {
	switch {
	case RequiresTarget(a):
		return a.String() + " <target>"
	case a == ActionDiscard:
		return a.String() + " <card>"
	case a == ActionDiscardTwo:
		return a.String() + " <card1> <card2>"
	default:
		return a.String()
	}
}

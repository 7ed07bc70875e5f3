// Package rules holds the card and action rule table of the game.
//
// Every other package asks these functions whether an action needs a target,
// can be challenged or countered, and which role justifies or blocks it.
package rules

// RequiresTarget reports whether the action must name another player.
func RequiresTarget(a ActionKind) bool {
	switch a {
	case ActionAssassinate, ActionSteal, ActionCoup:
		return true
	}
	return false
}

// CanBeChallenged reports whether other players may dispute the claimed role.
func CanBeChallenged(a ActionKind) bool {
	switch a {
	case ActionAssassinate, ActionSteal, ActionTax, ActionExchange:
		return true
	}
	return false
}

// CanBeCountered reports whether the action can be blocked.
func CanBeCountered(a ActionKind) bool {
	switch a {
	case ActionAssassinate, ActionSteal, ActionForeignAid:
		return true
	}
	return false
}

// RoleForAction returns the role that justifies the action, if any.
func RoleForAction(a ActionKind) (Role, bool) {
	switch a {
	case ActionTax:
		return RoleDuke, true
	case ActionAssassinate:
		return RoleAssassin, true
	case ActionSteal:
		return RoleCaptain, true
	case ActionExchange:
		return RoleAmbassador, true
	}
	return 0, false
}

// RoleThatCounters returns the role that blocks the action, if any.
func RoleThatCounters(a ActionKind) (Role, bool) {
	switch a {
	case ActionAssassinate:
		return RoleContessa, true
	case ActionSteal:
		return RoleCaptain, true
	case ActionForeignAid:
		return RoleDuke, true
	}
	return 0, false
}

// Cost is the number of coins paid to the treasury when the action executes.
func Cost(a ActionKind) int {
	switch a {
	case ActionAssassinate:
		return 3
	case ActionCoup:
		return 7
	}
	return 0
}

// DiscardCount is the number of cards a discard response must name.
func DiscardCount(a ActionKind) int {
	switch a {
	case ActionDiscard:
		return 1
	case ActionDiscardTwo:
		return 2
	}
	return 0
}

// DefaultResponse picks the passive answer to a task: decline challenges and
// counters, take income, or give up the first cards in hand. ok is false when
// no answer can be formed (e.g. a discard with too few cards).
func DefaultResponse(allowed []ActionKind, hand []Role) (kind ActionKind, cards []Role, ok bool) {
	for _, pref := range []ActionKind{ActionNoChallenge, ActionNoCounter, ActionIncome} {
		for _, a := range allowed {
			if a == pref {
				return a, nil, true
			}
		}
	}
	for _, a := range allowed {
		if n := DiscardCount(a); n > 0 && len(hand) >= n {
			return a, append([]Role(nil), hand[:n]...), true
		}
	}
	return 0, nil, false
}

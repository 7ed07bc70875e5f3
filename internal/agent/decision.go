package agent

import (
	"errors"
	"fmt"
	"strings"

	"coup/internal/engine"
	"coup/internal/protocol"
	"coup/internal/rules"
)

var (
	ErrNoTask        = errors.New("it is not your turn to take an action")
	ErrInvalidAction = errors.New("invalid action name")
	ErrInvalidTarget = errors.New("invalid target player")
	ErrInvalidCard   = errors.New("invalid card to discard")
)

// decide turns the text of an ACTION segment into an Action. The error text
// is shown to the actor itself, so it names what would have been accepted.
func decide(self string, text string, allowed []rules.ActionKind, roster engine.Roster) (protocol.Action, error) {
	if len(allowed) == 0 {
		return protocol.Action{}, ErrNoTask
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return protocol.Action{}, fmt.Errorf("%w: (empty), must be one of %s", ErrInvalidAction, formats(allowed))
	}

	kind, err := rules.ParseActionKind(fields[0])
	if err != nil || !contains(allowed, kind) {
		return protocol.Action{}, fmt.Errorf("%w: %s, must be one of %s", ErrInvalidAction, fields[0], formats(allowed))
	}
	a := protocol.Action{Kind: kind, Sender: self}

	switch {
	case rules.RequiresTarget(kind):
		targets := targetsFor(self, roster)
		if len(fields) < 2 {
			return protocol.Action{}, fmt.Errorf("%w: %s needs a target, must be one of %s",
				ErrInvalidTarget, kind, strings.Join(targets, ", "))
		}
		name := strings.Trim(fields[1], ".,!")
		for _, t := range targets {
			if strings.EqualFold(t, name) {
				a.Target = t
				return a, nil
			}
		}
		return protocol.Action{}, fmt.Errorf("%w: %s, must be one of %s", ErrInvalidTarget, name, strings.Join(targets, ", "))

	case kind.IsDiscard():
		n := rules.DiscardCount(kind)
		hand := roster.Self.Hand
		if len(fields) < n+1 {
			return protocol.Action{}, fmt.Errorf("%w: %s needs %d card(s), must be from %s", ErrInvalidCard, kind, n, cardList(hand))
		}
		left := append([]rules.Role(nil), hand...)
		for _, f := range fields[1 : n+1] {
			r, err := rules.ParseRole(strings.Trim(f, ".,!"))
			i := indexOf(left, r)
			if err != nil || i < 0 {
				return protocol.Action{}, fmt.Errorf("%w: %s, must be from %s", ErrInvalidCard, f, cardList(hand))
			}
			left = append(left[:i], left[i+1:]...)
			a.Cards = append(a.Cards, r)
		}
	}
	return a, nil
}

// targetsFor lists the players self may target.
func targetsFor(self string, roster engine.Roster) []string {
	var out []string
	for _, p := range roster.Players {
		if p.Name != self && p.Active && p.HandSize > 0 {
			out = append(out, p.Name)
		}
	}
	return out
}

func formats(allowed []rules.ActionKind) string {
	out := make([]string, len(allowed))
	for i, a := range allowed {
		out[i] = a.Format()
	}
	return strings.Join(out, ", ")
}

func cardList(hand []rules.Role) string {
	if len(hand) == 0 {
		return "(none)"
	}
	out := make([]string, len(hand))
	for i, r := range hand {
		out[i] = r.String()
	}
	return strings.Join(out, ", ")
}

func contains(kinds []rules.ActionKind, k rules.ActionKind) bool {
	for _, x := range kinds {
		if x == k {
			return true
		}
	}
	return false
}

func indexOf(cards []rules.Role, r rules.Role) int {
	for i, c := range cards {
		if c == r {
			return i
		}
	}
	return -1
}

package engine

// Resolve drives a base action through its challenge, counter and discard
// windows. Each window is a ledger barrier; advance runs when it drains.

import (
	"fmt"

	"coup/internal/rules"
)

// advance moves the turn forward until a window is waiting on replies or the
// turn is over.
func (g *Game) advance() []Event {
	var events []Event
	for g.ledger.Len() == 0 && g.Phase != PhaseGameOver {
		t := g.Turn
		if t == nil {
			return events
		}
		switch t.stage {
		case stageProposed:
			t.stage = stageChallenge
			if rules.CanBeChallenged(t.Action) {
				events = append(events, g.issue(PhaseChallenge, g.others(t.Source),
					fmt.Sprintf("Player %s is attempting to perform action %s. Would you like to challenge that they don't have the required card to perform that action?",
						t.Source.Name, describe(t)),
					rules.ChallengeResponses())...)
			}
		case stageChallenge:
			if !t.Failed && rules.CanBeCountered(t.Action) {
				t.stage = stageCounter
				events = append(events, g.issue(PhaseCounter, g.counterers(t),
					fmt.Sprintf("Player %s is attempting to perform action %s. Would you like to counter their action?",
						t.Source.Name, describe(t)),
					rules.CounterResponses())...)
				continue
			}
			events = append(events, g.execute(t)...)
		case stageCounter, stageCounterChallenge:
			events = append(events, g.execute(t)...)
		case stageExecuted:
			return append(events, g.finishTurn()...)
		}
	}
	return events
}

// counterers returns who may block the action: the target of a STEAL or
// ASSASSINATE, everyone else for FOREIGN_AID.
func (g *Game) counterers(t *TurnRecord) []*Player {
	if rules.RequiresTarget(t.Action) {
		if t.Target != nil && t.Target.InPlay() {
			return []*Player{t.Target}
		}
		return nil
	}
	return g.others(t.Source)
}

// resolveChallenge settles a CHALLENGE at once: sibling tasks of the window
// are withdrawn, the accused either proves the role (and swaps the card) or
// is caught bluffing, and the loser is asked to discard.
func (g *Game) resolveChallenge(challenger *Player, phase GamePhase) []Event {
	t := g.Turn
	events := g.cancel(phase)

	onCounter := phase == PhaseCounterChallenge
	accused := t.Source
	role, _ := rules.RoleForAction(t.Action)
	if onCounter {
		accused = t.Counterer
		role, _ = rules.RoleThatCounters(t.Action)
	}

	var loser *Player
	var prompt, public string
	if accused.Has(role) {
		events = append(events, g.swap(accused, role))
		loser = challenger
		prompt = fmt.Sprintf("You challenged %s on their %s. Unfortunately, they had the %s and you lost the challenge so you must discard a card.",
			accused.Name, claimOf(t, onCounter), role)
		public = fmt.Sprintf("%s challenged %s and lost: %s had the %s.", challenger.Name, accused.Name, accused.Name, role)
	} else {
		loser = accused
		if onCounter {
			t.Blocked = false
		} else {
			t.Failed = true
		}
		prompt = fmt.Sprintf("You were caught in a bluff. You do not have the %s for your %s. You must discard a card.",
			role, claimOf(t, onCounter))
		public = fmt.Sprintf("%s challenged %s and won: %s does not have the %s.", challenger.Name, accused.Name, accused.Name, role)
	}

	events = append(events, Event{Type: EventChallenge, Player: challenger.Name, Data: map[string]interface{}{
		"accused": accused.Name, "role": role.String(), "challenger_won": loser == accused,
	}})
	events = append(events, g.announce(public)...)
	events = append(events, g.RequestDiscard(loser, rules.ActionDiscard, prompt)...)
	return events
}

// declareCounter records the blocker and opens a challenge window on the
// counter claim.
func (g *Game) declareCounter(p *Player) []Event {
	t := g.Turn
	events := g.cancel(PhaseCounter)
	t.Counterer = p
	t.Blocked = true
	t.stage = stageCounterChallenge

	role, _ := rules.RoleThatCounters(t.Action)
	events = append(events, Event{Type: EventCounter, Player: p.Name, Data: map[string]interface{}{
		"action": t.Action.String(), "role": role.String(),
	}})
	events = append(events, g.issue(PhaseCounterChallenge, g.others(p),
		fmt.Sprintf("Player %s is claiming they have the %s and is attempting to counter action %s. Would you like to challenge the counter?",
			p.Name, role, describe(t)),
		rules.ChallengeResponses())...)
	return events
}

// execute applies the action's effect.
func (g *Game) execute(t *TurnRecord) []Event {
	t.stage = stageExecuted
	effect, err := g.Effects.Get(t.Action)
	if err != nil {
		panic(fmt.Sprintf("engine: %v", err))
	}
	events := []Event{{Type: EventExecuted, Player: t.Source.Name, Data: map[string]interface{}{
		"action": describe(t), "suppressed": t.Suppressed(),
	}}}
	return append(events, effect.Apply(g, t, t.Suppressed())...)
}

// discard returns validated cards to the court.
func (g *Game) discard(p *Player, cards []rules.Role) []Event {
	for _, c := range cards {
		p.RemoveFromHand(c)
	}
	g.Deck.Return(cards...)
	return []Event{{Type: EventDiscarded, Player: p.Name, Data: map[string]interface{}{
		"cards": handString(cards), "remaining": len(p.Hand),
	}}}
}

// swap returns a proven card to the court and deals a replacement.
func (g *Game) swap(p *Player, role rules.Role) Event {
	p.RemoveFromHand(role)
	g.Deck.Return(role)
	g.DrawInto(p, 1)
	return Event{Type: EventCardSwapped, Player: p.Name, Data: map[string]interface{}{"role": role.String()}}
}

// finishTurn eliminates empty hands, detects the winner or hands the turn
// to the next active player.
func (g *Game) finishTurn() []Event {
	var events []Event
	for _, p := range g.Players {
		if p.Active && len(p.Hand) == 0 {
			// Announced while still active so the player hears it too.
			events = append(events, g.announce(fmt.Sprintf("Player %s has been eliminated from the game.", p.Name))...)
			p.Active = false
			p.EliminatedTurn = g.TurnNumber
			events = append(events, Event{Type: EventEliminated, Player: p.Name, Data: map[string]interface{}{
				"turn": g.TurnNumber,
			}})
		}
	}

	g.Turn = nil
	if active := g.ActivePlayers(); len(active) <= 1 {
		g.Phase = PhaseGameOver
		if len(active) == 1 {
			g.Winner = active[0].Name
		}
		events = append(events, Event{Type: EventGameOver, Player: g.Winner, Data: map[string]interface{}{
			"turn": g.TurnNumber,
		}})
		return append(events, g.announce(fmt.Sprintf("Player %s has won the game!", g.Winner))...)
	}

	ended := g.TurnNumber
	g.TurnNumber++
	g.TurnIndex = g.nextTurnIndex()
	next := g.Players[g.TurnIndex]
	events = append(events, Event{Type: EventTurnEnd, Player: next.Name, Data: map[string]interface{}{
		"turn": ended,
	}})
	return append(events, g.issue(PhaseAction, []*Player{next},
		fmt.Sprintf("Player %s it is your turn. Choose an action to perform.", next.Name),
		rules.BaseActions())...)
}

func (g *Game) nextTurnIndex() int {
	i := g.TurnIndex
	for {
		i = (i + 1) % len(g.Players)
		if g.Players[i].Active {
			return i
		}
	}
}

func describe(t *TurnRecord) string {
	if t.Target != nil {
		return t.Action.String() + " on " + t.Target.Name
	}
	return t.Action.String()
}

func claimOf(t *TurnRecord, onCounter bool) string {
	if onCounter {
		return "counter to action " + t.Action.String()
	}
	return "action " + describe(t)
}

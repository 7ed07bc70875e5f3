package engine_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"coup/internal/engine"
	"coup/internal/engine/effects"
	"coup/internal/protocol"
	"coup/internal/rules"
)

func newTestGame(t *testing.T, names ...string) *engine.Game {
	t.Helper()
	cfg := engine.SeededConfig(7)
	n := 0
	cfg.NewID = func() string {
		n++
		return fmt.Sprintf("task-%d", n)
	}
	g := engine.NewGame(names, cfg, effects.NewRegistry())
	g.Start()
	if err := g.CheckInvariants(); err != nil {
		t.Fatalf("after start: %v", err)
	}
	return g
}

// deal collects every hand back into the court, hands out the given cards
// and deals 2 fresh cards to every other player.
func deal(t *testing.T, g *engine.Game, hands map[string][]rules.Role) {
	t.Helper()
	for _, p := range g.Players {
		g.Deck.Return(p.Hand...)
		p.Hand = nil
	}
	for name, hand := range hands {
		p := g.GetPlayer(name)
		for _, r := range hand {
			if !g.Deck.Take(r) {
				t.Fatalf("no %s left in the court", r)
			}
			p.Hand = append(p.Hand, r)
		}
	}
	for _, p := range g.Players {
		if _, ok := hands[p.Name]; !ok {
			g.DrawInto(p, 2)
		}
	}
}

func act(t *testing.T, g *engine.Game, sender string, kind rules.ActionKind, args ...string) []engine.Event {
	t.Helper()
	a := protocol.Action{Kind: kind, Sender: sender}
	if rules.RequiresTarget(kind) && len(args) > 0 {
		a.Target = args[0]
	}
	if kind.IsDiscard() {
		for _, s := range args {
			r, err := rules.ParseRole(s)
			if err != nil {
				t.Fatal(err)
			}
			a.Cards = append(a.Cards, r)
		}
	}
	events, err := g.Apply(a)
	if err != nil {
		t.Fatalf("%s: %v", a, err)
	}
	if err := g.CheckInvariants(); err != nil {
		t.Fatalf("after %s: %v", a, err)
	}
	return events
}

// pendingFor lists who the engine waits on, with the first allowed action.
func pendingFor(g *engine.Game) map[string]rules.ActionKind {
	out := make(map[string]rules.ActionKind)
	for _, p := range g.Pending() {
		out[p.Player] = p.Task.Allowed[0]
	}
	return out
}

func expectPending(t *testing.T, g *engine.Game, want map[string]rules.ActionKind) {
	t.Helper()
	got := pendingFor(g)
	if len(got) != len(want) {
		t.Fatalf("pending %v, want %v", got, want)
	}
	for name, kind := range want {
		if got[name] != kind {
			t.Fatalf("pending %v, want %v", got, want)
		}
	}
}

func countEvents(events []engine.Event, typ engine.EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func TestStart(t *testing.T) {
	tests := []struct {
		names    []string
		coins    int
		treasury int
	}{
		{[]string{"A", "B"}, 1, 48},
		{[]string{"A", "B", "C"}, 2, 44},
		{[]string{"A", "B", "C", "D", "E", "F"}, 2, 38},
	}
	for _, tt := range tests {
		g := newTestGame(t, tt.names...)
		if g.Phase != engine.PhaseAction {
			t.Fatalf("expected Action phase, got %s", g.Phase)
		}
		if g.Treasury != tt.treasury {
			t.Errorf("%d players: treasury %d, want %d", len(tt.names), g.Treasury, tt.treasury)
		}
		for _, p := range g.Players {
			if len(p.Hand) != 2 {
				t.Errorf("player %s should have 2 cards, got %d", p.Name, len(p.Hand))
			}
			if p.Coins != tt.coins {
				t.Errorf("player %s should have %d coins, got %d", p.Name, tt.coins, p.Coins)
			}
		}
		expectPending(t, g, map[string]rules.ActionKind{"A": rules.ActionIncome})
	}
}

func TestIncomePassesTurn(t *testing.T) {
	g := newTestGame(t, "A", "B")
	events := act(t, g, "A", rules.ActionIncome)

	if g.GetPlayer("A").Coins != 2 {
		t.Errorf("expected 2 coins, got %d", g.GetPlayer("A").Coins)
	}
	if g.TurnNumber != 2 || g.TurnIndex != 1 {
		t.Errorf("expected turn 2 for B, got turn %d index %d", g.TurnNumber, g.TurnIndex)
	}
	if countEvents(events, engine.EventTurnEnd) != 1 {
		t.Error("expected a turn_end event")
	}
	expectPending(t, g, map[string]rules.ActionKind{"B": rules.ActionIncome})
}

func TestProtocolViolations(t *testing.T) {
	g := newTestGame(t, "A", "B", "C")
	g.Deposit(g.GetPlayer("B"), g.GetPlayer("B").Coins)

	tests := []struct {
		name   string
		action protocol.Action
		want   error
	}{
		{"out of turn", protocol.Action{Kind: rules.ActionIncome, Sender: "B"}, engine.ErrNotYourTurn},
		{"wrong family", protocol.Action{Kind: rules.ActionChallenge, Sender: "A"}, engine.ErrUnexpectedAction},
		{"unknown player", protocol.Action{Kind: rules.ActionIncome, Sender: "Z"}, engine.ErrPlayerNotFound},
		{"self target", protocol.Action{Kind: rules.ActionSteal, Sender: "A", Target: "A"}, engine.ErrInvalidTarget},
		{"missing target", protocol.Action{Kind: rules.ActionSteal, Sender: "A"}, engine.ErrInvalidTarget},
		{"empty purse", protocol.Action{Kind: rules.ActionSteal, Sender: "A", Target: "B"}, engine.ErrNothingToSteal},
		{"coup too poor", protocol.Action{Kind: rules.ActionCoup, Sender: "A", Target: "C"}, engine.ErrNotEnoughCoins},
		{"assassinate too poor", protocol.Action{Kind: rules.ActionAssassinate, Sender: "A", Target: "C"}, engine.ErrNotEnoughCoins},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.Apply(tt.action)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			expectPending(t, g, map[string]rules.ActionKind{"A": rules.ActionIncome})
		})
	}
}

func TestTaxChallenge(t *testing.T) {
	tests := []struct {
		name      string
		hand      []rules.Role
		loser     string
		wantCoins int
	}{
		{"claim holds", []rules.Role{rules.RoleDuke, rules.RoleContessa}, "B", 5},
		{"bluff exposed", []rules.Role{rules.RoleCaptain, rules.RoleContessa}, "A", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, "A", "B", "C")
			deal(t, g, map[string][]rules.Role{
				"A": tt.hand,
				"B": {rules.RoleAssassin, rules.RoleAmbassador},
			})

			act(t, g, "A", rules.ActionTax)
			expectPending(t, g, map[string]rules.ActionKind{"B": rules.ActionChallenge, "C": rules.ActionChallenge})

			events := act(t, g, "B", rules.ActionChallenge)
			expectPending(t, g, map[string]rules.ActionKind{tt.loser: rules.ActionDiscard})

			withdrawn := false
			for _, e := range events {
				if _, ok := e.Message.(protocol.TaskComplete); ok && e.Player == "C" {
					withdrawn = true
				}
			}
			if !withdrawn {
				t.Error("C's challenge task should have been withdrawn")
			}
			if tt.loser == "B" && (len(g.GetPlayer("A").Hand) != 2 || countEvents(events, engine.EventCardSwapped) != 1) {
				t.Error("proven card should be swapped for a new one")
			}

			loser := g.GetPlayer(tt.loser)
			act(t, g, tt.loser, rules.ActionDiscard, loser.Hand[0].String())
			if len(loser.Hand) != 1 {
				t.Errorf("loser should hold 1 card, got %d", len(loser.Hand))
			}
			if got := g.GetPlayer("A").Coins; got != tt.wantCoins {
				t.Errorf("expected A to have %d coins, got %d", tt.wantCoins, got)
			}
			expectPending(t, g, map[string]rules.ActionKind{"B": rules.ActionIncome})
		})
	}
}

func TestWindowsAreSequential(t *testing.T) {
	g := newTestGame(t, "A", "B")
	g.Withdraw(g.GetPlayer("A"), 2)
	deal(t, g, map[string][]rules.Role{"B": {rules.RoleContessa, rules.RoleDuke}})

	act(t, g, "A", rules.ActionAssassinate, "B")
	if g.Phase != engine.PhaseChallenge {
		t.Fatalf("expected Challenge phase, got %s", g.Phase)
	}
	expectPending(t, g, map[string]rules.ActionKind{"B": rules.ActionChallenge})

	act(t, g, "B", rules.ActionNoChallenge)
	if g.Phase != engine.PhaseCounter {
		t.Fatalf("expected Counter phase, got %s", g.Phase)
	}
	expectPending(t, g, map[string]rules.ActionKind{"B": rules.ActionCounter})

	act(t, g, "B", rules.ActionCounter)
	if g.Phase != engine.PhaseCounterChallenge {
		t.Fatalf("expected CounterChallenge phase, got %s", g.Phase)
	}
	expectPending(t, g, map[string]rules.ActionKind{"A": rules.ActionChallenge})

	act(t, g, "A", rules.ActionNoChallenge)
	if got := g.GetPlayer("A").Coins; got != 0 {
		t.Errorf("blocked assassination still costs 3, A has %d coins", got)
	}
	if got := len(g.GetPlayer("B").Hand); got != 2 {
		t.Errorf("blocked target should keep 2 cards, got %d", got)
	}
	expectPending(t, g, map[string]rules.ActionKind{"B": rules.ActionIncome})
}

func TestCounterBluffAndElimination(t *testing.T) {
	g := newTestGame(t, "A", "B")
	g.Withdraw(g.GetPlayer("A"), 2)
	deal(t, g, map[string][]rules.Role{
		"A": {rules.RoleAssassin, rules.RoleDuke},
		"B": {rules.RoleDuke, rules.RoleCaptain},
	})

	act(t, g, "A", rules.ActionAssassinate, "B")
	act(t, g, "B", rules.ActionNoChallenge)
	act(t, g, "B", rules.ActionCounter)
	act(t, g, "A", rules.ActionChallenge)
	expectPending(t, g, map[string]rules.ActionKind{"B": rules.ActionDiscard})

	// Discards must name cards actually held.
	if _, err := g.Apply(protocol.Action{Kind: rules.ActionDiscard, Sender: "B", Cards: []rules.Role{rules.RoleContessa}}); !errors.Is(err, engine.ErrInvalidDiscard) {
		t.Fatalf("expected ErrInvalidDiscard, got %v", err)
	}
	if _, err := g.Apply(protocol.Action{Kind: rules.ActionDiscard, Sender: "B", Cards: []rules.Role{rules.RoleDuke, rules.RoleCaptain}}); !errors.Is(err, engine.ErrInvalidDiscard) {
		t.Fatalf("expected ErrInvalidDiscard, got %v", err)
	}
	expectPending(t, g, map[string]rules.ActionKind{"B": rules.ActionDiscard})

	act(t, g, "B", rules.ActionDiscard, "DUKE")
	// The counter fell, so the assassination goes through.
	expectPending(t, g, map[string]rules.ActionKind{"B": rules.ActionDiscard})

	events := act(t, g, "B", rules.ActionDiscard, "CAPTAIN")
	if countEvents(events, engine.EventEliminated) != 1 || countEvents(events, engine.EventGameOver) != 1 {
		t.Fatal("expected B eliminated and the game over")
	}
	if g.Phase != engine.PhaseGameOver || g.Winner != "A" {
		t.Fatalf("expected A to win, got phase %s winner %q", g.Phase, g.Winner)
	}
	if len(g.Pending()) != 0 {
		t.Errorf("no tasks should remain, got %d", len(g.Pending()))
	}
	if _, err := g.Apply(protocol.Action{Kind: rules.ActionIncome, Sender: "A"}); !errors.Is(err, engine.ErrGameOver) {
		t.Errorf("expected ErrGameOver, got %v", err)
	}

	st := g.Standings()
	if st[0].Name != "A" || st[0].Place != 1 || st[1].Name != "B" || st[1].EliminatedTurn != 1 {
		t.Errorf("unexpected standings %+v", st)
	}
}

func TestCounterHolds(t *testing.T) {
	g := newTestGame(t, "A", "B")
	g.Withdraw(g.GetPlayer("A"), 2)
	deal(t, g, map[string][]rules.Role{
		"A": {rules.RoleAssassin, rules.RoleDuke},
		"B": {rules.RoleContessa, rules.RoleCaptain},
	})

	act(t, g, "A", rules.ActionAssassinate, "B")
	act(t, g, "B", rules.ActionNoChallenge)
	act(t, g, "B", rules.ActionCounter)
	events := act(t, g, "A", rules.ActionChallenge)

	b := g.GetPlayer("B")
	if len(b.Hand) != 2 || countEvents(events, engine.EventCardSwapped) != 1 {
		t.Fatalf("proven Contessa should be swapped, B holds %v", b.Hand)
	}
	expectPending(t, g, map[string]rules.ActionKind{"A": rules.ActionDiscard})

	a := g.GetPlayer("A")
	act(t, g, "A", rules.ActionDiscard, a.Hand[0].String())
	if a.Coins != 0 {
		t.Errorf("blocked assassination still costs 3, A has %d coins", a.Coins)
	}
	if len(a.Hand) != 1 || len(b.Hand) != 2 {
		t.Errorf("expected A with 1 card and B with 2, got %d and %d", len(a.Hand), len(b.Hand))
	}
	expectPending(t, g, map[string]rules.ActionKind{"B": rules.ActionIncome})
}

func TestForeignAidBlocked(t *testing.T) {
	g := newTestGame(t, "A", "B", "C")

	act(t, g, "A", rules.ActionForeignAid)
	expectPending(t, g, map[string]rules.ActionKind{"B": rules.ActionCounter, "C": rules.ActionCounter})

	act(t, g, "B", rules.ActionCounter)
	expectPending(t, g, map[string]rules.ActionKind{"A": rules.ActionChallenge, "C": rules.ActionChallenge})

	act(t, g, "A", rules.ActionNoChallenge)
	act(t, g, "C", rules.ActionNoChallenge)
	if got := g.GetPlayer("A").Coins; got != 2 {
		t.Errorf("blocked foreign aid should not pay, A has %d coins", got)
	}
	expectPending(t, g, map[string]rules.ActionKind{"B": rules.ActionIncome})
}

func TestStealAllowed(t *testing.T) {
	g := newTestGame(t, "A", "B", "C")

	act(t, g, "A", rules.ActionSteal, "C")
	act(t, g, "B", rules.ActionNoChallenge)
	act(t, g, "C", rules.ActionNoChallenge)
	expectPending(t, g, map[string]rules.ActionKind{"C": rules.ActionCounter})

	act(t, g, "C", rules.ActionNoCounter)
	if a, c := g.GetPlayer("A").Coins, g.GetPlayer("C").Coins; a != 4 || c != 0 {
		t.Errorf("expected A 4 and C 0 coins, got %d and %d", a, c)
	}
}

func TestExchange(t *testing.T) {
	g := newTestGame(t, "A", "B")
	deal(t, g, map[string][]rules.Role{"A": {rules.RoleAmbassador, rules.RoleDuke}})

	act(t, g, "A", rules.ActionExchange)
	act(t, g, "B", rules.ActionNoChallenge)
	a := g.GetPlayer("A")
	if len(a.Hand) != 4 {
		t.Fatalf("expected 4 cards while exchanging, got %d", len(a.Hand))
	}
	expectPending(t, g, map[string]rules.ActionKind{"A": rules.ActionDiscardTwo})

	if _, err := g.Apply(protocol.Action{Kind: rules.ActionDiscard, Sender: "A", Cards: a.Hand[:1]}); !errors.Is(err, engine.ErrUnexpectedAction) {
		t.Fatalf("expected ErrUnexpectedAction, got %v", err)
	}
	act(t, g, "A", rules.ActionDiscardTwo, a.Hand[2].String(), a.Hand[3].String())
	if len(a.Hand) != 2 {
		t.Errorf("expected 2 cards after exchange, got %d", len(a.Hand))
	}
	expectPending(t, g, map[string]rules.ActionKind{"B": rules.ActionIncome})
}

func TestCoupEndToEnd(t *testing.T) {
	g := newTestGame(t, "A", "B")
	deal(t, g, map[string][]rules.Role{"B": {rules.RoleContessa}})

	for g.GetPlayer("A").Coins < 7 {
		if _, err := g.Apply(protocol.Action{Kind: rules.ActionCoup, Sender: "A", Target: "B"}); !errors.Is(err, engine.ErrNotEnoughCoins) {
			t.Fatalf("expected ErrNotEnoughCoins, got %v", err)
		}
		act(t, g, "A", rules.ActionIncome)
		act(t, g, "B", rules.ActionIncome)
	}

	act(t, g, "A", rules.ActionCoup, "B")
	expectPending(t, g, map[string]rules.ActionKind{"B": rules.ActionDiscard})
	act(t, g, "B", rules.ActionDiscard, "CONTESSA")

	if g.Winner != "A" {
		t.Fatalf("expected A to win, got %q", g.Winner)
	}
	if got := g.GetPlayer("A").Coins; got != 0 {
		t.Errorf("coup costs 7, A has %d coins", got)
	}
}

func TestEliminatedPlayerIsSkipped(t *testing.T) {
	g := newTestGame(t, "A", "B", "C")
	g.Withdraw(g.GetPlayer("A"), 5)
	deal(t, g, map[string][]rules.Role{"B": {rules.RoleDuke}})

	act(t, g, "A", rules.ActionCoup, "B")
	events := act(t, g, "B", rules.ActionDiscard, "DUKE")
	if countEvents(events, engine.EventEliminated) != 1 {
		t.Fatal("expected B to be eliminated once")
	}
	if g.GetPlayer("B").EliminatedTurn != 1 {
		t.Errorf("expected elimination on turn 1, got %d", g.GetPlayer("B").EliminatedTurn)
	}
	told := false
	for _, e := range events {
		if ev, ok := e.Message.(protocol.GameEvent); ok && e.Player == "B" && strings.Contains(ev.Text, "B has been eliminated") {
			told = true
		}
	}
	if !told {
		t.Error("the eliminated player should hear about their elimination")
	}
	expectPending(t, g, map[string]rules.ActionKind{"C": rules.ActionIncome})

	events = act(t, g, "C", rules.ActionIncome)
	if countEvents(events, engine.EventEliminated) != 0 {
		t.Error("elimination must not repeat")
	}
	expectPending(t, g, map[string]rules.ActionKind{"A": rules.ActionIncome})

	// Eliminated players are not asked to challenge.
	act(t, g, "A", rules.ActionTax)
	expectPending(t, g, map[string]rules.ActionKind{"C": rules.ActionChallenge})
}

func TestForfeit(t *testing.T) {
	g := newTestGame(t, "A", "B", "C")
	act(t, g, "A", rules.ActionTax)

	events := g.Forfeit()
	if countEvents(events, engine.EventForfeit) != 2 {
		t.Errorf("expected 2 forfeits, got %d", countEvents(events, engine.EventForfeit))
	}
	if got := g.GetPlayer("A").Coins; got != 5 {
		t.Errorf("unchallenged tax should pay 3, A has %d coins", got)
	}
	expectPending(t, g, map[string]rules.ActionKind{"B": rules.ActionIncome})

	g.Forfeit()
	if got := g.GetPlayer("B").Coins; got != 3 {
		t.Errorf("forfeited turn should take income, B has %d coins", got)
	}
	if err := g.CheckInvariants(); err != nil {
		t.Fatal(err)
	}
}

func TestSpeak(t *testing.T) {
	g := newTestGame(t, "A", "B", "C")
	events := g.Speak(protocol.Speech{Sender: "B", Text: "I have the Duke."})
	if len(events) != 3 {
		t.Fatalf("expected speech delivered to 3 players, got %d", len(events))
	}
	if g.Speak(protocol.Speech{Sender: "Z", Text: "hello"}) != nil {
		t.Error("unknown speakers are ignored")
	}
}

func TestSnapshotRosterHidesHands(t *testing.T) {
	g := newTestGame(t, "A", "B", "C")
	snap := g.Snapshot()
	if snap.NextPlayer != "A" || snap.DeckSize != 9 || snap.Treasury != 44 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	r := snap.Roster("B")
	if r.Self.Name != "B" || len(r.Self.Hand) != 2 {
		t.Fatalf("roster should show B its own hand, got %+v", r.Self)
	}
	for _, p := range r.Players {
		if p.Hand != nil {
			t.Errorf("roster leaks %s's hand", p.Name)
		}
		if p.HandSize != 2 {
			t.Errorf("expected hand size 2 for %s, got %d", p.Name, p.HandSize)
		}
	}
	if len(snap.Players[0].Hand) != 2 {
		t.Error("roster must not modify the snapshot")
	}
}

func TestLedgerCancel(t *testing.T) {
	l := engine.NewLedger()
	task := func(id string, kinds ...rules.ActionKind) protocol.Task {
		return protocol.Task{ID: id, Allowed: kinds}
	}
	l.Open(
		engine.PendingTask{Player: "A", Phase: engine.PhaseChallenge, Task: task("1", rules.ChallengeResponses()...)},
		engine.PendingTask{Player: "B", Phase: engine.PhaseChallenge, Task: task("2", rules.ChallengeResponses()...)},
		engine.PendingTask{Player: "B", Phase: engine.PhaseDiscard, Task: task("3", rules.ActionDiscard)},
	)
	if len(l.For("B")) != 2 {
		t.Fatalf("expected 2 tasks for B, got %d", len(l.For("B")))
	}
	if pt, ok := l.Match("B", rules.ActionDiscard); !ok || pt.Task.ID != "3" {
		t.Fatalf("expected discard task 3, got %+v", pt)
	}

	cancelled := l.Cancel(engine.PhaseChallenge)
	if len(cancelled) != 2 || l.Len() != 1 || len(l.For("A")) != 0 {
		t.Fatalf("cancel left %d tasks, cancelled %d", l.Len(), len(cancelled))
	}
	if l.Resolve("1") {
		t.Error("cancelled task should not resolve")
	}
	if !l.Resolve("3") || l.Len() != 0 {
		t.Error("expected ledger to drain")
	}
}

func TestDeck(t *testing.T) {
	d := engine.NewDeck(3, engine.SeededConfig(1).Rand)
	if d.Len() != 15 {
		t.Fatalf("expected 15 cards, got %d", d.Len())
	}
	drawn := d.Draw(20)
	if len(drawn) != 15 || d.Len() != 0 {
		t.Fatalf("expected to draw all 15 cards, got %d", len(drawn))
	}
	d.Return(drawn[:4]...)
	if d.Len() != 4 {
		t.Errorf("expected 4 cards after return, got %d", d.Len())
	}
}

func TestSeededDealIsReproducible(t *testing.T) {
	a := newTestGame(t, "A", "B", "C")
	b := newTestGame(t, "A", "B", "C")
	for i := range a.Players {
		if fmt.Sprint(a.Players[i].Hand) != fmt.Sprint(b.Players[i].Hand) {
			t.Fatalf("seeded deals differ for %s", a.Players[i].Name)
		}
	}
}

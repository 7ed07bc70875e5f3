package engine

import (
	"errors"
	"fmt"
	"strings"

	"coup/internal/protocol"
	"coup/internal/rules"
)

var (
	ErrNotYourTurn      = errors.New("not your turn")
	ErrUnexpectedAction = errors.New("unexpected action")
	ErrInvalidTarget    = errors.New("invalid target")
	ErrNothingToSteal   = errors.New("target has no coins to steal")
	ErrNotEnoughCoins   = errors.New("not enough coins")
	ErrInvalidDiscard   = errors.New("invalid discard")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrGameOver         = errors.New("game is over")
)

// Game holds the authoritative game state. It is not safe for concurrent
// use: a single goroutine owns it and feeds it actions one at a time.
type Game struct {
	Players  []*Player       `json:"players"`
	Deck     *Deck           `json:"-"`
	Treasury int             `json:"treasury"`
	Config   GameConfig      `json:"-"`
	Effects  *EffectRegistry `json:"-"`

	Phase      GamePhase   `json:"phase"`
	TurnNumber int         `json:"turn"`
	TurnIndex  int         `json:"turn_index"` // index into Players
	Turn       *TurnRecord `json:"-"`
	Winner     string      `json:"winner,omitempty"`

	ledger *Ledger
}

// NewGame creates a game for the named players. Cards are dealt by Start.
func NewGame(names []string, config GameConfig, effects *EffectRegistry) *Game {
	players := make([]*Player, len(names))
	for i, n := range names {
		players[i] = NewPlayer(n)
	}
	return &Game{
		Players:    players,
		Deck:       NewDeck(config.CopiesPerRole, config.Rand),
		Treasury:   config.Treasury,
		Config:     config,
		Effects:    effects,
		Phase:      PhaseSetup,
		TurnNumber: 1,
		ledger:     NewLedger(),
	}
}

// Apply is the single entry point for actor decisions. A returned error is a
// protocol violation: nothing changed and the sender's task is still open.
func (g *Game) Apply(a protocol.Action) ([]Event, error) {
	if g.Phase == PhaseGameOver {
		return nil, ErrGameOver
	}
	p := g.GetPlayer(a.Sender)
	if p == nil || !p.Active {
		return nil, fmt.Errorf("%w: %q", ErrPlayerNotFound, a.Sender)
	}

	pending, ok := g.ledger.Match(p.Name, a.Kind)
	if !ok {
		if mine := g.ledger.For(p.Name); len(mine) > 0 {
			var allowed []string
			for _, t := range mine {
				allowed = append(allowed, t.Task.AllowedNames()...)
			}
			return nil, fmt.Errorf("%w: %s, send one of %s", ErrUnexpectedAction, a.Kind, strings.Join(allowed, ", "))
		}
		return nil, fmt.Errorf("%w: %s, wait for your turn", ErrNotYourTurn, a.Kind)
	}

	target, err := g.validate(p, a)
	if err != nil {
		return nil, err
	}

	g.ledger.Resolve(pending.Task.ID)
	events := []Event{
		g.deliver(p.Name, protocol.TaskComplete{TaskID: pending.Task.ID}),
		{Type: EventActionAccepted, Player: p.Name, Data: map[string]interface{}{
			"action": a.String(), "phase": pending.Phase.String(),
		}},
	}

	switch {
	case a.Kind.IsBase():
		g.Turn = &TurnRecord{Source: p, Action: a.Kind, Target: target}
	case a.Kind == rules.ActionChallenge:
		events = append(events, g.resolveChallenge(p, pending.Phase)...)
	case a.Kind == rules.ActionCounter:
		events = append(events, g.declareCounter(p)...)
	case a.Kind.IsDiscard():
		events = append(events, g.discard(p, a.Cards)...)
	}

	// NO_CHALLENGE and NO_COUNTER only drain the barrier.
	if g.ledger.Len() == 0 {
		events = append(events, g.advance()...)
	}
	return events, nil
}

func (g *Game) validate(p *Player, a protocol.Action) (*Player, error) {
	var target *Player
	if rules.RequiresTarget(a.Kind) {
		target = g.GetPlayer(a.Target)
		if target == nil || target == p || !target.InPlay() {
			return nil, fmt.Errorf("%w: %q, %s requires one of %s",
				ErrInvalidTarget, a.Target, a.Kind, strings.Join(playerNames(g.others(p)), ", "))
		}
		if a.Kind == rules.ActionSteal && target.Coins == 0 {
			return nil, fmt.Errorf("%w: %s, choose another target or another action", ErrNothingToSteal, target.Name)
		}
	}
	if cost := rules.Cost(a.Kind); p.Coins < cost {
		return nil, fmt.Errorf("%w: %s costs %d coins, you have %d", ErrNotEnoughCoins, a.Kind, cost, p.Coins)
	}
	if n := rules.DiscardCount(a.Kind); n > 0 {
		if len(a.Cards) != n || !p.HoldsAll(a.Cards) {
			return nil, fmt.Errorf("%w: %s needs %d card(s) from your hand: %s",
				ErrInvalidDiscard, a.Kind, n, handString(p.Hand))
		}
	}
	return target, nil
}

// Speak relays a player's speech to every active player, speaker included.
func (g *Game) Speak(s protocol.Speech) []Event {
	if p := g.GetPlayer(s.Sender); p == nil || !p.Active {
		return nil
	}
	var events []Event
	for _, p := range g.ActivePlayers() {
		events = append(events, g.deliver(p.Name, s))
	}
	return events
}

// Forfeit answers every pending task with its default response. It is the
// timeout policy for actors that never reply.
func (g *Game) Forfeit() []Event {
	var events []Event
	for _, pt := range g.ledger.All() {
		if !g.ledger.Has(pt.Task.ID) {
			continue // withdrawn by an earlier default answer
		}
		p := g.GetPlayer(pt.Player)
		kind, cards, ok := rules.DefaultResponse(pt.Task.Allowed, p.Hand)
		if !ok {
			continue
		}
		a := protocol.Action{Kind: kind, Sender: p.Name, Cards: cards}
		evs, err := g.Apply(a)
		if err != nil {
			continue
		}
		events = append(events, Event{Type: EventForfeit, Player: p.Name, Data: map[string]interface{}{
			"action": a.String(),
		}})
		events = append(events, evs...)
	}
	return events
}

// Pending returns the tasks the engine is waiting on.
func (g *Game) Pending() []PendingTask {
	return g.ledger.All()
}

// GetPlayer finds a player by name.
func (g *Game) GetPlayer(name string) *Player {
	for _, p := range g.Players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// ActivePlayers returns the players not yet eliminated, in seat order.
func (g *Game) ActivePlayers() []*Player {
	var out []*Player
	for _, p := range g.Players {
		if p.Active {
			out = append(out, p)
		}
	}
	return out
}

// others returns the players other than p who can still answer tasks.
func (g *Game) others(p *Player) []*Player {
	var out []*Player
	for _, o := range g.Players {
		if o != p && o.InPlay() {
			out = append(out, o)
		}
	}
	return out
}

// Withdraw pays up to n coins from the treasury to p.
func (g *Game) Withdraw(p *Player, n int) int {
	n = min(n, g.Treasury)
	g.Treasury -= n
	p.Coins += n
	return n
}

// Deposit pays up to n coins from p into the treasury.
func (g *Game) Deposit(p *Player, n int) int {
	n = min(n, p.Coins)
	p.Coins -= n
	g.Treasury += n
	return n
}

// Transfer moves up to n coins between players.
func (g *Game) Transfer(from, to *Player, n int) int {
	n = min(n, from.Coins)
	from.Coins -= n
	to.Coins += n
	return n
}

// DrawInto deals up to n court cards into p's hand.
func (g *Game) DrawInto(p *Player, n int) int {
	drawn := g.Deck.Draw(n)
	p.Hand = append(p.Hand, drawn...)
	return len(drawn)
}

// RequestDiscard asks p to give up cards. Players with an empty hand are skipped.
func (g *Game) RequestDiscard(p *Player, kind rules.ActionKind, prompt string) []Event {
	if !p.InPlay() {
		return nil
	}
	return g.issue(PhaseDiscard, []*Player{p}, prompt, []rules.ActionKind{kind})
}

// CheckInvariants verifies card and coin conservation.
func (g *Game) CheckInvariants() error {
	cards, coins := g.Deck.Len(), g.Treasury
	for _, p := range g.Players {
		cards += len(p.Hand)
		coins += p.Coins
		if p.Coins < 0 {
			return fmt.Errorf("player %s has negative coins: %d", p.Name, p.Coins)
		}
	}
	if want := g.Config.CopiesPerRole * len(rules.AllRoles()); cards != want {
		return fmt.Errorf("card count %d, want %d", cards, want)
	}
	if g.Treasury < 0 {
		return fmt.Errorf("negative treasury: %d", g.Treasury)
	}
	if coins != g.Config.Treasury {
		return fmt.Errorf("coin count %d, want %d", coins, g.Config.Treasury)
	}
	return nil
}

// issue opens one task per player for phase, then addresses them all.
func (g *Game) issue(phase GamePhase, players []*Player, prompt string, allowed []rules.ActionKind) []Event {
	g.Phase = phase
	tasks := make([]PendingTask, len(players))
	for i, p := range players {
		tasks[i] = PendingTask{
			Player: p.Name,
			Phase:  phase,
			Task:   protocol.Task{ID: g.Config.NewID(), Prompt: prompt, Allowed: allowed},
		}
	}
	g.ledger.Open(tasks...)

	events := make([]Event, len(tasks))
	for i, t := range tasks {
		events[i] = g.deliver(t.Player, t.Task)
	}
	return events
}

// cancel withdraws every open task of phase.
func (g *Game) cancel(phase GamePhase) []Event {
	var events []Event
	for _, t := range g.ledger.Cancel(phase) {
		events = append(events, g.deliver(t.Player, protocol.TaskComplete{TaskID: t.Task.ID}))
	}
	return events
}

// announce tells every active player about a public game event.
func (g *Game) announce(text string) []Event {
	var events []Event
	for _, p := range g.ActivePlayers() {
		events = append(events, g.deliver(p.Name, protocol.GameEvent{Text: text}))
	}
	return events
}

func (g *Game) deliver(player string, msg protocol.Message) Event {
	return Event{Type: EventMessage, Player: player, Message: msg}
}

func playerNames(players []*Player) []string {
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	return names
}

func handString(hand []rules.Role) string {
	if len(hand) == 0 {
		return "(none)"
	}
	names := make([]string, len(hand))
	for i, r := range hand {
		names[i] = r.String()
	}
	return strings.Join(names, ", ")
}

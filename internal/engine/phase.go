package engine

// GamePhase represents the current phase of the resolution state machine.
type GamePhase int

const (
	PhaseSetup            GamePhase = iota // cards not dealt yet
	PhaseAction                            // waiting for the current player's base action
	PhaseChallenge                         // others may challenge the base action
	PhaseCounter                           // eligible players may counter
	PhaseCounterChallenge                  // others may challenge the counter
	PhaseDiscard                           // waiting for discards
	PhaseGameOver                          // one player left
)

var phaseNames = map[GamePhase]string{
	PhaseSetup:            "Setup",
	PhaseAction:           "Action",
	PhaseChallenge:        "Challenge",
	PhaseCounter:          "Counter",
	PhaseCounterChallenge: "CounterChallenge",
	PhaseDiscard:          "Discard",
	PhaseGameOver:         "GameOver",
}

func (p GamePhase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "Unknown"
}

package agent

import "math/rand/v2"

// Persona is a name and the personality the model is asked to play.
type Persona struct {
	Name        string
	Personality string
}

var names = []string{
	"Alice", "Bob", "Charlie", "David", "Eve", "Frank", "Grace", "Heidi", "Ivan",
	"Judy", "Kevin", "Lily", "Mia", "Nina", "Oliver", "Penny", "Quinn", "Riley",
	"Sara", "Tom", "Ursula", "Violet", "Wendy", "Xander", "Yara", "Zara",
}

var personalities = []string{
	"The Strategist: Calm and collected, they meticulously plan each move. They observe every player's actions and make calculated decisions. Rarely speaks, but when they do, it's with purpose.",
	"The Bluffmaster: Bold and charismatic, they thrive on deception. They lie confidently and often, keeping everyone guessing about their true intentions. Enjoys making big, dramatic moves.",
	"The Analyzer: Analytical and precise, they keep track of every card played and every statement made. Prefers to let others make mistakes and then strike.",
	"The Aggressor: Loud and confrontational, they enjoy taking risks and making bold moves. They often call out bluffs and make others uncomfortable with their aggressive play style.",
	"The Diplomat: Smooth-talking and persuasive, they excel at forming temporary alliances and negotiating deals. They avoid direct conflict and instead manipulate others into doing their bidding.",
	"The Silent Observer: Quiet and reserved, they rarely speak but observe everything. They make unpredictable moves, keeping others on edge.",
	"The Gambler: Thrives on taking risks and making high-stakes plays. Their gameplay is erratic but occasionally brilliant.",
	"The Schemer: Always plotting, they work behind the scenes to influence the game subtly. They enjoy setting traps and watching others fall into them.",
	"The Emotional Player: Highly reactive and driven by emotions. They can be a fierce opponent or a sudden ally, depending on their mood.",
	"The Veteran: Experienced and wise, they have seen many strategies. They offer sage advice (sometimes misleading) and have a knack for predicting others' moves.",
}

// Personas draws n personas with distinct names and distinct personalities.
// n must not exceed the number of personalities.
func Personas(n int, rng *rand.Rand) []Persona {
	ni := rng.Perm(len(names))
	pi := rng.Perm(len(personalities))
	out := make([]Persona, n)
	for i := range out {
		out[i] = Persona{Name: names[ni[i]], Personality: personalities[pi[i]]}
	}
	return out
}

// MaxPersonas is the largest table Personas can seat.
func MaxPersonas() int {
	return min(len(names), len(personalities))
}

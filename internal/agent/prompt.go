package agent

import (
	"fmt"
	"strings"

	"coup/internal/engine"
	"coup/internal/protocol"
)

const gameExplanation = `Here is a brief summary of the game Coup.

### Cards (Roles) with Actions and Blocks
1. **Duke**: Takes 3 coins from the treasury with TAX. Can block FOREIGN_AID.
2. **Assassin**: Pays 3 coins to ASSASSINATE another player, who loses a card.
3. **Captain**: STEALs up to 2 coins from another player. Can block STEAL.
4. **Ambassador**: EXCHANGE draws 2 cards from the court, then returns 2 cards.
5. **Contessa**: Can block ASSASSINATE.

### Additional Actions
- **INCOME**: Take 1 coin. Cannot be blocked or challenged.
- **FOREIGN_AID**: Take 2 coins. Can be blocked by the Duke.
- **COUP**: Pay 7 coins to make another player lose a card. Cannot be blocked or challenged.

### Challenge
If a player believes another player does not have the card they claim, they can challenge them. The loser of the challenge discards a card. A player who proves their card shuffles it back into the court and draws a new one.

### Counteractions
Blocking an action is itself a claim and can be challenged.

### Winning the Game
Be the last player with cards remaining.`

const formatGuide = `Your output should strictly follow this format, with each new line beginning with one of SPEECH, THOUGHT, or ACTION:
SPEECH: <what you want to say to others to manipulate or collaborate with them>
THOUGHT: <thoughts that lead to maximizing your chances of winning>
ACTION: <action name> <target player or cards>

You can output multiple in sequence.
Example 1:
THOUGHT: Since Susan has the most coins, I should target her.
SPEECH: What cards do you think Susan has?

Example 2:
THOUGHT: It looks like Susan doesn't have the Contessa to block my Assassin.
ACTION: ASSASSINATE Susan

Example 3:
THOUGHT: My Duke is probably more valuable than my Captain.
ACTION: DISCARD CAPTAIN

Example 4:
THOUGHT: It's too risky to challenge Susan's STEAL, she likely has the Captain.
ACTION: NO_CHALLENGE`

const chatGuide = `Your output should strictly follow this format, with each new line beginning with one of SPEECH or THOUGHT:
SPEECH: <what you want to say to others>
THOUGHT: <your internal considerations>

It is not your turn at the moment but you can think about your strategy, try to figure out what cards the other players have, and react to other players' actions or words.
You can simply write END if you have nothing to do or say or if there is too much conversation happening.`

// promptData is everything an actor knows when it starts deliberating.
type promptData struct {
	Name        string
	Personality string
	Log         []string
	Roster      engine.Roster
	Tasks       []protocol.Task
	Forced      bool
}

func composePrompt(d promptData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Your name is %s. You are a strategic player in the game of Coup.\n%s\n\n", d.Name, gameExplanation)
	fmt.Fprintf(&b, "Your personality is:\n%s\n\n", d.Personality)

	b.WriteString("Here is the log of conversations, your thoughts and game events:\n")
	for _, line := range d.Log {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	if len(d.Tasks) > 0 {
		b.WriteString(formatGuide)
	} else {
		b.WriteString(chatGuide)
	}
	b.WriteString("\n\nThe following players are in the game:\n")
	for _, p := range d.Roster.Players {
		if !p.Active {
			fmt.Fprintf(&b, "%s has been eliminated.\n", p.Name)
			continue
		}
		fmt.Fprintf(&b, "%s has %d coins with %d cards.\n", p.Name, p.Coins, p.HandSize)
	}

	fmt.Fprintf(&b, "\nHere are your cards:\n%s\n", cardList(d.Roster.Self.Hand))
	fmt.Fprintf(&b, "You have %d coins.\n", d.Roster.Self.Coins)

	if len(d.Tasks) > 0 {
		b.WriteString("\nHere are your tasks:\n")
		for _, t := range d.Tasks {
			fmt.Fprintf(&b, "%s You must NOW output one of the following actions. ACTION: %s\n", t.Prompt, formats(t.Allowed))
		}
	}
	fmt.Fprintf(&b, "\nIt is currently turn %d.\n\n", d.Roster.Turn)

	switch {
	case d.Forced:
		b.WriteString("You have deliberated long enough. Do not use SPEECH or THOUGHT. You must NOW output an ACTION from your task.\n")
	case len(d.Tasks) > 0:
		b.WriteString("- Use SPEECH if you want to influence other players, but don't use it excessively.\n")
		b.WriteString("- Only use THOUGHT if you have an insightful thought that is not already in your log.\n")
		b.WriteString("- Use ACTION if you are ready to commit to a strategic move or if the conversation is getting repetitive.\n")
	default:
		b.WriteString("- Use SPEECH if you want to influence other players, but don't use it excessively.\n")
		b.WriteString("- Only use THOUGHT if you have an insightful thought that is not already in your log.\n")
	}
	b.WriteString("\nStart your output:")
	return b.String()
}

// Package render prints the table to a terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"coup/internal/engine"
	"coup/internal/rules"
)

type cardColors struct {
	fg, bg string
}

var cardPalette = map[rules.Role]cardColors{
	rules.RoleContessa:   {"#6d191c", "#000000"},
	rules.RoleDuke:       {"#632d55", "#000000"},
	rules.RoleAssassin:   {"#0f1011", "#A9A9A9"},
	rules.RoleCaptain:    {"#104894", "#A9A9A9"},
	rules.RoleAmbassador: {"#a59533", "#000000"},
}

var title = cases.Title(language.English)

// Console renders snapshots as tables. Colours are dropped automatically
// when w is not a terminal.
type Console struct {
	w             io.Writer
	r             *lipgloss.Renderer
	personalities map[string]string
}

func NewConsole(w io.Writer, personalities map[string]string) *Console {
	return &Console{w: w, r: lipgloss.NewRenderer(w), personalities: personalities}
}

// Setup prints who is playing and their starting cards.
func (c *Console) Setup(snap engine.Snapshot) {
	rows := make([][]string, 0, len(snap.Players))
	for _, p := range snap.Players {
		persona, _, _ := strings.Cut(c.personalities[p.Name], ":")
		rows = append(rows, []string{p.Name, persona, c.hand(p.Hand)})
	}
	c.print(fmt.Sprintf("%d players, %s goes first", len(snap.Players), snap.NextPlayer),
		c.table([]string{"Player", "Personality", "Cards"}, rows, snap.TurnIndex))
}

// TurnEnd prints coins and cards after a turn, highlighting who plays next.
func (c *Console) TurnEnd(snap engine.Snapshot) {
	rows := make([][]string, 0, len(snap.Players))
	for _, p := range snap.Players {
		cards := "eliminated"
		if p.Active {
			cards = c.hand(p.Hand)
		}
		rows = append(rows, []string{p.Name, fmt.Sprint(p.Coins), cards})
	}
	c.print(fmt.Sprintf("End of Turn %d (treasury %d, court %d)", snap.Turn-1, snap.Treasury, snap.DeckSize),
		c.table([]string{"Player", "Coins", "Cards"}, rows, snap.TurnIndex))
}

// GameOver prints the final standings.
func (c *Console) GameOver(snap engine.Snapshot, standings []engine.StandingEntry) {
	rows := make([][]string, 0, len(standings))
	for _, s := range standings {
		out := "-"
		if s.EliminatedTurn > 0 {
			out = fmt.Sprintf("turn %d", s.EliminatedTurn)
		}
		rows = append(rows, []string{humanize.Ordinal(s.Place), s.Name, fmt.Sprint(s.Coins), out})
	}
	c.print(fmt.Sprintf("Player %s has won the game on turn %d!", snap.Winner, snap.Turn),
		c.table([]string{"Place", "Player", "Coins", "Eliminated"}, rows, 0))
}

func (c *Console) table(headers []string, rows [][]string, highlight int) string {
	header := c.r.NewStyle().Bold(true).Padding(0, 1)
	cell := c.r.NewStyle().Padding(0, 1)
	current := cell.Bold(true).Foreground(lipgloss.Color("5"))

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(c.r.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case row == highlight && col == 0:
				return current
			}
			return cell
		}).
		String()
}

func (c *Console) hand(hand []rules.Role) string {
	cards := make([]string, len(hand))
	for i, r := range hand {
		cards[i] = c.card(r)
	}
	return strings.Join(cards, " ")
}

func (c *Console) card(r rules.Role) string {
	name := title.String(strings.ToLower(r.String()))
	colors, ok := cardPalette[r]
	if !ok {
		return name
	}
	return c.r.NewStyle().
		Foreground(lipgloss.Color(colors.fg)).
		Background(lipgloss.Color(colors.bg)).
		Padding(0, 1).
		Render(name)
}

func (c *Console) print(heading, body string) {
	fmt.Fprintln(c.w)
	fmt.Fprintln(c.w, c.r.NewStyle().Bold(true).Render(heading))
	fmt.Fprintln(c.w, body)
}

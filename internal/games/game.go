package games

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/GriffinCanCode/MiniOS/internal/terminal"
)

// ErrUnknownGame is returned when a name or menu number matches no game
var ErrUnknownGame = errors.New("unknown game")

// Result is the outcome of one play
type Result struct {
	Points int
	Reason string
}

// Game is a playable mini-game
type Game interface {
	Name() string
	Description() string
	Play(ctx context.Context, p terminal.Prompter, out io.Writer) (Result, error)
}

// Registry resolves games by name or menu number. It is immutable after
// construction.
type Registry struct {
	order []Game
}

// NewRegistry creates a registry holding games in menu order
func NewRegistry(games ...Game) *Registry {
	return &Registry{order: append([]Game(nil), games...)}
}

// NewDefaultRegistry creates the standard four games sharing rng and clock
func NewDefaultRegistry(rng *rand.Rand, now func() time.Time) *Registry {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return NewRegistry(
		NewGuess(rng),
		NewMath(rng, now),
		NewMaze(),
		NewTrivia(),
	)
}

// Resolve finds a game by case-insensitive name or 1-based menu number
func (r *Registry) Resolve(choice string) (Game, error) {
	choice = strings.ToLower(strings.TrimSpace(choice))

	for i, g := range r.order {
		if choice == g.Name() || choice == fmt.Sprint(i+1) {
			return g, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownGame, choice, strings.Join(r.Names(), ", "))
}

// Names returns game names in menu order
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	for i, g := range r.order {
		names[i] = g.Name()
	}
	return names
}

// Menu renders the numbered game list
func (r *Registry) Menu() string {
	width := 0
	for _, g := range r.order {
		if len(g.Name()) > width {
			width = len(g.Name())
		}
	}

	var b strings.Builder
	b.WriteString("\n🎮 Available Games:\n")
	for i, g := range r.order {
		fmt.Fprintf(&b, "%d. %-*s - %s\n", i+1, width, g.Name(), g.Description())
	}
	return b.String()
}

// sortedKeys returns map keys in lexical order
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

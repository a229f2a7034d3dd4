package games

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/GriffinCanCode/MiniOS/internal/terminal"
)

const (
	mazeStart   = "start"
	mazeExit    = "exit"
	mazeKeyRoom = "room2"

	mazeBase     = 50
	mazeFloor    = 10
	mazeKeyBonus = 20
)

type room struct {
	description string
	exits       map[string]string
}

var mazeRooms = map[string]room{
	"start": {
		description: "You are at the entrance. Path to EAST.",
		exits:       map[string]string{"east": "room1"},
	},
	"room1": {
		description: "Crossroads. Paths: WEST, EAST, NORTH",
		exits:       map[string]string{"west": "start", "east": "room2", "north": "room3"},
	},
	"room2": {
		description: "Dead end with a key! Go WEST.",
		exits:       map[string]string{"west": "room1"},
	},
	"room3": {
		description: "Path splits. Go SOUTH or EAST",
		exits:       map[string]string{"south": "room1", "east": "exit"},
	},
	"exit": {
		description: "You found the exit! 🎉",
		exits:       map[string]string{"west": "room3"},
	},
}

// Maze is the text adventure
type Maze struct{}

// NewMaze creates the maze game
func NewMaze() *Maze {
	return &Maze{}
}

func (m *Maze) Name() string        { return "maze" }
func (m *Maze) Description() string { return "Text-based maze adventure" }

// Play walks the fixed map until the exit is reached. Score is fifty minus
// two per move, at least ten, plus twenty when the key was picked up.
func (m *Maze) Play(ctx context.Context, p terminal.Prompter, out io.Writer) (Result, error) {
	fmt.Fprintln(out, "\n🧭 Maze Adventure!")
	fmt.Fprintln(out, "Find your way through the maze using commands: north, south, east, west")

	current := mazeStart
	moves := 0
	hasKey := false

	for current != mazeExit {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		r := mazeRooms[current]
		fmt.Fprintf(out, "\n%s\n", r.description)
		line, err := p.Prompt("Which way? ")
		if err != nil {
			return Result{}, err
		}

		next, ok := r.exits[strings.ToLower(strings.TrimSpace(line))]
		if !ok {
			fmt.Fprintf(out, "❌ You can't go that way! Try: %s\n", strings.Join(sortedKeys(r.exits), ", "))
			continue
		}
		current = next
		moves++

		if current == mazeKeyRoom && !hasKey {
			fmt.Fprintln(out, "🔑 You found a golden key!")
			hasKey = true
		}
	}

	points := max(mazeBase-moves*2, mazeFloor)
	fmt.Fprintf(out, "\n%s\n🎉 Congratulations! You escaped in %d moves!\n", mazeRooms[mazeExit].description, moves)
	if hasKey {
		points += mazeKeyBonus
		fmt.Fprintln(out, "🔑 Bonus: You found the golden key!")
	}

	return Result{
		Points: points,
		Reason: fmt.Sprintf("for escaping maze in %d moves", moves),
	}, nil
}


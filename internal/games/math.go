package games

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/GriffinCanCode/MiniOS/internal/terminal"
)

const (
	mathRounds     = 5
	mathOperandMax = 20
)

var mathOperators = []string{"+", "-", "*"}

// Math is the timed arithmetic challenge
type Math struct {
	rng *rand.Rand
	now func() time.Time
}

// NewMath creates the math challenge
func NewMath(rng *rand.Rand, now func() time.Time) *Math {
	return &Math{rng: rng, now: now}
}

func (m *Math) Name() string        { return "math" }
func (m *Math) Description() string { return "Math challenge" }

// Play asks five questions. A correct answer scores ten minus the whole
// seconds taken, at least one; the final award doubles the score.
func (m *Math) Play(ctx context.Context, p terminal.Prompter, out io.Writer) (Result, error) {
	fmt.Fprintln(out, "\n🧮 Math Challenge!")
	fmt.Fprintln(out, "Solve these math problems quickly!")

	score := 0
	for round := 1; round <= mathRounds; round++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		a := m.rng.Intn(mathOperandMax) + 1
		b := m.rng.Intn(mathOperandMax) + 1
		op := mathOperators[m.rng.Intn(len(mathOperators))]
		answer := apply(a, b, op)

		start := m.now()
		line, err := p.Prompt(fmt.Sprintf("\nQ%d: %d %s %d = ? ", round, a, op, b))
		if err != nil {
			return Result{}, err
		}
		elapsed := m.now().Sub(start)

		got, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(out, "❌ Please enter a valid number!")
			continue
		}
		if got != answer {
			fmt.Fprintf(out, "❌ Wrong! Answer was %d\n", answer)
			continue
		}

		points := max(10-int(elapsed.Seconds()), 1)
		score += points
		fmt.Fprintf(out, "✅ Correct! (+%d points, %.1fs)\n", points, elapsed.Seconds())
	}

	fmt.Fprintf(out, "\n🏁 Game over! Final score: %d\n", score)
	return Result{
		Points: score * 2,
		Reason: fmt.Sprintf("for math challenge (score: %d)", score),
	}, nil
}

func apply(a, b int, op string) int {
	switch op {
	case "+":
		return a + b
	case "-":
		return a - b
	default:
		return a * b
	}
}

package games

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"github.com/GriffinCanCode/MiniOS/internal/terminal"
)

const (
	guessMax         = 100
	guessAttempts    = 7
	guessConsolation = 5
)

// Guess is the number guessing game
type Guess struct {
	rng *rand.Rand
}

// NewGuess creates the guessing game
func NewGuess(rng *rand.Rand) *Guess {
	return &Guess{rng: rng}
}

func (g *Guess) Name() string        { return "guess" }
func (g *Guess) Description() string { return "Number guessing game" }

// Play picks a number in [1,100] and allows seven guesses. Non-numeric
// input does not use up an attempt.
func (g *Guess) Play(ctx context.Context, p terminal.Prompter, out io.Writer) (Result, error) {
	fmt.Fprintln(out, "\n🎯 Number Guessing Game!")
	fmt.Fprintf(out, "I'm thinking of a number between 1 and %d...\n", guessMax)

	number := g.rng.Intn(guessMax) + 1
	attempts := 0

	for attempts < guessAttempts {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		line, err := p.Prompt(fmt.Sprintf("\nAttempt %d/%d: Your guess? ", attempts+1, guessAttempts))
		if err != nil {
			return Result{}, err
		}
		guess, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(out, "Please enter a valid number!")
			continue
		}
		attempts++

		switch {
		case guess < number:
			fmt.Fprintln(out, "📈 Too low! Try higher.")
		case guess > number:
			fmt.Fprintln(out, "📉 Too high! Try lower.")
		default:
			fmt.Fprintf(out, "🎉 Correct! You guessed it in %d attempts!\n", attempts)
			return Result{
				Points: max(10-attempts, 1) * 5,
				Reason: fmt.Sprintf("for winning guessing game in %d attempts", attempts),
			}, nil
		}
	}

	fmt.Fprintf(out, "💀 Game over! The number was %d.\n", number)
	return Result{Points: guessConsolation, Reason: "for participating in guessing game"}, nil
}

package games

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/GriffinCanCode/MiniOS/internal/terminal"
)

const triviaPointsPerAnswer = 15

type question struct {
	text    string
	options []string
	answer  string
}

var triviaQuestions = []question{
	{
		text:    "What command shows running processes?",
		options: []string{"A) ls", "B) ps", "C) info", "D) kill"},
		answer:  "B",
	},
	{
		text:    "Which directory contains user files?",
		options: []string{"A) /system", "B) /home", "C) /root", "D) /bin"},
		answer:  "B",
	},
	{
		text:    "What does PID stand for?",
		options: []string{"A) Process ID", "B) Program ID", "C) Process Index", "D) Program Index"},
		answer:  "A",
	},
}

// Trivia is the system knowledge quiz
type Trivia struct {
	questions []question
}

// NewTrivia creates the trivia game
func NewTrivia() *Trivia {
	return &Trivia{questions: triviaQuestions}
}

func (t *Trivia) Name() string        { return "trivia" }
func (t *Trivia) Description() string { return "System knowledge quiz" }

// Play asks every question once; each correct letter scores fifteen.
func (t *Trivia) Play(ctx context.Context, p terminal.Prompter, out io.Writer) (Result, error) {
	fmt.Fprintln(out, "\n🤔 MiniOS Trivia Challenge!")

	score := 0
	for i, q := range t.questions {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		fmt.Fprintf(out, "\nQ%d: %s\n", i+1, q.text)
		for _, opt := range q.options {
			fmt.Fprintf(out, "  %s\n", opt)
		}

		line, err := p.Prompt("Your answer (A/B/C/D): ")
		if err != nil {
			return Result{}, err
		}
		if strings.ToUpper(strings.TrimSpace(line)) == q.answer {
			fmt.Fprintln(out, "✅ Correct!")
			score++
		} else {
			fmt.Fprintf(out, "❌ Wrong! Correct answer was %s\n", q.answer)
		}
	}

	fmt.Fprintf(out, "\n📊 You got %d/%d correct!\n", score, len(t.questions))
	return Result{
		Points: score * triviaPointsPerAnswer,
		Reason: fmt.Sprintf("for trivia knowledge (%d/%d correct)", score, len(t.questions)),
	}, nil
}

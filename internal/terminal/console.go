package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// DefaultMaxLineBytes bounds a single input line, newline included
const DefaultMaxLineBytes = 1 << 20

// ErrLineTooLong is returned for a line over the console limit. The rest
// of the line is discarded and the next Prompt reads the following line.
var ErrLineTooLong = errors.New("input line too long")

// Prompter asks for one line of input
type Prompter interface {
	Prompt(prompt string) (string, error)
}

// Console is a thread-safe line console
type Console struct {
	mu      sync.Mutex
	reader  *bufio.Reader
	maxLine int
	out     io.Writer
}

// ConsoleOption configures a Console
type ConsoleOption func(*Console)

// WithMaxLineBytes overrides the line limit. Non-positive values are ignored.
func WithMaxLineBytes(n int) ConsoleOption {
	return func(c *Console) {
		if n > 0 {
			c.maxLine = n
		}
	}
}

// NewConsole creates a console over in and out
func NewConsole(in io.Reader, out io.Writer, opts ...ConsoleOption) *Console {
	c := &Console{
		reader:  bufio.NewReader(in),
		maxLine: DefaultMaxLineBytes,
		out:     out,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Prompt writes prompt and reads the next line without its newline.
// It returns io.EOF once input is exhausted and ErrLineTooLong for a line
// over the limit; the console stays usable after the latter.
func (c *Console) Prompt(prompt string) (string, error) {
	if prompt != "" {
		if _, err := c.Write([]byte(prompt)); err != nil {
			return "", err
		}
	}
	return c.readLine()
}

// readLine reads through the next newline. Chunks past the limit are
// dropped instead of buffered.
func (c *Console) readLine() (string, error) {
	var (
		line    []byte
		tooLong bool
	)
	for {
		chunk, err := c.reader.ReadSlice('\n')
		if !tooLong {
			if len(line)+len(chunk) > c.maxLine {
				tooLong, line = true, nil
			} else {
				line = append(line, chunk...)
			}
		}

		switch {
		case err == nil:
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			if !tooLong && len(line) == 0 {
				return "", io.EOF
			}
		default:
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		break
	}

	if tooLong {
		return "", fmt.Errorf("%w: limit is %d bytes", ErrLineTooLong, c.maxLine)
	}
	text := strings.TrimSuffix(string(line), "\n")
	return strings.TrimSuffix(text, "\r"), nil
}

// Write writes p atomically with respect to other writers
func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.out.Write(p)
}

// Notify prints a background notification on its own line
func (c *Console) Notify(source, message string) {
	_, _ = fmt.Fprintf(c, "\n[%s] %s\n", source, message)
}

// Script is a Prompter that replays fixed answers, then io.EOF
type Script struct {
	mu      sync.Mutex
	lines   []string
	prompts []string
}

// NewScript creates a script answering with lines in order
func NewScript(lines ...string) *Script {
	return &Script{lines: lines}
}

// Prompt returns the next scripted line
func (s *Script) Prompt(prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prompts = append(s.prompts, prompt)
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

// Prompts returns every prompt shown so far
func (s *Script) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}

// Remaining returns the number of unused answers
func (s *Script) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

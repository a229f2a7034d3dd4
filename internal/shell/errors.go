package shell

import (
	"errors"

	"github.com/GriffinCanCode/MiniOS/internal/domain/process"
	"github.com/GriffinCanCode/MiniOS/internal/domain/session"
	"github.com/GriffinCanCode/MiniOS/internal/domain/vfs"
	"github.com/GriffinCanCode/MiniOS/internal/games"
	"github.com/GriffinCanCode/MiniOS/internal/terminal"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnrecognized    = errors.New("unknown command")
	ErrInternal        = errors.New("internal error")
)

// ErrorKind is the user-facing class of a command failure
type ErrorKind int

const (
	ErrorNone ErrorKind = iota
	ErrorNotFound
	ErrorAlreadyExists
	ErrorWrongKind
	ErrorInvalidArgument
	ErrorUnrecognized
	ErrorInternal
)

// String returns the metrics label of the kind
func (k ErrorKind) String() string {
	switch k {
	case ErrorNone:
		return "ok"
	case ErrorNotFound:
		return "not_found"
	case ErrorAlreadyExists:
		return "already_exists"
	case ErrorWrongKind:
		return "wrong_kind"
	case ErrorInvalidArgument:
		return "invalid_argument"
	case ErrorUnrecognized:
		return "unrecognized"
	default:
		return "internal"
	}
}

// Classify maps an error from any layer onto an ErrorKind
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrorNone
	case errors.Is(err, vfs.ErrNotFound), errors.Is(err, process.ErrNotFound):
		return ErrorNotFound
	case errors.Is(err, vfs.ErrAlreadyExists):
		return ErrorAlreadyExists
	case errors.Is(err, vfs.ErrNotAFile), errors.Is(err, vfs.ErrNotADirectory):
		return ErrorWrongKind
	case errors.Is(err, ErrInvalidArgument),
		errors.Is(err, session.ErrInvalidArgument),
		errors.Is(err, vfs.ErrInvalidPattern),
		errors.Is(err, games.ErrUnknownGame),
		errors.Is(err, terminal.ErrLineTooLong):
		return ErrorInvalidArgument
	case errors.Is(err, ErrUnrecognized):
		return ErrorUnrecognized
	default:
		return ErrorInternal
	}
}

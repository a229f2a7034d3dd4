package vfs

import "errors"

var (
	ErrNotFound       = errors.New("no such file or directory")
	ErrAlreadyExists  = errors.New("file already exists")
	ErrNotAFile       = errors.New("not a file")
	ErrNotADirectory  = errors.New("not a directory")
	ErrInvalidPattern = errors.New("invalid glob pattern")
)

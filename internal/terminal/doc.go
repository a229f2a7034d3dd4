/*
Package terminal is the line-oriented console the shell runs on.

A Console reads one line per prompt and serializes writes, so background
notifications and command output never interleave mid-line. Script is a
canned Prompter for tests.
*/
package terminal

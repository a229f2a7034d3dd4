/*
Package shell parses command lines and routes them to handlers.

Every non-empty line is recorded in history and nudges the simulated
vitals before it runs. Successful commands earn points from a fixed
table; games earn whatever they report. Handler panics are recovered and
reported as internal errors so the session keeps running.
*/
package shell

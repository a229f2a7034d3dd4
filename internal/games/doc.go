/*
Package games implements the shell's mini-games.

Each game talks to the player through a terminal.Prompter, writes its
narration to an io.Writer and returns the points it earned. Awarding the
points is left to the caller.
*/
package games

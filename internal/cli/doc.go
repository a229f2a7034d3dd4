/*
Package cli runs an interactive MiniOS session on a terminal.

It boots the session, handles login, starts the health monitor and the
optional status server, and then feeds input lines to the dispatcher
until exit or end of input.
*/
package cli

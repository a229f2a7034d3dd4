/*
Package monitor implements the background health monitor.

The monitor runs as the session's system_health process. On every tick it
may emit one status notification; it only observes the session and never
changes its vitals.
*/
package monitor

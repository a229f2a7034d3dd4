// Package session provides the state of one MiniOS shell session.
//
// A Session owns the virtual filesystem and the process table for its whole
// lifetime, together with the user identity, the point total, simulated
// vitals and a bounded command history.
//
// Components:
//   - Session: identity, points, vitals, history, lifecycle
//   - History: ring buffer of raw command lines
//   - Profile: persisted point total, stored as JSON in the filesystem
//   - Report: exportable summary in JSON, YAML or TOML
//
// Point Economy:
//   - Award only ever adds; negative awards are rejected
//   - Every award is written through to /system/profiles/<user>
//   - Rank and NextMilestone are pure functions of the total
//
// Concurrency:
//   - One mutex guards all session fields
//   - Lock order is Session, then filesystem or process table
//
// Example Usage:
//
//	s, err := session.New(session.WithLogger(logger))
//	err = s.Login("guest")
//	total, err := s.Award(3, "for file creation")
//	err = s.Shutdown()
package session

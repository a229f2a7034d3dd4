// Package logging wraps zap for the shell and its status server.
//
// The interactive terminal owns stdout, so logs always go to stderr or a
// file. Production mode writes JSON; development mode writes colored
// console lines. Components take a child logger via Named and tag it with
// the shared field helpers:
//
//	log := logger.Named("session").With(logging.Session(id), logging.User("guest"))
//	log.Info("Points awarded", zap.Int("points", 5))
package logging

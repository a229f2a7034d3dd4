// Package auth verifies shell logins against a static user directory.
package auth

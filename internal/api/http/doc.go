// Package http serves the read-only status endpoints.
package http

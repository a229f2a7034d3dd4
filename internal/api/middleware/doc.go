// Package middleware provides the gin middleware used by the status API.
package middleware

// Package ws streams session events to websocket clients.
package ws

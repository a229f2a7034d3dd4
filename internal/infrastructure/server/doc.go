/*
Package server wires the status API: gin router, middleware, HTTP
handlers and the websocket event stream.
*/
package server

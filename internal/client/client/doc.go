// Package client implements the HTTP/JSON contract of the moderation backend
// and the bootstrap of the local session database.
package client

/*
Package randx generates the unique identifiers used across the server.
*/
package randx

import "github.com/google/uuid"

// MessageID returns a time-ordered UUID (version 7) for a chat message.
// It falls back to a random UUID if the v7 generator fails.
func MessageID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// ConnectionID returns a random UUID identifying one live transport connection.
func ConnectionID() string {
	return uuid.NewString()
}

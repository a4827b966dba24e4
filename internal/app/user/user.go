/*
Package user defines chat accounts and the store contract used by signup and login.

The session core never consults accounts: once connected, a client is identified by the
username it supplies when joining a room.
*/
package user

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned by Store.FindByUsername when no account matches.
	ErrNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned by Store.Create when the username already exists.
	ErrUsernameTaken = errors.New("username already taken")
)

// Account is a registered chat user.
type Account struct {
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string
	CreatedAt    time.Time
}

// Profile is the public view of an Account returned to clients.
type Profile struct {
	Username  string `json:"username"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

// Profile returns the public view of a.
func (a Account) Profile() Profile {
	return Profile{
		Username:  a.Username,
		FirstName: a.FirstName,
		LastName:  a.LastName,
	}
}

// Normalize trims surrounding whitespace from the name fields.
func (a Account) Normalize() Account {
	a.Username = strings.TrimSpace(a.Username)
	a.FirstName = strings.TrimSpace(a.FirstName)
	a.LastName = strings.TrimSpace(a.LastName)
	return a
}

// Store persists accounts.
type Store interface {
	// FindByUsername returns ErrNotFound when the account does not exist.
	FindByUsername(ctx context.Context, username string) (Account, error)

	// Create returns ErrUsernameTaken on a duplicate username.
	Create(ctx context.Context, account Account) (Account, error)
}

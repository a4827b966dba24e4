package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"roomchat/internal/app/chat"
	"roomchat/internal/app/user"
	"roomchat/internal/pkg/randx"
)

// DBTX is the subset of pgxpool.Pool, pgx.Conn and pgx.Tx used by Queries.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries implements user.Store and chat.MessageStore on PostgreSQL.
type Queries struct {
	db DBTX
}

var (
	_ user.Store        = (*Queries)(nil)
	_ chat.MessageStore = (*Queries)(nil)
)

// New returns Queries running on db.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

const findUserByUsername = `
SELECT username, firstname, lastname, password_hash, created_at
FROM users
WHERE username = $1`

// FindByUsername implements user.Store.
func (q *Queries) FindByUsername(ctx context.Context, username string) (user.Account, error) {
	var a user.Account
	err := q.db.QueryRow(ctx, findUserByUsername, username).
		Scan(&a.Username, &a.FirstName, &a.LastName, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.Account{}, user.ErrNotFound
		}
		return user.Account{}, fmt.Errorf("find user %q: %w", username, err)
	}
	return a, nil
}

const createUser = `
INSERT INTO users (username, firstname, lastname, password_hash)
VALUES ($1, $2, $3, $4)
RETURNING created_at`

// Create implements user.Store.
func (q *Queries) Create(ctx context.Context, a user.Account) (user.Account, error) {
	err := q.db.QueryRow(ctx, createUser, a.Username, a.FirstName, a.LastName, a.PasswordHash).
		Scan(&a.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return user.Account{}, user.ErrUsernameTaken
		}
		return user.Account{}, fmt.Errorf("create user %q: %w", a.Username, err)
	}
	return a, nil
}

const insertGroupMessage = `
INSERT INTO group_messages (id, from_user, room, message, date_sent)
VALUES ($1, $2, $3, $4, $5)`

// InsertMessage implements chat.MessageStore. The id is a time-ordered UUID.
func (q *Queries) InsertMessage(ctx context.Context, msg chat.Message) (chat.Message, error) {
	msg.ID = randx.MessageID()

	if _, err := q.db.Exec(ctx, insertGroupMessage, msg.ID, msg.FromUser, msg.Room, msg.Body, msg.DateSent); err != nil {
		return chat.Message{}, fmt.Errorf("insert message into %q: %w", msg.Room, err)
	}
	return msg, nil
}

const recentGroupMessages = `
SELECT id::text, from_user, room, message, date_sent
FROM group_messages
WHERE room = $1
ORDER BY seq DESC
LIMIT $2`

// RecentMessages implements chat.MessageStore, newest first.
func (q *Queries) RecentMessages(ctx context.Context, room string, limit int) ([]chat.Message, error) {
	rows, err := q.db.Query(ctx, recentGroupMessages, room, limit)
	if err != nil {
		return nil, fmt.Errorf("query messages of %q: %w", room, err)
	}

	msgs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (chat.Message, error) {
		var m chat.Message
		err := row.Scan(&m.ID, &m.FromUser, &m.Room, &m.Body, &m.DateSent)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan messages of %q: %w", room, err)
	}
	return msgs, nil
}

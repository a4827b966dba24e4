package chat

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// DefaultHistoryLimit is the number of messages delivered on join when none is configured.
const DefaultHistoryLimit = 50

// ErrEmptyMessage is returned by Persister.Append for blank text.
var ErrEmptyMessage = errors.New("message body is empty")

// MessageStore is the durable log of room messages.
type MessageStore interface {
	// InsertMessage stores msg, assigns its ID and returns the stored record.
	InsertMessage(ctx context.Context, msg Message) (Message, error)

	// RecentMessages returns up to limit messages of room, newest first.
	RecentMessages(ctx context.Context, room string, limit int) ([]Message, error)
}

// History fetches the recent messages delivered to a joining client.
type History struct {
	store MessageStore
	limit int
}

// NewHistory returns a fetcher that loads at most limit messages per room.
func NewHistory(store MessageStore, limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{store: store, limit: limit}
}

// Recent returns the latest messages of room, oldest first.
func (h *History) Recent(ctx context.Context, room string) ([]Message, error) {
	msgs, err := h.store.RecentMessages(ctx, room, h.limit)
	if err != nil {
		return nil, fmt.Errorf("query recent messages: %w", err)
	}

	if len(msgs) > h.limit {
		msgs = msgs[:h.limit]
	}

	out := make([]Message, len(msgs))
	copy(out, msgs)
	slices.Reverse(out)
	return out, nil
}

// Persister stamps and stores outgoing messages.
type Persister struct {
	store MessageStore
	loc   *time.Location
	now   func() time.Time
}

// NewPersister returns a persister rendering date_sent in loc.
func NewPersister(store MessageStore, loc *time.Location) *Persister {
	if loc == nil {
		loc = time.Local
	}
	return &Persister{store: store, loc: loc, now: time.Now}
}

// Append trims text, stores it as a message from sender in room and returns the stored record.
func (p *Persister) Append(ctx context.Context, sender, room, text string) (Message, error) {
	body := strings.TrimSpace(text)
	if body == "" {
		return Message{}, ErrEmptyMessage
	}

	stored, err := p.store.InsertMessage(ctx, Message{
		FromUser: sender,
		Room:     room,
		Body:     body,
		DateSent: FormatDateSent(p.now().In(p.loc)),
	})
	if err != nil {
		return Message{}, fmt.Errorf("insert message: %w", err)
	}

	return stored, nil
}

package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"roomchat/internal/app/chat"
	"roomchat/internal/app/user"
	"roomchat/internal/configs"
	"roomchat/internal/pkg/resp"
)

const testSecret = "test-secret"

// memAccounts is an in-memory user.Store.
type memAccounts struct {
	mu       sync.Mutex
	accounts map[string]user.Account
}

func newMemAccounts() *memAccounts {
	return &memAccounts{accounts: make(map[string]user.Account)}
}

func (s *memAccounts) FindByUsername(_ context.Context, username string) (user.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[username]
	if !ok {
		return user.Account{}, user.ErrNotFound
	}
	return a, nil
}

func (s *memAccounts) Create(_ context.Context, a user.Account) (user.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[a.Username]; ok {
		return user.Account{}, user.ErrUsernameTaken
	}
	a.CreatedAt = time.Now()
	s.accounts[a.Username] = a
	return a, nil
}

// memMessages is an in-memory chat.MessageStore.
type memMessages struct {
	mu   sync.Mutex
	msgs []chat.Message
}

func (s *memMessages) InsertMessage(_ context.Context, msg chat.Message) (chat.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg.ID = fmt.Sprintf("msg-%d", len(s.msgs)+1)
	s.msgs = append(s.msgs, msg)
	return msg, nil
}

func (s *memMessages) RecentMessages(_ context.Context, room string, limit int) ([]chat.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []chat.Message
	for i := len(s.msgs) - 1; i >= 0 && len(out) < limit; i-- {
		if s.msgs[i].Room == room {
			out = append(out, s.msgs[i])
		}
	}
	return out, nil
}

func newTestDeps(t *testing.T) *AppDeps {
	t.Helper()

	cfg := &configs.AppConfig{
		Environment:  "development",
		JWTSecret:    testSecret,
		Rooms:        configs.DefaultRooms,
		HistoryLimit: chat.DefaultHistoryLimit,
		Location:     time.UTC,
	}

	manager := chat.NewManager(cfg, &memMessages{})
	t.Cleanup(manager.Shutdown)

	return &AppDeps{
		Manager:  manager,
		Config:   cfg,
		Accounts: newMemAccounts(),
	}
}

// doRequest runs one request through h and decodes the response envelope.
func doRequest(t *testing.T, h http.Handler, r *http.Request) (int, resp.JSONResponse) {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	var body resp.JSONResponse
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec.Code, body
}

// dataOf re-decodes the Data field of an envelope into T.
func dataOf[T any](t *testing.T, body resp.JSONResponse) T {
	t.Helper()

	raw, err := json.Marshal(body.Data)
	require.NoError(t, err)

	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomchat/internal/configs"
	"roomchat/internal/pkg/errs"
)

type stubPeer struct{ id string }

func (p stubPeer) ID() string            { return p.id }
func (p stubPeer) Deliver(_ []byte) bool { return true }
func (p stubPeer) Close()                {}

func TestHealth(t *testing.T) {
	h := Router(newTestDeps(t))

	code, body := doRequest(t, h, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, code)
	assert.True(t, body.Success)
	assert.Equal(t, "ok", dataOf[map[string]any](t, body)["status"])
}

func TestListRooms(t *testing.T) {
	h := Router(newTestDeps(t))

	code, body := doRequest(t, h, httptest.NewRequest(http.MethodGet, "/api/rooms", nil))

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, body.Code)
	assert.Equal(t, configs.DefaultRooms, dataOf[struct{ Rooms []string }](t, body).Rooms)
}

func TestRoomMembers(t *testing.T) {
	deps := newTestDeps(t)
	h := Router(deps)

	deps.Manager.Connect(stubPeer{"c1"})
	require.NoError(t, deps.Manager.Join(context.Background(), "c1", "alice", "cloud computing"))

	code, body := doRequest(t, h, httptest.NewRequest(http.MethodGet, "/api/rooms/cloud%20computing", nil))
	require.Equal(t, http.StatusOK, code)

	data := dataOf[struct {
		Room    string
		Members []string
	}](t, body)
	assert.Equal(t, "cloud computing", data.Room)
	assert.Equal(t, []string{"alice"}, data.Members)

	code, body = doRequest(t, h, httptest.NewRequest(http.MethodGet, "/api/rooms/sports", nil))
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, dataOf[struct{ Members []string }](t, body).Members)

	code, body = doRequest(t, h, httptest.NewRequest(http.MethodGet, "/api/rooms/gardening", nil))
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, errs.ErrRoomNotFound, body.Code)
	assert.False(t, body.Success)

	code, body = doRequest(t, h, httptest.NewRequest(http.MethodGet, "/api/rooms/%20", nil))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, errs.ErrInvalidParams, body.Code)
}

func TestStaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>chat</h1>"), 0o600))

	deps := newTestDeps(t)
	deps.Config.StaticDir = dir
	h := Router(deps)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>chat</h1>")
}

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"roomchat/internal/app/user"
	"roomchat/internal/pkg/auth/jwt"
	"roomchat/internal/pkg/errs"
)

type identityData struct {
	Token string
	User  user.Profile
}

func jsonRequest(path, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestSignup(t *testing.T) {
	deps := newTestDeps(t)
	h := Router(deps)

	code, body := doRequest(t, h, jsonRequest("/api/signup",
		`{"username":" alice ","firstname":"Alice","lastname":"Liddell","password":"wonderland"}`))
	require.Equal(t, http.StatusOK, code, body.Message)

	data := dataOf[identityData](t, body)
	assert.Equal(t, user.Profile{Username: "alice", FirstName: "Alice", LastName: "Liddell"}, data.User)

	payload, err := jwt.ParseToken(data.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "alice", payload.Username)

	stored, err := deps.Accounts.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("wonderland")))

	code, body = doRequest(t, h, jsonRequest("/api/signup",
		`{"username":"alice","firstname":"A","lastname":"L","password":"x"}`))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, errs.ErrUserAlreadyExists, body.Code)
	assert.Equal(t, "Username already taken", body.Message)

	code, body = doRequest(t, h, jsonRequest("/api/signup",
		`{"username":"bob","firstname":"  ","lastname":"B","password":"x"}`))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, errs.ErrMissingSignupFields, body.Code)

	form := url.Values{"username": {"carol"}, "firstname": {"Carol"}, "lastname": {"C"}, "password": {"pw"}}
	r := httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	code, body = doRequest(t, h, r)
	require.Equal(t, http.StatusOK, code, body.Message)
	assert.Equal(t, "carol", dataOf[identityData](t, body).User.Username)
}

func TestSignupRejectsUnsupportedBody(t *testing.T) {
	h := Router(newTestDeps(t))

	r := httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader("username=alice"))
	r.Header.Set("Content-Type", "text/plain")

	code, body := doRequest(t, h, r)
	assert.Equal(t, http.StatusUnsupportedMediaType, code)
	assert.Equal(t, errs.ErrUnsupportedMediaType, body.Code)
}

func TestLogin(t *testing.T) {
	deps := newTestDeps(t)
	h := Router(deps)

	hash, err := bcrypt.GenerateFromPassword([]byte("wonderland"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = deps.Accounts.Create(context.Background(), user.Account{
		Username: "alice", FirstName: "Alice", LastName: "Liddell", PasswordHash: string(hash),
	})
	require.NoError(t, err)

	code, body := doRequest(t, h, jsonRequest("/api/login", `{"username":"alice","password":"nope"}`))
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid username or password", body.Message)

	code, _ = doRequest(t, h, jsonRequest("/api/login", `{"username":"mallory","password":"wonderland"}`))
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body = doRequest(t, h, jsonRequest("/api/login", `{"username":"alice","password":"wonderland"}`))
	require.Equal(t, http.StatusOK, code, body.Message)

	data := dataOf[identityData](t, body)
	assert.Equal(t, user.Profile{Username: "alice", FirstName: "Alice", LastName: "Liddell"}, data.User)
	require.NotEmpty(t, data.Token)

	r := jsonRequest("/api/login", `{"username":"alice","password":"wonderland"}`)
	r.Header.Set("Authorization", "Bearer "+data.Token)
	code, body = doRequest(t, h, r)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, errs.ErrAlreadyLoggedIn, body.Code)
}

func TestLoginTrimsUsername(t *testing.T) {
	deps := newTestDeps(t)
	h := Router(deps)

	hash, err := bcrypt.GenerateFromPassword([]byte("wonderland"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = deps.Accounts.Create(context.Background(), user.Account{
		Username: "alice", FirstName: "Alice", LastName: "Liddell", PasswordHash: string(hash),
	})
	require.NoError(t, err)

	code, body := doRequest(t, h, jsonRequest("/api/login", `{"username":" alice ","password":"wonderland"}`))
	require.Equal(t, http.StatusOK, code, body.Message)
	assert.Equal(t, "alice", dataOf[identityData](t, body).User.Username)

	code, _ = doRequest(t, h, jsonRequest("/api/login", `{"username":"alice","password":" wonderland "}`))
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body = doRequest(t, h, jsonRequest("/api/login", `{"username":"   ","password":"wonderland"}`))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, errs.ErrMissingCredentials, body.Code)
}

func TestLoginRateLimited(t *testing.T) {
	h := Router(newTestDeps(t))

	var last int
	for i := 0; i < AuthBurst+1; i++ {
		last, _ = doRequest(t, h, jsonRequest("/api/login", `{"username":"","password":""}`))
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

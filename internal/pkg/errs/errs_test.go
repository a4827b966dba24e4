package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewErrorReturnsTemplateCopy(t *testing.T) {
	e := NewError(ErrUserAlreadyExists)

	assert.Equal(t, ErrUserAlreadyExists, e.Code)
	assert.Equal(t, "Username already taken", e.Message)
	assert.Equal(t, http.StatusBadRequest, e.Status)

	e.Message = "mutated"
	assert.Equal(t, "Username already taken", NewError(ErrUserAlreadyExists).Message)
}

func TestNewErrorUnknownCodeFallsBack(t *testing.T) {
	e := NewError(424242)

	assert.Equal(t, ErrUnknown, e.Code)
	assert.Equal(t, http.StatusInternalServerError, e.Status)
}

func TestNewErrorUnknownWithCause(t *testing.T) {
	e := NewError(ErrUnknown, errors.New("db down"))

	assert.Equal(t, ErrUnknown, e.Code)
	assert.NotContains(t, e.Message, "db down")
}

func TestCustomErrorIsError(t *testing.T) {
	var err error = NewError(ErrInvalidCredentials)

	var target *CustomError
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, http.StatusUnauthorized, target.Status)
	assert.Contains(t, err.Error(), "3104")
}

func TestEveryCodeHasStatus(t *testing.T) {
	for code, tmpl := range errorMap {
		assert.Equal(t, code, tmpl.Code)
		assert.NotZero(t, tmpl.Status, "code %d", code)
		assert.NotEmpty(t, tmpl.Message, "code %d", code)
	}
}

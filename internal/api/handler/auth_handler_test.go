package handler

import (
	"net/http"
	"testing"
	"todo_api/internal/common/security"
	"todo_api/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Created(t *testing.T) {
	srv := newTestServer(&fakeUserRepo{}, &fakeTodoRepo{})

	resp := srv.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "jane_doe",
		"email":    "Jane@Example.com",
		"password": "Secret123",
	})

	require.Equal(t, http.StatusCreated, resp.Code)
	out := decodeEnvelope(t, resp)
	assert.Equal(t, true, out["success"])
	assert.NotEmpty(t, out["token"])

	data := out["data"].(map[string]any)
	assert.Equal(t, "jane_doe", data["username"])
	assert.Equal(t, "jane@example.com", data["email"])
	assert.NotEmpty(t, data["id"])

	assert.NotContains(t, resp.Body.String(), "password", "no password material in the response")
}

func TestRegister_ValidationFailure(t *testing.T) {
	srv := newTestServer(&fakeUserRepo{}, &fakeTodoRepo{})

	resp := srv.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "bad name!",
		"email":    "not-an-email",
		"password": "x",
	})

	require.Equal(t, http.StatusBadRequest, resp.Code)
	out := decodeEnvelope(t, resp)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "Validation failed", out["message"])

	errs := out["errors"].([]any)
	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.(map[string]any)["field"].(string)] = true
	}
	assert.True(t, fields["username"])
	assert.True(t, fields["email"])
	assert.True(t, fields["password"])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &fakeUserRepo{byEmail: map[string]*model.User{
		"jane@example.com": {ID: "u1", Email: "jane@example.com"},
	}}
	srv := newTestServer(repo, &fakeTodoRepo{})

	resp := srv.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "jane_doe",
		"email":    "jane@example.com",
		"password": "Secret123",
	})

	require.Equal(t, http.StatusBadRequest, resp.Code)
	out := decodeEnvelope(t, resp)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "email already registered", out["message"])
}

func TestLogin_UnknownEmailIsNotFound(t *testing.T) {
	srv := newTestServer(&fakeUserRepo{}, &fakeTodoRepo{})

	resp := srv.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "Secret123",
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestLogin_WrongPasswordIsUnauthorized(t *testing.T) {
	hash, err := security.HashPassword("Secret123", 4)
	require.NoError(t, err)
	repo := &fakeUserRepo{byEmail: map[string]*model.User{
		"jane@example.com": {ID: "u1", Email: "jane@example.com", HashedPassword: hash},
	}}
	srv := newTestServer(repo, &fakeTodoRepo{})

	resp := srv.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "jane@example.com",
		"password": "WrongPass",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestLogin_Success(t *testing.T) {
	hash, err := security.HashPassword("Secret123", 4)
	require.NoError(t, err)
	repo := &fakeUserRepo{byEmail: map[string]*model.User{
		"jane@example.com": {ID: "u1", Username: "jane_doe", Email: "jane@example.com", HashedPassword: hash},
	}}
	srv := newTestServer(repo, &fakeTodoRepo{})

	resp := srv.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "jane@example.com",
		"password": "Secret123",
	})

	require.Equal(t, http.StatusOK, resp.Code)
	out := decodeEnvelope(t, resp)
	assert.Equal(t, true, out["success"])
	assert.NotEmpty(t, out["token"])
	assert.Equal(t, "u1", out["data"].(map[string]any)["id"])
}

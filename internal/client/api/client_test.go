package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notesphere/notesphere/pkg/api"
)

func TestClient_Signup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/signup", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req api.SignupRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice@example.com", req.Email)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(api.AuthResponse{
			Message: "User created successfully",
			Token:   "signed-token",
			User:    api.UserPayload{ID: "u1", FullName: req.FullName, Email: req.Email},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.Signup(context.Background(), api.SignupRequest{
		FullName: "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", resp.Token)
	assert.Equal(t, "u1", resp.User.ID)
}

func TestClient_Login_InvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Message: "Invalid credentials"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Login(context.Background(), api.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})

	require.Error(t, err)
	// Ответ сервера должен различаться от транспортного сбоя
	assert.True(t, IsServerError(err))
	assert.Contains(t, err.Error(), "Invalid credentials")
}

func TestClient_Profile_SendsBearer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer my-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(api.UserPayload{ID: "u1", FullName: "Alice", Email: "alice@example.com"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	user, err := client.Profile(context.Background(), "my-token")

	require.NoError(t, err)
	assert.Equal(t, "Alice", user.FullName)
}

func TestClient_TransportError(t *testing.T) {
	// Закрытый сервер: connection refused
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL)
	_, err := client.Login(context.Background(), api.LoginRequest{Email: "a@b.com", Password: "p"})

	require.Error(t, err)
	assert.False(t, IsServerError(err))
}

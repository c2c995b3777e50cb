package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/padhaihub/tutorhub/internal/domain/user"
	"github.com/padhaihub/tutorhub/internal/http/handlers"
	"github.com/padhaihub/tutorhub/internal/repo/postgres"
	"github.com/padhaihub/tutorhub/internal/security"
)

func TestLoginHandler_Success(t *testing.T) {
	hash, err := security.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	users := &fakeUsers{
		getByEmailFn: func(ctx context.Context, email string) (user.User, error) {
			return user.User{ID: "u1", Email: email, PasswordHash: hash, Board: "CBSE"}, nil
		},
	}
	h := handlers.NewLoginHandler(users)

	r := setupRouter(http.MethodPost, "/api/login", h.Login)
	w := doJSON(t, r, http.MethodPost, "/api/login", `{"email":"s@example.com","password":"correct horse"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Message string `json:"message"`
		Token   string `json:"token"`
		UserID  string `json:"userId"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Message != "Login successful" {
		t.Fatalf("message = %q", resp.Message)
	}
	// placeholder credential, by design
	if resp.Token != "example-token" {
		t.Fatalf("token = %q", resp.Token)
	}
	if resp.UserID != "u1" {
		t.Fatalf("userId = %q", resp.UserID)
	}
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestLoginHandler_FailuresAreIdentical(t *testing.T) {
	hash, err := security.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	unknownEmail := &fakeUsers{
		getByEmailFn: func(ctx context.Context, email string) (user.User, error) {
			return user.User{}, postgres.ErrUserNotFound
		},
	}
	wrongPassword := &fakeUsers{
		getByEmailFn: func(ctx context.Context, email string) (user.User, error) {
			return user.User{ID: "u1", Email: email, PasswordHash: hash}, nil
		},
	}

	responses := make([]*struct {
		code int
		body string
	}, 0, 2)

	for _, users := range []*fakeUsers{unknownEmail, wrongPassword} {
		h := handlers.NewLoginHandler(users)
		r := setupRouter(http.MethodPost, "/api/login", h.Login)
		w := doJSON(t, r, http.MethodPost, "/api/login", `{"email":"s@example.com","password":"wrong"}`)

		responses = append(responses, &struct {
			code int
			body string
		}{w.Code, w.Body.String()})
	}

	for _, resp := range responses {
		if resp.code != http.StatusUnauthorized {
			t.Fatalf("got status %d, want 401, body=%s", resp.code, resp.body)
		}
	}

	if responses[0].body != responses[1].body {
		t.Fatalf("failure bodies differ: %s vs %s", responses[0].body, responses[1].body)
	}

	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(responses[0].body), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Message != "Invalid email or password" {
		t.Fatalf("message = %q", resp.Message)
	}
}

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExchangeCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm() failed: %v", err)
		}
		if r.PostForm.Get("grant_type") != "authorization_code" {
			t.Errorf("grant_type = %q", r.PostForm.Get("grant_type"))
		}
		if r.PostForm.Get("code") != "the-code" {
			t.Errorf("code = %q", r.PostForm.Get("code"))
		}
		if r.PostForm.Get("client_id") != "client-1" {
			t.Errorf("client_id = %q", r.PostForm.Get("client_id"))
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id_token":      "id-tok",
			"access_token":  "access-tok",
			"refresh_token": "refresh-tok",
			"expires_in":    3600,
			"token_type":    "Bearer",
		})
	}))
	defer srv.Close()

	client := NewOAuthClient(srv.URL, "client-1", nil)
	tokens, err := client.ExchangeCode(context.Background(), "the-code", "https://api.example.com/auth/callback")
	if err != nil {
		t.Fatalf("ExchangeCode() failed: %v", err)
	}
	if tokens.IDToken != "id-tok" || tokens.RefreshToken != "refresh-tok" {
		t.Errorf("tokens = %+v", tokens)
	}
}

func TestExchangeCode_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer srv.Close()

	client := NewOAuthClient(srv.URL, "client-1", nil)
	_, err := client.ExchangeCode(context.Background(), "stale-code", "https://api.example.com/auth/callback")
	if !errors.Is(err, ErrCodeExchangeFailed) {
		t.Errorf("ExchangeCode() error = %v, want ErrCodeExchangeFailed", err)
	}
}

func TestExchangeCode_MissingIDToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":"only"}`))
	}))
	defer srv.Close()

	client := NewOAuthClient(srv.URL, "client-1", nil)
	_, err := client.ExchangeCode(context.Background(), "the-code", "https://api.example.com/auth/callback")
	if !errors.Is(err, ErrCodeExchangeFailed) {
		t.Errorf("ExchangeCode() error = %v, want ErrCodeExchangeFailed", err)
	}
}

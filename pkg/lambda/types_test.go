package lambda

import (
	"encoding/json"
	"testing"
)

func TestRequestHeader_CaseInsensitive(t *testing.T) {
	req := &Request{Headers: map[string]string{"authorization": "Bearer abc"}}
	if got := req.Header("Authorization"); got != "Bearer abc" {
		t.Errorf("Header() = %q", got)
	}
	if got := req.Header("X-Missing"); got != "" {
		t.Errorf("Header(missing) = %q", got)
	}
}

func TestJSONResponse(t *testing.T) {
	resp := JSONResponse(200, map[string]string{"status": "ok"})
	if resp.StatusCode != 200 {
		t.Errorf("StatusCode = %d", resp.StatusCode)
	}
	if resp.Headers["Access-Control-Allow-Origin"] != "*" {
		t.Error("CORS header missing")
	}
	var body map[string]string
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestRedirectResponse(t *testing.T) {
	resp := RedirectResponse("https://app.example.com/login?code=x")
	if resp.StatusCode != 302 {
		t.Errorf("StatusCode = %d", resp.StatusCode)
	}
	if resp.Headers["Location"] != "https://app.example.com/login?code=x" {
		t.Errorf("Location = %q", resp.Headers["Location"])
	}
}

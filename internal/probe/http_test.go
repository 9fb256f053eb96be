package probe

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func httpDef(url string, expect Expect) CheckDefinition {
	return CheckDefinition{
		Name:   "probe",
		Kind:   KindHTTP,
		Target: Target{URL: url},
		Expect: expect,
	}
}

func TestRunHTTP_Classification(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		expect    Expect
		wantKind  OutcomeKind
		wantLabel string
	}{
		{name: "exact 200", status: 200, expect: ExpectOK, wantKind: OutcomeSuccess, wantLabel: "running"},
		{name: "404 against exact 200", status: 404, expect: ExpectOK, wantKind: OutcomeFailure, wantLabel: "unexpected status 404"},
		{name: "404 counts as reachable", status: 404, expect: ExpectReachable, wantKind: OutcomeSuccess, wantLabel: "responded"},
		{name: "503 is unhealthy", status: 503, expect: ExpectReachable, wantKind: OutcomeError, wantLabel: "server error 503"},
		{name: "500 against exact 200", status: 500, expect: ExpectOK, wantKind: OutcomeError, wantLabel: "server error 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			out := Run(context.Background(), httpDef(srv.URL, tt.expect))
			if out.Kind != tt.wantKind {
				t.Fatalf("kind = %q, want %q", out.Kind, tt.wantKind)
			}
			if out.Label != tt.wantLabel {
				t.Fatalf("label = %q, want %q", out.Label, tt.wantLabel)
			}
			if out.Detail["status_code"] != tt.status {
				t.Fatalf("status_code detail = %v, want %d", out.Detail["status_code"], tt.status)
			}
		})
	}
}

func TestRunHTTP_LoginScenarios(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantKind  OutcomeKind
		wantLabel string
		wantToken bool
	}{
		{name: "accepted", status: 200, body: `{"token":"abc"}`, wantKind: OutcomeSuccess, wantLabel: "login accepted", wantToken: true},
		{name: "correctly rejected", status: 401, body: `{"error":"bad credentials"}`, wantKind: OutcomeSuccess, wantLabel: "correctly rejected"},
		{name: "unexpected status", status: 403, body: ``, wantKind: OutcomeFailure, wantLabel: "unexpected status 403"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			def := httpDef(srv.URL, ExpectLogin)
			def.Method = http.MethodPost
			def.Body = map[string]string{"username": "test", "password": "test"}

			out := Run(context.Background(), def)
			if out.Kind != tt.wantKind {
				t.Fatalf("kind = %q, want %q", out.Kind, tt.wantKind)
			}
			if out.Label != tt.wantLabel {
				t.Fatalf("label = %q, want %q", out.Label, tt.wantLabel)
			}
			if out.Detail["has_token"] != tt.wantToken {
				t.Fatalf("has_token = %v, want %v", out.Detail["has_token"], tt.wantToken)
			}
		})
	}
}

func TestRunHTTP_PostSendsJSONBody(t *testing.T) {
	var gotContentType string
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	def := httpDef(srv.URL, ExpectLogin)
	def.Method = http.MethodPost
	def.Body = map[string]string{"username": "admin", "password": "admin123"}

	out := Run(context.Background(), def)
	if out.Kind != OutcomeSuccess {
		t.Fatalf("kind = %q, want success", out.Kind)
	}
	if gotContentType != "application/json" {
		t.Fatalf("content type = %q", gotContentType)
	}
	if gotBody["username"] != "admin" || gotBody["password"] != "admin123" {
		t.Fatalf("unexpected body: %v", gotBody)
	}
}

func TestRunHTTP_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	out := Run(context.Background(), httpDef(url, ExpectOK))
	if out.Kind != OutcomeError {
		t.Fatalf("kind = %q, want error", out.Kind)
	}
	if out.Label != "unreachable" {
		t.Fatalf("label = %q, want unreachable", out.Label)
	}
	if out.Detail["message"] == nil {
		t.Fatal("expected the transport error message in detail")
	}
}

func TestRunHTTP_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	def := httpDef(srv.URL, ExpectOK)
	def.Timeout = 50 * time.Millisecond

	out := Run(context.Background(), def)
	if out.Kind != OutcomeError {
		t.Fatalf("kind = %q, want error", out.Kind)
	}
	if out.Label != "timeout" {
		t.Fatalf("label = %q, want timeout", out.Label)
	}
}

func TestRunHTTP_CountsJSONArrayItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":1},{"id":2},{"id":3}]`)
	}))
	defer srv.Close()

	def := httpDef(srv.URL, ExpectOK)
	def.CountItems = true

	out := Run(context.Background(), def)
	if out.Kind != OutcomeSuccess {
		t.Fatalf("kind = %q, want success", out.Kind)
	}
	if out.Detail["item_count"] != 3 {
		t.Fatalf("item_count = %v, want 3", out.Detail["item_count"])
	}
}

func TestCountJSONItems(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "array", body: `[1,2,3]`, want: 3},
		{name: "empty array", body: `[]`, want: 0},
		{name: "object", body: `{"a":1}`, want: 0},
		{name: "garbage", body: `not json`, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countJSONItems([]byte(tt.body)); got != tt.want {
				t.Errorf("countJSONItems(%q) = %d, want %d", tt.body, got, tt.want)
			}
		})
	}
}

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"corpclicker/internal/config"
	"corpclicker/internal/session"
	"corpclicker/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	mgr := session.NewManager(ctx, nil)
	srv := New(config.APIConfig{}, nil, mgr, store.New(nil, nil), nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body string) (int, map[string]any) {
	t.Helper()
	var rdr *strings.Reader
	if body == "" {
		rdr = strings.NewReader("")
	} else {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rdr)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, out
}

func createSession(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	code, out := doJSON(t, http.MethodPost, ts.URL+"/v1/sessions", "")
	if code != http.StatusCreated {
		t.Fatalf("create session status %d: %v", code, out)
	}
	id, _ := out["session_id"].(string)
	if id == "" {
		t.Fatalf("no session_id in %v", out)
	}
	return id
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	code, out := doJSON(t, http.MethodGet, ts.URL+"/healthz", "")
	if code != http.StatusOK || out["ok"] != true {
		t.Fatalf("healthz = %d %v", code, out)
	}
}

func TestSessionFlow(t *testing.T) {
	ts := newTestServer(t)
	id := createSession(t, ts)

	code, out := doJSON(t, http.MethodPost, ts.URL+"/v1/sessions/"+id+"/click", "")
	if code != http.StatusOK {
		t.Fatalf("click status %d: %v", code, out)
	}
	if out["earned"].(float64) != 1 {
		t.Fatalf("click earned = %v, want 1", out["earned"])
	}

	code, out = doJSON(t, http.MethodGet, ts.URL+"/v1/sessions/"+id+"/state", "")
	if code != http.StatusOK {
		t.Fatalf("state status %d", code)
	}
	st, ok := out["state"].(map[string]any)
	if !ok {
		t.Fatalf("state payload missing: %v", out)
	}
	if st["total_clicks"].(float64) != 1 {
		t.Fatalf("total_clicks = %v, want 1", st["total_clicks"])
	}
	if out["can_ascend"] != false {
		t.Fatalf("fresh session can_ascend = %v", out["can_ascend"])
	}

	code, out = doJSON(t, http.MethodDelete, ts.URL+"/v1/sessions/"+id, "")
	if code != http.StatusOK {
		t.Fatalf("delete status %d: %v", code, out)
	}
	code, _ = doJSON(t, http.MethodGet, ts.URL+"/v1/sessions/"+id+"/state", "")
	if code != http.StatusNotFound {
		t.Fatalf("state after delete status %d, want 404", code)
	}
}

func TestRejectedActionsReturnAppliedFalse(t *testing.T) {
	ts := newTestServer(t)
	id := createSession(t, ts)

	// Unaffordable purchase is a 200 with applied=false, not an error.
	code, out := doJSON(t, http.MethodPost, ts.URL+"/v1/sessions/"+id+"/upgrades/better_fingers/buy", "")
	if code != http.StatusOK || out["applied"] != false {
		t.Fatalf("unaffordable buy = %d %v", code, out)
	}

	code, out = doJSON(t, http.MethodPost, ts.URL+"/v1/sessions/"+id+"/ascend", "")
	if code != http.StatusOK || out["applied"] != false {
		t.Fatalf("premature ascend = %d %v", code, out)
	}

	// Unknown ids are 404s.
	code, _ = doJSON(t, http.MethodPost, ts.URL+"/v1/sessions/"+id+"/upgrades/not_a_thing/buy", "")
	if code != http.StatusNotFound {
		t.Fatalf("unknown upgrade status %d, want 404", code)
	}
	code, _ = doJSON(t, http.MethodPost, ts.URL+"/v1/sessions/"+id+"/shop/not_a_thing/buy", "")
	if code != http.StatusNotFound {
		t.Fatalf("unknown bp upgrade status %d, want 404", code)
	}
}

func TestUpgradeListing(t *testing.T) {
	ts := newTestServer(t)
	id := createSession(t, ts)

	code, out := doJSON(t, http.MethodGet, ts.URL+"/v1/sessions/"+id+"/upgrades", "")
	if code != http.StatusOK {
		t.Fatalf("upgrades status %d", code)
	}
	ups, ok := out["upgrades"].([]any)
	if !ok || len(ups) == 0 {
		t.Fatalf("no upgrades offered: %v", out)
	}
	first := ups[0].(map[string]any)
	for _, k := range []string{"id", "name", "cost", "repeatable", "affordable"} {
		if _, ok := first[k]; !ok {
			t.Fatalf("upgrade view missing %q: %v", k, first)
		}
	}
}

func TestSaveWithoutDatabase(t *testing.T) {
	ts := newTestServer(t)
	id := createSession(t, ts)

	code, out := doJSON(t, http.MethodPost, ts.URL+"/v1/sessions/"+id+"/save", "")
	if code != http.StatusNotImplemented {
		t.Fatalf("save without db = %d %v, want 501", code, out)
	}
}

func TestDiscordAuthUnconfigured(t *testing.T) {
	ts := newTestServer(t)
	code, _ := doJSON(t, http.MethodPost, ts.URL+"/v1/auth/discord", `{"code":"abc"}`)
	if code != http.StatusNotImplemented {
		t.Fatalf("discord auth unconfigured = %d, want 501", code)
	}
}

func TestIdentityAttach(t *testing.T) {
	ts := newTestServer(t)
	id := createSession(t, ts)

	code, _ := doJSON(t, http.MethodPost, ts.URL+"/v1/sessions/"+id+"/identity",
		`{"id":"42","username":"ceo_janet","avatar":""}`)
	if code != http.StatusOK {
		t.Fatalf("identity attach status %d", code)
	}
	_, out := doJSON(t, http.MethodGet, ts.URL+"/v1/sessions/"+id+"/state", "")
	ident, ok := out["identity"].(map[string]any)
	if !ok || ident["username"] != "ceo_janet" {
		t.Fatalf("identity in state = %v", out["identity"])
	}
}

func TestSessionLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mgr := session.NewManager(ctx, nil)
	srv := New(config.APIConfig{MaxSessions: 1}, nil, mgr, store.New(nil, nil), nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	createSession(t, ts)
	code, _ := doJSON(t, http.MethodPost, ts.URL+"/v1/sessions", "")
	if code != http.StatusTooManyRequests {
		t.Fatalf("over-limit create = %d, want 429", code)
	}
}

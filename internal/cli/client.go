package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// APIError is a non-2xx answer from the server. Anything else coming out of
// the client is a transport failure and is safe to queue and replay.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api status %d: %s", e.Status, e.Body)
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) CreateSession(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/sessions", nil, &out)
	return out, err
}

func (c *Client) RestoreSession(ctx context.Context, snapshotID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/sessions/restore", map[string]any{
		"snapshot_id": snapshotID,
	}, &out)
	return out, err
}

func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	return c.jsonRequest(ctx, http.MethodDelete, "/v1/sessions/"+url.PathEscape(sessionID), nil, nil)
}

func (c *Client) State(ctx context.Context, sessionID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/sessions/"+url.PathEscape(sessionID)+"/state", nil, &out)
	return out, err
}

func (c *Client) Click(ctx context.Context, sessionID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/sessions/"+url.PathEscape(sessionID)+"/click", nil, &out)
	return out, err
}

func (c *Client) BuyUpgrade(ctx context.Context, sessionID, upgradeID string) (map[string]any, error) {
	var out map[string]any
	path := "/v1/sessions/" + url.PathEscape(sessionID) + "/upgrades/" + url.PathEscape(upgradeID) + "/buy"
	err := c.jsonRequest(ctx, http.MethodPost, path, nil, &out)
	return out, err
}

func (c *Client) BuyBuzzwordUpgrade(ctx context.Context, sessionID, bpID string) (map[string]any, error) {
	var out map[string]any
	path := "/v1/sessions/" + url.PathEscape(sessionID) + "/shop/" + url.PathEscape(bpID) + "/buy"
	err := c.jsonRequest(ctx, http.MethodPost, path, nil, &out)
	return out, err
}

func (c *Client) Ascend(ctx context.Context, sessionID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/sessions/"+url.PathEscape(sessionID)+"/ascend", nil, &out)
	return out, err
}

func (c *Client) ListUpgrades(ctx context.Context, sessionID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/sessions/"+url.PathEscape(sessionID)+"/upgrades", nil, &out)
	return out, err
}

func (c *Client) ListSynergies(ctx context.Context, sessionID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/sessions/"+url.PathEscape(sessionID)+"/synergies", nil, &out)
	return out, err
}

func (c *Client) Toasts(ctx context.Context, sessionID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/sessions/"+url.PathEscape(sessionID)+"/toasts", nil, &out)
	return out, err
}

func (c *Client) Save(ctx context.Context, sessionID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/sessions/"+url.PathEscape(sessionID)+"/save", nil, &out)
	return out, err
}

func (c *Client) SetIdentity(ctx context.Context, sessionID, id, username, avatar string) error {
	return c.jsonRequest(ctx, http.MethodPost, "/v1/sessions/"+url.PathEscape(sessionID)+"/identity", map[string]any{
		"id":       id,
		"username": username,
		"avatar":   avatar,
	}, nil)
}

func (c *Client) Do(ctx context.Context, method, path string, body map[string]any) (map[string]any, error) {
	var out map[string]any
	var in any
	if body != nil {
		in = body
	}
	err := c.jsonRequest(ctx, method, path, in, &out)
	return out, err
}

func (c *Client) jsonRequest(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

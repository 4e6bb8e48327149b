package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const discordAPI = "https://discord.com/api/v10"

// DiscordClient performs the server-side OAuth code exchange and fetches
// the player's display identity. The result is never used for game logic.
type DiscordClient struct {
	clientID     string
	clientSecret string
	redirectURI  string
	baseURL      string
	httpClient   *http.Client
}

type DiscordUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func NewDiscordClient(clientID, clientSecret, redirectURI string) *DiscordClient {
	return &DiscordClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		baseURL:      discordAPI,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// ExchangeCode swaps an OAuth authorization code for the user's identity.
func (c *DiscordClient) ExchangeCode(ctx context.Context, code string) (DiscordUser, error) {
	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	if c.redirectURI != "" {
		form.Set("redirect_uri", c.redirectURI)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return DiscordUser{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return DiscordUser{}, fmt.Errorf("discord token exchange: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return DiscordUser{}, fmt.Errorf("discord token status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return DiscordUser{}, fmt.Errorf("decode token response: %w", err)
	}
	return c.fetchUser(ctx, tok.AccessToken)
}

func (c *DiscordClient) fetchUser(ctx context.Context, accessToken string) (DiscordUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users/@me", nil)
	if err != nil {
		return DiscordUser{}, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return DiscordUser{}, fmt.Errorf("fetch discord user: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return DiscordUser{}, fmt.Errorf("discord user status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var user DiscordUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return DiscordUser{}, fmt.Errorf("decode discord user: %w", err)
	}
	return user, nil
}

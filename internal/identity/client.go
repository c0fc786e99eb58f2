package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// ErrInvalidCredentials is returned when the identity provider rejects the
// supplied email/password pair.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Config holds identity provider settings.
type Config struct {
	BaseURL  string
	ClientID string
	Timeout  time.Duration
}

// Client delegates credential checks to the external identity provider. No
// credential or token logic lives in this repository.
type Client struct {
	httpClient *http.Client
	baseURL    string
	clientID   string
	logger     *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:  cfg.BaseURL,
		clientID: cfg.ClientID,
		logger:   logger.With("component", "identity"),
	}
}

// Tokens is the provider's successful login response.
type Tokens struct {
	AccessToken string `json:"accessToken"`
	IDToken     string `json:"idToken"`
}

type loginRequest struct {
	ClientID string `json:"clientId"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for the provider's tokens.
func (c *Client) Login(ctx context.Context, email, password string) (*Tokens, error) {
	body, err := json.Marshal(loginRequest{
		ClientID: c.clientID,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call identity provider: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest:
		c.logger.Info("login rejected", "email", email, "status", resp.StatusCode)
		return nil, ErrInvalidCredentials
	default:
		return nil, fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	var tokens Tokens
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}

	c.logger.Info("login succeeded", "email", email)

	return &tokens, nil
}

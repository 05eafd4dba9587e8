package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fakeguard/fakeguard/internal/dto"
	"github.com/fakeguard/fakeguard/internal/models"
)

// RequestTestToken asks the server for a demo token and stores it.
func (c *Client) RequestTestToken(ctx context.Context, subject string) (*dto.TestTokenResponse, error) {
	var out dto.TestTokenResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/test-token", dto.TestTokenRequest{Subject: strings.TrimSpace(subject)}, &out, false)
	if err != nil {
		c.fail("Sign-in failed", err)
		return nil, err
	}
	if err := c.tokens.Save(out.Token); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}
	return &out, nil
}

// Login exchanges credentials for a token pair and stores the access token.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: email, Password: password}, &out, false)
	if err != nil {
		c.fail("Sign-in failed", err)
		return nil, err
	}
	if err := c.tokens.Save(out.AccessToken); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}
	return &out, nil
}

func (c *Client) Logout() error {
	return c.tokens.Clear()
}

func (c *Client) CreateNotification(ctx context.Context, req dto.CreateNotificationRequest) (*models.PlatformNotification, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		c.fail("Notification not sent", err)
		return nil, err
	}

	var out models.PlatformNotification
	if err := c.doJSON(ctx, http.MethodPost, "/api/notifications", req, &out, true); err != nil {
		c.fail("Notification not sent", err)
		return nil, err
	}
	return &out, nil
}

func jsonBody(v any) (io.Reader, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return bytes.NewReader(payload), nil
}

func decodeJSON(r io.Reader, out any) error {
	if err := json.NewDecoder(r).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Package client is a Go consumer of the POS HTTP API. It carries the auth
// cookies in a jar and refreshes the access token transparently: expired
// responses trigger a single shared refresh and one replay of the original
// request.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"luwakpos/internal/dto"

	"golang.org/x/sync/singleflight"
)

// APIError is a non-2xx envelope answer.
type APIError struct {
	Status  int
	Message string
	Code    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api: %d %s (%s)", e.Status, e.Message, e.Code)
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// IsAuthError reports whether err means the caller has to log in again.
func IsAuthError(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && (apiErr.Code == dto.CodeTokenMissing || apiErr.Code == dto.CodeRefreshTokenMissing || apiErr.Code == dto.CodeRefreshTokenExpired)
}

type Client struct {
	baseURL string
	http    *http.Client

	// ReAuth, when set, is invoked once the session is beyond refreshing
	// (missing token, or the refresh itself rejected). The failed request is
	// not retried after it.
	ReAuth func(ctx context.Context) error

	// refreshGroup collapses concurrent refresh attempts into one request.
	refreshGroup singleflight.Group
}

func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: 15 * time.Second,
		},
	}, nil
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, username, password string) error {
	return c.doOnce(ctx, http.MethodPost, "/api/auth/login", LoginRequest{Username: username, Password: password}, nil)
}

// Logout is best effort on the server side; a failed call still leaves the
// local jar cleared of auth cookies by the server's expired Set-Cookie.
func (c *Client) Logout(ctx context.Context) error {
	return c.doOnce(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// Get performs an authenticated GET and decodes the envelope data into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post performs an authenticated POST and decodes the envelope data into out.
func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// do runs the request once. On TOKEN_EXPIRED it joins the shared refresh and
// replays the request a single time; a second expiry is surfaced as-is. On
// TOKEN_MISSING there is nothing to refresh with, so the caller gets the
// error directly.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	err := c.doOnce(ctx, method, path, body, out)
	apiErr, ok := err.(*APIError)
	if !ok || apiErr.Status != http.StatusUnauthorized {
		return err
	}
	if apiErr.Code != dto.CodeTokenExpired {
		if IsAuthError(err) && c.ReAuth != nil {
			if authErr := c.ReAuth(ctx); authErr != nil {
				return authErr
			}
		}
		return err
	}

	if _, refreshErr, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		return nil, c.refreshTokens(ctx)
	}); refreshErr != nil {
		if IsAuthError(refreshErr) && c.ReAuth != nil {
			if authErr := c.ReAuth(ctx); authErr != nil {
				return authErr
			}
		}
		return refreshErr
	}

	return c.doOnce(ctx, method, path, body, out)
}

func (c *Client) refreshTokens(ctx context.Context) error {
	return c.doOnce(ctx, http.MethodPost, "/api/auth/refresh", nil, nil)
}

func (c *Client) doOnce(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var envelope struct {
		Success      bool            `json:"success"`
		Data         json.RawMessage `json:"data"`
		ErrorMessage string          `json:"errorMessage"`
		ErrorCode    string          `json:"errorCode"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return &APIError{Status: resp.StatusCode, Message: "malformed response"}
	}

	if resp.StatusCode >= 400 || !envelope.Success {
		return &APIError{
			Status:  resp.StatusCode,
			Message: envelope.ErrorMessage,
			Code:    envelope.ErrorCode,
		}
	}

	if out != nil && len(envelope.Data) > 0 {
		return json.Unmarshal(envelope.Data, out)
	}
	return nil
}

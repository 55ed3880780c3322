package gate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"gatepass/core/logger"
	infralogger "gatepass/infra/logger"
)

// Client manages the session with the reservation service. It owns the
// credentials and the current access token and transparently
// re-authenticates once when the service answers 401.
type Client struct {
	cfg  Config
	http *http.Client
	log  logger.Logger

	// mu guards token and gen. Re-authentication holds mu across the
	// identity round-trip, so concurrent callers single-flight: whoever
	// arrives second blocks, then observes the fresh generation and reuses
	// its token instead of authenticating again.
	mu    sync.Mutex
	token string
	gen   uint64
}

// New creates a Client from the configuration. Defaults are applied but
// credentials are not validated here; the first authenticated call fails
// with an AuthError if they are wrong.
func New(cfg Config) *Client {
	cfg.SetDefaults()
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		log:  infralogger.New("gate-client"),
	}
}

// Authenticate exchanges the configured credentials for a fresh access
// token, replacing any cached one. No retry happens inside this call.
func (c *Client) Authenticate(ctx context.Context) error {
	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()
	_, _, err := c.refresh(ctx, gen)
	return err
}

// refresh obtains a token unless another caller already replaced the
// generation the requester saw go stale.
func (c *Client) refresh(ctx context.Context, stale uint64) (string, uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && c.gen != stale {
		return c.token, c.gen, nil
	}
	token, err := c.fetchToken(ctx)
	if err != nil {
		return "", c.gen, err
	}
	c.token = token
	c.gen++
	return token, c.gen, nil
}

func (c *Client) ensureToken(ctx context.Context) (string, uint64, error) {
	c.mu.Lock()
	token, gen := c.token, c.gen
	c.mu.Unlock()
	if token != "" {
		return token, gen, nil
	}
	return c.refresh(ctx, gen)
}

func (c *Client) fetchToken(ctx context.Context) (string, error) {
	payload, err := json.Marshal(map[string]string{"id": c.cfg.ID, "password": c.cfg.Password})
	if err != nil {
		return "", fmt.Errorf("encode credentials: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/auth/token", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("send auth request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read auth response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", &AuthError{Status: resp.StatusCode, Body: string(body)}
	}
	var out struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", &AuthError{Status: resp.StatusCode, Body: string(body)}
	}
	if out.AccessToken == "" {
		return "", &AuthError{Status: resp.StatusCode, Body: "accessToken missing from response"}
	}
	c.log.Debugf("obtained access token")
	return out.AccessToken, nil
}

// do issues an authorized request. A 401 triggers exactly one
// re-authentication and one retry of the original request; the retry's
// verdict is final, bounding the failure loop.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	token, gen, err := c.ensureToken(ctx)
	if err != nil {
		return nil, err
	}
	status, data, err := c.send(ctx, method, path, body, token)
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	if status == http.StatusUnauthorized {
		c.log.Infof("token rejected, re-authenticating")
		token, _, err = c.refresh(ctx, gen)
		if err != nil {
			return nil, err
		}
		status, data, err = c.send(ctx, method, path, body, token)
		if err != nil {
			return nil, &RequestError{Err: err}
		}
	}
	if status >= 400 {
		return nil, &RequestError{Status: status, Body: string(data)}
	}
	return data, nil
}

func (c *Client) send(ctx context.Context, method, path string, body any, token string) (int, []byte, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request body: %w", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, rd)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, data, nil
}

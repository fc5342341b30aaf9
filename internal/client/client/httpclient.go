package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/contentmod/portal/internal/client/models"
)

const (
	headerRequestID = "X-Request-Id"
	headerAPIKey    = "X-API-Key"
)

// HTTPClient talks JSON over HTTP to the moderation backend.
//
// Every request is routed through do(), which injects the bearer credential
// from the TokenSource when one is present. An expired-but-present token is
// still attached: expiry handling belongs to the session layer and,
// ultimately, to the server.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// NewHTTPClient constructs a client for the given base URL, e.g.
// "http://localhost:8080/api". A nil tokens source means all requests go out
// unauthenticated.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// do builds and executes one request. body is JSON-encoded when non-nil,
// extra headers are applied last so callers can override defaults.
// Transport failures are reported as ErrUnavailable; non-2xx responses are
// returned to the caller for per-endpoint mapping.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, extra http.Header) (*http.Response, error) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(headerRequestID, uuid.NewString())

	if c.tokens != nil {
		// A failing token read degrades to an unauthenticated request;
		// the server rejects it if the endpoint needs auth.
		if token, err := c.tokens.Token(ctx); err == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	for k, vs := range extra {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

type errorReply struct {
	Error string `json:"error"`
}

// mapError converts a non-2xx response into a sentinel-wrapped error,
// draining the body for the server-supplied message.
func (c *HTTPClient) mapError(resp *http.Response) error {
	var er errorReply
	_ = json.NewDecoder(resp.Body).Decode(&er)
	msg := er.Error
	if msg == "" {
		msg = resp.Status
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, msg)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: %s", ErrUnavailable, msg)
	default:
		return fmt.Errorf("%w: %s", ErrBadRequest, msg)
	}
}

func ok(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) error {
	payload := map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}

	resp, err := c.do(ctx, http.MethodPost, "/auth/register", payload, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !ok(resp) {
		return c.mapError(resp)
	}
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*models.LoginResult, error) {
	payload := map[string]string{
		"username": username,
		"password": password,
	}

	resp, err := c.do(ctx, http.MethodPost, "/auth/login", payload, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !ok(resp) {
		return nil, c.mapError(resp)
	}

	var result models.LoginResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if result.Token == "" || result.User == nil || result.ExpiresIn <= 0 {
		return nil, fmt.Errorf("%w: incomplete login payload", ErrMalformedResponse)
	}
	return &result, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !ok(resp) {
		return c.mapError(resp)
	}
	return nil
}

func (c *HTTPClient) Profile(ctx context.Context) (*models.User, error) {
	resp, err := c.do(ctx, http.MethodGet, "/auth/profile", nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !ok(resp) {
		return nil, c.mapError(resp)
	}

	var reply struct {
		User *models.User `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if reply.User == nil {
		return nil, fmt.Errorf("%w: missing user", ErrMalformedResponse)
	}
	return reply.User, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, patch models.ProfilePatch) error {
	resp, err := c.do(ctx, http.MethodPut, "/auth/profile", patch, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !ok(resp) {
		return c.mapError(resp)
	}
	return nil
}

func (c *HTTPClient) Keys(ctx context.Context) ([]*models.APIKey, error) {
	resp, err := c.do(ctx, http.MethodGet, "/apikeys", nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !ok(resp) {
		return nil, c.mapError(resp)
	}

	var reply struct {
		APIKeys []*models.APIKey `json:"apiKeys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return reply.APIKeys, nil
}

func (c *HTTPClient) CreateKey(ctx context.Context, req models.CreateKeyRequest) (*models.CreatedKey, error) {
	resp, err := c.do(ctx, http.MethodPost, "/apikeys", req, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !ok(resp) {
		return nil, c.mapError(resp)
	}

	var created models.CreatedKey
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if created.Key == "" || created.APIKey == nil {
		return nil, fmt.Errorf("%w: incomplete key payload", ErrMalformedResponse)
	}
	return &created, nil
}

func (c *HTTPClient) UpdateKeyStatus(ctx context.Context, keyID, status string) error {
	payload := map[string]string{"status": status}

	resp, err := c.do(ctx, http.MethodPut, "/apikeys/"+url.PathEscape(keyID)+"/status", payload, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !ok(resp) {
		return c.mapError(resp)
	}
	return nil
}

func (c *HTTPClient) UpdateKeyRules(ctx context.Context, keyID string, rules []string) (*models.APIKey, error) {
	payload := map[string][]string{"rules": rules}

	resp, err := c.do(ctx, http.MethodPut, "/apikeys/"+url.PathEscape(keyID)+"/rules", payload, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !ok(resp) {
		return nil, c.mapError(resp)
	}

	var reply struct {
		APIKey *models.APIKey `json:"apiKey"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if reply.APIKey == nil {
		return nil, fmt.Errorf("%w: missing apiKey", ErrMalformedResponse)
	}
	return reply.APIKey, nil
}

func (c *HTTPClient) DeleteKey(ctx context.Context, keyID string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/apikeys/"+url.PathEscape(keyID), nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !ok(resp) {
		return c.mapError(resp)
	}
	return nil
}

// ValidateKey checks an API key against the public validation endpoint.
// A rejection is a negative verdict, not an error.
func (c *HTTPClient) ValidateKey(ctx context.Context, apiKey string) (bool, error) {
	payload := map[string]string{"apiKey": apiKey}

	resp, err := c.do(ctx, http.MethodPost, "/apikeys/validate", payload, nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if !ok(resp) {
		return false, nil
	}

	var reply struct {
		Valid bool `json:"valid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return reply.Valid, nil
}

func (c *HTTPClient) Quota(ctx context.Context, keyID string) (*models.QuotaStatus, error) {
	resp, err := c.do(ctx, http.MethodGet, "/apikeys/"+url.PathEscape(keyID)+"/quota", nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !ok(resp) {
		return nil, c.mapError(resp)
	}

	var quota models.QuotaStatus
	if err := json.NewDecoder(resp.Body).Decode(&quota); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &quota, nil
}

func (c *HTTPClient) Moderate(ctx context.Context, apiKey, text string) (*models.ModerationResult, error) {
	payload := map[string]string{"text": text}
	extra := http.Header{headerAPIKey: []string{apiKey}}

	resp, err := c.do(ctx, http.MethodPost, "/moderate-content/text/v1", payload, extra)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !ok(resp) {
		return nil, c.mapError(resp)
	}

	var result models.ModerationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &result, nil
}

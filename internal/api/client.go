package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"forum-client/internal/config"
	"forum-client/internal/logger"
)

// TokenSource yields the stored bearer credential. ok is false when the
// client is logged out; no Authorization header is sent in that case.
type TokenSource interface {
	Token() (token string, ok bool)
}

// Client provides typed access to the forum backend.
type Client struct {
	client  *resty.Client
	baseURL string
	tokens  TokenSource
	limiter *rate.Limiter

	auth       *AuthService
	users      *UserService
	posts      *PostService
	comments   *CommentService
	chats      *ChatService
	moderation *ModerationService
}

// NewClient builds a Client from configuration. tokens may not be nil; use
// a source that always reports ok=false for an unauthenticated client.
func NewClient(cfg *config.Config, tokens TokenSource) (*Client, error) {
	if tokens == nil {
		return nil, fmt.Errorf("token source is required")
	}

	baseURL, err := normalizeBaseURL(cfg.BackendURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: baseURL,
		tokens:  tokens,
	}

	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.RequestBurst)
	}

	c.client = resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.HTTPTimeout).
		SetHeader("Accept", "application/json")
	c.client.OnBeforeRequest(c.beforeRequest)

	c.auth = &AuthService{c: c}
	c.users = &UserService{c: c}
	c.posts = &PostService{c: c}
	c.comments = &CommentService{c: c}
	c.chats = &ChatService{c: c}
	c.moderation = &ModerationService{c: c}

	return c, nil
}

func normalizeBaseURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid backend URL: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return "", fmt.Errorf("backend URL must be absolute, got %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("backend URL scheme must be http or https, got %q", u.Scheme)
	}
	return strings.TrimRight(u.String(), "/"), nil
}

// beforeRequest paces outbound requests and attaches the bearer credential
// when one is stored.
func (c *Client) beforeRequest(_ *resty.Client, req *resty.Request) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return err
		}
	}
	if _, set := req.Header["Authorization"]; set {
		return nil
	}
	if token, ok := c.tokens.Token(); ok {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return nil
}

func (c *Client) Auth() *AuthService             { return c.auth }
func (c *Client) Users() *UserService            { return c.users }
func (c *Client) Posts() *PostService            { return c.posts }
func (c *Client) Comments() *CommentService      { return c.comments }
func (c *Client) Chats() *ChatService            { return c.chats }
func (c *Client) Moderation() *ModerationService { return c.moderation }

// doRequest performs a request and decodes a successful response into
// result (when non-nil). Failures are returned as *APIError for HTTP-level
// errors, or the transport error otherwise. Nothing is retried: a failed
// call is terminal for that operation.
func (c *Client) doRequest(ctx context.Context, method, path string, body any, result any) error {
	log := logger.FromContext(ctx)

	req := c.client.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result).ForceContentType("application/json")
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	if err := responseError(resp); err != nil {
		return err
	}

	log.Debug("api request completed", "method", method, "path", path, "status", resp.StatusCode())
	return nil
}

// responseError converts a non-2xx response into an *APIError.
func responseError(resp *resty.Response) error {
	if resp.StatusCode() < 400 {
		return nil
	}

	apiErr := &APIError{Status: resp.StatusCode(), Raw: strings.TrimSpace(resp.String())}
	// Validation failures carry a structured detail payload; keep it when
	// it parses, fall back to the raw body otherwise.
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err == nil && envelope.Detail != nil {
		var items []DetailItem
		if err := json.Unmarshal(envelope.Detail, &items); err == nil {
			apiErr.Detail = items
		} else {
			var msg string
			if err := json.Unmarshal(envelope.Detail, &msg); err == nil {
				apiErr.Detail = []DetailItem{{Msg: msg}}
			}
		}
	}
	return apiErr
}

// DetailItem is one entry of a structured error detail payload.
type DetailItem struct {
	Msg string `json:"msg"`
}

// APIError is an HTTP-level failure returned by the backend.
type APIError struct {
	Status int
	Detail []DetailItem
	Raw    string
}

func (e *APIError) Error() string {
	if len(e.Detail) > 0 {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Detail[0].Msg)
	}
	if e.Raw != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Raw)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}

// Messages returns all detail messages of the error, if any.
func (e *APIError) Messages() []string {
	out := make([]string, 0, len(e.Detail))
	for _, d := range e.Detail {
		out = append(out, d.Msg)
	}
	return out
}

// IsStatus reports whether err is an *APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

package api

import (
	"context"
	"errors"
	"fmt"
)

// AuthService covers signup and login. Both endpoints are unauthenticated;
// login follows the OAuth2 password flow and is form-encoded.
type AuthService struct {
	c *Client
}

// Login exchanges credentials for an access token. The token is returned
// to the caller for storage; the client itself holds no session state.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	var result struct {
		AccessToken string `json:"access_token"`
	}

	req := s.c.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"username": username,
			"password": password,
		}).
		SetResult(&result).
		ForceContentType("application/json")

	resp, err := req.Post("/auth/login/")
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	if err := responseError(resp); err != nil {
		return "", err
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("login response carried no access token")
	}
	return result.AccessToken, nil
}

// SignupRequest is the account-creation payload.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup creates an account. Validation failures come back as an *APIError
// with status 422 and per-field detail messages.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) error {
	return s.c.doRequest(ctx, "POST", "/auth/signup/", req, nil)
}

// signupMessages maps the backend's internal validation messages to text
// fit for display. Unknown messages pass through verbatim.
var signupMessages = map[string]string{
	"Value error, Username must be alphanumeric":  "The username may only contain letters and digits.",
	"Value error, Username already exists":        "That username is already taken.",
	"Value error, Email already exists":           "That email address is already registered.",
	"value is not a valid email address: The email address is not valid. It must have exactly one @-sign.": "The email address is not valid.",
	"Value error, Password must be at least 8 characters long": "The password must be at least 8 characters long.",
	"Value error, Password must have at least one uppercase letter, one lowercase letter, one digit and a special character": "The password needs an uppercase letter, a lowercase letter, a digit and a special character.",
}

// TranslateSignupError rewrites a signup validation failure into
// user-facing messages. Non-validation errors return nil.
func TranslateSignupError(err error) []string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 422 {
		return nil
	}
	msgs := apiErr.Messages()
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if friendly, ok := signupMessages[m]; ok {
			out = append(out, friendly)
		} else {
			out = append(out, m)
		}
	}
	return out
}

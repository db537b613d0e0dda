package api

import (
	"context"
	"fmt"
	"strings"

	"forum-client/internal/models"
)

// UserService reads user records. Field selection mirrors the backend's
// ?fields= contract so callers only fetch what they render.
type UserService struct {
	c *Client
}

// Me resolves the current actor's selected fields. Requires a stored
// credential; an invalid one yields an *APIError the session layer turns
// into the guest actor.
func (s *UserService) Me(ctx context.Context, fields ...string) (*models.User, error) {
	var result struct {
		User models.User `json:"user"`
	}

	path := "/users/me/"
	if len(fields) > 0 {
		path += "?fields=" + strings.Join(fields, ",")
	}
	if err := s.c.doRequest(ctx, "GET", path, nil, &result); err != nil {
		return nil, err
	}
	return &result.User, nil
}

// ByID resolves another user's selected fields.
func (s *UserService) ByID(ctx context.Context, id int, fields ...string) (*models.User, error) {
	var result struct {
		User models.User `json:"user"`
	}

	path := fmt.Sprintf("/users/id/%d/", id)
	if len(fields) > 0 {
		path += "?fields=" + strings.Join(fields, ",")
	}
	if err := s.c.doRequest(ctx, "GET", path, nil, &result); err != nil {
		return nil, err
	}
	if result.User.ID == 0 {
		result.User.ID = id
	}
	return &result.User, nil
}

// ByName looks a user up by username, as the chat-creation flow does.
func (s *UserService) ByName(ctx context.Context, username string) (*models.User, error) {
	var result struct {
		User models.User `json:"user"`
	}

	if err := s.c.doRequest(ctx, "GET", fmt.Sprintf("/users/name/%s/", username), nil, &result); err != nil {
		return nil, err
	}
	return &result.User, nil
}

// MyChats lists the chat overview of the current user.
func (s *UserService) MyChats(ctx context.Context) ([]models.ChatSummary, error) {
	var result struct {
		Chats []models.ChatSummary `json:"chats"`
	}

	if err := s.c.doRequest(ctx, "GET", "/users/me/chats/", nil, &result); err != nil {
		return nil, err
	}
	return result.Chats, nil
}

// ModerationService performs role management on other users. The backend
// enforces permissions; the capability gate only decides what to offer.
type ModerationService struct {
	c *Client
}

// Ban bans the given user.
func (s *ModerationService) Ban(ctx context.Context, userID int) error {
	return s.c.doRequest(ctx, "POST", fmt.Sprintf("/users/id/%d/ban/", userID), nil, nil)
}

// Promote raises a user to the given role ("mod" or "admin").
func (s *ModerationService) Promote(ctx context.Context, userID int, role string) error {
	return s.c.doRequest(ctx, "POST", fmt.Sprintf("/users/id/%d/promote/%s/", userID, role), nil, nil)
}

// Demote lowers a user from the given role ("mod" or "admin").
func (s *ModerationService) Demote(ctx context.Context, userID int, role string) error {
	return s.c.doRequest(ctx, "POST", fmt.Sprintf("/users/id/%d/demote/%s/", userID, role), nil, nil)
}

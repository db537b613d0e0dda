package api

import (
	"context"
	"fmt"
	"strconv"

	"forum-client/internal/models"
)

// ChatService covers direct chats and their messages.
type ChatService struct {
	c *Client
}

// Get fetches a chat's participant pair.
func (s *ChatService) Get(ctx context.Context, id int) (*models.Chat, error) {
	var result struct {
		Chat models.Chat `json:"chat"`
	}
	if err := s.c.doRequest(ctx, "GET", fmt.Sprintf("/chats/id/%d/", id), nil, &result); err != nil {
		return nil, err
	}
	return &result.Chat, nil
}

// Messages lists a chat's messages in creation order.
func (s *ChatService) Messages(ctx context.Context, id int) ([]models.Message, error) {
	var result struct {
		Messages []models.Message `json:"messages"`
	}
	if err := s.c.doRequest(ctx, "GET", fmt.Sprintf("/chats/id/%d/messages/", id), nil, &result); err != nil {
		return nil, err
	}
	return result.Messages, nil
}

// Create opens a chat with the given partner. The partner id travels as
// the bare request body.
func (s *ChatService) Create(ctx context.Context, partnerID int) error {
	req := s.c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(strconv.Itoa(partnerID))

	resp, err := req.Post("/chats/create/")
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	return responseError(resp)
}

// Send appends a message to a chat.
func (s *ChatService) Send(ctx context.Context, chatID, senderID int, message string) error {
	body := struct {
		UserID  int    `json:"user_id"`
		Message string `json:"message"`
	}{UserID: senderID, Message: message}
	return s.c.doRequest(ctx, "POST", fmt.Sprintf("/chats/id/%d/create_message/", chatID), body, nil)
}

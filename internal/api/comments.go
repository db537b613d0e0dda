package api

import (
	"context"
	"fmt"

	"forum-client/internal/models"
)

// CommentService covers comment reads and mutations. Listing and creation
// live under the owning post; edits and deletes address the comment
// directly.
type CommentService struct {
	c *Client
}

// OfPost lists all comments of a post in backend order.
func (s *CommentService) OfPost(ctx context.Context, postID int) ([]models.Comment, error) {
	var result struct {
		Comments []models.Comment `json:"comments"`
	}
	if err := s.c.doRequest(ctx, "GET", fmt.Sprintf("/posts/id/%d/comments/", postID), nil, &result); err != nil {
		return nil, err
	}
	return result.Comments, nil
}

// Create adds a comment to a post.
func (s *CommentService) Create(ctx context.Context, postID int, content string) error {
	body := struct {
		Content string `json:"content"`
	}{Content: content}
	return s.c.doRequest(ctx, "POST", fmt.Sprintf("/posts/id/%d/create_comment/", postID), body, nil)
}

// Edit replaces the content of a comment, raw body as with post edits.
func (s *CommentService) Edit(ctx context.Context, id int, content string) error {
	req := s.c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "text/plain").
		SetBody(content)

	resp, err := req.Put(fmt.Sprintf("/comments/id/%d/edit/", id))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	return responseError(resp)
}

// Delete removes a comment permanently.
func (s *CommentService) Delete(ctx context.Context, id int) error {
	return s.c.doRequest(ctx, "DELETE", fmt.Sprintf("/comments/id/%d/delete/", id), nil, nil)
}

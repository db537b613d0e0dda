package api

import (
	"context"
	"fmt"
	"strconv"

	"forum-client/internal/models"
)

// PostService covers the posts collection and everything hanging off a
// single post: votes, tags and comment listing/creation.
type PostService struct {
	c *Client
}

// List fetches one page of the post feed. Ordering is whatever the backend
// returned for the forwarded sort code; the client never re-sorts.
func (s *PostService) List(ctx context.Context, cursor models.FeedCursor) ([]models.Post, error) {
	var result struct {
		Posts []models.Post `json:"posts"`
	}

	req := s.c.client.R().SetContext(ctx).SetResult(&result).ForceContentType("application/json")
	if cursor.Search != "" {
		req.SetQueryParam("search", cursor.Search)
	}
	req.SetQueryParam("offset", strconv.Itoa(cursor.Offset))
	req.SetQueryParam("sort", strconv.Itoa(int(cursor.Sort)))

	resp, err := req.Get("/posts/")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if err := responseError(resp); err != nil {
		return nil, err
	}
	return result.Posts, nil
}

// Get fetches a single post.
func (s *PostService) Get(ctx context.Context, id int) (*models.Post, error) {
	var result struct {
		Post models.Post `json:"post"`
	}

	if err := s.c.doRequest(ctx, "GET", fmt.Sprintf("/posts/id/%d/", id), nil, &result); err != nil {
		return nil, err
	}
	return &result.Post, nil
}

// Create publishes a new post and returns its id.
func (s *PostService) Create(ctx context.Context, title, content string) (int, error) {
	body := struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}{Title: title, Content: content}

	var result struct {
		PostID int `json:"post_id"`
	}
	if err := s.c.doRequest(ctx, "POST", "/posts/create_post/", body, &result); err != nil {
		return 0, err
	}
	return result.PostID, nil
}

// Edit replaces the content of a post. The new content travels as the raw
// request body, matching the backend's edit contract.
func (s *PostService) Edit(ctx context.Context, id int, content string) error {
	req := s.c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "text/plain").
		SetBody(content)

	resp, err := req.Put(fmt.Sprintf("/posts/id/%d/edit/", id))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	return responseError(resp)
}

// Delete removes a post permanently.
func (s *PostService) Delete(ctx context.Context, id int) error {
	return s.c.doRequest(ctx, "DELETE", fmt.Sprintf("/posts/id/%d/delete/", id), nil, nil)
}

// Vote casts a signed unit vote (+1 or -1) on a post. The backend keeps at
// most one vote per (user, post) pair.
func (s *PostService) Vote(ctx context.Context, id int, value int) error {
	if value != 1 && value != -1 {
		return fmt.Errorf("vote must be +1 or -1, got %d", value)
	}

	req := s.c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "text/plain").
		SetBody(strconv.Itoa(value))

	resp, err := req.Post(fmt.Sprintf("/posts/id/%d/vote/", id))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	return responseError(resp)
}

// Votes returns the aggregate vote count of a post.
func (s *PostService) Votes(ctx context.Context, id int) (int, error) {
	var count int
	if err := s.c.doRequest(ctx, "GET", fmt.Sprintf("/posts/id/%d/votes/", id), nil, &count); err != nil {
		return 0, err
	}
	return count, nil
}

// UserVote returns the current actor's own vote on a post: +1, -1 or 0.
func (s *PostService) UserVote(ctx context.Context, id int) (int, error) {
	var vote int
	if err := s.c.doRequest(ctx, "GET", fmt.Sprintf("/posts/id/%d/votes/user/", id), nil, &vote); err != nil {
		return 0, err
	}
	return vote, nil
}

// Tags lists the tags of a post. Tags are read-only for the client.
func (s *PostService) Tags(ctx context.Context, id int) ([]string, error) {
	var result struct {
		Tags []string `json:"tags"`
	}
	if err := s.c.doRequest(ctx, "GET", fmt.Sprintf("/posts/id/%d/tags/", id), nil, &result); err != nil {
		return nil, err
	}
	return result.Tags, nil
}

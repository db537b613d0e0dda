// Package editor drives the edit lifecycle of a single post or comment:
// a read view, an edit view seeded from the current content, submission of
// the new content, and deletion.
package editor

import (
	"context"
	"fmt"

	"forum-client/internal/api"
	"forum-client/internal/models"
)

// State is the edit-affordance state of one content item.
type State int

const (
	// StateViewing shows the authoritative content.
	StateViewing State = iota
	// StateEditing shows the draft; the authoritative content is retained
	// for cancellation.
	StateEditing
	// StateRemoved is terminal: the entity no longer exists and the caller
	// should navigate back to the parent list.
	StateRemoved
)

// Editor holds the edit state machine for one post or comment.
type Editor struct {
	client *api.Client

	isComment bool
	id        int
	parentID  int // owning post for comments

	content string
	draft   string
	state   State
}

// ForPost starts an editor on a post in the viewing state.
func ForPost(client *api.Client, post *models.Post) *Editor {
	return &Editor{
		client:  client,
		id:      post.ID,
		content: post.Content,
	}
}

// ForComment starts an editor on a comment in the viewing state.
func ForComment(client *api.Client, comment *models.Comment) *Editor {
	return &Editor{
		client:    client,
		isComment: true,
		id:        comment.ID,
		parentID:  comment.PostID,
		content:   comment.Content,
	}
}

// State returns the current state.
func (e *Editor) State() State { return e.state }

// Content returns the authoritative content as last seen from the server.
func (e *Editor) Content() string { return e.content }

// Draft returns the in-progress edit content. Only meaningful while
// editing.
func (e *Editor) Draft() string { return e.draft }

// SetDraft replaces the in-progress edit content.
func (e *Editor) SetDraft(draft string) {
	if e.state == StateEditing {
		e.draft = draft
	}
}

// ToggleEdit flips between viewing and editing without any network call.
// Entering the edit view seeds the draft from the current content; leaving
// it discards the draft, so re-entering starts from the original content
// again, not from an abandoned draft. Toggling a removed entity is a
// no-op.
func (e *Editor) ToggleEdit() {
	switch e.state {
	case StateViewing:
		e.draft = e.content
		e.state = StateEditing
	case StateEditing:
		e.draft = ""
		e.state = StateViewing
	case StateRemoved:
	}
}

// Submit sends the draft as the entity's new content. On success the
// entity is re-fetched so the view reflects the authoritative server
// state; no cached copy of the edited entity is reused. On failure the
// editor stays in the edit view with the draft intact.
func (e *Editor) Submit(ctx context.Context) error {
	if e.state != StateEditing {
		return fmt.Errorf("no edit in progress")
	}

	var err error
	if e.isComment {
		err = e.client.Comments().Edit(ctx, e.id, e.draft)
	} else {
		err = e.client.Posts().Edit(ctx, e.id, e.draft)
	}
	if err != nil {
		return err
	}

	fresh, err := e.refetch(ctx)
	if err != nil {
		return fmt.Errorf("edit saved but refresh failed: %w", err)
	}

	e.content = fresh
	e.draft = ""
	e.state = StateViewing
	return nil
}

func (e *Editor) refetch(ctx context.Context) (string, error) {
	if !e.isComment {
		post, err := e.client.Posts().Get(ctx, e.id)
		if err != nil {
			return "", err
		}
		return post.Content, nil
	}

	// No single-comment endpoint on the wire: re-read the parent post's
	// comment list and pick ours out of it.
	comments, err := e.client.Comments().OfPost(ctx, e.parentID)
	if err != nil {
		return "", err
	}
	for _, c := range comments {
		if c.ID == e.id {
			return c.Content, nil
		}
	}
	return "", fmt.Errorf("comment %d vanished from post %d", e.id, e.parentID)
}

// Delete removes the entity permanently. Success is terminal; the caller
// navigates away from the removed entity. On failure the entity stays
// visible and no navigation happens.
func (e *Editor) Delete(ctx context.Context) error {
	if e.state == StateRemoved {
		return nil
	}

	var err error
	if e.isComment {
		err = e.client.Comments().Delete(ctx, e.id)
	} else {
		err = e.client.Posts().Delete(ctx, e.id)
	}
	if err != nil {
		return err
	}

	e.state = StateRemoved
	return nil
}

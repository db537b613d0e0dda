// Package feed implements the paginated post list: an offset cursor over
// the posts collection with search and sort forwarded to the backend, and
// per-item author resolution for display.
package feed

import (
	"context"

	"forum-client/internal/api"
	"forum-client/internal/logger"
	"forum-client/internal/models"
	"forum-client/internal/session"
)

// PageSize is the fixed page size of the posts collection. A full page is
// also the sentinel for "more pages may exist": exactly PageSize results
// mean a load-more affordance, fewer mean the feed is exhausted.
const PageSize = 10

// Item is one feed entry: the post plus its author's display identity.
// AuthorKnown is false when the author lookup failed; the item still
// renders with a placeholder identity rather than aborting the page.
type Item struct {
	Post        models.Post
	Author      models.User
	AuthorKnown bool
}

// Feed accumulates pages of the post list under a single cursor.
type Feed struct {
	posts    *api.PostService
	resolver *session.Resolver

	cursor  models.FeedCursor
	items   []Item
	hasMore bool
}

// New builds an empty feed at offset 0 with default search and sort.
func New(client *api.Client, resolver *session.Resolver) *Feed {
	return &Feed{
		posts:    client.Posts(),
		resolver: resolver,
	}
}

// SetSearch changes the search term; a change resets the cursor to the
// first page.
func (f *Feed) SetSearch(search string) { f.cursor.SetSearch(search) }

// SetSort changes the sort mode; a change resets the cursor to the first
// page.
func (f *Feed) SetSort(sort models.SortMode) { f.cursor.SetSort(sort) }

// Cursor returns the current pagination state.
func (f *Feed) Cursor() models.FeedCursor { return f.cursor }

// Items returns the accumulated feed entries in backend order.
func (f *Feed) Items() []Item { return f.items }

// HasMore reports whether the last loaded page was full, i.e. whether a
// further page may exist.
func (f *Feed) HasMore() bool { return f.hasMore }

// LoadPage fetches the page at the current cursor. At offset 0 previously
// accumulated items are cleared first, which covers both a new search and
// a sort change; at higher offsets new items are appended.
func (f *Feed) LoadPage(ctx context.Context) error {
	posts, err := f.posts.List(ctx, f.cursor)
	if err != nil {
		return err
	}

	if f.cursor.Offset == 0 {
		f.items = f.items[:0]
	}

	for _, post := range posts {
		f.items = append(f.items, f.resolveItem(ctx, post))
	}

	f.hasMore = len(posts) == PageSize
	return nil
}

// More advances the cursor by one page and loads it. Calling More when the
// feed is exhausted is a no-op.
func (f *Feed) More(ctx context.Context) error {
	if !f.hasMore {
		return nil
	}
	f.cursor.Offset += PageSize
	return f.LoadPage(ctx)
}

// resolveItem attaches the author identity to a post. The resolver caches
// by author id, so a page written by few distinct authors costs few
// lookups. A failed lookup degrades to a blank identity; it never fails
// the page.
func (f *Feed) resolveItem(ctx context.Context, post models.Post) Item {
	author, err := f.resolver.UserDetails(ctx, post.AuthorID)
	if err != nil {
		logger.FromContext(ctx).Debug("author lookup failed", "author_id", post.AuthorID, "error", err)
		return Item{Post: post}
	}
	return Item{Post: post, Author: author, AuthorKnown: true}
}

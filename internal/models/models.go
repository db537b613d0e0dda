package models

// Actor is the identity viewing the current page, possibly a guest.
type Actor struct {
	ID       int    `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Guest returns the anonymous actor used whenever no valid credential is
// available.
func Guest() Actor {
	return Actor{Role: RoleGuest}
}

// LoggedIn reports whether the actor carries a real account.
func (a Actor) LoggedIn() bool {
	return a.ID != 0
}

// User holds the selected fields of another forum user.
type User struct {
	ID       int    `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role"`
}

// Post is a forum post as returned by the backend.
type Post struct {
	ID           int    `json:"post_id"`
	AuthorID     int    `json:"author_id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	CreationDate string `json:"creation_date"`
}

// Comment is a comment on a post.
type Comment struct {
	ID           int    `json:"comment_id"`
	PostID       int    `json:"post_id"`
	AuthorID     int    `json:"author_id"`
	Content      string `json:"content"`
	CreationDate string `json:"creation_date"`
}

// Chat is an unordered pair of participants.
type Chat struct {
	ID    int `json:"chat_id"`
	User1 int `json:"user1"`
	User2 int `json:"user2"`
}

// Partner returns the participant that is not userID, or 0 when userID is
// not part of the chat.
func (c Chat) Partner(userID int) int {
	switch userID {
	case c.User1:
		return c.User2
	case c.User2:
		return c.User1
	default:
		return 0
	}
}

// ChatSummary is one entry of the current user's chat overview.
type ChatSummary struct {
	ID            int    `json:"chat_id"`
	OtherUsername string `json:"other_username"`
}

// Message is a single chat message, append-only and ordered by creation
// time on the backend.
type Message struct {
	SentBy    int    `json:"sent_by"`
	Body      string `json:"message"`
	CreatedAt string `json:"created_at"`
}

// SortMode is the sort-order integer code forwarded to the backend. The
// numbering is part of the API contract and must not be reordered.
type SortMode int

const (
	SortRecommended SortMode = iota
	SortNew
	SortPopular
	SortControversial
)

// ParseSortMode maps a UI sort name to its wire code.
func ParseSortMode(s string) (SortMode, bool) {
	switch s {
	case "recommended":
		return SortRecommended, true
	case "new":
		return SortNew, true
	case "popular":
		return SortPopular, true
	case "controversial":
		return SortControversial, true
	default:
		return SortRecommended, false
	}
}

func (m SortMode) String() string {
	switch m {
	case SortNew:
		return "new"
	case SortPopular:
		return "popular"
	case SortControversial:
		return "controversial"
	default:
		return "recommended"
	}
}

// FeedCursor is the transient pagination state of a list view. Offset goes
// back to 0 whenever the search term or sort mode changes.
type FeedCursor struct {
	Search string
	Sort   SortMode
	Offset int
}

// SetSearch updates the search term, resetting the offset if it changed.
func (c *FeedCursor) SetSearch(search string) {
	if c.Search != search {
		c.Search = search
		c.Offset = 0
	}
}

// SetSort updates the sort mode, resetting the offset if it changed.
func (c *FeedCursor) SetSort(sort SortMode) {
	if c.Sort != sort {
		c.Sort = sort
		c.Offset = 0
	}
}

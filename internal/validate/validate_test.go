package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostData(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		content string
		valid   bool
	}{
		{"valid", "My first post", "Hello there", true},
		{"empty title", "", "Hello", false},
		{"whitespace title", "   ", "Hello", false},
		{"empty content", "Title", "", false},
		{"short title", "ab", "Hello", false},
		{"minimum title", "abc", "Hello", true},
		{"long title", strings.Repeat("a", 121), "Hello", false},
		{"max title", strings.Repeat("a", 120), "Hello", true},
		{"long content", "Title", strings.Repeat("a", 5001), false},
		{"max content", "Title", strings.Repeat("a", 5000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := PostData(tt.title, tt.content)
			assert.Equal(t, tt.valid, ok)
			if !tt.valid {
				assert.NotEmpty(t, msg)
			}
		})
	}
}

func TestCommentData(t *testing.T) {
	ok, _ := CommentData("looks good to me")
	assert.True(t, ok)

	ok, _ = CommentData("   ")
	assert.False(t, ok)

	ok, _ = CommentData(strings.Repeat("x", 1001))
	assert.False(t, ok)
}

func TestMessageData(t *testing.T) {
	ok, _ := MessageData("hey")
	assert.True(t, ok)

	ok, _ = MessageData("")
	assert.False(t, ok)

	ok, _ = MessageData(strings.Repeat("x", 2001))
	assert.False(t, ok)
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("alice@example.com"))
	assert.True(t, IsValidEmail("a.b+c@sub.example.org"))
	assert.False(t, IsValidEmail("alice"))
	assert.False(t, IsValidEmail("alice@"))
	assert.False(t, IsValidEmail("@example.com"))
	assert.False(t, IsValidEmail("alice@example"))
}

func TestIsValidUsername(t *testing.T) {
	assert.True(t, IsValidUsername("alice"))
	assert.True(t, IsValidUsername("Bob42"))
	assert.False(t, IsValidUsername("ab"))
	assert.False(t, IsValidUsername(strings.Repeat("a", 21)))
	assert.False(t, IsValidUsername("with space"))
	assert.False(t, IsValidUsername("dash-ed"))
}

func TestPasswordStrength(t *testing.T) {
	assert.Error(t, PasswordStrength(""))
	assert.Error(t, PasswordStrength("short"))
	assert.Error(t, PasswordStrength(strings.Repeat("a", 73)))
	assert.NoError(t, PasswordStrength("longenough"))
}

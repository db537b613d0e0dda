// Package validate holds client-side pre-submission checks mirroring the
// backend's validation rules, so obviously bad input fails locally instead
// of costing a round trip. The backend remains authoritative.
package validate

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// PostData validates post data for validity.
func PostData(title, content string) (bool, string) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)

	if title == "" {
		return false, "Title cannot be empty"
	}

	if content == "" {
		return false, "Content cannot be empty"
	}

	if utf8.RuneCountInString(title) < 3 {
		return false, "Title must contain at least 3 characters"
	}
	if utf8.RuneCountInString(title) > 120 {
		return false, "Title cannot exceed 120 characters"
	}

	if utf8.RuneCountInString(content) > 5000 {
		return false, "Content cannot exceed 5000 characters"
	}

	return true, ""
}

// CommentData validates comment data for validity.
func CommentData(content string) (bool, string) {
	content = strings.TrimSpace(content)

	if content == "" {
		return false, "Comment content cannot be empty"
	}

	if utf8.RuneCountInString(content) > 1000 {
		return false, "Comment content cannot exceed 1000 characters"
	}

	return true, ""
}

// MessageData validates a chat message before sending.
func MessageData(message string) (bool, string) {
	message = strings.TrimSpace(message)

	if message == "" {
		return false, "Message cannot be empty"
	}

	if utf8.RuneCountInString(message) > 2000 {
		return false, "Message cannot exceed 2000 characters"
	}

	return true, ""
}

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9]{3,20}$`)

// IsValidUsername matches the backend's alphanumeric username rule.
func IsValidUsername(username string) bool {
	return usernameRe.MatchString(username)
}

// PasswordStrength checks a password against the backend's minimum rules
// before it is ever sent.
func PasswordStrength(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}

	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}

	if len(password) > 72 {
		return errors.New("password is too long (maximum 72 characters)")
	}

	return nil
}

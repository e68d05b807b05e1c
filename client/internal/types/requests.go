package types

import "io"

// ------------------------------
// Request Types
// ------------------------------

// Default pagination values applied when the caller omits them.
const (
	DefaultLimit = 10
	DefaultSkip  = 0
)

// Page carries the limit/skip pair sent with list requests. Values are
// passed to the server as-is.
type Page struct {
	Limit int
	Skip  int
}

// DefaultPage returns limit=10, skip=0.
func DefaultPage() Page {
	return Page{Limit: DefaultLimit, Skip: DefaultSkip}
}

// FilePart is the optional file attached to a multipart post.
type FilePart struct {
	Field       string // form field name, "file" when empty
	Name        string // file name reported to the server
	ContentType string
	Reader      io.Reader
}

// CreatePostRequest is the multipart payload for a new post. Fields are sent
// verbatim as text parts; the client does not interpret them.
type CreatePostRequest struct {
	Fields map[string]string
	File   *FilePart
}

// NewCreatePostRequest fills the body/user/community text fields.
func NewCreatePostRequest(body, userID, communityID string) CreatePostRequest {
	return CreatePostRequest{Fields: map[string]string{
		"body":      body,
		"user":      userID,
		"community": communityID,
	}}
}

// LikeRequest is the PATCH body for like and unlike.
type LikeRequest struct {
	UserID string `json:"userId"`
}

// NewComment is the comment payload appended to a post.
type NewComment struct {
	Body string `json:"body"`
	User string `json:"user,omitempty"`
}

// CommentRequest wraps the comment as {newComment: ...}.
type CommentRequest struct {
	NewComment NewComment `json:"newComment"`
}

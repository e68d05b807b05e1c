package client

import "github.com/TanakaAkihiro0930/SocialEcho/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	// Requests
	CreatePostRequest = types.CreatePostRequest
	FilePart          = types.FilePart
	NewComment        = types.NewComment
	Page              = types.Page

	// Domain entities
	Post      = types.Post
	Comment   = types.Comment
	Ref       = types.Ref
	MediaKind = types.MediaKind
)

// Pagination defaults applied by the list calls.
const (
	DefaultLimit = types.DefaultLimit
	DefaultSkip  = types.DefaultSkip
)

// Media kinds reported by Post.MediaKind.
const (
	MediaNone  = types.MediaNone
	MediaImage = types.MediaImage
	MediaVideo = types.MediaVideo
)

// NewCreatePostRequest builds a multipart payload with body/user/community fields.
func NewCreatePostRequest(body, userID, communityID string) CreatePostRequest {
	return types.NewCreatePostRequest(body, userID, communityID)
}

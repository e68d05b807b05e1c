package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/TanakaAkihiro0930/SocialEcho/client/internal/types"
)

// AddComment appends a comment: POST /posts/{id}/comment {newComment}.
func AddComment(ctx context.Context, rc *resty.Client, id string, comment types.NewComment) (json.RawMessage, error) {
	r := rc.R().
		SetPathParam("id", id).
		SetHeader("Content-Type", "application/json").
		SetBody(types.CommentRequest{NewComment: comment})
	return execute(ctx, r, http.MethodPost, pathComment, OpAddComment)
}

// GetComments returns the full comment sequence of a post.
func GetComments(ctx context.Context, rc *resty.Client, id string) (json.RawMessage, error) {
	r := rc.R().SetPathParam("id", id)
	return execute(ctx, r, http.MethodGet, pathComment, OpGetComments)
}

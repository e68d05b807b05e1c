package api

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/go-resty/resty/v2"

	clienterrors "github.com/TanakaAkihiro0930/SocialEcho/client/internal/errors"
)

// Operation names, also used as metric and log labels.
const (
	OpCreatePost     = "create_post"
	OpGetPosts       = "get_posts"
	OpGetComPosts    = "get_com_posts"
	OpDeletePost     = "delete_post"
	OpLikePost       = "like_post"
	OpUnlikePost     = "unlike_post"
	OpAddComment     = "add_comment"
	OpGetComments    = "get_comments"
	OpSavePost       = "save_post"
	OpUnsavePost     = "unsave_post"
	OpGetSavedPosts  = "get_saved_posts"
	OpGetPublicPosts = "get_public_posts"
)

// REST paths relative to the base URL. {id} is filled with resty path params.
const (
	pathPosts       = "/posts"
	pathPost        = "/posts/{id}"
	pathLike        = "/posts/{id}/like"
	pathUnlike      = "/posts/{id}/unlike"
	pathComment     = "/posts/{id}/comment"
	pathSave        = "/posts/{id}/save"
	pathUnsave      = "/posts/{id}/unsave"
	pathSaved       = "/posts/saved"
	pathPublicPosts = "/posts/{id}/userPosts"
)

// emptyBody is returned as data for successful responses without a body, so
// data stays non-null in the envelope.
var emptyBody = json.RawMessage(`""`)

// execute sends req and classifies the outcome. A 2xx body is returned
// unmodified; every failure comes back as *clienterrors.APIError.
func execute(ctx context.Context, req *resty.Request, method, path, operation string) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, clienterrors.NewNetworkError(operation, err)
	}
	// Note: Authorization header is added by the transport layer
	resp, err := req.SetContext(ctx).Execute(method, path)
	if err != nil {
		return nil, clienterrors.NewNetworkError(operation, err)
	}
	if !resp.IsSuccess() {
		return nil, clienterrors.FromResponse(operation, resp.StatusCode(), resp.Body())
	}

	body := bytes.TrimSpace(resp.Body())
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return emptyBody, nil
	}
	if !json.Valid(body) {
		return nil, clienterrors.NewMalformedError(operation, resp.StatusCode())
	}
	return json.RawMessage(body), nil
}

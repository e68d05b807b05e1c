package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// The saved-posts set belongs to the user identified by the bearer token;
// no user id is sent.

// SavePost adds the post to the current user's saved set.
func SavePost(ctx context.Context, rc *resty.Client, id string) (json.RawMessage, error) {
	r := rc.R().SetPathParam("id", id)
	return execute(ctx, r, http.MethodPatch, pathSave, OpSavePost)
}

// UnsavePost removes the post from the current user's saved set.
func UnsavePost(ctx context.Context, rc *resty.Client, id string) (json.RawMessage, error) {
	r := rc.R().SetPathParam("id", id)
	return execute(ctx, r, http.MethodPatch, pathUnsave, OpUnsavePost)
}

// GetSavedPosts returns the current user's saved posts.
func GetSavedPosts(ctx context.Context, rc *resty.Client) (json.RawMessage, error) {
	return execute(ctx, rc.R(), http.MethodGet, pathSaved, OpGetSavedPosts)
}

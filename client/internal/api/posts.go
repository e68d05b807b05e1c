package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/TanakaAkihiro0930/SocialEcho/client/internal/types"
)

// CreatePost sends the post as multipart/form-data.
func CreatePost(ctx context.Context, rc *resty.Client, req types.CreatePostRequest) (json.RawMessage, error) {
	r := rc.R().SetMultipartFormData(req.Fields)
	if f := req.File; f != nil && f.Reader != nil {
		field := f.Field
		if field == "" {
			field = "file"
		}
		r.SetMultipartField(field, f.Name, f.ContentType, f.Reader)
	}
	return execute(ctx, r, http.MethodPost, pathPosts, OpCreatePost)
}

// GetPosts lists posts of a user: GET /posts?userId=&limit=&skip=
func GetPosts(ctx context.Context, rc *resty.Client, userID string, page types.Page) (json.RawMessage, error) {
	r := rc.R().
		SetQueryParam("userId", userID).
		SetQueryParams(pageParams(page))
	return execute(ctx, r, http.MethodGet, pathPosts, OpGetPosts)
}

// GetComPosts lists posts of a community: GET /posts/{id}?limit=&skip=
func GetComPosts(ctx context.Context, rc *resty.Client, communityID string, page types.Page) (json.RawMessage, error) {
	r := rc.R().
		SetPathParam("id", communityID).
		SetQueryParams(pageParams(page))
	return execute(ctx, r, http.MethodGet, pathPost, OpGetComPosts)
}

// DeletePost removes a post by id.
func DeletePost(ctx context.Context, rc *resty.Client, id string) (json.RawMessage, error) {
	r := rc.R().SetPathParam("id", id)
	return execute(ctx, r, http.MethodDelete, pathPost, OpDeletePost)
}

// LikePost adds userID to the post's like set. Whether a repeated like is a
// no-op is decided by the server.
func LikePost(ctx context.Context, rc *resty.Client, id, userID string) (json.RawMessage, error) {
	r := rc.R().
		SetPathParam("id", id).
		SetHeader("Content-Type", "application/json").
		SetBody(types.LikeRequest{UserID: userID})
	return execute(ctx, r, http.MethodPatch, pathLike, OpLikePost)
}

// UnlikePost removes userID from the post's like set.
func UnlikePost(ctx context.Context, rc *resty.Client, id, userID string) (json.RawMessage, error) {
	r := rc.R().
		SetPathParam("id", id).
		SetHeader("Content-Type", "application/json").
		SetBody(types.LikeRequest{UserID: userID})
	return execute(ctx, r, http.MethodPatch, pathUnlike, OpUnlikePost)
}

// GetPublicPosts lists every post authored by publicUserID.
func GetPublicPosts(ctx context.Context, rc *resty.Client, publicUserID string) (json.RawMessage, error) {
	r := rc.R().SetPathParam("id", publicUserID)
	return execute(ctx, r, http.MethodGet, pathPublicPosts, OpGetPublicPosts)
}

func pageParams(p types.Page) map[string]string {
	return map[string]string{
		"limit": strconv.Itoa(p.Limit),
		"skip":  strconv.Itoa(p.Skip),
	}
}

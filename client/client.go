package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/TanakaAkihiro0930/SocialEcho/client/internal/api"
	clienterrors "github.com/TanakaAkihiro0930/SocialEcho/client/internal/errors"
	"github.com/TanakaAkihiro0930/SocialEcho/credential"
	"github.com/TanakaAkihiro0930/SocialEcho/devmode"
)

const defaultUserAgent = "socialecho-go/0.1"

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client is the post API client. It is safe for concurrent use; the
// transport is not modified after New returns.
type Client struct {
	baseURL   string
	http      *http.Client
	rest      *resty.Client
	creds     credential.Provider
	userAgent string

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for baseURL. Requests carry the bearer token of
// the configured credential provider; without one they go out unauthenticated.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("baseURL cannot be empty")
	}

	c := &Client{
		baseURL:   baseURL,
		http:      &http.Client{},
		creds:     credential.None(),
		userAgent: defaultUserAgent,
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	// Wrap HTTP transport to attach the bearer credential to every request
	c.wrapTransportWithCredentials()

	c.rest = resty.NewWithClient(c.http).
		SetBaseURL(c.baseURL).
		SetHeader("User-Agent", c.userAgent).
		SetHeader("Accept", "application/json")

	return c, nil
}

// NewWithDevMode constructs a Client that authenticates with the shared dev
// token. Only the development server accepts it.
func NewWithDevMode(baseURL string, opts ...Option) (*Client, error) {
	opts = append([]Option{WithCredentialProvider(credential.Static(devmode.AccessToken))}, opts...)
	return New(baseURL, opts...)
}

// BaseURL returns the API base URL the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// wrapTransportWithCredentials installs credentialTransport as the outermost
// round tripper.
func (c *Client) wrapTransportWithCredentials() {
	baseTransport := c.http.Transport
	if baseTransport == nil {
		baseTransport = http.DefaultTransport
	}
	c.http.Transport = &credentialTransport{
		base:  baseTransport,
		creds: c.creds,
	}
}

// credentialTransport reads the current token on every request and sets the
// Authorization header when one is available.
type credentialTransport struct {
	base  http.RoundTripper
	creds credential.Provider
}

func (t *credentialTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.creds.AccessToken(req.Context())
	if err != nil {
		// a broken store must not block the request; the server decides
		log.Warn().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("credential lookup failed, sending unauthenticated")
		token = ""
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return t.base.RoundTrip(req)
	}
	// Clone the request to avoid modifying the original
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+token)
	return t.base.RoundTrip(cloned)
}

// Close releases idle connections. Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	c.http.CloseIdleConnections()
	return nil
}

// call runs one request function and folds its outcome into a Result.
func (c *Client) call(ctx context.Context, op string, fn func(context.Context) (json.RawMessage, error)) (res Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res = failure(op, fmt.Errorf("panic: %v", r))
		}
		elapsed := time.Since(start)
		observe(op, res, elapsed)
		ev := log.Debug().Str("operation", op).Dur("elapsed", elapsed)
		if res.Err != nil {
			ev = ev.Str("kind", res.Err.Kind.String()).Int("status_code", res.Err.StatusCode).AnErr("cause", res.Err.Cause)
		}
		ev.Bool("ok", res.OK()).Msg("post api call")
	}()

	data, err := fn(withOperation(ctx, op))
	if err != nil {
		return failure(op, err)
	}
	return success(data)
}

// --------------------------------------------------------------------
// Post operations - delegated to internal/api
// --------------------------------------------------------------------

// CreatePost uploads a new post as multipart/form-data.
func (c *Client) CreatePost(ctx context.Context, req CreatePostRequest) Result {
	return c.call(ctx, api.OpCreatePost, func(ctx context.Context) (json.RawMessage, error) {
		return api.CreatePost(ctx, c.rest, req)
	})
}

// GetPosts lists posts of userID. Limit and skip default to 10 and 0.
func (c *Client) GetPosts(ctx context.Context, userID string, opts ...PageOption) Result {
	page := resolvePage(opts)
	return c.call(ctx, api.OpGetPosts, func(ctx context.Context) (json.RawMessage, error) {
		return api.GetPosts(ctx, c.rest, userID, page)
	})
}

// GetComPosts lists posts of a community. Limit and skip default to 10 and 0.
func (c *Client) GetComPosts(ctx context.Context, communityID string, opts ...PageOption) Result {
	page := resolvePage(opts)
	return c.call(ctx, api.OpGetComPosts, func(ctx context.Context) (json.RawMessage, error) {
		return api.GetComPosts(ctx, c.rest, communityID, page)
	})
}

// DeletePost deletes a post by id.
func (c *Client) DeletePost(ctx context.Context, id string) Result {
	return c.call(ctx, api.OpDeletePost, func(ctx context.Context) (json.RawMessage, error) {
		return api.DeletePost(ctx, c.rest, id)
	})
}

// LikePost adds userID to the post's likes. Each call is an independent
// request; double-counting is prevented, if at all, by the server.
func (c *Client) LikePost(ctx context.Context, id, userID string) Result {
	return c.call(ctx, api.OpLikePost, func(ctx context.Context) (json.RawMessage, error) {
		return api.LikePost(ctx, c.rest, id, userID)
	})
}

// UnlikePost removes userID from the post's likes.
func (c *Client) UnlikePost(ctx context.Context, id, userID string) Result {
	return c.call(ctx, api.OpUnlikePost, func(ctx context.Context) (json.RawMessage, error) {
		return api.UnlikePost(ctx, c.rest, id, userID)
	})
}

// AddComment appends newComment to the post's comments.
func (c *Client) AddComment(ctx context.Context, id string, newComment NewComment) Result {
	return c.call(ctx, api.OpAddComment, func(ctx context.Context) (json.RawMessage, error) {
		return api.AddComment(ctx, c.rest, id, newComment)
	})
}

// GetComments returns the full comment sequence of a post.
func (c *Client) GetComments(ctx context.Context, id string) Result {
	return c.call(ctx, api.OpGetComments, func(ctx context.Context) (json.RawMessage, error) {
		return api.GetComments(ctx, c.rest, id)
	})
}

// SavePost saves the post for the user the bearer token belongs to.
func (c *Client) SavePost(ctx context.Context, id string) Result {
	return c.call(ctx, api.OpSavePost, func(ctx context.Context) (json.RawMessage, error) {
		return api.SavePost(ctx, c.rest, id)
	})
}

// UnsavePost removes the post from the current user's saved posts.
func (c *Client) UnsavePost(ctx context.Context, id string) Result {
	return c.call(ctx, api.OpUnsavePost, func(ctx context.Context) (json.RawMessage, error) {
		return api.UnsavePost(ctx, c.rest, id)
	})
}

// GetSavedPosts returns the current user's saved posts.
func (c *Client) GetSavedPosts(ctx context.Context) Result {
	return c.call(ctx, api.OpGetSavedPosts, func(ctx context.Context) (json.RawMessage, error) {
		return api.GetSavedPosts(ctx, c.rest)
	})
}

// GetPublicPosts returns all posts authored by publicUserID.
func (c *Client) GetPublicPosts(ctx context.Context, publicUserID string) Result {
	return c.call(ctx, api.OpGetPublicPosts, func(ctx context.Context) (json.RawMessage, error) {
		return api.GetPublicPosts(ctx, c.rest, publicUserID)
	})
}

func failure(op string, err error) Result {
	return Result{Err: clienterrors.As(op, err)}
}

func success(data json.RawMessage) Result {
	if len(data) == 0 || string(data) == "null" {
		data = json.RawMessage(`""`)
	}
	return Result{Data: data}
}

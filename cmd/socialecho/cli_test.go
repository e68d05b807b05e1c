package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TanakaAkihiro0930/SocialEcho/devserver"
)

type envelope struct {
	Error *string         `json:"error"`
	Data  json.RawMessage `json:"data"`
}

type cliEnv struct {
	t     *testing.T
	srv   *devserver.Server
	url   string
	token string
	dir   string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	srv := devserver.New(devserver.WithSecret([]byte("cli-test-secret")))
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	token, err := devserver.IssueToken(srv.Secret(), "u1", time.Hour)
	require.NoError(t, err)

	dir := t.TempDir()
	for _, k := range []string{"HTTP_TIMEOUT", "LOG_LEVEL", "DEBUG", "CREDENTIAL_KEY"} {
		for _, name := range []string{"SOCIALECHO_" + k, k} {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
	t.Setenv("SOCIALECHO_API_URL", ts.URL)
	t.Setenv("SOCIALECHO_CREDENTIAL_STORE", "file")
	t.Setenv("SOCIALECHO_CREDENTIAL_PATH", filepath.Join(dir, "profile.json"))

	return &cliEnv{t: t, srv: srv, url: ts.URL, token: token, dir: dir}
}

func (e *cliEnv) exec(stdin string, args ...string) (string, error) {
	e.t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", filepath.Join(e.dir, "absent.toml")}, args...))
	err := root.Execute()
	return out.String(), err
}

func (e *cliEnv) envelope(args ...string) (envelope, error) {
	e.t.Helper()
	out, err := e.exec("", args...)
	var env envelope
	require.NoError(e.t, json.Unmarshal([]byte(out), &env), out)
	return env, err
}

func TestCLI_PostLifecycle(t *testing.T) {
	e := newCLIEnv(t)

	out, err := e.exec("", "login", "--token", e.token)
	require.NoError(t, err)
	assert.Contains(t, out, "Access token saved")

	img := filepath.Join(e.dir, "cat.png")
	require.NoError(t, os.WriteFile(img, []byte("png"), 0o600))

	env, err := e.envelope("create-post", "--body", "hello", "--community", "c1", "--user", "u1", "--file", img)
	require.NoError(t, err)
	require.Nil(t, env.Error)
	var post devserver.Post
	require.NoError(t, json.Unmarshal(env.Data, &post))
	assert.Equal(t, "hello", post.Body)
	assert.True(t, strings.HasSuffix(post.FileURL, ".png"))

	env, err = e.envelope("like", "--id", post.ID, "--user-id", "u2")
	require.NoError(t, err)
	require.Nil(t, env.Error)

	env, err = e.envelope("comment", "--id", post.ID, "--body", "nice")
	require.NoError(t, err)
	require.Nil(t, env.Error)

	env, err = e.envelope("get-comments", "--id", post.ID)
	require.NoError(t, err)
	var comments []devserver.Comment
	require.NoError(t, json.Unmarshal(env.Data, &comments))
	require.Len(t, comments, 1)
	assert.Equal(t, "u1", comments[0].User)

	env, err = e.envelope("get-posts", "--user-id", "u1")
	require.NoError(t, err)
	var page struct {
		Posts []devserver.Post `json:"formattedPosts"`
		Total int              `json:"totalPosts"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Posts, 1)
	assert.Equal(t, []string{"u2"}, page.Posts[0].Likes)

	env, err = e.envelope("save", "--id", post.ID)
	require.NoError(t, err)
	require.Nil(t, env.Error)

	env, err = e.envelope("get-saved")
	require.NoError(t, err)
	var saved []devserver.Post
	require.NoError(t, json.Unmarshal(env.Data, &saved))
	require.Len(t, saved, 1)

	env, err = e.envelope("delete-post", "--id", post.ID)
	require.NoError(t, err)
	require.Nil(t, env.Error)

	env, err = e.envelope("delete-post", "--id", post.ID)
	require.Error(t, err)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Post not found", *env.Error)
	assert.Equal(t, "null", string(env.Data))
}

func TestCLI_LogoutDropsAuthorization(t *testing.T) {
	e := newCLIEnv(t)

	// token from stdin when not a terminal
	out, err := e.exec(e.token+"\n", "login")
	require.NoError(t, err)
	assert.Contains(t, out, "Access token saved")

	env, err := e.envelope("get-saved")
	require.NoError(t, err)
	assert.Nil(t, env.Error)

	_, err = e.exec("", "logout")
	require.NoError(t, err)

	env, err = e.envelope("get-saved")
	require.Error(t, err)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Unauthorized", *env.Error)
}

func TestCLI_UnreachableServer(t *testing.T) {
	e := newCLIEnv(t)

	env, err := e.envelope("--api-url", "http://127.0.0.1:1", "get-public-posts", "--user-id", "u1")
	require.Error(t, err)
	require.NotNil(t, env.Error)
	assert.Equal(t, "An unexpected error occurred.", *env.Error)
}

func TestCLI_LoginRejectsEmptyToken(t *testing.T) {
	e := newCLIEnv(t)
	_, err := e.exec("\n", "login")
	require.Error(t, err)
}

func TestCLI_DevTokenIsAccepted(t *testing.T) {
	e := newCLIEnv(t)
	out, err := e.exec("", "dev-token", "--user-id", "u9", "--secret", "cli-test-secret")
	require.NoError(t, err)

	userID, err := devserver.UserFromToken(strings.TrimSpace(out), e.srv.Secret())
	require.NoError(t, err)
	assert.Equal(t, "u9", userID)
}

func TestCLI_MissingRequiredFlag(t *testing.T) {
	e := newCLIEnv(t)
	_, err := e.exec("", "like", "--id", "p1")
	require.Error(t, err)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("SOCIALECHO_DEV_ADDR", "")
	assert.Equal(t, ":5000", getEnv("SOCIALECHO_DEV_ADDR", ":5000"))
	t.Setenv("SOCIALECHO_DEV_ADDR", "127.0.0.1:6000")
	assert.Equal(t, "127.0.0.1:6000", getEnv("SOCIALECHO_DEV_ADDR", ":5000"))
}

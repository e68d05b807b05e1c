package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	clienterrors "github.com/TanakaAkihiro0930/SocialEcho/client/internal/errors"
	"github.com/TanakaAkihiro0930/SocialEcho/client/internal/types"
)

func TestGetPosts_QueryAndPassthrough(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/posts" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("userId") != "u1" || q.Get("limit") != "10" || q.Get("skip") != "0" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"_id":"p1","body":"hi"}`))
	}))
	defer srv.Close()

	got, err := GetPosts(context.Background(), restyFor(srv), "u1", types.DefaultPage())
	if err != nil {
		t.Fatalf("GetPosts error: %v", err)
	}
	if string(got) != `{"_id":"p1","body":"hi"}` {
		t.Fatalf("body not passed through: %s", got)
	}
}

func TestGetComPosts_PathAndPage(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/posts/c1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "5" || r.URL.Query().Get("skip") != "20" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	got, err := GetComPosts(context.Background(), restyFor(srv), "c1", types.Page{Limit: 5, Skip: 20})
	if err != nil || string(got) != "[]" {
		t.Fatalf("GetComPosts unexpected: got=%s err=%v", got, err)
	}
}

func TestCreatePost_Multipart(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			t.Errorf("expected multipart content type, got %q", r.Header.Get("Content-Type"))
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if r.FormValue("body") != "hello" {
			t.Errorf("body field = %q", r.FormValue("body"))
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
		} else {
			b, _ := io.ReadAll(f)
			if hdr.Filename != "pic.png" || string(b) != "PNGDATA" {
				t.Errorf("unexpected file %s %q", hdr.Filename, b)
			}
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"_id":"p9"}`))
	}))
	defer srv.Close()

	req := types.NewCreatePostRequest("hello", "u1", "c1")
	req.File = &types.FilePart{Name: "pic.png", ContentType: "image/png", Reader: strings.NewReader("PNGDATA")}
	got, err := CreatePost(context.Background(), restyFor(srv), req)
	if err != nil || string(got) != `{"_id":"p9"}` {
		t.Fatalf("CreatePost unexpected: got=%s err=%v", got, err)
	}
}

func TestLikeUnlike_Body(t *testing.T) {
	t.Parallel()
	var (
		mu    sync.Mutex
		paths []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH, got %s", r.Method)
		}
		var body types.LikeRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.UserID != "u1" {
			t.Errorf("unexpected body %+v err=%v", body, err)
		}
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		_, _ = w.Write([]byte(`{"_id":"p1","likes":["u1"]}`))
	}))
	defer srv.Close()

	rc := restyFor(srv)
	if _, err := LikePost(context.Background(), rc, "p1", "u1"); err != nil {
		t.Fatalf("LikePost: %v", err)
	}
	if _, err := UnlikePost(context.Background(), rc, "p1", "u1"); err != nil {
		t.Fatalf("UnlikePost: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(paths) != 2 || paths[0] != "/posts/p1/like" || paths[1] != "/posts/p1/unlike" {
		t.Fatalf("unexpected paths %v", paths)
	}
}

func TestDeleteAndPublicPosts_Paths(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete && r.URL.Path == "/posts/p1":
			_, _ = w.Write([]byte(`{"message":"Post deleted successfully"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/posts/u7/userPosts":
			_, _ = w.Write([]byte(`[{"_id":"p2"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	rc := restyFor(srv)
	if got, err := DeletePost(context.Background(), rc, "p1"); err != nil || !strings.Contains(string(got), "deleted") {
		t.Fatalf("DeletePost unexpected: got=%s err=%v", got, err)
	}
	if got, err := GetPublicPosts(context.Background(), rc, "u7"); err != nil || string(got) != `[{"_id":"p2"}]` {
		t.Fatalf("GetPublicPosts unexpected: got=%s err=%v", got, err)
	}
}

func TestExecute_ServerMessage(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not found"}`))
	}))
	defer srv.Close()

	_, err := DeletePost(context.Background(), restyFor(srv), "p1")
	apiErr := clienterrors.As(OpDeletePost, err)
	if apiErr == nil || apiErr.Kind != clienterrors.ServerReported || apiErr.Message != "Not found" || apiErr.StatusCode != 404 {
		t.Fatalf("unexpected error %#v", apiErr)
	}
}

func TestExecute_UnknownErrors(t *testing.T) {
	t.Parallel()
	cases := map[string]struct {
		status int
		body   string
	}{
		"no body":          {http.StatusInternalServerError, ""},
		"non-json body":    {http.StatusBadGateway, "<html>bad gateway</html>"},
		"empty message":    {http.StatusBadRequest, `{"message":""}`},
		"non-string msg":   {http.StatusBadRequest, `{"message":42}`},
		"other field":      {http.StatusUnauthorized, `{"error":"nope"}`},
		"malformed 200 ok": {http.StatusOK, "{bad json"},
	}
	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := GetComments(context.Background(), restyFor(srv), "p1")
			apiErr := clienterrors.As(OpGetComments, err)
			if apiErr == nil || apiErr.Kind != clienterrors.Unknown || apiErr.Message != clienterrors.UnexpectedMessage {
				t.Fatalf("unexpected error %#v", apiErr)
			}
		})
	}
}

func TestExecute_EmptySuccessBody(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	got, err := SavePost(context.Background(), restyFor(srv), "p1")
	if err != nil || string(got) != `""` {
		t.Fatalf("SavePost unexpected: got=%q err=%v", got, err)
	}
}

func TestExecute_NullSuccessBody(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("null"))
	}))
	defer srv.Close()

	got, err := DeletePost(context.Background(), restyFor(srv), "p1")
	if err != nil || string(got) != `""` {
		t.Fatalf("DeletePost unexpected: got=%q err=%v", got, err)
	}
}

func TestExecute_HTTPDoError(t *testing.T) {
	t.Parallel()
	rc := failingResty()
	if _, err := GetSavedPosts(context.Background(), rc); clienterrors.As(OpGetSavedPosts, err).Kind != clienterrors.Unknown {
		t.Fatalf("expected Unknown error for GetSavedPosts, got %v", err)
	}
	if _, err := AddComment(context.Background(), rc, "p1", types.NewComment{Body: "x"}); err == nil {
		t.Fatal("expected Do error for AddComment")
	}
}

func TestExecute_CtxCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dummy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent with a canceled context")
	}))
	defer dummy.Close()
	if _, err := GetPosts(ctx, restyFor(dummy), "u1", types.DefaultPage()); err == nil {
		t.Fatal("expected context canceled for GetPosts")
	}
}

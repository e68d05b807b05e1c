package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TanakaAkihiro0930/SocialEcho/client/internal/types"
)

func TestAddComment_WrapsNewComment(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/posts/p1/comment" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var raw map[string]map[string]string
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Errorf("decode: %v", err)
		}
		if raw["newComment"]["body"] != "nice" {
			t.Errorf("unexpected payload %v", raw)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"_id":"c1","body":"nice"}`))
	}))
	defer srv.Close()

	got, err := AddComment(context.Background(), restyFor(srv), "p1", types.NewComment{Body: "nice"})
	if err != nil || string(got) != `{"_id":"c1","body":"nice"}` {
		t.Fatalf("AddComment unexpected: got=%s err=%v", got, err)
	}
}

func TestGetComments_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/posts/p1/comment" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"_id":"c1"},{"_id":"c2"}]`))
	}))
	defer srv.Close()

	got, err := GetComments(context.Background(), restyFor(srv), "p1")
	if err != nil {
		t.Fatalf("GetComments error: %v", err)
	}
	var cs []types.Comment
	if err := json.Unmarshal(got, &cs); err != nil || len(cs) != 2 || cs[1].ID != "c2" {
		t.Fatalf("unexpected comments %s err=%v", got, err)
	}
}

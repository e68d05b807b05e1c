package devserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// pagedPosts is the body of the paginated list endpoints.
type pagedPosts struct {
	Posts      []Post `json:"formattedPosts"`
	TotalPosts int    `json:"totalPosts"`
}

type likeBody struct {
	UserID string `json:"userId"`
}

type commentBody struct {
	NewComment struct {
		Body string `json:"body"`
		User string `json:"user"`
	} `json:"newComment"`
}

// handleCreatePost POST /posts (multipart/form-data)
func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	p := Post{
		Body:      strings.TrimSpace(r.FormValue("body")),
		User:      r.FormValue("user"),
		Community: r.FormValue("community"),
	}
	if p.Body == "" {
		writeMessage(w, http.StatusBadRequest, "Post body is required")
		return
	}
	if p.User == "" {
		p.User = UserID(r.Context())
	}

	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		_ = file.Close()
		p.FileURL = "/uploads/" + uuid.NewString() + strings.ToLower(path.Ext(header.Filename))
		p.FileType = header.Header.Get("Content-Type")
	case errors.Is(err, http.ErrMissingFile):
	default:
		writeMessage(w, http.StatusBadRequest, "Invalid file upload")
		return
	}

	writeJSON(w, http.StatusOK, s.store.Create(p))
}

// handleGetPosts GET /posts?userId=&limit=&skip=
func (s *Server) handleGetPosts(w http.ResponseWriter, r *http.Request) {
	limit, skip, ok := pageParams(w, r)
	if !ok {
		return
	}
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeMessage(w, http.StatusBadRequest, "userId is required")
		return
	}
	all := s.store.Feed(userID)
	writeJSON(w, http.StatusOK, pagedPosts{Posts: paginate(all, limit, skip), TotalPosts: len(all)})
}

// handleGetCommunityPosts GET /posts/{id}?limit=&skip=
func (s *Server) handleGetCommunityPosts(w http.ResponseWriter, r *http.Request) {
	limit, skip, ok := pageParams(w, r)
	if !ok {
		return
	}
	all := s.store.ByCommunity(mux.Vars(r)["id"])
	writeJSON(w, http.StatusOK, pagedPosts{Posts: paginate(all, limit, skip), TotalPosts: len(all)})
}

// handleDeletePost DELETE /posts/{id}
func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Delete(mux.Vars(r)["id"])
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"_id": p.ID, "message": "Post deleted successfully"})
}

// handleLike PATCH /posts/{id}/like
func (s *Server) handleLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := likeUser(w, r)
	if !ok {
		return
	}
	p, err := s.store.Like(mux.Vars(r)["id"], userID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleUnlike PATCH /posts/{id}/unlike
func (s *Server) handleUnlike(w http.ResponseWriter, r *http.Request) {
	userID, ok := likeUser(w, r)
	if !ok {
		return
	}
	p, err := s.store.Unlike(mux.Vars(r)["id"], userID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleAddComment POST /posts/{id}/comment
func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	var req commentBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.NewComment.Body) == "" {
		writeMessage(w, http.StatusBadRequest, "Comment body is required")
		return
	}
	c := Comment{Body: req.NewComment.Body, User: req.NewComment.User}
	if c.User == "" {
		c.User = UserID(r.Context())
	}
	p, err := s.store.AddComment(mux.Vars(r)["id"], c)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleGetComments GET /posts/{id}/comment
func (s *Server) handleGetComments(w http.ResponseWriter, r *http.Request) {
	comments, err := s.store.Comments(mux.Vars(r)["id"])
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

// handleSave PATCH /posts/{id}/save
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Save(UserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleUnsave PATCH /posts/{id}/unsave
func (s *Server) handleUnsave(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Unsave(UserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleGetSaved GET /posts/saved
func (s *Server) handleGetSaved(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Saved(UserID(r.Context())))
}

// handleGetPublicPosts GET /posts/{id}/userPosts
func (s *Server) handleGetPublicPosts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ByUser(mux.Vars(r)["id"]))
}

func likeUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req likeBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return "", false
	}
	if req.UserID == "" {
		writeMessage(w, http.StatusBadRequest, "userId is required")
		return "", false
	}
	return req.UserID, true
}

// pageParams parses limit and skip; absent values mean no limit and skip 0.
func pageParams(w http.ResponseWriter, r *http.Request) (limit, skip int, ok bool) {
	q := r.URL.Query()
	var err error
	if v := q.Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid limit")
			return 0, 0, false
		}
	}
	if v := q.Get("skip"); v != "" {
		if skip, err = strconv.Atoi(v); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid skip")
			return 0, 0, false
		}
	}
	return limit, skip, true
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrPostNotFound) {
		writeMessage(w, http.StatusNotFound, "Post not found")
		return
	}
	writeMessage(w, http.StatusInternalServerError, err.Error())
}

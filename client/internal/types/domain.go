package types

import (
	"bytes"
	"encoding/json"
	"path"
	"strings"
	"time"
)

// ------------------------------
// Core Domain Entities
// ------------------------------

// Ref is a user or community reference. The backend sends either a bare id
// string or a populated object, so both forms decode into Ref.
type Ref struct {
	ID     string `json:"_id"`
	Name   string `json:"name,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// UnmarshalJSON accepts "id" as well as {"_id": ..., "name": ...}.
func (r *Ref) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = Ref{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = Ref{ID: id}
		return nil
	}
	type plain Ref
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*r = Ref(p)
	return nil
}

// Comment is one entry of a post's comment sequence.
type Comment struct {
	ID        string    `json:"_id"`
	Body      string    `json:"body"`
	User      Ref       `json:"user"`
	Post      string    `json:"post,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Post is the typed view of a post payload. The client never validates it;
// callers decode into it when they want typed access.
type Post struct {
	ID        string    `json:"_id"`
	Body      string    `json:"body"`
	FileURL   string    `json:"fileUrl,omitempty"`
	FileType  string    `json:"fileType,omitempty"`
	User      Ref       `json:"user"`
	Community Ref       `json:"community"`
	Likes     []string  `json:"likes,omitempty"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
}

// MediaKind classifies an attached file.
type MediaKind string

const (
	MediaNone  MediaKind = "none"
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".png":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

// MediaKind reports whether the post carries an image, a video, or nothing.
// Any attachment without a known image extension is treated as video.
func (p Post) MediaKind() MediaKind {
	if strings.TrimSpace(p.FileURL) == "" {
		return MediaNone
	}
	if imageExtensions[path.Ext(p.FileURL)] {
		return MediaImage
	}
	return MediaVideo
}

// LikedBy reports whether userID is in the post's like set.
func (p Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

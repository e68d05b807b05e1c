package devserver

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrPostNotFound is returned when no post has the requested id.
var ErrPostNotFound = errors.New("post not found")

// Post is the wire shape served by the dev backend.
type Post struct {
	ID        string    `json:"_id"`
	Body      string    `json:"body"`
	FileURL   string    `json:"fileUrl,omitempty"`
	FileType  string    `json:"fileType,omitempty"`
	User      string    `json:"user"`
	Community string    `json:"community"`
	Likes     []string  `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`

	seq uint64
}

// Comment is one comment on a post.
type Comment struct {
	ID        string    `json:"_id"`
	Body      string    `json:"body"`
	User      string    `json:"user"`
	Post      string    `json:"post"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store keeps posts and saved-post sets in memory.
type Store struct {
	mu    sync.RWMutex
	posts map[string]*Post
	saved map[string]map[string]struct{} // user -> post ids
	seq   uint64
	now   func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		posts: make(map[string]*Post),
		saved: make(map[string]map[string]struct{}),
		now:   time.Now,
	}
}

// Create stores a new post and returns a copy of it.
func (s *Store) Create(p Post) Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	p.seq = s.seq
	p.ID = uuid.NewString()
	p.CreatedAt = s.now().UTC()
	if p.Likes == nil {
		p.Likes = []string{}
	}
	p.Comments = []Comment{}
	s.posts[p.ID] = &p
	return clonePost(&p)
}

// Feed returns posts of every community userID has posted in, newest first.
func (s *Store) Feed(userID string) []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	joined := make(map[string]struct{})
	for _, p := range s.posts {
		if p.User == userID {
			joined[p.Community] = struct{}{}
		}
	}
	return s.filterLocked(func(p *Post) bool {
		_, ok := joined[p.Community]
		return ok
	})
}

// ByCommunity returns the posts of communityID, newest first.
func (s *Store) ByCommunity(communityID string) []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(func(p *Post) bool { return p.Community == communityID })
}

// ByUser returns the posts authored by userID, newest first.
func (s *Store) ByUser(userID string) []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(func(p *Post) bool { return p.User == userID })
}

// Delete removes a post and drops it from every saved set.
func (s *Store) Delete(id string) (Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return Post{}, ErrPostNotFound
	}
	delete(s.posts, id)
	for _, set := range s.saved {
		delete(set, id)
	}
	return clonePost(p), nil
}

// Like adds userID to the like set. Liking twice is a no-op.
func (s *Store) Like(id, userID string) (Post, error) {
	return s.update(id, func(p *Post) {
		for _, u := range p.Likes {
			if u == userID {
				return
			}
		}
		p.Likes = append(p.Likes, userID)
	})
}

// Unlike removes userID from the like set.
func (s *Store) Unlike(id, userID string) (Post, error) {
	return s.update(id, func(p *Post) {
		kept := p.Likes[:0]
		for _, u := range p.Likes {
			if u != userID {
				kept = append(kept, u)
			}
		}
		p.Likes = kept
	})
}

// AddComment appends a comment and returns the updated post.
func (s *Store) AddComment(id string, c Comment) (Post, error) {
	return s.update(id, func(p *Post) {
		c.ID = uuid.NewString()
		c.Post = p.ID
		c.CreatedAt = s.now().UTC()
		p.Comments = append(p.Comments, c)
	})
}

// Comments returns the comments of a post in insertion order.
func (s *Store) Comments(id string) ([]Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, ErrPostNotFound
	}
	return append([]Comment{}, p.Comments...), nil
}

// Save adds the post to userID's saved set. Saving twice is a no-op.
func (s *Store) Save(userID, id string) (Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return Post{}, ErrPostNotFound
	}
	set, ok := s.saved[userID]
	if !ok {
		set = make(map[string]struct{})
		s.saved[userID] = set
	}
	set[id] = struct{}{}
	return clonePost(p), nil
}

// Unsave removes the post from userID's saved set.
func (s *Store) Unsave(userID, id string) (Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return Post{}, ErrPostNotFound
	}
	delete(s.saved[userID], id)
	return clonePost(p), nil
}

// Saved returns userID's saved posts, newest first.
func (s *Store) Saved(userID string) []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := s.saved[userID]
	return s.filterLocked(func(p *Post) bool {
		_, ok := set[p.ID]
		return ok
	})
}

func (s *Store) update(id string, fn func(*Post)) (Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return Post{}, ErrPostNotFound
	}
	fn(p)
	return clonePost(p), nil
}

func (s *Store) filterLocked(keep func(*Post) bool) []Post {
	out := []Post{}
	for _, p := range s.posts {
		if keep(p) {
			out = append(out, clonePost(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq > out[j].seq })
	return out
}

func clonePost(p *Post) Post {
	c := *p
	c.Likes = append([]string{}, p.Likes...)
	c.Comments = append([]Comment{}, p.Comments...)
	return c
}

// paginate applies skip then limit; limit <= 0 means no limit.
func paginate(posts []Post, limit, skip int) []Post {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(posts) {
		return []Post{}
	}
	posts = posts[skip:]
	if limit > 0 && limit < len(posts) {
		posts = posts[:limit]
	}
	return posts
}

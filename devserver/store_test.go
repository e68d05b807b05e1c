package devserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LikeIsSet(t *testing.T) {
	s := NewStore()
	p := s.Create(Post{Body: "hi", User: "u1", Community: "c1"})

	_, err := s.Like(p.ID, "u2")
	require.NoError(t, err)
	got, err := s.Like(p.ID, "u2")
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, got.Likes)

	got, err = s.Unlike(p.ID, "u2")
	require.NoError(t, err)
	assert.Empty(t, got.Likes)

	// unlike without like is a no-op
	got, err = s.Unlike(p.ID, "u3")
	require.NoError(t, err)
	assert.Empty(t, got.Likes)
}

func TestStore_SaveIsSet(t *testing.T) {
	s := NewStore()
	p := s.Create(Post{Body: "hi", User: "u1", Community: "c1"})

	_, err := s.Save("u1", p.ID)
	require.NoError(t, err)
	_, err = s.Save("u1", p.ID)
	require.NoError(t, err)
	assert.Len(t, s.Saved("u1"), 1)
	assert.Empty(t, s.Saved("u2"))

	_, err = s.Unsave("u1", p.ID)
	require.NoError(t, err)
	assert.Empty(t, s.Saved("u1"))
}

func TestStore_NotFound(t *testing.T) {
	s := NewStore()
	_, err := s.Like("missing", "u1")
	assert.ErrorIs(t, err, ErrPostNotFound)
	_, err = s.Delete("missing")
	assert.ErrorIs(t, err, ErrPostNotFound)
	_, err = s.Comments("missing")
	assert.ErrorIs(t, err, ErrPostNotFound)
	_, err = s.Save("u1", "missing")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestStore_OrderingAndFilters(t *testing.T) {
	s := NewStore()
	a := s.Create(Post{Body: "a", User: "u1", Community: "c1"})
	b := s.Create(Post{Body: "b", User: "u2", Community: "c1"})
	c := s.Create(Post{Body: "c", User: "u2", Community: "c2"})

	ids := func(ps []Post) []string {
		out := make([]string, 0, len(ps))
		for _, p := range ps {
			out = append(out, p.ID)
		}
		return out
	}

	assert.Equal(t, []string{b.ID, a.ID}, ids(s.ByCommunity("c1")))
	assert.Equal(t, []string{c.ID, b.ID}, ids(s.ByUser("u2")))
	// u1 only posted in c1
	assert.Equal(t, []string{b.ID, a.ID}, ids(s.Feed("u1")))
	assert.Equal(t, []string{c.ID, b.ID, a.ID}, ids(s.Feed("u2")))
}

func TestStore_DeleteDropsSaved(t *testing.T) {
	s := NewStore()
	p := s.Create(Post{Body: "a", User: "u1", Community: "c1"})
	_, err := s.Save("u1", p.ID)
	require.NoError(t, err)

	_, err = s.Delete(p.ID)
	require.NoError(t, err)
	assert.Empty(t, s.Saved("u1"))
}

func TestStore_ReturnsCopies(t *testing.T) {
	s := NewStore()
	p := s.Create(Post{Body: "a", User: "u1", Community: "c1"})
	got, err := s.Like(p.ID, "u2")
	require.NoError(t, err)
	got.Likes[0] = "mutated"

	again, err := s.Like(p.ID, "u3")
	require.NoError(t, err)
	assert.Equal(t, []string{"u2", "u3"}, again.Likes)
}

func TestPaginate(t *testing.T) {
	posts := []Post{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	assert.Len(t, paginate(posts, 2, 0), 2)
	assert.Equal(t, "3", paginate(posts, 2, 2)[0].ID)
	assert.Empty(t, paginate(posts, 2, 5))
	assert.Len(t, paginate(posts, 0, 0), 3)
	assert.Len(t, paginate(posts, -1, -1), 3)
}

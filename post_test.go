package cheesyblog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypergopher/cheesyblog"
)

func TestPost_Slug(t *testing.T) {
	cases := []struct {
		title    string
		id       int
		slug     string
		anchorID string
	}{
		{title: "Meet The Chef!", id: 1, slug: "meet-the-chef", anchorID: "post-meet-the-chef"},
		{title: "Easy Cheesy Meals", id: 2, slug: "easy-cheesy-meals", anchorID: "post-easy-cheesy-meals"},
		{title: "", id: 3, slug: "", anchorID: "post-3"},
	}

	for _, tc := range cases {
		t.Run(tc.title, func(t *testing.T) {
			post := cheesyblog.Post{ID: tc.id, Title: tc.title}
			assert.Equal(t, tc.slug, post.Slug())
			assert.Equal(t, tc.anchorID, post.AnchorID())
		})
	}
}

func TestPost_Clone(t *testing.T) {
	post := cheesyblog.Post{ID: 1, Comments: []string{"a"}}
	clone := post.Clone()
	clone.Comments[0] = "b"
	assert.Equal(t, "a", post.Comments[0])

	empty := cheesyblog.Post{ID: 2}.Clone()
	assert.NotNil(t, empty.Comments)
	assert.False(t, empty.HasComments())
}

func TestSerializePosts(t *testing.T) {
	data, err := cheesyblog.SerializePosts([]cheesyblog.Post{{ID: 1, Title: "Meet The Chef!", Likes: 2}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"id": 1,
		"title": "Meet The Chef!",
		"image": "",
		"date": "",
		"likes": 2,
		"comments": [],
		"description": ""
	}]`, string(data))
}

func TestDeserializePosts(t *testing.T) {
	posts, err := cheesyblog.DeserializePosts([]byte(`[
		{"id": 2, "title": "Easy Cheesy Meals", "likes": 1, "comments": ["yum", "more"]},
		{"id": 1, "title": "Meet The Chef!", "comments": null}
	]`))
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, 2, posts[0].ID)
	assert.Equal(t, []string{"yum", "more"}, posts[0].Comments)
	assert.Equal(t, []string{}, posts[1].Comments)

	posts, err = cheesyblog.DeserializePosts([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, posts)

	_, err = cheesyblog.DeserializePosts([]byte(`[{"id": 1}, {"id": 1}]`))
	assert.ErrorIs(t, err, cheesyblog.ErrDuplicatePostID)

	_, err = cheesyblog.DeserializePosts([]byte(`null`))
	assert.Error(t, err)
}

func TestPostMeta_Validate(t *testing.T) {
	assert.NoError(t, (&cheesyblog.PostMeta{ID: 1, Title: "ok"}).Validate())
	assert.ErrorIs(t, (&cheesyblog.PostMeta{ID: 0, Title: "no id"}).Validate(), cheesyblog.ErrInvalidPostMeta)
	assert.ErrorIs(t, (&cheesyblog.PostMeta{ID: 4}).Validate(), cheesyblog.ErrInvalidPostMeta)
}

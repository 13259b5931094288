package cheesyblog_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypergopher/cheesyblog"
)

func TestHTMLRenderer_Render(t *testing.T) {
	apply := requireApplied(t)
	store := openStore(t, cheesyblog.NewMemoryKVStore())
	apply(store.ToggleLike(1))
	apply(store.AddComment(1, "Great food!"))
	apply(store.AddComment(1, "<script>alert(1)</script>"))

	var buf bytes.Buffer
	var renderer cheesyblog.Renderer = cheesyblog.NewHTMLRenderer()
	require.NoError(t, renderer.Render(&buf, store.View()))
	html := buf.String()

	assert.Equal(t, 2, strings.Count(html, `<div class="post"`))
	assert.Contains(t, html, `id="post-meet-the-chef"`)
	assert.Contains(t, html, `<h2>Meet The Chef!</h2>`)
	assert.Contains(t, html, `<p>1 likes</p>`)
	assert.Contains(t, html, `<p>0 likes</p>`)
	assert.Contains(t, html, `data-post="1">Unlike</button>`)
	assert.Contains(t, html, `data-post="2">Like</button>`)
	assert.Contains(t, html, `<p>Great food!</p>`)
	assert.Contains(t, html, `data-post="1" data-index="1">Delete</button>`)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Equal(t, 2, strings.Count(html, `placeholder="Leave a comment..."`))
}

func TestHTMLRenderer_Idempotent(t *testing.T) {
	store := openStore(t, cheesyblog.NewMemoryKVStore())
	renderer := cheesyblog.NewHTMLRenderer()

	var first, second bytes.Buffer
	require.NoError(t, renderer.Render(&first, store.View()))
	require.NoError(t, renderer.Render(&second, store.View()))
	assert.Equal(t, first.String(), second.String())
}

func TestView_IsLiked(t *testing.T) {
	view := cheesyblog.View{Liked: []int{2}}
	assert.True(t, view.IsLiked(2))
	assert.False(t, view.IsLiked(1))
}

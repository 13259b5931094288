package cheesyblog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypergopher/cheesyblog"
)

func TestLoadSeedDir(t *testing.T) {
	posts, err := cheesyblog.LoadSeedDir(nil, "testdata/seed")
	require.NoError(t, err)
	require.Len(t, posts, 2)

	chef := posts[0]
	assert.Equal(t, 1, chef.ID)
	assert.Equal(t, "Meet The Chef!", chef.Title)
	assert.Equal(t, "../images/MouseEatingMacAndCheese.jpg", chef.Image)
	assert.Equal(t, "Nov. 12, 2024", chef.Date)
	assert.Equal(t, 0, chef.Likes)
	assert.Equal(t, []string{}, chef.Comments)
	assert.Equal(t, "<p>Chef Mouster Cheese, the founder of <strong>Take It Cheesy</strong>!</p>", chef.Description)

	// TOML frontmatter
	meals := posts[1]
	assert.Equal(t, 2, meals.ID)
	assert.Equal(t, "Easy Cheesy Meals", meals.Title)
	assert.Equal(t, "Nov. 5, 2024", meals.Date)
	assert.Contains(t, meals.Description, "The grand opening of Take It Cheesy!")
}

func TestLoadSeedDir_Errors(t *testing.T) {
	_, err := cheesyblog.LoadSeedDir(nil, "testdata/badseed")
	assert.ErrorIs(t, err, cheesyblog.ErrInvalidPostMeta)

	_, err = cheesyblog.LoadSeedDir(nil, "testdata/dupseed")
	assert.ErrorIs(t, err, cheesyblog.ErrDuplicatePostID)

	_, err = cheesyblog.LoadSeedDir(nil, "testdata/missing")
	assert.Error(t, err)
}

func TestMarkdownToPost_MissingFrontmatter(t *testing.T) {
	parse := cheesyblog.DefaultMarkdownParser()
	_, err := parse([]byte("# Just a heading\n"))
	assert.ErrorIs(t, err, cheesyblog.ErrInvalidPostMeta)
}

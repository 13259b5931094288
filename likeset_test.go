package cheesyblog_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypergopher/cheesyblog"
)

func TestLikeSet(t *testing.T) {
	ls := cheesyblog.NewLikeSet(3, 1, 3)
	assert.Equal(t, []int{3, 1}, ls.IDs())
	assert.Equal(t, 2, ls.Len())

	assert.True(t, ls.Has(1))
	assert.False(t, ls.Add(1))
	assert.True(t, ls.Add(2))
	assert.True(t, ls.Remove(3))
	assert.False(t, ls.Remove(3))
	assert.Equal(t, []int{1, 2}, ls.IDs())
}

func TestLikeSet_JSON(t *testing.T) {
	data, err := json.Marshal(cheesyblog.NewLikeSet())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	data, err = json.Marshal(cheesyblog.NewLikeSet(2, 1))
	require.NoError(t, err)
	assert.Equal(t, "[2,1]", string(data))

	var ls cheesyblog.LikeSet
	require.NoError(t, json.Unmarshal([]byte("[1,1,2]"), &ls))
	assert.Equal(t, []int{1, 2}, ls.IDs())

	assert.Error(t, json.Unmarshal([]byte(`["1"]`), &ls))
	assert.Error(t, json.Unmarshal([]byte(`{}`), &ls))
}

package cheesyblog

import (
	"encoding/json"
	"fmt"
	"slices"
)

// LikeSet holds the ids of the posts the current client has liked. Ids keep the order in which they were liked.
type LikeSet struct {
	ids []int
}

// NewLikeSet returns a LikeSet containing the given ids. Duplicates are collapsed.
func NewLikeSet(ids ...int) *LikeSet {
	ls := &LikeSet{ids: make([]int, 0, len(ids))}
	for _, id := range ids {
		ls.Add(id)
	}
	return ls
}

// Has returns true if the post id is in the set
func (ls *LikeSet) Has(id int) bool {
	return slices.Contains(ls.ids, id)
}

// Add adds the post id to the set. It returns false if the id was already present.
func (ls *LikeSet) Add(id int) bool {
	if ls.Has(id) {
		return false
	}
	ls.ids = append(ls.ids, id)
	return true
}

// Remove removes the post id from the set. It returns false if the id was not present.
func (ls *LikeSet) Remove(id int) bool {
	i := slices.Index(ls.ids, id)
	if i < 0 {
		return false
	}
	ls.ids = slices.Delete(ls.ids, i, i+1)
	return true
}

// Len returns the number of liked posts
func (ls *LikeSet) Len() int {
	return len(ls.ids)
}

// IDs returns a copy of the liked post ids
func (ls *LikeSet) IDs() []int {
	return slices.Clone(ls.ids)
}

func (ls *LikeSet) MarshalJSON() ([]byte, error) {
	if ls.ids == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(ls.ids)
}

func (ls *LikeSet) UnmarshalJSON(data []byte) error {
	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}

	if ids == nil {
		return fmt.Errorf("no liked posts in %q", data)
	}

	*ls = *NewLikeSet(ids...)
	return nil
}

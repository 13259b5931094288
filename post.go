package cheesyblog

import (
	"encoding/json"
	"fmt"

	"github.com/gosimple/slug"
)

// Post represents a blog post with its like counter and comments
type Post struct {
	ID          int      `json:"id"`          // ID is assigned at seed time and never reassigned
	Title       string   `json:"title"`       // Title is the display title of the post
	Image       string   `json:"image"`       // Image is the path or URL of the post image
	Date        string   `json:"date"`        // Date is a display string, it is never parsed
	Likes       int      `json:"likes"`       // Likes is the like counter, only changed by toggling a like
	Comments    []string `json:"comments"`    // Comments are kept in insertion order
	Description string   `json:"description"` // Description is the body of the post
}

// PostMeta represents the frontmatter of a seed post
type PostMeta struct {
	ID    int    `yaml:"id" toml:"id"`
	Title string `yaml:"title" toml:"title"`
	Image string `yaml:"image,omitempty" toml:"image,omitempty"`
	Date  string `yaml:"date,omitempty" toml:"date,omitempty"`
}

func (m *PostMeta) Validate() error {
	if m.ID <= 0 {
		return fmt.Errorf("%w: id must be a positive integer, got %d", ErrInvalidPostMeta, m.ID)
	}

	if m.Title == "" {
		return fmt.Errorf("%w: post %d has no title", ErrInvalidPostMeta, m.ID)
	}

	return nil
}

// Clone returns a deep copy of the post. Comments are never nil on the copy.
func (p Post) Clone() Post {
	comments := make([]string, len(p.Comments))
	copy(comments, p.Comments)
	p.Comments = comments
	return p
}

// HasComments returns true if the post has at least one comment
func (p Post) HasComments() bool {
	return len(p.Comments) > 0
}

// HasImage returns true if the post has an image
func (p Post) HasImage() bool {
	return p.Image != ""
}

// Slug returns the URL-friendly version of the title
func (p Post) Slug() string {
	return slug.Make(p.Title)
}

// AnchorID returns the element id used for the post in rendered markup
func (p Post) AnchorID() string {
	if s := p.Slug(); s != "" {
		return "post-" + s
	}
	return fmt.Sprintf("post-%d", p.ID)
}

// SerializePosts serializes a post collection to JSON text
func SerializePosts(posts []Post) ([]byte, error) {
	out := make([]Post, len(posts))
	for i, post := range posts {
		out[i] = post.Clone()
	}
	return json.Marshal(out)
}

// DeserializePosts deserializes JSON text to a post collection. A JSON null, a collection
// containing duplicate ids, or a negative like counter is rejected.
func DeserializePosts(data []byte) ([]Post, error) {
	var posts []Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, err
	}

	if posts == nil {
		return nil, fmt.Errorf("no posts in %q", data)
	}

	if err := checkPosts(posts); err != nil {
		return nil, err
	}

	for i := range posts {
		posts[i] = posts[i].Clone()
	}

	return posts, nil
}

func checkPosts(posts []Post) error {
	seen := make(map[int]struct{}, len(posts))
	for _, post := range posts {
		if _, ok := seen[post.ID]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicatePostID, post.ID)
		}
		seen[post.ID] = struct{}{}

		if post.Likes < 0 {
			return fmt.Errorf("post %d has a negative like count", post.ID)
		}
	}
	return nil
}

func clonePosts(posts []Post) []Post {
	out := make([]Post, len(posts))
	for i, post := range posts {
		out[i] = post.Clone()
	}
	return out
}

package cheesyblog

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

const (
	KeyPosts      = "posts"
	KeyLikedPosts = "likedPosts"
)

// PostStore owns the post collection and the like-set. Every mutation writes the full state back to the
// KVStore before returning.
type PostStore struct {
	kv     KVStore
	liked  *LikeSet
	logger *slog.Logger
	mu     sync.RWMutex
	posts  []Post
	seed   []Post
}

// Options is a struct for configuring a new PostStore.
type Options struct {
	Logger *slog.Logger // Logger is the logger used by the store. Default is a debug logger to stderr.
	Seed   []Post       // Seed is used when no valid posts are persisted. Default is SeedPosts().
}

// OpenPostStore creates a PostStore backed by kv and loads its state.
func OpenPostStore(kv KVStore, opts Options) (*PostStore, error) {
	if opts.Logger == nil {
		opts.Logger = defaultLogger()
	}

	if opts.Seed == nil {
		opts.Seed = SeedPosts()
	}

	if err := checkPosts(opts.Seed); err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}

	s := &PostStore{
		kv:     kv,
		logger: opts.Logger,
		seed:   clonePosts(opts.Seed),
	}

	if err := s.Load(); err != nil {
		return nil, err
	}

	return s, nil
}

// Load replaces the in-memory state with the persisted state. Missing or malformed posts fall back to the
// seed, missing or malformed liked posts fall back to an empty set. Liked ids of posts with zero likes are
// dropped. Nothing is written.
func (s *PostStore) Load() error {
	postsData, postsOK, err := s.kv.Get(KeyPosts)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", KeyPosts, err)
	}

	likedData, likedOK, err := s.kv.Get(KeyLikedPosts)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", KeyLikedPosts, err)
	}

	posts := clonePosts(s.seed)
	if postsOK {
		if decoded, err := DeserializePosts([]byte(postsData)); err != nil {
			s.logger.Warn("persisted posts are malformed, using seed posts", slog.String("error", err.Error()))
		} else {
			posts = decoded
		}
	}

	liked := NewLikeSet()
	if likedOK {
		if err := liked.UnmarshalJSON([]byte(likedData)); err != nil {
			s.logger.Warn("persisted liked posts are malformed, starting empty", slog.String("error", err.Error()))
			liked = NewLikeSet()
		}
	}

	reconcileLikes(posts, liked, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts = posts
	s.liked = liked
	return nil
}

// reconcileLikes drops liked ids of posts with zero likes
func reconcileLikes(posts []Post, liked *LikeSet, logger *slog.Logger) {
	for _, post := range posts {
		if post.Likes == 0 && liked.Remove(post.ID) {
			logger.Warn("dropping like for post without likes", slog.Int("id", post.ID))
		}
	}
}

// Posts returns a copy of the post collection in seed order.
func (s *PostStore) Posts() []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return clonePosts(s.posts)
}

// Post returns a copy of the post with the given id.
func (s *PostStore) Post(id int) (Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Post{}, false
	}
	return s.posts[i].Clone(), true
}

// IsLiked returns true if the current client has liked the post.
func (s *PostStore) IsLiked(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.liked.Has(id)
}

// LikedPosts returns the liked post ids in the order they were liked.
func (s *PostStore) LikedPosts() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.liked.IDs()
}

// View returns a snapshot of the store for a Renderer.
func (s *PostStore) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return View{
		Posts: clonePosts(s.posts),
		Liked: s.liked.IDs(),
	}
}

// ToggleLike likes the post if the client has not liked it yet, and unlikes it otherwise. An unknown id is a
// no-op and reports applied as false. A non-nil error means the new state could not be persisted, the
// in-memory state is still updated.
func (s *PostStore) ToggleLike(id int) (applied bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}

	if s.liked.Remove(id) {
		s.posts[i].Likes = max(s.posts[i].Likes-1, 0)
	} else {
		s.liked.Add(id)
		s.posts[i].Likes++
	}

	return true, s.persist()
}

// AddComment appends text to the comments of the post. Empty text is not rejected here.
func (s *PostStore) AddComment(id int, text string) (applied bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}

	s.posts[i].Comments = append(s.posts[i].Comments, text)
	return true, s.persist()
}

// DeleteComment removes the comment at index. Later comments shift down by one. An unknown id or an index
// outside the comments is a no-op.
func (s *PostStore) DeleteComment(id, index int) (applied bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}

	comments := s.posts[i].Comments
	if index < 0 || index >= len(comments) {
		return false, nil
	}

	s.posts[i].Comments = slices.Delete(comments, index, index+1)
	return true, s.persist()
}

func (s *PostStore) indexOf(id int) int {
	return slices.IndexFunc(s.posts, func(p Post) bool {
		return p.ID == id
	})
}

// persist must be called with the lock held
func (s *PostStore) persist() error {
	postsData, err := SerializePosts(s.posts)
	if err != nil {
		return fmt.Errorf("%w: error serializing posts: %w", ErrPersist, err)
	}

	likedData, err := s.liked.MarshalJSON()
	if err != nil {
		return fmt.Errorf("%w: error serializing liked posts: %w", ErrPersist, err)
	}

	values := map[string]string{
		KeyPosts:      string(postsData),
		KeyLikedPosts: string(likedData),
	}

	if err := writeAll(s.kv, values, KeyPosts, KeyLikedPosts); err != nil {
		s.logger.Error("failed to persist posts", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	return nil
}

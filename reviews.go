package cheesyblog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	KeyReviews       = "reviews"
	AnonymousName    = "Anonymous"
	MaxRating        = 5
	reviewDateInput  = "2006-01-02"
	reviewDateOutput = "1/2/2006"
)

// Review is a stored customer review
type Review struct {
	Name   string `json:"name"`
	Review string `json:"review"`
	Rating int    `json:"rating"`
	Date   string `json:"date"`
}

// ReviewInput is the review form as submitted by a customer
type ReviewInput struct {
	Name   string
	Review string `validate:"required"`
	Rating int    `validate:"gte=0,lte=5"`
	Date   string `validate:"required,datetime=2006-01-02"`
}

// ReviewBook keeps the submitted reviews in the KVStore
type ReviewBook struct {
	kv       KVStore
	logger   *slog.Logger
	mu       sync.RWMutex
	reviews  []Review
	validate *validator.Validate
}

// OpenReviewBook creates a ReviewBook backed by kv and loads the stored reviews.
func OpenReviewBook(kv KVStore, logger *slog.Logger) (*ReviewBook, error) {
	if logger == nil {
		logger = defaultLogger()
	}

	rb := &ReviewBook{
		kv:       kv,
		logger:   logger,
		validate: newValidator(),
	}

	data, ok, err := kv.Get(KeyReviews)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", KeyReviews, err)
	}

	if ok {
		if err := json.Unmarshal([]byte(data), &rb.reviews); err != nil {
			logger.Warn("persisted reviews are malformed, starting empty", slog.String("error", err.Error()))
			rb.reviews = nil
		}
	}

	return rb, nil
}

// Submit validates the input, appends the review and persists all reviews.
func (rb *ReviewBook) Submit(input ReviewInput) (Review, error) {
	if err := rb.validate.Struct(input); err != nil {
		return Review{}, fmt.Errorf("%w: %w", ErrInvalidReview, err)
	}

	date, err := time.Parse(reviewDateInput, input.Date)
	if err != nil {
		return Review{}, fmt.Errorf("%w: %w", ErrInvalidReview, err)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = AnonymousName
	}

	review := Review{
		Name:   name,
		Review: input.Review,
		Rating: input.Rating,
		Date:   date.Format(reviewDateOutput),
	}

	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.reviews = append(rb.reviews, review)

	data, err := json.Marshal(rb.reviews)
	if err != nil {
		return review, fmt.Errorf("%w: error serializing reviews: %w", ErrPersist, err)
	}

	if err := rb.kv.Set(KeyReviews, string(data)); err != nil {
		rb.logger.Error("failed to persist reviews", slog.String("error", err.Error()))
		return review, fmt.Errorf("%w: %w", ErrPersist, err)
	}

	return review, nil
}

// Reviews returns the reviews in submission order
func (rb *ReviewBook) Reviews() []Review {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	out := make([]Review, len(rb.reviews))
	copy(out, rb.reviews)
	return out
}

// Stars renders a rating as filled and empty stars over MaxRating positions
func Stars(rating int) string {
	var b strings.Builder
	for i := 1; i <= MaxRating; i++ {
		if i <= rating {
			b.WriteString("★")
		} else {
			b.WriteString("☆")
		}
	}
	return b.String()
}

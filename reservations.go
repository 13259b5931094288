package cheesyblog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
)

const KeyBookedTimes = "bookedTimes"

var (
	// emailChar is any rune but @ and whitespace, Unicode spaces and the byte order mark included
	emailChar    = `[^\s\v\p{Z}\x{FEFF}@]`
	emailPattern = regexp.MustCompile(`^` + emailChar + `+@` + emailChar + `+\.` + emailChar + `{2,}$`)
	phonePattern = regexp.MustCompile(`^\d{3}-?\d{3}-?\d{4}$`)
)

// ReservationRequest is the reservation form as submitted by a customer
type ReservationRequest struct {
	Email string `validate:"required,siteemail"`
	Phone string `validate:"required,phone"`
	Date  string `validate:"required"`
	Time  string `validate:"required"`
}

// ReservationBook keeps the booked times per date in the KVStore
type ReservationBook struct {
	booked   map[string][]string
	kv       KVStore
	logger   *slog.Logger
	mu       sync.RWMutex
	validate *validator.Validate
}

// OpenReservationBook creates a ReservationBook backed by kv and loads the booked times.
func OpenReservationBook(kv KVStore, logger *slog.Logger) (*ReservationBook, error) {
	if logger == nil {
		logger = defaultLogger()
	}

	rb := &ReservationBook{
		booked:   make(map[string][]string),
		kv:       kv,
		logger:   logger,
		validate: newValidator(),
	}

	data, ok, err := kv.Get(KeyBookedTimes)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", KeyBookedTimes, err)
	}

	if ok {
		var booked map[string][]string
		if err := json.Unmarshal([]byte(data), &booked); err != nil {
			logger.Warn("persisted booked times are malformed, starting empty", slog.String("error", err.Error()))
		} else if booked != nil {
			rb.booked = booked
		}
	}

	return rb, nil
}

// Book validates the request and books its time on its date. It returns the confirmation message.
func (rb *ReservationBook) Book(req ReservationRequest) (string, error) {
	if err := rb.validate.Struct(req); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidReservation, err)
	}

	rb.mu.Lock()
	defer rb.mu.Unlock()

	if slices.Contains(rb.booked[req.Date], req.Time) {
		return "", fmt.Errorf("%w: %s at %s", ErrTimeBooked, req.Date, req.Time)
	}

	rb.booked[req.Date] = append(rb.booked[req.Date], req.Time)
	confirmation := fmt.Sprintf("Reservation booked for %s at %s", req.Date, req.Time)

	data, err := json.Marshal(rb.booked)
	if err != nil {
		return confirmation, fmt.Errorf("%w: error serializing booked times: %w", ErrPersist, err)
	}

	if err := rb.kv.Set(KeyBookedTimes, string(data)); err != nil {
		rb.logger.Error("failed to persist booked times", slog.String("error", err.Error()))
		return confirmation, fmt.Errorf("%w: %w", ErrPersist, err)
	}

	return confirmation, nil
}

// BookedTimes returns the times booked on date in booking order
func (rb *ReservationBook) BookedTimes(date string) []string {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	return slices.Clone(rb.booked[date])
}

// IsBooked returns true if the time is already booked on date
func (rb *ReservationBook) IsBooked(date, time string) bool {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	return slices.Contains(rb.booked[date], time)
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("siteemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxEventTitleLen is the maximum length of an event title
	MaxEventTitleLen = 200
	// MaxEventDescriptionLen is the maximum length of an event description
	MaxEventDescriptionLen = 1000
)

var (
	// ErrTitleRequired is returned when an event is created without a title
	ErrTitleRequired = errors.New("title is required")
	// ErrTitleTooLong is returned when an event title exceeds the limit
	ErrTitleTooLong = errors.New("title must not exceed 200 characters")
	// ErrDescriptionTooLong is returned when a description exceeds the limit
	ErrDescriptionTooLong = errors.New("description must not exceed 1000 characters")
	// ErrDateNotFuture is returned when an event is created with a past date
	ErrDateNotFuture = errors.New("event date must be in the future")
)

// Event is a scheduled happening that users attend
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewEvent creates an event. The date must be in the future at creation
// time; updates do not re-validate it.
func NewEvent(title, description string, date time.Time) (*Event, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if err := validateEventFields(title, description); err != nil {
		return nil, err
	}
	if !date.After(time.Now().UTC()) {
		return nil, ErrDateNotFuture
	}

	return &Event{
		ID:          generateID(),
		Title:       title,
		Description: description,
		Date:        date,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Update replaces the title, description and date of the event
func (e *Event) Update(title, description string, date time.Time) error {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if err := validateEventFields(title, description); err != nil {
		return err
	}

	e.Title = title
	e.Description = description
	e.Date = date
	return nil
}

func validateEventFields(title, description string) error {
	if title == "" {
		return ErrTitleRequired
	}
	if len([]rune(title)) > MaxEventTitleLen {
		return ErrTitleTooLong
	}
	if len([]rune(description)) > MaxEventDescriptionLen {
		return ErrDescriptionTooLong
	}
	return nil
}

// generateID generates a unique ID using UUID
func generateID() string {
	return uuid.New().String()
}

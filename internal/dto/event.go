package dto

import (
	"time"

	"github.com/alisettar/Attend/internal/domain"
)

// CreateEventRequest represents request to create an event
type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,min=2,max=200"`
	Description string    `json:"description" binding:"omitempty,max=1000"`
	Date        time.Time `json:"date" binding:"required"`
}

// UpdateEventRequest represents request to update an event
type UpdateEventRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=2,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=1000"`
	Date        *time.Time `json:"date" binding:"omitempty"`
}

// Validate validates that at least one field is provided for update
func (r *UpdateEventRequest) Validate() (bool, string) {
	if r.Title == nil && r.Description == nil && r.Date == nil {
		return false, "At least one field must be provided for update"
	}
	return true, ""
}

// EventResponse represents event data in response
type EventResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"`
	CreatedAt   string `json:"created_at"`
}

// NewEventResponse maps a domain event to its response form
func NewEventResponse(e *domain.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date.Format(time.RFC3339),
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
}

// ListEventsQuery represents query parameters for listing events
type ListEventsQuery struct {
	Page     int  `form:"page" binding:"omitempty,min=1"`
	Limit    int  `form:"limit" binding:"omitempty,min=1,max=100"`
	Upcoming bool `form:"upcoming" binding:"omitempty"`
}

// SetDefaults sets default values for query parameters
func (q *ListEventsQuery) SetDefaults() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 20
	}
}

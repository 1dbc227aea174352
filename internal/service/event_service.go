package service

import (
	"context"

	"github.com/alisettar/Attend/internal/apperr"
	"github.com/alisettar/Attend/internal/domain"
	"github.com/alisettar/Attend/internal/dto"
	"github.com/alisettar/Attend/internal/repository"
)

// EventService defines event management operations
type EventService interface {
	// Create creates a new event
	Create(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	// GetByID retrieves an event by ID
	GetByID(ctx context.Context, id string) (*dto.EventResponse, error)
	// List retrieves events with pagination, or upcoming events only
	List(ctx context.Context, query *dto.ListEventsQuery) ([]dto.EventResponse, int64, error)
	// Update updates an event
	Update(ctx context.Context, id string, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	// Delete removes an event and its attendances
	Delete(ctx context.Context, id string) error
}

type eventService struct {
	eventRepo repository.EventRepository
}

// NewEventService creates a new EventService
func NewEventService(eventRepo repository.EventRepository) EventService {
	return &eventService{eventRepo: eventRepo}
}

func (s *eventService) Create(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	event, err := domain.NewEvent(req.Title, req.Description, req.Date)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	resp := dto.NewEventResponse(event)
	return &resp, nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*dto.EventResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperr.NotFound("Event not found")
	}

	resp := dto.NewEventResponse(event)
	return &resp, nil
}

func (s *eventService) List(ctx context.Context, query *dto.ListEventsQuery) ([]dto.EventResponse, int64, error) {
	query.SetDefaults()

	if query.Upcoming {
		events, err := s.eventRepo.GetUpcoming(ctx)
		if err != nil {
			return nil, 0, err
		}
		responses := make([]dto.EventResponse, 0, len(events))
		for _, e := range events {
			responses = append(responses, dto.NewEventResponse(e))
		}
		return responses, int64(len(responses)), nil
	}

	offset := (query.Page - 1) * query.Limit
	events, err := s.eventRepo.List(ctx, query.Limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.eventRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, dto.NewEventResponse(e))
	}
	return responses, total, nil
}

func (s *eventService) Update(ctx context.Context, id string, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, apperr.Validation(msg)
	}

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperr.NotFound("Event not found")
	}

	title := event.Title
	if req.Title != nil {
		title = *req.Title
	}
	description := event.Description
	if req.Description != nil {
		description = *req.Description
	}
	date := event.Date
	if req.Date != nil {
		date = *req.Date
	}

	if err := event.Update(title, description, date); err != nil {
		return nil, apperr.Validation(err.Error())
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	resp := dto.NewEventResponse(event)
	return &resp, nil
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event == nil {
		return apperr.NotFound("Event not found")
	}
	return s.eventRepo.Delete(ctx, id)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/alisettar/Attend/internal/apperr"
	"github.com/alisettar/Attend/internal/dto"
)

func TestCreateEvent(t *testing.T) {
	svc := NewEventService(NewMockEventRepository())

	resp, err := svc.Create(context.Background(), &dto.CreateEventRequest{
		Title: "Go Meetup",
		Date:  time.Now().Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if resp.Title != "Go Meetup" {
		t.Errorf("Title = %q, want Go Meetup", resp.Title)
	}
}

func TestCreateEventPastDate(t *testing.T) {
	svc := NewEventService(NewMockEventRepository())

	_, err := svc.Create(context.Background(), &dto.CreateEventRequest{
		Title: "Go Meetup",
		Date:  time.Now().Add(-time.Hour),
	})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("Create() error = %v, want validation failure", err)
	}
}

func TestUpdateEventAllowsPastDate(t *testing.T) {
	svc := NewEventService(NewMockEventRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateEventRequest{
		Title: "Go Meetup",
		Date:  time.Now().Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Editing an event that has already happened stays allowed
	past := time.Now().Add(-24 * time.Hour)
	updated, err := svc.Update(ctx, created.ID, &dto.UpdateEventRequest{Date: &past})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Date == created.Date {
		t.Error("Date was not updated")
	}
}

func TestUpdateEventNotFound(t *testing.T) {
	svc := NewEventService(NewMockEventRepository())

	title := "New Title"
	_, err := svc.Update(context.Background(), "1e8c7b5a-0000-0000-0000-000000000000", &dto.UpdateEventRequest{Title: &title})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("Update() error = %v, want not found", err)
	}
}

func TestDeleteEventNotFound(t *testing.T) {
	svc := NewEventService(NewMockEventRepository())

	err := svc.Delete(context.Background(), "1e8c7b5a-0000-0000-0000-000000000000")
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("Delete() error = %v, want not found", err)
	}
}

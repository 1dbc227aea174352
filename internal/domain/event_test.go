package domain

import (
	"strings"
	"testing"
	"time"
)

func TestNewEvent(t *testing.T) {
	date := time.Now().UTC().Add(24 * time.Hour)
	e, err := NewEvent("  Yearly Meetup  ", " all hands ", date)
	if err != nil {
		t.Fatalf("NewEvent() error = %v", err)
	}

	if e.Title != "Yearly Meetup" {
		t.Errorf("expected trimmed title, got %q", e.Title)
	}
	if e.Description != "all hands" {
		t.Errorf("expected trimmed description, got %q", e.Description)
	}
	if e.ID == "" {
		t.Error("expected ID to be generated")
	}
}

func TestNewEvent_Validation(t *testing.T) {
	future := time.Now().UTC().Add(time.Hour)

	tests := []struct {
		name        string
		title       string
		description string
		date        time.Time
		wantErr     error
	}{
		{"missing title", "", "", future, ErrTitleRequired},
		{"blank title", "   ", "", future, ErrTitleRequired},
		{"title too long", strings.Repeat("a", 201), "", future, ErrTitleTooLong},
		{"description too long", "ok", strings.Repeat("d", 1001), future, ErrDescriptionTooLong},
		{"past date", "ok", "", time.Now().UTC().Add(-time.Hour), ErrDateNotFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewEvent(tt.title, tt.description, tt.date); err != tt.wantErr {
				t.Errorf("NewEvent() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEventUpdate_DoesNotRevalidateDate(t *testing.T) {
	e, err := NewEvent("Meetup", "", time.Now().UTC().Add(time.Hour))
	if err != nil {
		t.Fatalf("NewEvent() error = %v", err)
	}

	past := time.Now().UTC().Add(-48 * time.Hour)
	if err := e.Update("Meetup", "moved", past); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !e.Date.Equal(past) {
		t.Errorf("expected date to be updated to %v, got %v", past, e.Date)
	}
}

package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/alisettar/Attend/internal/domain"
	"github.com/alisettar/Attend/internal/repository"
)

// uniqueViolation builds the error a unique index raises, so mocks enforce
// the same constraints the schema does
func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

// MockGenerator is a stand-in QR image generator
type MockGenerator struct {
	ShouldFail bool
	FailError  error
}

// NewMockGenerator creates a new MockGenerator
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

func (g *MockGenerator) Generate(payload string) (string, error) {
	if g.ShouldFail {
		return "", g.FailError
	}
	return "img:" + payload, nil
}

// MockUserRepository is an in-memory implementation of UserRepository
type MockUserRepository struct {
	mu         sync.RWMutex
	users      map[string]*domain.User
	ShouldFail bool
	FailError  error
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

func (r *MockUserRepository) failure() error {
	if !r.ShouldFail {
		return nil
	}
	return r.FailError
}

func (r *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.failure(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Phone == user.Phone {
			return uniqueViolation(repository.ConstraintUserPhone)
		}
		if u.QRCode == user.QRCode {
			return uniqueViolation(repository.ConstraintUserQRCode)
		}
		if user.Email != "" && u.Email == user.Email {
			return uniqueViolation(repository.ConstraintUserEmail)
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if err := r.failure(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, nil
}

func (r *MockUserRepository) GetByQRCode(ctx context.Context, qrCode string) (*domain.User, error) {
	if err := r.failure(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.QRCode == qrCode {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *MockUserRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	if err := r.failure(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Phone == phone {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *MockUserRepository) ExistsByPhone(ctx context.Context, phone, excludeID string) (bool, error) {
	if err := r.failure(); err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Phone == phone && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MockUserRepository) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	if err := r.failure(); err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email != "" && u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MockUserRepository) List(ctx context.Context, search string, limit, offset int) ([]*domain.User, error) {
	if err := r.failure(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		if !userMatches(u, search) {
			continue
		}
		clone := *u
		users = append(users, &clone)
	}
	return users, nil
}

func (r *MockUserRepository) Count(ctx context.Context, search string) (int64, error) {
	if err := r.failure(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, u := range r.users {
		if userMatches(u, search) {
			count++
		}
	}
	return count, nil
}

func userMatches(u *domain.User, search string) bool {
	if search == "" {
		return true
	}
	s := strings.ToLower(search)
	return strings.Contains(strings.ToLower(u.Name), s) || strings.Contains(u.Phone, search)
}

func (r *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if err := r.failure(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Phone == user.Phone && u.ID != user.ID {
			return uniqueViolation(repository.ConstraintUserPhone)
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *MockUserRepository) Delete(ctx context.Context, id string) error {
	if err := r.failure(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

// MockEventRepository is an in-memory implementation of EventRepository
type MockEventRepository struct {
	mu         sync.RWMutex
	events     map[string]*domain.Event
	ShouldFail bool
	FailError  error
}

// NewMockEventRepository creates a new MockEventRepository
func NewMockEventRepository() *MockEventRepository {
	return &MockEventRepository{events: make(map[string]*domain.Event)}
}

func (r *MockEventRepository) failure() error {
	if !r.ShouldFail {
		return nil
	}
	return r.FailError
}

func (r *MockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	if err := r.failure(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *event
	r.events[event.ID] = &clone
	return nil
}

func (r *MockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if err := r.failure(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.events[id]; ok {
		clone := *e
		return &clone, nil
	}
	return nil, nil
}

func (r *MockEventRepository) List(ctx context.Context, limit, offset int) ([]*domain.Event, error) {
	if err := r.failure(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	events := make([]*domain.Event, 0, len(r.events))
	for _, e := range r.events {
		clone := *e
		events = append(events, &clone)
	}
	return events, nil
}

func (r *MockEventRepository) GetUpcoming(ctx context.Context) ([]*domain.Event, error) {
	return r.List(ctx, 0, 0)
}

func (r *MockEventRepository) Count(ctx context.Context) (int64, error) {
	if err := r.failure(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.events)), nil
}

func (r *MockEventRepository) Update(ctx context.Context, event *domain.Event) error {
	if err := r.failure(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *event
	r.events[event.ID] = &clone
	return nil
}

func (r *MockEventRepository) Delete(ctx context.Context, id string) error {
	if err := r.failure(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.events, id)
	return nil
}

// MockAttendanceRepository is an in-memory implementation of
// AttendanceRepository. Users and Events stand in for the SQL joins the
// real queries perform.
type MockAttendanceRepository struct {
	mu          sync.RWMutex
	attendances map[string]*domain.Attendance
	Users       *MockUserRepository
	Events      *MockEventRepository
	ShouldFail  bool
	FailError   error
}

// NewMockAttendanceRepository creates a new MockAttendanceRepository
func NewMockAttendanceRepository(users *MockUserRepository, events *MockEventRepository) *MockAttendanceRepository {
	return &MockAttendanceRepository{
		attendances: make(map[string]*domain.Attendance),
		Users:       users,
		Events:      events,
	}
}

func (r *MockAttendanceRepository) failure() error {
	if !r.ShouldFail {
		return nil
	}
	return r.FailError
}

func (r *MockAttendanceRepository) Create(ctx context.Context, attendance *domain.Attendance) error {
	if err := r.failure(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.attendances {
		if a.UserID == attendance.UserID && a.EventID == attendance.EventID {
			return uniqueViolation(repository.ConstraintAttendanceUserEvent)
		}
	}
	clone := *attendance
	r.attendances[attendance.ID] = &clone
	return nil
}

func (r *MockAttendanceRepository) GetByID(ctx context.Context, id string) (*domain.Attendance, error) {
	if err := r.failure(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if a, ok := r.attendances[id]; ok {
		clone := *a
		return &clone, nil
	}
	return nil, nil
}

func (r *MockAttendanceRepository) GetByUserAndEvent(ctx context.Context, userID, eventID string) (*domain.Attendance, error) {
	if err := r.failure(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.attendances {
		if a.UserID == userID && a.EventID == eventID {
			clone := *a
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *MockAttendanceRepository) GetActiveByUser(ctx context.Context, userID string) (*domain.Attendance, error) {
	if err := r.failure(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest *domain.Attendance
	var latestDate time.Time
	for _, a := range r.attendances {
		if a.UserID != userID || a.Status != domain.StatusRegistered {
			continue
		}
		date := r.eventDate(ctx, a.EventID)
		if latest == nil || date.After(latestDate) {
			latest = a
			latestDate = date
		}
	}
	if latest == nil {
		return nil, nil
	}
	clone := *latest
	return &clone, nil
}

// eventDate mirrors the join on events the real query orders by
func (r *MockAttendanceRepository) eventDate(ctx context.Context, eventID string) time.Time {
	if r.Events == nil {
		return time.Time{}
	}
	event, err := r.Events.GetByID(ctx, eventID)
	if err != nil || event == nil {
		return time.Time{}
	}
	return event.Date
}

func (r *MockAttendanceRepository) ListByEvent(ctx context.Context, eventID string, limit, offset int) ([]*repository.AttendanceDetail, error) {
	if err := r.failure(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	details := make([]*repository.AttendanceDetail, 0)
	for _, a := range r.attendances {
		if a.EventID == eventID {
			details = append(details, r.detail(ctx, a))
		}
	}
	return pageDetails(details, limit, offset), nil
}

func (r *MockAttendanceRepository) CountByEvent(ctx context.Context, eventID string) (int64, error) {
	if err := r.failure(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, a := range r.attendances {
		if a.EventID == eventID {
			count++
		}
	}
	return count, nil
}

func (r *MockAttendanceRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*repository.AttendanceDetail, error) {
	if err := r.failure(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	details := make([]*repository.AttendanceDetail, 0)
	for _, a := range r.attendances {
		if a.UserID == userID {
			details = append(details, r.detail(ctx, a))
		}
	}
	return pageDetails(details, limit, offset), nil
}

func (r *MockAttendanceRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	if err := r.failure(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, a := range r.attendances {
		if a.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *MockAttendanceRepository) detail(ctx context.Context, a *domain.Attendance) *repository.AttendanceDetail {
	d := &repository.AttendanceDetail{Attendance: *a}
	if r.Users != nil {
		if u, _ := r.Users.GetByID(ctx, a.UserID); u != nil {
			d.UserName = u.Name
			d.UserPhone = u.Phone
		}
	}
	if r.Events != nil {
		if e, _ := r.Events.GetByID(ctx, a.EventID); e != nil {
			d.EventTitle = e.Title
		}
	}
	return d
}

func pageDetails(details []*repository.AttendanceDetail, limit, offset int) []*repository.AttendanceDetail {
	if offset >= len(details) {
		return []*repository.AttendanceDetail{}
	}
	details = details[offset:]
	if limit > 0 && limit < len(details) {
		details = details[:limit]
	}
	return details
}

func (r *MockAttendanceRepository) CountByStatus(ctx context.Context, eventID string) (map[domain.AttendanceStatus]int64, error) {
	if err := r.failure(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[domain.AttendanceStatus]int64)
	for _, a := range r.attendances {
		if eventID == "" || a.EventID == eventID {
			counts[a.Status]++
		}
	}
	return counts, nil
}

func (r *MockAttendanceRepository) TopEvents(ctx context.Context, limit int) ([]*repository.EventAttendanceCount, error) {
	if err := r.failure(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	byEvent := make(map[string]*repository.EventAttendanceCount)
	for _, a := range r.attendances {
		e := byEvent[a.EventID]
		if e == nil {
			e = &repository.EventAttendanceCount{EventID: a.EventID}
			if r.Events != nil {
				if event, _ := r.Events.GetByID(ctx, a.EventID); event != nil {
					e.Title = event.Title
				}
			}
			byEvent[a.EventID] = e
		}
		e.Total++
		if a.Status == domain.StatusCheckedIn {
			e.CheckedIn++
		}
	}

	events := make([]*repository.EventAttendanceCount, 0, len(byEvent))
	for _, e := range byEvent {
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Total > events[j].Total })
	if limit > 0 && limit < len(events) {
		events = events[:limit]
	}
	return events, nil
}

func (r *MockAttendanceRepository) TopUsers(ctx context.Context, limit int) ([]*repository.UserAttendanceCount, error) {
	if err := r.failure(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	byUser := make(map[string]*repository.UserAttendanceCount)
	for _, a := range r.attendances {
		if a.Status != domain.StatusCheckedIn {
			continue
		}
		u := byUser[a.UserID]
		if u == nil {
			u = &repository.UserAttendanceCount{UserID: a.UserID}
			if r.Users != nil {
				if user, _ := r.Users.GetByID(ctx, a.UserID); user != nil {
					u.Name = user.Name
				}
			}
			byUser[a.UserID] = u
		}
		u.CheckedIn++
	}

	users := make([]*repository.UserAttendanceCount, 0, len(byUser))
	for _, u := range byUser {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CheckedIn > users[j].CheckedIn })
	if limit > 0 && limit < len(users) {
		users = users[:limit]
	}
	return users, nil
}

func (r *MockAttendanceRepository) Update(ctx context.Context, attendance *domain.Attendance) error {
	if err := r.failure(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *attendance
	r.attendances[attendance.ID] = &clone
	return nil
}

func (r *MockAttendanceRepository) Delete(ctx context.Context, id string) error {
	if err := r.failure(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.attendances, id)
	return nil
}

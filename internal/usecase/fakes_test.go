package usecase

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"booking-service/internal/data/entity"
	"booking-service/internal/data/repository"
	"booking-service/internal/notify"
	"booking-service/internal/peer"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memStore backs both fake repositories so the cascade and the unique keys behave like Postgres.
type memStore struct {
	mu            sync.Mutex
	announcements map[uuid.UUID]entity.Announcement
	bookings      map[uuid.UUID]entity.Booking
	writes        int
}

func newMemStore() *memStore {
	return &memStore{
		announcements: map[uuid.UUID]entity.Announcement{},
		bookings:      map[uuid.UUID]entity.Booking{},
	}
}

type memAnnouncements struct{ *memStore }

func (m memAnnouncements) Create(_ context.Context, a *entity.Announcement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.announcements {
		if other.AuthorID == a.AuthorID && other.EventTime.Equal(a.EventTime) {
			return fmt.Errorf("create announcement: %w", entity.ErrUniqueConstraint)
		}
	}
	a.CreatedAt, a.UpdatedAt = time.Now(), time.Now()
	m.announcements[a.ID] = *a
	m.writes++
	return nil
}

func (m memAnnouncements) FindByID(_ context.Context, id uuid.UUID) (*entity.Announcement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.announcements[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (m memAnnouncements) FindMany(_ context.Context, f entity.AnnouncementFilter) ([]*entity.Announcement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []*entity.Announcement{}
	for _, a := range m.announcements {
		switch {
		case f.Status != nil && a.Status != *f.Status,
			f.RestrictAuthors && !slices.Contains(f.AuthorsIn, a.AuthorID),
			f.AuthorID != nil && a.AuthorID != *f.AuthorID,
			f.MovieID != nil && a.MovieID != *f.MovieID,
			f.IsFree != nil && a.IsFree != *f.IsFree,
			f.TicketsCount != nil && a.TicketsCount != *f.TicketsCount,
			f.EventTime != nil && !a.EventTime.Equal(*f.EventTime),
			f.EventLocation != nil && a.EventLocation != *f.EventLocation:
			continue
		}
		result = append(result, &a)
	}
	return result, nil
}

func (m memAnnouncements) Update(_ context.Context, id uuid.UUID, p entity.AnnouncementPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.announcements[id]
	if !ok {
		return fmt.Errorf("update announcement: %w", entity.ErrNotFound)
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.SubOnly != nil {
		a.SubOnly = *p.SubOnly
	}
	if p.IsFree != nil {
		a.IsFree = *p.IsFree
	}
	if p.TicketsCount != nil {
		a.TicketsCount = *p.TicketsCount
	}
	if p.EventTime != nil {
		a.EventTime = *p.EventTime
	}
	if p.EventLocation != nil {
		a.EventLocation = *p.EventLocation
	}
	m.announcements[id] = a
	m.writes++
	return nil
}

func (m memAnnouncements) UpdateStatus(_ context.Context, id uuid.UUID, status entity.AnnouncementStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := m.announcements[id]
	a.Status = status
	m.announcements[id] = a
	m.writes++
	return nil
}

func (m memAnnouncements) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.announcements[id]; !ok {
		return fmt.Errorf("delete announcement: %w", entity.ErrNotFound)
	}
	delete(m.announcements, id)
	for bid, b := range m.bookings {
		if b.AnnouncementID == id {
			delete(m.bookings, bid)
		}
	}
	m.writes++
	return nil
}

type memBookings struct{ *memStore }

func (m memBookings) Create(_ context.Context, b *entity.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.bookings {
		if other.GuestID == b.GuestID && other.EventTime.Equal(b.EventTime) {
			return fmt.Errorf("create booking: %w", entity.ErrUniqueConstraint)
		}
	}
	m.bookings[b.ID] = *b
	m.writes++
	return nil
}

func (m memBookings) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (m memBookings) FindByAnnouncementID(ctx context.Context, announcementID uuid.UUID) ([]*entity.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []*entity.Booking{}
	for _, b := range m.bookings {
		if b.AnnouncementID == announcementID {
			result = append(result, &b)
		}
	}
	return result, nil
}

func (m memBookings) FindMany(_ context.Context, f entity.BookingFilter) ([]*entity.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []*entity.Booking{}
	for _, b := range m.bookings {
		switch {
		case f.AuthorID != nil && b.AuthorID != *f.AuthorID,
			f.GuestID != nil && b.GuestID != *f.GuestID,
			f.MovieID != nil && b.MovieID != *f.MovieID,
			f.EventTime != nil && !b.EventTime.Equal(*f.EventTime):
			continue
		}
		result = append(result, &b)
	}
	return result, nil
}

func (m memBookings) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[id]; !ok {
		return fmt.Errorf("delete booking: %w", entity.ErrNotFound)
	}
	delete(m.bookings, id)
	m.writes++
	return nil
}

func (m memBookings) CountConfirmed(_ context.Context, announcementID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, b := range m.bookings {
		if b.AnnouncementID == announcementID && b.Confirmed() {
			n++
		}
	}
	return n, nil
}

func (m memBookings) SetAuthorStatus(_ context.Context, id uuid.UUID, status entity.AuthorStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := m.bookings[id]
	b.AuthorStatus = status
	m.bookings[id] = b
	m.writes++
	return nil
}

func (m memBookings) SetGuestStatus(_ context.Context, id uuid.UUID, status bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := m.bookings[id]
	b.GuestStatus = status
	m.bookings[id] = b
	m.writes++
	return nil
}

type fakeMovies struct{}

func (fakeMovies) Get(_ context.Context, id uuid.UUID) (entity.Movie, error) {
	return entity.Movie{ID: id, Title: "Movie " + id.String()[:8], Duration: 120}, nil
}

type fakeUsers struct {
	subs map[uuid.UUID][]uuid.UUID
}

func (f fakeUsers) Get(_ context.Context, id uuid.UUID) (entity.UserProfile, error) {
	return entity.UserProfile{ID: id, Name: "user-" + id.String()[:8], Subscribers: f.subs[id]}, nil
}

type fakeRatings struct{}

func (fakeRatings) Get(context.Context, uuid.UUID) (entity.Rating, error) {
	return entity.Rating{Score: 5}, nil
}

type sentEvent struct {
	Type    notify.EventType
	Payload any
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []sentEvent
}

func (r *recordingNotifier) Notify(_ context.Context, eventType notify.EventType, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, sentEvent{Type: eventType, Payload: payload})
}

func (r *recordingNotifier) Events() []sentEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events)
}

func (r *recordingNotifier) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

type fixture struct {
	store         *memStore
	users         fakeUsers
	notifier      *recordingNotifier
	announcements *announcementService
	bookings      *bookingService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	repo := &repository.Repository{
		Announcement: memAnnouncements{store},
		Booking:      memBookings{store},
	}
	users := fakeUsers{subs: map[uuid.UUID][]uuid.UUID{}}
	peers := peer.Clients{Movie: fakeMovies{}, User: users, Rating: fakeRatings{}}
	notifier := &recordingNotifier{}

	return &fixture{
		store:         store,
		users:         users,
		notifier:      notifier,
		announcements: NewAnnouncementService(repo, peers, notifier, false, zap.NewNop()).(*announcementService),
		bookings:      NewBookingService(repo, peers, notifier, false, zap.NewNop()).(*bookingService),
	}
}

func user() entity.Actor {
	return entity.Actor{ID: uuid.New(), Permissions: []int{entity.PermissionUser}}
}

func superuser() entity.Actor {
	return entity.Actor{ID: uuid.New(), IsPrivileged: true}
}

func ptr[T any](v T) *T { return &v }

func (f *fixture) announcement(t *testing.T, author entity.Actor, tickets int) *entity.Announcement {
	t.Helper()
	a := entity.Announcement{
		Base:          entity.Base{ID: uuid.New()},
		Status:        entity.AnnouncementAlive,
		Title:         "Movie night",
		MovieID:       uuid.New(),
		AuthorID:      author.ID,
		TicketsCount:  tickets,
		EventTime:     time.Now().Add(48 * time.Hour).Truncate(time.Second),
		EventLocation: "Cinema 1",
	}
	if err := (memAnnouncements{f.store}).Create(context.Background(), &a); err != nil {
		t.Fatal(err)
	}
	return &a
}

func (f *fixture) status(id uuid.UUID) entity.AnnouncementStatus {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.announcements[id].Status
}

func (m *memStore) announcementsSetStatus(id uuid.UUID, status entity.AnnouncementStatus) error {
	return memAnnouncements{m}.UpdateStatus(context.Background(), id, status)
}

func (m *memStore) put(a *entity.Announcement) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.announcements[a.ID] = *a
}

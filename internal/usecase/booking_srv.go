package usecase

import (
	"context"
	"fmt"

	"booking-service/internal/data/entity"
	"booking-service/internal/data/repository"
	"booking-service/internal/dto/request"
	"booking-service/internal/dto/response"
	"booking-service/internal/notify"
	"booking-service/internal/peer"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	Create(ctx context.Context, actor entity.Actor, announcementID uuid.UUID) (*response.BookingDetailResponse, error)
	GetOne(ctx context.Context, actor entity.Actor, id uuid.UUID) (*response.BookingDetailResponse, error)
	Update(ctx context.Context, actor entity.Actor, id uuid.UUID, req *request.UpdateBookingRequest) (*response.BookingDetailResponse, error)
	Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error
	List(ctx context.Context, actor entity.Actor, query request.BookingQuery) ([]response.BookingResponse, error)

	// Privileged only
	SudoList(ctx context.Context, actor entity.Actor, query request.SudoBookingQuery) ([]response.BookingResponse, error)
}

type bookingService struct {
	repo     *repository.Repository
	peers    peer.Clients
	notifier notify.Notifier
	debug    bool
	log      *zap.Logger
}

func NewBookingService(repo *repository.Repository, peers peer.Clients, notifier notify.Notifier, debug bool, log *zap.Logger) BookingService {
	return &bookingService{
		repo:     repo,
		peers:    peers,
		notifier: notifier,
		debug:    debug,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) find(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	b, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("booking %s: %w", id, entity.ErrNotFound)
	}
	return b, nil
}

func (s *bookingService) findAnnouncement(ctx context.Context, id uuid.UUID) (*entity.Announcement, error) {
	a, err := s.repo.Announcement.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("announcement %s: %w", id, entity.ErrNotFound)
	}
	return a, nil
}

func (s *bookingService) Create(ctx context.Context, actor entity.Actor, announcementID uuid.UUID) (*response.BookingDetailResponse, error) {
	a, err := s.findAnnouncement(ctx, announcementID)
	if err != nil {
		return nil, err
	}
	if !s.debug && a.Status != entity.AnnouncementAlive {
		return nil, fmt.Errorf("announcement %s is %s: %w", a.ID, a.Status, entity.ErrNoAccess)
	}
	if a.AuthorID == actor.ID {
		return nil, fmt.Errorf("author cannot book own announcement: %w", entity.ErrNoAccess)
	}

	b := &entity.Booking{
		Base:           entity.Base{ID: uuid.New()},
		AnnouncementID: a.ID,
		MovieID:        a.MovieID,
		AuthorID:       a.AuthorID,
		GuestID:        actor.ID,
		AuthorStatus:   entity.AuthorPending,
		GuestStatus:    true,
		EventTime:      a.EventTime,
	}
	if err := s.repo.Booking.Create(ctx, b); err != nil {
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", b.ID.String()),
		zap.String("announcement_id", a.ID.String()),
		zap.String("guest_id", b.GuestID.String()))

	if err := s.applyCapacity(ctx, a.ID, false); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, notify.EventBookingNew, notify.NewBooking{
		NewBookingID: b.ID,
		AnnounceID:   a.ID,
		UserID:       a.AuthorID,
	})

	return s.detail(ctx, b)
}

func (s *bookingService) GetOne(ctx context.Context, actor entity.Actor, id uuid.UUID) (*response.BookingDetailResponse, error) {
	b, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireRole(bookingRole(actor, b), entity.RoleOwner, entity.RoleCounterparty, entity.RolePrivileged); err != nil {
		return nil, fmt.Errorf("get booking %s: %w", id, err)
	}

	return s.detail(ctx, b)
}

func (s *bookingService) Update(ctx context.Context, actor entity.Actor, id uuid.UUID, req *request.UpdateBookingRequest) (*response.BookingDetailResponse, error) {
	if req.MyStatus == nil {
		return nil, fmt.Errorf("my_status: %w", entity.ErrValueMissing)
	}
	want := *req.MyStatus

	b, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	a, err := s.findAnnouncement(ctx, b.AnnouncementID)
	if err != nil {
		return nil, err
	}
	if !s.debug && a.Status != entity.AnnouncementAlive && a.Status != entity.AnnouncementClosed {
		return nil, fmt.Errorf("announcement %s is %s: %w", a.ID, a.Status, entity.ErrNoAccess)
	}

	role := bookingRole(actor, b)
	if err := requireRole(role, entity.RoleOwner, entity.RoleCounterparty, entity.RolePrivileged); err != nil {
		return nil, fmt.Errorf("update booking %s: %w", id, err)
	}

	if (role == entity.RoleOwner && b.AuthorStatus == entity.AuthorStatusOf(want)) ||
		(role == entity.RoleCounterparty && b.GuestStatus == want) {
		s.log.Debug("Booking status unchanged", zap.String("booking_id", id.String()))
		return s.detail(ctx, b)
	}

	// Superusers may look but not answer on behalf of a party.
	if err := requireRole(role, entity.RoleOwner, entity.RoleCounterparty); err != nil {
		return nil, fmt.Errorf("update booking %s: %w", id, err)
	}

	recipient := b.GuestID
	if role == entity.RoleOwner {
		err = s.repo.Booking.SetAuthorStatus(ctx, id, entity.AuthorStatusOf(want))
	} else {
		recipient = b.AuthorID
		err = s.repo.Booking.SetGuestStatus(ctx, id, want)
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking status changed",
		zap.String("booking_id", id.String()),
		zap.String("role", role.String()),
		zap.Bool("status", want))

	if err := s.applyCapacity(ctx, a.ID, false); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, notify.EventBookingStatus, notify.StatusBooking{
		StatusBookingID: id,
		AnnounceID:      a.ID,
		UserID:          recipient,
		AnotherID:       actor.ID,
	})

	updated, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, updated)
}

func (s *bookingService) Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	b, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := requireRole(bookingRole(actor, b), entity.RoleCounterparty, entity.RolePrivileged); err != nil {
		return fmt.Errorf("delete booking %s: %w", id, err)
	}

	var guestName string
	if guest, err := s.peers.User.Get(ctx, b.GuestID); err != nil {
		s.log.Warn("Failed to get guest name for notification",
			zap.String("guest_id", b.GuestID.String()),
			zap.Error(err))
	} else {
		guestName = guest.Name
	}

	if err := s.repo.Booking.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("Booking deleted",
		zap.String("booking_id", id.String()),
		zap.String("actor_id", actor.ID.String()))

	if err := s.applyCapacity(ctx, b.AnnouncementID, true); err != nil {
		return err
	}

	s.notifier.Notify(ctx, notify.EventBookingDelete, notify.DeleteBooking{
		DelBookingAnnounceID: b.AnnouncementID,
		GuestName:            guestName,
		UserID:               b.AuthorID,
	})

	return nil
}

func (s *bookingService) List(ctx context.Context, actor entity.Actor, query request.BookingQuery) ([]response.BookingResponse, error) {
	side := entity.BookingSide(query.Role)
	if !side.Valid() {
		return nil, fmt.Errorf("listing role %q: %w", query.Role, entity.ErrValueMissing)
	}

	filter := entity.BookingFilter{
		MovieID:   query.Movie,
		EventTime: query.Date,
	}
	self := actor.ID
	if side == entity.SideGuest {
		filter.GuestID = &self
	} else {
		filter.AuthorID = &self
	}

	bookings, err := s.repo.Booking.FindMany(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.summaries(ctx, bookings)
}

func (s *bookingService) SudoList(ctx context.Context, actor entity.Actor, query request.SudoBookingQuery) ([]response.BookingResponse, error) {
	if !actor.IsPrivileged {
		return nil, fmt.Errorf("list all bookings: %w", entity.ErrNoAccess)
	}

	bookings, err := s.repo.Booking.FindMany(ctx, entity.BookingFilter{
		AuthorID:  query.Author,
		MovieID:   query.Movie,
		EventTime: query.Date,
	})
	if err != nil {
		return nil, err
	}
	return s.summaries(ctx, bookings)
}

// applyCapacity re-derives the announcement status from a fresh confirmed count.
// With reopenOnly set, only Closed -> Alive is applied.
func (s *bookingService) applyCapacity(ctx context.Context, announcementID uuid.UUID, reopenOnly bool) error {
	a, err := s.repo.Announcement.FindByID(ctx, announcementID)
	if err != nil {
		return err
	}
	if a == nil {
		return nil
	}

	confirmed, err := s.repo.Booking.CountConfirmed(ctx, announcementID)
	if err != nil {
		return err
	}

	next := NextStatus(a.Status, Remaining(a.TicketsCount, confirmed))
	if next == a.Status || (reopenOnly && next != entity.AnnouncementAlive) {
		return nil
	}

	if err := s.repo.Announcement.UpdateStatus(ctx, announcementID, next); err != nil {
		return err
	}

	s.log.Info("Announcement status changed by capacity",
		zap.String("announcement_id", announcementID.String()),
		zap.String("from", string(a.Status)),
		zap.String("to", string(next)),
		zap.Int("confirmed", confirmed))
	return nil
}

func (s *bookingService) detail(ctx context.Context, b *entity.Booking) (*response.BookingDetailResponse, error) {
	author, err := s.peers.User.Get(ctx, b.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("get author %s: %w", b.AuthorID, err)
	}
	guest, err := s.peers.User.Get(ctx, b.GuestID)
	if err != nil {
		return nil, fmt.Errorf("get guest %s: %w", b.GuestID, err)
	}
	movie, err := s.peers.Movie.Get(ctx, b.MovieID)
	if err != nil {
		return nil, fmt.Errorf("get movie %s: %w", b.MovieID, err)
	}
	authorRating, err := s.peers.Rating.Get(ctx, b.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("get rating %s: %w", b.AuthorID, err)
	}
	guestRating, err := s.peers.Rating.Get(ctx, b.GuestID)
	if err != nil {
		return nil, fmt.Errorf("get rating %s: %w", b.GuestID, err)
	}

	return &response.BookingDetailResponse{
		ID:             b.ID.String(),
		AnnouncementID: b.AnnouncementID.String(),
		MovieTitle:     movie.Title,
		AuthorID:       b.AuthorID.String(),
		AuthorName:     author.Name,
		AuthorRating:   authorRating.Score,
		GuestID:        b.GuestID.String(),
		GuestName:      guest.Name,
		GuestRating:    guestRating.Score,
		AuthorStatus:   b.AuthorStatus.Nullable(),
		GuestStatus:    b.GuestStatus,
		EventTime:      b.EventTime,
	}, nil
}

func (s *bookingService) summaries(ctx context.Context, bookings []*entity.Booking) ([]response.BookingResponse, error) {
	result := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		author, err := s.peers.User.Get(ctx, b.AuthorID)
		if err != nil {
			return nil, fmt.Errorf("get author %s: %w", b.AuthorID, err)
		}
		guest, err := s.peers.User.Get(ctx, b.GuestID)
		if err != nil {
			return nil, fmt.Errorf("get guest %s: %w", b.GuestID, err)
		}
		result = append(result, response.BookingResponse{
			ID:           b.ID.String(),
			AuthorName:   author.Name,
			GuestName:    guest.Name,
			AuthorStatus: b.AuthorStatus.Nullable(),
			GuestStatus:  b.GuestStatus,
		})
	}
	return result, nil
}

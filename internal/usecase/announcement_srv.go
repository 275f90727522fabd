package usecase

import (
	"context"
	"fmt"
	"time"

	"booking-service/internal/data/entity"
	"booking-service/internal/data/repository"
	"booking-service/internal/dto/request"
	"booking-service/internal/dto/response"
	"booking-service/internal/notify"
	"booking-service/internal/peer"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AnnouncementService interface {
	Create(ctx context.Context, actor entity.Actor, movieID uuid.UUID, req *request.CreateAnnouncementRequest) (*response.AnnouncementDetailResponse, error)
	GetOne(ctx context.Context, id uuid.UUID) (*response.AnnouncementDetailResponse, error)
	Update(ctx context.Context, actor entity.Actor, id uuid.UUID, req *request.UpdateAnnouncementRequest) (*response.AnnouncementDetailResponse, error)
	Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error
	List(ctx context.Context, actor entity.Actor, query request.AnnouncementQuery) ([]response.AnnouncementResponse, error)

	// GetToReview feeds the rating service when a guest reviews an author.
	GetToReview(ctx context.Context, id, guestID uuid.UUID) (*response.AnnouncementReviewResponse, error)
}

type announcementService struct {
	repo     *repository.Repository
	peers    peer.Clients
	notifier notify.Notifier
	debug    bool
	now      func() time.Time
	log      *zap.Logger
}

func NewAnnouncementService(repo *repository.Repository, peers peer.Clients, notifier notify.Notifier, debug bool, log *zap.Logger) AnnouncementService {
	return &announcementService{
		repo:     repo,
		peers:    peers,
		notifier: notifier,
		debug:    debug,
		now:      time.Now,
		log:      log.With(zap.String("service", "announcement")),
	}
}

func (s *announcementService) find(ctx context.Context, id uuid.UUID) (*entity.Announcement, error) {
	a, err := s.repo.Announcement.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("announcement %s: %w", id, entity.ErrNotFound)
	}
	return a, nil
}

func (s *announcementService) Create(ctx context.Context, actor entity.Actor, movieID uuid.UUID, req *request.CreateAnnouncementRequest) (*response.AnnouncementDetailResponse, error) {
	movie, err := s.peers.Movie.Get(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("get movie %s: %w", movieID, err)
	}

	a := &entity.Announcement{
		Base:          entity.Base{ID: uuid.New()},
		Status:        entity.AnnouncementStatus(req.Status),
		Title:         req.Title,
		Description:   req.Description,
		MovieID:       movieID,
		AuthorID:      actor.ID,
		SubOnly:       req.SubOnly,
		IsFree:        req.IsFree,
		TicketsCount:  req.TicketsCount,
		EventTime:     req.EventTime,
		EventLocation: req.EventLocation,
		Duration:      movie.Duration,
	}

	if err := s.repo.Announcement.Create(ctx, a); err != nil {
		return nil, err
	}

	s.log.Info("Announcement created",
		zap.String("announcement_id", a.ID.String()),
		zap.String("author_id", a.AuthorID.String()),
		zap.String("status", string(a.Status)))

	detail, err := s.detail(ctx, a, nil)
	if err != nil {
		return nil, err
	}

	if a.Status == entity.AnnouncementAlive {
		s.notifySubscribers(ctx, a.AuthorID, a.ID, nil)
	}

	return detail, nil
}

func (s *announcementService) GetOne(ctx context.Context, id uuid.UUID) (*response.AnnouncementDetailResponse, error) {
	a, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.Booking.FindByAnnouncementID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.detail(ctx, a, bookings)
}

func (s *announcementService) Update(ctx context.Context, actor entity.Actor, id uuid.UUID, req *request.UpdateAnnouncementRequest) (*response.AnnouncementDetailResponse, error) {
	var status *entity.AnnouncementStatus
	if req.Status != nil {
		st := entity.AnnouncementStatus(*req.Status)
		status = &st
	}

	if !s.debug && status != nil && *status == entity.AnnouncementAlive &&
		req.EventTime != nil && req.EventTime.Before(s.now()) {
		return nil, fmt.Errorf("alive announcement with past event time: %w", entity.ErrUniqueConstraint)
	}
	if status != nil && *status == entity.AnnouncementDone {
		return nil, fmt.Errorf("status %s cannot be set: %w", entity.AnnouncementDone, entity.ErrUniqueConstraint)
	}

	a, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status == entity.AnnouncementDone {
		return nil, fmt.Errorf("announcement %s is done: %w", id, entity.ErrUniqueConstraint)
	}
	if err := requireRole(announcementRole(actor, a), entity.RoleOwner, entity.RolePrivileged); err != nil {
		return nil, fmt.Errorf("update announcement %s: %w", id, err)
	}

	patch := entity.AnnouncementPatch{
		Status:        status,
		Title:         req.Title,
		Description:   req.Description,
		SubOnly:       req.SubOnly,
		IsFree:        req.IsFree,
		TicketsCount:  req.TicketsCount,
		EventTime:     req.EventTime,
		EventLocation: req.EventLocation,
	}
	if err := s.repo.Announcement.Update(ctx, id, patch); err != nil {
		return nil, err
	}

	s.log.Info("Announcement updated",
		zap.String("announcement_id", id.String()),
		zap.String("actor_id", actor.ID.String()))

	updated, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	bookings, err := s.repo.Booking.FindByAnnouncementID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail, err := s.detail(ctx, updated, bookings)
	if err != nil {
		return nil, err
	}

	notified := make(map[uuid.UUID]bool)
	for _, b := range bookings {
		if b.AuthorStatus == entity.AuthorDeclined {
			continue
		}
		s.notifier.Notify(ctx, notify.EventAnnouncePut, notify.PutAnnounce{
			PutAnnounceID: id,
			UserID:        b.GuestID,
		})
		notified[b.GuestID] = true
	}
	if status != nil && *status == entity.AnnouncementAlive {
		s.notifySubscribers(ctx, a.AuthorID, id, notified)
	}

	return detail, nil
}

func (s *announcementService) Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	a, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := requireRole(announcementRole(actor, a), entity.RoleOwner, entity.RolePrivileged); err != nil {
		return fmt.Errorf("delete announcement %s: %w", id, err)
	}

	// Snapshot what the guests are told before the cascade removes their bookings.
	bookings, err := s.repo.Booking.FindByAnnouncementID(ctx, id)
	if err != nil {
		return err
	}
	author, err := s.peers.User.Get(ctx, a.AuthorID)
	if err != nil {
		return fmt.Errorf("get author %s: %w", a.AuthorID, err)
	}

	if err := s.repo.Announcement.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("Announcement deleted",
		zap.String("announcement_id", id.String()),
		zap.String("actor_id", actor.ID.String()),
		zap.Int("bookings", len(bookings)))

	for _, b := range bookings {
		if b.AuthorStatus == entity.AuthorDeclined {
			continue
		}
		s.notifier.Notify(ctx, notify.EventAnnounceDelete, notify.DeleteAnnounce{
			DeleteAnnounceID: id,
			AuthorName:       author.Name,
			AnnounceTitle:    a.Title,
			UserID:           b.GuestID,
		})
	}

	return nil
}

func (s *announcementService) List(ctx context.Context, actor entity.Actor, query request.AnnouncementQuery) ([]response.AnnouncementResponse, error) {
	filter := entity.AnnouncementFilter{
		AuthorID:      query.Author,
		MovieID:       query.Movie,
		IsFree:        query.Free,
		TicketsCount:  query.Ticket,
		EventTime:     query.Date,
		EventLocation: query.Location,
	}
	if !s.debug {
		alive := entity.AnnouncementAlive
		filter.Status = &alive
	}
	if query.Sub {
		profile, err := s.peers.User.Get(ctx, actor.ID)
		if err != nil {
			return nil, fmt.Errorf("get user %s: %w", actor.ID, err)
		}
		filter.RestrictAuthors = true
		filter.AuthorsIn = profile.Subscribers
	}

	announcements, err := s.repo.Announcement.FindMany(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]response.AnnouncementResponse, 0, len(announcements))
	for _, a := range announcements {
		result = append(result, response.AnnouncementToResponse(a))
	}
	return result, nil
}

func (s *announcementService) GetToReview(ctx context.Context, id, guestID uuid.UUID) (*response.AnnouncementReviewResponse, error) {
	a, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	author, err := s.peers.User.Get(ctx, a.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("get author %s: %w", a.AuthorID, err)
	}
	guest, err := s.peers.User.Get(ctx, guestID)
	if err != nil {
		return nil, fmt.Errorf("get guest %s: %w", guestID, err)
	}

	return &response.AnnouncementReviewResponse{
		AuthorID:          a.AuthorID.String(),
		GuestID:           guestID.String(),
		AnnouncementID:    a.ID.String(),
		AuthorName:        author.Name,
		GuestName:         guest.Name,
		AnnouncementTitle: a.Title,
	}, nil
}

func (s *announcementService) detail(ctx context.Context, a *entity.Announcement, bookings []*entity.Booking) (*response.AnnouncementDetailResponse, error) {
	author, err := s.peers.User.Get(ctx, a.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("get author %s: %w", a.AuthorID, err)
	}
	movie, err := s.peers.Movie.Get(ctx, a.MovieID)
	if err != nil {
		return nil, fmt.Errorf("get movie %s: %w", a.MovieID, err)
	}
	rating, err := s.peers.Rating.Get(ctx, a.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("get rating %s: %w", a.AuthorID, err)
	}

	confirmed := 0
	guests := make([]response.GuestResponse, 0, len(bookings))
	for _, b := range bookings {
		if b.Confirmed() {
			confirmed++
		}
		guest, err := s.peers.User.Get(ctx, b.GuestID)
		if err != nil {
			return nil, fmt.Errorf("get guest %s: %w", b.GuestID, err)
		}
		guestRating, err := s.peers.Rating.Get(ctx, b.GuestID)
		if err != nil {
			return nil, fmt.Errorf("get rating %s: %w", b.GuestID, err)
		}
		guests = append(guests, response.GuestResponse{
			BookingID:    b.ID.String(),
			GuestID:      b.GuestID.String(),
			GuestName:    guest.Name,
			GuestRating:  guestRating.Score,
			GuestStatus:  b.GuestStatus,
			AuthorStatus: b.AuthorStatus.Nullable(),
		})
	}

	return &response.AnnouncementDetailResponse{
		ID:            a.ID.String(),
		Created:       a.CreatedAt,
		Modified:      a.UpdatedAt,
		Status:        a.Status,
		Title:         a.Title,
		Description:   a.Description,
		MovieID:       a.MovieID.String(),
		MovieTitle:    movie.Title,
		AuthorID:      a.AuthorID.String(),
		AuthorName:    author.Name,
		AuthorRating:  rating.Score,
		SubOnly:       a.SubOnly,
		IsFree:        a.IsFree,
		TicketsCount:  a.TicketsCount,
		TicketsLeft:   Remaining(a.TicketsCount, confirmed),
		EventTime:     a.EventTime,
		EventLocation: a.EventLocation,
		Duration:      a.Duration,
		GuestList:     guests,
	}, nil
}

// notifySubscribers announces a new event to the author's subscribers. Lookup failures only skip the fan-out.
func (s *announcementService) notifySubscribers(ctx context.Context, authorID, announcementID uuid.UUID, skip map[uuid.UUID]bool) {
	author, err := s.peers.User.Get(ctx, authorID)
	if err != nil {
		s.log.Warn("Skip subscriber notifications",
			zap.String("author_id", authorID.String()),
			zap.Error(err))
		return
	}

	for _, sub := range author.Subscribers {
		if skip[sub] {
			continue
		}
		s.notifier.Notify(ctx, notify.EventAnnounceNew, notify.NewAnnounce{
			NewAnnounceID: announcementID,
			UserID:        sub,
		})
	}
}

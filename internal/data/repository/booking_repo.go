package repository

import (
	"context"
	"errors"
	"fmt"

	"booking-service/internal/data/entity"
	"booking-service/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByAnnouncementID(ctx context.Context, announcementID uuid.UUID) ([]*entity.Booking, error)
	FindMany(ctx context.Context, filter entity.BookingFilter) ([]*entity.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Business queries
	CountConfirmed(ctx context.Context, announcementID uuid.UUID) (int, error)
	SetAuthorStatus(ctx context.Context, id uuid.UUID, status entity.AuthorStatus) error
	SetGuestStatus(ctx context.Context, id uuid.UUID, status bool) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, created, modified, announcement_id, movie_id, author_id, guest_id,
		author_status, guest_status, event_time`

func scanBooking(row pgx.Row, b *entity.Booking) error {
	var authorStatus *bool
	err := row.Scan(
		&b.ID,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.AnnouncementID,
		&b.MovieID,
		&b.AuthorID,
		&b.GuestID,
		&authorStatus,
		&b.GuestStatus,
		&b.EventTime,
	)
	if err != nil {
		return err
	}
	b.AuthorStatus = entity.AuthorStatusFromBool(authorStatus)
	return nil
}

func (r *bookingRepository) Create(ctx context.Context, b *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, announcement_id, movie_id, author_id, guest_id, author_status, guest_status, event_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created, modified
	`

	err := r.db.QueryRow(ctx, query,
		b.ID,
		b.AnnouncementID,
		b.MovieID,
		b.AuthorID,
		b.GuestID,
		b.AuthorStatus.Nullable(),
		b.GuestStatus,
		b.EventTime,
	).Scan(&b.CreatedAt, &b.UpdatedAt)

	if err != nil {
		err = mapWriteError(err)
		if errors.Is(err, entity.ErrUniqueConstraint) {
			r.log.Info("Guest already booked at this time",
				zap.String("guest_id", b.GuestID.String()),
				zap.Time("event_time", b.EventTime))
		} else {
			r.log.Error("Failed to create booking",
				zap.Error(err),
				zap.String("announcement_id", b.AnnouncementID.String()),
				zap.String("guest_id", b.GuestID.String()))
		}
		return fmt.Errorf("create booking %s: %w", b.ID, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var b entity.Booking
	err := scanBooking(r.db.QueryRow(ctx, query, id), &b)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()))
		return nil, fmt.Errorf("find booking by ID %s: %w", id, err)
	}

	return &b, nil
}

func (r *bookingRepository) query(ctx context.Context, query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []*entity.Booking{}
	for rows.Next() {
		var b entity.Booking
		if err := scanBooking(rows, &b); err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, rows.Err()
}

func (r *bookingRepository) FindByAnnouncementID(ctx context.Context, announcementID uuid.UUID) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE announcement_id = $1 ORDER BY created`

	bookings, err := r.query(ctx, query, announcementID)
	if err != nil {
		r.log.Error("Failed to find bookings by announcement",
			zap.Error(err),
			zap.String("announcement_id", announcementID.String()))
		return nil, fmt.Errorf("find bookings by announcement %s: %w", announcementID, err)
	}

	return bookings, nil
}

func bookingWhere(f entity.BookingFilter) (string, []any) {
	var w whereBuilder
	if f.AuthorID != nil {
		w.add("author_id = $%d", *f.AuthorID)
	}
	if f.GuestID != nil {
		w.add("guest_id = $%d", *f.GuestID)
	}
	if f.MovieID != nil {
		w.add("movie_id = $%d", *f.MovieID)
	}
	if f.EventTime != nil {
		w.add("event_time = $%d", *f.EventTime)
	}
	return w.String(), w.args
}

func (r *bookingRepository) FindMany(ctx context.Context, filter entity.BookingFilter) ([]*entity.Booking, error) {
	where, args := bookingWhere(filter)
	query := `SELECT ` + bookingColumns + ` FROM bookings` + where + ` ORDER BY event_time`

	bookings, err := r.query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find bookings", zap.Error(err), zap.Any("args", args))
		return nil, fmt.Errorf("find bookings: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountConfirmed(ctx context.Context, announcementID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*) FROM bookings
		WHERE announcement_id = $1 AND author_status IS TRUE AND guest_status IS TRUE
	`

	var count int
	err := r.db.QueryRow(ctx, query, announcementID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count confirmed bookings",
			zap.Error(err),
			zap.String("announcement_id", announcementID.String()))
		return 0, fmt.Errorf("count confirmed bookings %s: %w", announcementID, err)
	}

	return count, nil
}

func (r *bookingRepository) SetAuthorStatus(ctx context.Context, id uuid.UUID, status entity.AuthorStatus) error {
	query := `UPDATE bookings SET author_status = $1, modified = NOW() WHERE id = $2`

	tag, err := r.db.Exec(ctx, query, status.Nullable(), id)
	if err != nil {
		r.log.Error("Failed to set author status",
			zap.Error(err),
			zap.String("booking_id", id.String()))
		return fmt.Errorf("set author status %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set author status %s: %w", id, entity.ErrNotFound)
	}

	return nil
}

func (r *bookingRepository) SetGuestStatus(ctx context.Context, id uuid.UUID, status bool) error {
	query := `UPDATE bookings SET guest_status = $1, modified = NOW() WHERE id = $2`

	tag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		r.log.Error("Failed to set guest status",
			zap.Error(err),
			zap.String("booking_id", id.String()))
		return fmt.Errorf("set guest status %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set guest status %s: %w", id, entity.ErrNotFound)
	}

	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()))
		return fmt.Errorf("delete booking %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete booking %s: %w", id, entity.ErrNotFound)
	}

	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"booking-service/internal/data/entity"
	"booking-service/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *entity.Announcement) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Announcement, error)
	FindMany(ctx context.Context, filter entity.AnnouncementFilter) ([]*entity.Announcement, error)
	Update(ctx context.Context, id uuid.UUID, patch entity.AnnouncementPatch) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.AnnouncementStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type announcementRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAnnouncementRepository(db database.PgxIface, log *zap.Logger) AnnouncementRepository {
	return &announcementRepository{
		db:  db,
		log: log.With(zap.String("repository", "announcement")),
	}
}

const announcementColumns = `id, created, modified, status, title, description, movie_id, author_id,
		sub_only, is_free, tickets_count, event_time, event_location, duration`

func scanAnnouncement(row pgx.Row, a *entity.Announcement) error {
	return row.Scan(
		&a.ID,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.Status,
		&a.Title,
		&a.Description,
		&a.MovieID,
		&a.AuthorID,
		&a.SubOnly,
		&a.IsFree,
		&a.TicketsCount,
		&a.EventTime,
		&a.EventLocation,
		&a.Duration,
	)
}

func (r *announcementRepository) Create(ctx context.Context, a *entity.Announcement) error {
	query := `
		INSERT INTO announcements (id, status, title, description, movie_id, author_id,
		                           sub_only, is_free, tickets_count, event_time, event_location, duration)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created, modified
	`

	err := r.db.QueryRow(ctx, query,
		a.ID,
		a.Status,
		a.Title,
		a.Description,
		a.MovieID,
		a.AuthorID,
		a.SubOnly,
		a.IsFree,
		a.TicketsCount,
		a.EventTime,
		a.EventLocation,
		a.Duration,
	).Scan(&a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		err = mapWriteError(err)
		if errors.Is(err, entity.ErrUniqueConstraint) {
			r.log.Info("Announcement already exists for author and time",
				zap.String("author_id", a.AuthorID.String()),
				zap.Time("event_time", a.EventTime))
		} else {
			r.log.Error("Failed to create announcement",
				zap.Error(err),
				zap.String("author_id", a.AuthorID.String()))
		}
		return fmt.Errorf("create announcement %s: %w", a.ID, err)
	}

	return nil
}

func (r *announcementRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE id = $1`

	var a entity.Announcement
	err := scanAnnouncement(r.db.QueryRow(ctx, query, id), &a)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find announcement by ID",
			zap.Error(err),
			zap.String("announcement_id", id.String()))
		return nil, fmt.Errorf("find announcement by ID %s: %w", id, err)
	}

	return &a, nil
}

// announcementWhere renders the filter; exact matches only.
func announcementWhere(f entity.AnnouncementFilter) (string, []any) {
	var w whereBuilder
	if f.Status != nil {
		w.add("status = $%d", *f.Status)
	}
	if f.RestrictAuthors {
		if len(f.AuthorsIn) == 0 {
			w.addRaw("FALSE")
		} else {
			w.add("author_id = ANY($%d)", f.AuthorsIn)
		}
	}
	if f.AuthorID != nil {
		w.add("author_id = $%d", *f.AuthorID)
	}
	if f.MovieID != nil {
		w.add("movie_id = $%d", *f.MovieID)
	}
	if f.IsFree != nil {
		w.add("is_free = $%d", *f.IsFree)
	}
	if f.TicketsCount != nil {
		w.add("tickets_count = $%d", *f.TicketsCount)
	}
	if f.EventTime != nil {
		w.add("event_time = $%d", *f.EventTime)
	}
	if f.EventLocation != nil {
		w.add("event_location = $%d", *f.EventLocation)
	}
	return w.String(), w.args
}

func (r *announcementRepository) FindMany(ctx context.Context, filter entity.AnnouncementFilter) ([]*entity.Announcement, error) {
	where, args := announcementWhere(filter)
	query := `SELECT ` + announcementColumns + ` FROM announcements` + where + ` ORDER BY event_time`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find announcements", zap.Error(err), zap.Any("args", args))
		return nil, fmt.Errorf("find announcements: %w", err)
	}
	defer rows.Close()

	announcements := []*entity.Announcement{}
	for rows.Next() {
		var a entity.Announcement
		if err := scanAnnouncement(rows, &a); err != nil {
			r.log.Error("Failed to scan announcement row", zap.Error(err))
			return nil, fmt.Errorf("scan announcement row: %w", err)
		}
		announcements = append(announcements, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate announcements: %w", err)
	}

	return announcements, nil
}

// announcementSet renders the SET clause of a partial update. The id is the last argument.
func announcementSet(p entity.AnnouncementPatch) (string, []any) {
	var sets []string
	var args []any
	set := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if p.Status != nil {
		set("status", *p.Status)
	}
	if p.Title != nil {
		set("title", *p.Title)
	}
	if p.Description != nil {
		set("description", *p.Description)
	}
	if p.SubOnly != nil {
		set("sub_only", *p.SubOnly)
	}
	if p.IsFree != nil {
		set("is_free", *p.IsFree)
	}
	if p.TicketsCount != nil {
		set("tickets_count", *p.TicketsCount)
	}
	if p.EventTime != nil {
		set("event_time", *p.EventTime)
	}
	if p.EventLocation != nil {
		set("event_location", *p.EventLocation)
	}
	sets = append(sets, "modified = NOW()")

	return strings.Join(sets, ", "), args
}

func (r *announcementRepository) Update(ctx context.Context, id uuid.UUID, patch entity.AnnouncementPatch) error {
	if patch.Empty() {
		return nil
	}

	set, args := announcementSet(patch)
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE announcements SET %s WHERE id = $%d`, set, len(args))

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		err = mapWriteError(err)
		if !errors.Is(err, entity.ErrUniqueConstraint) {
			r.log.Error("Failed to update announcement",
				zap.Error(err),
				zap.String("announcement_id", id.String()))
		}
		return fmt.Errorf("update announcement %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update announcement %s: %w", id, entity.ErrNotFound)
	}

	return nil
}

func (r *announcementRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.AnnouncementStatus) error {
	query := `UPDATE announcements SET status = $1, modified = NOW() WHERE id = $2`

	_, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		r.log.Error("Failed to update announcement status",
			zap.Error(err),
			zap.String("announcement_id", id.String()),
			zap.String("status", string(status)))
		return fmt.Errorf("update announcement status %s: %w", id, err)
	}

	return nil
}

func (r *announcementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete announcement",
			zap.Error(err),
			zap.String("announcement_id", id.String()))
		return fmt.Errorf("delete announcement %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete announcement %s: %w", id, entity.ErrNotFound)
	}

	return nil
}

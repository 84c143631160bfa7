package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"noticeboard/internal/domain/entity"
	"noticeboard/internal/repository"
)

const announcementColumns = `id, category_id, author_id, title, content, excerpt, image_path,
       is_published, scheduled_at, takedown_at, view_count, is_pinned, is_hero,
       created_at, updated_at`

type AnnouncementRepo struct {
	db DB
}

func NewAnnouncementRepo(db DB) repository.AnnouncementRepository {
	return &AnnouncementRepo{db: db}
}

func scanAnnouncement(s interface{ Scan(...any) error }) (*entity.Announcement, error) {
	var a entity.Announcement
	err := s.Scan(&a.ID, &a.CategoryID, &a.AuthorID, &a.Title, &a.Content,
		&a.Excerpt, &a.ImagePath, &a.IsPublished, &a.ScheduledAt, &a.TakedownAt,
		&a.ViewCount, &a.IsPinned, &a.IsHero, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (repo *AnnouncementRepo) List(ctx context.Context) ([]*entity.Announcement, error) {
	query := `
SELECT ` + announcementColumns + `
FROM announcements
ORDER BY created_at DESC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	announcements := make([]*entity.Announcement, 0, 100)
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		announcements = append(announcements, a)
	}
	return announcements, rows.Err()
}

// ListPaginated retrieves announcements ordered by created_at DESC.
// Uses LIMIT and OFFSET for efficient pagination.
func (repo *AnnouncementRepo) ListPaginated(ctx context.Context, offset, limit int) ([]*entity.Announcement, error) {
	query := `
SELECT ` + announcementColumns + `
FROM announcements
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`
	rows, err := repo.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListPaginated: %w", err)
	}
	defer func() { _ = rows.Close() }()

	announcements := make([]*entity.Announcement, 0, limit)
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, fmt.Errorf("ListPaginated: Scan: %w", err)
		}
		announcements = append(announcements, a)
	}
	return announcements, rows.Err()
}

func (repo *AnnouncementRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM announcements`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

func (repo *AnnouncementRepo) Get(ctx context.Context, id int64) (*entity.Announcement, error) {
	query := `
SELECT ` + announcementColumns + `
FROM announcements
WHERE id = $1
LIMIT 1`
	a, err := scanAnnouncement(repo.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return a, nil
}

func (repo *AnnouncementRepo) Create(ctx context.Context, a *entity.Announcement) error {
	const query = `
INSERT INTO announcements
       (category_id, author_id, title, content, excerpt, image_path,
        is_published, scheduled_at, takedown_at, is_pinned, is_hero,
        created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		a.CategoryID, a.AuthorID, a.Title, a.Content, a.Excerpt, a.ImagePath,
		a.IsPublished, a.ScheduledAt, a.TakedownAt, a.IsPinned, a.IsHero,
		a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *AnnouncementRepo) Update(ctx context.Context, a *entity.Announcement) error {
	const query = `
UPDATE announcements SET
       category_id = $1,
       title       = $2,
       content     = $3,
       excerpt     = $4,
       image_path  = $5,
       is_pinned   = $6,
       is_hero     = $7,
       updated_at  = $8
WHERE id = $9`
	res, err := repo.db.ExecContext(ctx, query,
		a.CategoryID, a.Title, a.Content, a.Excerpt, a.ImagePath,
		a.IsPinned, a.IsHero, a.UpdatedAt, a.ID,
	)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Update: no rows affected")
	}
	return nil
}

func (repo *AnnouncementRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM announcements WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: no rows affected")
	}
	return nil
}

func (repo *AnnouncementRepo) ListDuePublish(ctx context.Context, now time.Time) ([]int64, error) {
	const query = `
SELECT id FROM announcements
WHERE is_published = FALSE
  AND scheduled_at IS NOT NULL
  AND scheduled_at <= $1
ORDER BY scheduled_at`
	return repo.listIDs(ctx, "ListDuePublish", query, now)
}

func (repo *AnnouncementRepo) ListDueTakedown(ctx context.Context, now time.Time) ([]int64, error) {
	const query = `
SELECT id FROM announcements
WHERE is_published = TRUE
  AND takedown_at IS NOT NULL
  AND takedown_at <= $1
ORDER BY takedown_at`
	return repo.listIDs(ctx, "ListDueTakedown", query, now)
}

func (repo *AnnouncementRepo) listIDs(ctx context.Context, op, query string, args ...any) ([]int64, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	ids := make([]int64, 0, 16)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// MarkPublished repeats the selection predicate in the WHERE clause so the
// update is a no-op when a concurrent sweep already cleared scheduled_at.
func (repo *AnnouncementRepo) MarkPublished(ctx context.Context, id int64) (bool, error) {
	const query = `
UPDATE announcements SET
       is_published = TRUE,
       scheduled_at = NULL,
       updated_at   = now()
WHERE id = $1
  AND is_published = FALSE
  AND scheduled_at IS NOT NULL`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("MarkPublished: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// MarkTakenDown mirrors MarkPublished for the takedown transition.
func (repo *AnnouncementRepo) MarkTakenDown(ctx context.Context, id int64) (bool, error) {
	const query = `
UPDATE announcements SET
       is_published = FALSE,
       takedown_at  = NULL,
       updated_at   = now()
WHERE id = $1
  AND is_published = TRUE
  AND takedown_at IS NOT NULL`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("MarkTakenDown: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// SetPublished applies a manual toggle. Publishing clears scheduled_at,
// unpublishing clears takedown_at; the opposing timestamp is preserved.
func (repo *AnnouncementRepo) SetPublished(ctx context.Context, id int64, published bool) error {
	const query = `
UPDATE announcements SET
       is_published = $1,
       scheduled_at = CASE WHEN $1 THEN NULL ELSE scheduled_at END,
       takedown_at  = CASE WHEN $1 THEN takedown_at ELSE NULL END,
       updated_at   = now()
WHERE id = $2`
	res, err := repo.db.ExecContext(ctx, query, published, id)
	if err != nil {
		return fmt.Errorf("SetPublished: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("SetPublished: no rows affected")
	}
	return nil
}

func (repo *AnnouncementRepo) SetSchedule(ctx context.Context, id int64, at *time.Time) error {
	const query = `
UPDATE announcements SET
       scheduled_at = $1,
       updated_at   = now()
WHERE id = $2`
	res, err := repo.db.ExecContext(ctx, query, at, id)
	if err != nil {
		return fmt.Errorf("SetSchedule: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("SetSchedule: no rows affected")
	}
	return nil
}

func (repo *AnnouncementRepo) SetTakedown(ctx context.Context, id int64, at *time.Time) error {
	const query = `
UPDATE announcements SET
       takedown_at = $1,
       updated_at  = now()
WHERE id = $2`
	res, err := repo.db.ExecContext(ctx, query, at, id)
	if err != nil {
		return fmt.Errorf("SetTakedown: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("SetTakedown: no rows affected")
	}
	return nil
}

func (repo *AnnouncementRepo) UpdateEditorial(ctx context.Context, id int64, title, content, excerpt, imagePath string) error {
	const query = `
UPDATE announcements SET
       title      = $1,
       content    = $2,
       excerpt    = $3,
       image_path = $4,
       updated_at = now()
WHERE id = $5`
	res, err := repo.db.ExecContext(ctx, query, title, content, excerpt, imagePath, id)
	if err != nil {
		return fmt.Errorf("UpdateEditorial: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("UpdateEditorial: no rows affected")
	}
	return nil
}

func (repo *AnnouncementRepo) IncrementViewCount(ctx context.Context, id int64) error {
	const query = `UPDATE announcements SET view_count = view_count + 1 WHERE id = $1`
	if _, err := repo.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("IncrementViewCount: %w", err)
	}
	return nil
}

// Package postgres implements the repository interfaces on top of
// PostgreSQL via database/sql with the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"noticeboard/internal/domain/entity"
	"noticeboard/internal/repository"
)

const revisionColumns = `id, announcement_id, version, title, content, excerpt, image_path,
       change_type, change_summary, author_id, created_at`

type RevisionRepo struct {
	db DB
}

func NewRevisionRepo(db DB) repository.RevisionRepository {
	return &RevisionRepo{db: db}
}

func scanRevision(s interface{ Scan(...any) error }) (*entity.Revision, error) {
	var r entity.Revision
	err := s.Scan(&r.ID, &r.AnnouncementID, &r.Version, &r.Title, &r.Content,
		&r.Excerpt, &r.ImagePath, &r.ChangeType, &r.ChangeSummary,
		&r.AuthorID, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Create inserts a new revision row. A unique violation on
// (announcement_id, version) is translated to repository.ErrVersionConflict
// so the usecase can recompute the version and retry.
func (repo *RevisionRepo) Create(ctx context.Context, rev *entity.Revision) error {
	const query = `
INSERT INTO revisions
       (announcement_id, version, title, content, excerpt, image_path,
        change_type, change_summary, author_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		rev.AnnouncementID, rev.Version, rev.Title, rev.Content,
		rev.Excerpt, rev.ImagePath, rev.ChangeType, rev.ChangeSummary,
		rev.AuthorID, rev.CreatedAt,
	).Scan(&rev.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("Create: %w", repository.ErrVersionConflict)
		}
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *RevisionRepo) MaxVersion(ctx context.Context, announcementID int64) (int, error) {
	const query = `SELECT COALESCE(MAX(version), 0) FROM revisions WHERE announcement_id = $1`
	var version int
	if err := repo.db.QueryRowContext(ctx, query, announcementID).Scan(&version); err != nil {
		return 0, fmt.Errorf("MaxVersion: %w", err)
	}
	return version, nil
}

func (repo *RevisionRepo) Get(ctx context.Context, id int64) (*entity.Revision, error) {
	query := `
SELECT ` + revisionColumns + `
FROM revisions
WHERE id = $1
LIMIT 1`
	rev, err := scanRevision(repo.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return rev, nil
}

// ListByAnnouncement retrieves revisions newest version first.
// Uses LIMIT and OFFSET for efficient pagination.
func (repo *RevisionRepo) ListByAnnouncement(ctx context.Context, announcementID int64, offset, limit int) ([]*entity.Revision, error) {
	query := `
SELECT ` + revisionColumns + `
FROM revisions
WHERE announcement_id = $1
ORDER BY version DESC
LIMIT $2 OFFSET $3`
	rows, err := repo.db.QueryContext(ctx, query, announcementID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListByAnnouncement: %w", err)
	}
	defer func() { _ = rows.Close() }()

	revisions := make([]*entity.Revision, 0, limit)
	for rows.Next() {
		rev, err := scanRevision(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByAnnouncement: Scan: %w", err)
		}
		revisions = append(revisions, rev)
	}
	return revisions, rows.Err()
}

func (repo *RevisionRepo) CountByAnnouncement(ctx context.Context, announcementID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM revisions WHERE announcement_id = $1`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query, announcementID).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountByAnnouncement: %w", err)
	}
	return count, nil
}

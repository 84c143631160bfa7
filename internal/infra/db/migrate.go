package db

import (
	"database/sql"
)

// MigrateUp creates the schema. Statements are idempotent so the migration
// can run on every startup.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS categories (
    id         SERIAL PRIMARY KEY,
    name       TEXT NOT NULL,
    slug       TEXT NOT NULL UNIQUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS announcements (
    id           SERIAL PRIMARY KEY,
    category_id  INTEGER NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
    author_id    TEXT NOT NULL,
    title        TEXT NOT NULL,
    content      TEXT NOT NULL,
    excerpt      TEXT NOT NULL DEFAULT '',
    image_path   TEXT NOT NULL DEFAULT '',
    is_published BOOLEAN NOT NULL DEFAULT FALSE,
    scheduled_at TIMESTAMPTZ,
    takedown_at  TIMESTAMPTZ,
    view_count   BIGINT NOT NULL DEFAULT 0,
    is_pinned    BOOLEAN NOT NULL DEFAULT FALSE,
    is_hero      BOOLEAN NOT NULL DEFAULT FALSE,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	// revisions are append-only; the unique index on (announcement_id, version)
	// is what keeps concurrent snapshot writers from assigning the same
	// version number
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS revisions (
    id              SERIAL PRIMARY KEY,
    announcement_id INTEGER NOT NULL REFERENCES announcements(id) ON DELETE CASCADE,
    version         INTEGER NOT NULL CHECK (version >= 1),
    title           TEXT NOT NULL,
    content         TEXT NOT NULL,
    excerpt         TEXT NOT NULL DEFAULT '',
    image_path      TEXT NOT NULL DEFAULT '',
    change_type     VARCHAR(20) NOT NULL,
    change_summary  TEXT,
    author_id       TEXT NOT NULL,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (announcement_id, version)
)`); err != nil {
		return err
	}

	indexes := []string{
		// sweep selections filter on the pending timestamps
		`CREATE INDEX IF NOT EXISTS idx_announcements_scheduled_at
    ON announcements(scheduled_at) WHERE scheduled_at IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_announcements_takedown_at
    ON announcements(takedown_at) WHERE takedown_at IS NOT NULL`,
		// listings order by created_at DESC
		`CREATE INDEX IF NOT EXISTS idx_announcements_created_at ON announcements(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_announcements_category_id ON announcements(category_id)`,
		// history pages order by version DESC within one announcement
		`CREATE INDEX IF NOT EXISTS idx_revisions_announcement_version
    ON revisions(announcement_id, version DESC)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	// change_type constraint; ignore errors when it already exists
	_, _ = db.Exec(`
DO $$
BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM pg_constraint
        WHERE conname = 'chk_revision_change_type'
    ) THEN
        ALTER TABLE revisions ADD CONSTRAINT chk_revision_change_type
        CHECK (change_type IN ('EDIT', 'RESTORE'));
    END IF;
END $$;
`)

	return nil
}

// MigrateDown rolls back the database schema.
// Use with caution: this will delete all data in the affected tables.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP TABLE IF EXISTS revisions CASCADE`,
		`DROP TABLE IF EXISTS announcements CASCADE`,
		`DROP TABLE IF EXISTS categories CASCADE`,
	}

	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

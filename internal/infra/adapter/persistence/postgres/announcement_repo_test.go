package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"noticeboard/internal/domain/entity"
	pg "noticeboard/internal/infra/adapter/persistence/postgres"
)

func annRow(a *entity.Announcement) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "category_id", "author_id", "title", "content", "excerpt", "image_path",
		"is_published", "scheduled_at", "takedown_at", "view_count", "is_pinned",
		"is_hero", "created_at", "updated_at",
	}).AddRow(
		a.ID, a.CategoryID, a.AuthorID, a.Title, a.Content, a.Excerpt, a.ImagePath,
		a.IsPublished, a.ScheduledAt, a.TakedownAt, a.ViewCount, a.IsPinned,
		a.IsHero, a.CreatedAt, a.UpdatedAt,
	)
}

func TestAnnouncementRepo_Get(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	sched := now.Add(time.Hour)
	want := &entity.Announcement{
		ID: 1, CategoryID: 2, AuthorID: "alice",
		Title: "Office closed", Content: "body", Excerpt: "ex",
		ImagePath: "/img/a.png", ScheduledAt: &sched,
		CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id")).
		WithArgs(int64(1)).
		WillReturnRows(annRow(want))

	repo := pg.NewAnnouncementRepo(db)
	got, err := repo.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAnnouncementRepo_Get_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id")).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := pg.NewAnnouncementRepo(db)
	got, err := repo.Get(context.Background(), 404)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if got != nil {
		t.Fatalf("Get = %+v, want nil for missing row", got)
	}
}

func TestAnnouncementRepo_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	a := &entity.Announcement{
		CategoryID: 2, AuthorID: "alice", Title: "t", Content: "c",
		CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO announcements")).
		WithArgs(a.CategoryID, a.AuthorID, a.Title, a.Content, a.Excerpt, a.ImagePath,
			a.IsPublished, a.ScheduledAt, a.TakedownAt, a.IsPinned, a.IsHero,
			a.CreatedAt, a.UpdatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	repo := pg.NewAnnouncementRepo(db)
	if err := repo.Create(context.Background(), a); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if a.ID != 7 {
		t.Fatalf("ID=%d, want 7 from RETURNING", a.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAnnouncementRepo_ListDuePublish(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM announcements")).
		WithArgs(now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)).AddRow(int64(5)))

	repo := pg.NewAnnouncementRepo(db)
	ids, err := repo.ListDuePublish(context.Background(), now)
	if err != nil {
		t.Fatalf("ListDuePublish err=%v", err)
	}
	if diff := cmp.Diff([]int64{3, 5}, ids); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAnnouncementRepo_MarkPublished(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	// First call matches the predicate; the repeat does not, because the
	// guarded update already cleared scheduled_at.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE announcements SET")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE announcements SET")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := pg.NewAnnouncementRepo(db)
	ok, err := repo.MarkPublished(context.Background(), 3)
	if err != nil || !ok {
		t.Fatalf("MarkPublished = %v, %v, want true", ok, err)
	}
	ok, err = repo.MarkPublished(context.Background(), 3)
	if err != nil || ok {
		t.Fatalf("repeat MarkPublished = %v, %v, want false", ok, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAnnouncementRepo_MarkTakenDown(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE announcements SET")).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := pg.NewAnnouncementRepo(db)
	ok, err := repo.MarkTakenDown(context.Background(), 9)
	if err != nil {
		t.Fatalf("MarkTakenDown err=%v", err)
	}
	if ok {
		t.Fatal("unmatched row must report false, not an error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAnnouncementRepo_SetSchedule(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	at := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE announcements SET")).
		WithArgs(at, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE announcements SET")).
		WithArgs(nil, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := pg.NewAnnouncementRepo(db)
	if err := repo.SetSchedule(context.Background(), 1, &at); err != nil {
		t.Fatalf("SetSchedule err=%v", err)
	}
	if err := repo.SetSchedule(context.Background(), 1, nil); err != nil {
		t.Fatalf("SetSchedule clear err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAnnouncementRepo_UpdateEditorial(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE announcements SET")).
		WithArgs("t", "c", "e", "/img/x.png", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := pg.NewAnnouncementRepo(db)
	if err := repo.UpdateEditorial(context.Background(), 1, "t", "c", "e", "/img/x.png"); err != nil {
		t.Fatalf("UpdateEditorial err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAnnouncementRepo_IncrementViewCount(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE announcements SET view_count = view_count + 1")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := pg.NewAnnouncementRepo(db)
	if err := repo.IncrementViewCount(context.Background(), 1); err != nil {
		t.Fatalf("IncrementViewCount err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

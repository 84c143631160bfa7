package announcement_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"noticeboard/internal/domain/entity"
	annUC "noticeboard/internal/usecase/announcement"
)

// stubRepo is a minimal in-memory AnnouncementRepository.
type stubRepo struct {
	data   map[int64]*entity.Announcement
	nextID int64
	err    error

	setPublishedCalls []bool
	scheduleCalls     []*time.Time
	takedownCalls     []*time.Time
	viewCalls         int
}

func newStub() *stubRepo {
	return &stubRepo{data: map[int64]*entity.Announcement{}, nextID: 1}
}

func (s *stubRepo) List(context.Context) ([]*entity.Announcement, error) {
	var out []*entity.Announcement
	for _, v := range s.data {
		out = append(out, v)
	}
	return out, s.err
}
func (s *stubRepo) ListPaginated(context.Context, int, int) ([]*entity.Announcement, error) {
	return nil, s.err
}
func (s *stubRepo) Count(context.Context) (int64, error) {
	return int64(len(s.data)), s.err
}
func (s *stubRepo) Get(_ context.Context, id int64) (*entity.Announcement, error) {
	return s.data[id], s.err
}
func (s *stubRepo) Create(_ context.Context, a *entity.Announcement) error {
	if s.err != nil {
		return s.err
	}
	a.ID = s.nextID
	s.nextID++
	s.data[a.ID] = a
	return nil
}
func (s *stubRepo) Update(_ context.Context, a *entity.Announcement) error {
	if s.err != nil {
		return s.err
	}
	s.data[a.ID] = a
	return nil
}
func (s *stubRepo) Delete(_ context.Context, id int64) error {
	if s.err != nil {
		return s.err
	}
	delete(s.data, id)
	return nil
}
func (s *stubRepo) ListDuePublish(context.Context, time.Time) ([]int64, error)  { return nil, nil }
func (s *stubRepo) ListDueTakedown(context.Context, time.Time) ([]int64, error) { return nil, nil }
func (s *stubRepo) MarkPublished(context.Context, int64) (bool, error)          { return false, nil }
func (s *stubRepo) MarkTakenDown(context.Context, int64) (bool, error)          { return false, nil }
func (s *stubRepo) SetPublished(_ context.Context, id int64, published bool) error {
	s.setPublishedCalls = append(s.setPublishedCalls, published)
	return s.err
}
func (s *stubRepo) SetSchedule(_ context.Context, id int64, at *time.Time) error {
	s.scheduleCalls = append(s.scheduleCalls, at)
	return s.err
}
func (s *stubRepo) SetTakedown(_ context.Context, id int64, at *time.Time) error {
	s.takedownCalls = append(s.takedownCalls, at)
	return s.err
}
func (s *stubRepo) UpdateEditorial(context.Context, int64, string, string, string, string) error {
	return s.err
}
func (s *stubRepo) IncrementViewCount(_ context.Context, id int64) error {
	s.viewCalls++
	return s.err
}

// stubCategories knows a single category with ID 1.
type stubCategories struct{ err error }

func (s *stubCategories) Get(_ context.Context, id int64) (*entity.Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	if id == 1 {
		return &entity.Category{ID: 1, Name: "General", Slug: "general"}, nil
	}
	return nil, nil
}
func (s *stubCategories) GetBySlug(context.Context, string) (*entity.Category, error) {
	return nil, nil
}
func (s *stubCategories) List(context.Context) ([]*entity.Category, error) { return nil, nil }
func (s *stubCategories) Create(context.Context, *entity.Category) error   { return nil }
func (s *stubCategories) Update(context.Context, *entity.Category) error   { return nil }
func (s *stubCategories) Delete(context.Context, int64) error              { return nil }

// stubSnapshotter records snapshot calls and can be made to fail.
type stubSnapshotter struct {
	calls []snapshotCall
	err   error
}

type snapshotCall struct {
	announcementID int64
	authorID       string
	changeType     entity.ChangeType
	summary        *string
}

func (s *stubSnapshotter) Snapshot(_ context.Context, announcementID int64, authorID string, changeType entity.ChangeType, summary *string) (*entity.Revision, error) {
	s.calls = append(s.calls, snapshotCall{announcementID, authorID, changeType, summary})
	if s.err != nil {
		return nil, s.err
	}
	return &entity.Revision{AnnouncementID: announcementID, Version: len(s.calls)}, nil
}

func newService(repo *stubRepo, snaps annUC.Snapshotter) *annUC.Service {
	return annUC.NewService(repo, &stubCategories{}, snaps, slog.Default())
}

func strp(s string) *string { return &s }

func TestCreate_StartsUnpublished(t *testing.T) {
	repo := newStub()
	svc := newService(repo, nil)

	got, err := svc.Create(context.Background(), "alice", annUC.CreateInput{
		CategoryID: 1, Title: "t", Content: "c",
	})
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if got.ID == 0 || got.AuthorID != "alice" {
		t.Fatalf("created = %+v, want assigned ID and author", got)
	}
	if got.IsPublished || got.ScheduledAt != nil || got.TakedownAt != nil {
		t.Fatal("new announcements must start as plain drafts")
	}
}

func TestCreate_UnknownCategory(t *testing.T) {
	svc := newService(newStub(), nil)
	_, err := svc.Create(context.Background(), "alice", annUC.CreateInput{
		CategoryID: 99, Title: "t", Content: "c",
	})
	if !errors.Is(err, annUC.ErrCategoryNotFound) {
		t.Fatalf("err=%v, want ErrCategoryNotFound", err)
	}
}

func TestCreate_RequiresAuthor(t *testing.T) {
	svc := newService(newStub(), nil)
	_, err := svc.Create(context.Background(), "", annUC.CreateInput{
		CategoryID: 1, Title: "t", Content: "c",
	})
	var verr *entity.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err=%v, want ValidationError", err)
	}
}

func TestUpdate_AppliesOnlyProvidedFields(t *testing.T) {
	repo := newStub()
	repo.data[1] = &entity.Announcement{
		ID: 1, CategoryID: 1, AuthorID: "alice",
		Title: "old title", Content: "old content", Excerpt: "old excerpt",
	}
	svc := newService(repo, nil)

	got, err := svc.Update(context.Background(), "bob", annUC.UpdateInput{
		ID:    1,
		Title: strp("new title"),
	})
	if err != nil {
		t.Fatalf("Update err=%v", err)
	}
	if got.Title != "new title" {
		t.Fatalf("title=%q, want updated", got.Title)
	}
	if got.Content != "old content" || got.Excerpt != "old excerpt" {
		t.Fatal("omitted fields must be left untouched")
	}
}

func TestUpdate_SnapshotsBeforeMutation(t *testing.T) {
	repo := newStub()
	repo.data[1] = &entity.Announcement{ID: 1, CategoryID: 1, Title: "t", Content: "c"}
	snaps := &stubSnapshotter{}
	svc := newService(repo, snaps)

	summary := "reworded"
	_, err := svc.Update(context.Background(), "bob", annUC.UpdateInput{
		ID: 1, Title: strp("t2"), ChangeSummary: &summary,
	})
	if err != nil {
		t.Fatalf("Update err=%v", err)
	}

	if len(snaps.calls) != 1 {
		t.Fatalf("snapshot calls=%d, want 1", len(snaps.calls))
	}
	call := snaps.calls[0]
	if call.announcementID != 1 || call.authorID != "bob" || call.changeType != entity.ChangeEdit {
		t.Fatalf("snapshot call = %+v, want EDIT by bob on 1", call)
	}
	if call.summary == nil || *call.summary != summary {
		t.Fatal("change summary must be forwarded to the snapshot")
	}
}

// A failing snapshot is logged and counted but must never block the edit.
func TestUpdate_ProceedsWhenSnapshotFails(t *testing.T) {
	repo := newStub()
	repo.data[1] = &entity.Announcement{ID: 1, CategoryID: 1, Title: "t", Content: "c"}
	snaps := &stubSnapshotter{err: errors.New("revision store down")}
	svc := newService(repo, snaps)

	got, err := svc.Update(context.Background(), "bob", annUC.UpdateInput{
		ID: 1, Title: strp("t2"),
	})
	if err != nil {
		t.Fatalf("Update err=%v, want edit to proceed", err)
	}
	if got.Title != "t2" {
		t.Fatalf("title=%q, want the edit applied", got.Title)
	}
	if len(snaps.calls) != 1 {
		t.Fatal("snapshot must have been attempted")
	}
}

func TestUpdate_UnknownAnnouncement(t *testing.T) {
	svc := newService(newStub(), nil)
	_, err := svc.Update(context.Background(), "bob", annUC.UpdateInput{ID: 42, Title: strp("x")})
	if !errors.Is(err, annUC.ErrAnnouncementNotFound) {
		t.Fatalf("err=%v, want ErrAnnouncementNotFound", err)
	}
}

func TestPublishUnpublish(t *testing.T) {
	repo := newStub()
	repo.data[1] = &entity.Announcement{ID: 1, CategoryID: 1, Title: "t", Content: "c"}
	svc := newService(repo, nil)
	ctx := context.Background()

	if err := svc.Publish(ctx, 1); err != nil {
		t.Fatalf("Publish err=%v", err)
	}
	if err := svc.Unpublish(ctx, 1); err != nil {
		t.Fatalf("Unpublish err=%v", err)
	}
	want := []bool{true, false}
	if len(repo.setPublishedCalls) != 2 || repo.setPublishedCalls[0] != want[0] || repo.setPublishedCalls[1] != want[1] {
		t.Fatalf("SetPublished calls = %v, want %v", repo.setPublishedCalls, want)
	}

	if err := svc.Publish(ctx, 42); !errors.Is(err, annUC.ErrAnnouncementNotFound) {
		t.Fatalf("err=%v, want ErrAnnouncementNotFound", err)
	}
}

func TestScheduleAndTakedown(t *testing.T) {
	repo := newStub()
	repo.data[1] = &entity.Announcement{ID: 1, CategoryID: 1, Title: "t", Content: "c"}
	svc := newService(repo, nil)
	ctx := context.Background()

	at := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	if err := svc.Schedule(ctx, 1, &at); err != nil {
		t.Fatalf("Schedule err=%v", err)
	}
	if err := svc.Schedule(ctx, 1, nil); err != nil {
		t.Fatalf("Schedule clear err=%v", err)
	}
	if len(repo.scheduleCalls) != 2 || repo.scheduleCalls[0] == nil || repo.scheduleCalls[1] != nil {
		t.Fatalf("SetSchedule calls = %v, want set then clear", repo.scheduleCalls)
	}

	if err := svc.ScheduleTakedown(ctx, 1, &at); err != nil {
		t.Fatalf("ScheduleTakedown err=%v", err)
	}
	if len(repo.takedownCalls) != 1 {
		t.Fatalf("SetTakedown calls = %d, want 1", len(repo.takedownCalls))
	}
}

func TestRecordView(t *testing.T) {
	repo := newStub()
	svc := newService(repo, nil)

	if err := svc.RecordView(context.Background(), 1); err != nil {
		t.Fatalf("RecordView err=%v", err)
	}
	if repo.viewCalls != 1 {
		t.Fatalf("view calls = %d, want 1", repo.viewCalls)
	}
	if err := svc.RecordView(context.Background(), 0); !errors.Is(err, annUC.ErrInvalidAnnouncementID) {
		t.Fatalf("err=%v, want ErrInvalidAnnouncementID", err)
	}
}

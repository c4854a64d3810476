package cases

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeRepo keeps cases in a slice, newest first, like the Mongo
// repository's created_at sort.
type fakeRepo struct {
	items []VideoCase
}

func (r *fakeRepo) Insert(ctx context.Context, item VideoCase) error {
	r.items = append([]VideoCase{item}, r.items...)
	return nil
}

func (r *fakeRepo) Replace(ctx context.Context, item VideoCase) (bool, error) {
	for i := range r.items {
		if r.items[i].ID == item.ID {
			item.CreatedAt = r.items[i].CreatedAt
			r.items[i] = item
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) (bool, error) {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) List(ctx context.Context) ([]VideoCase, error) {
	return append([]VideoCase(nil), r.items...), nil
}

type fakeMeta struct {
	title string
	err   error
}

func (f *fakeMeta) Title(ctx context.Context, videoURL string) (string, error) {
	return f.title, f.err
}

func newTestService(repo *fakeRepo) *Service {
	return NewService(repo, time.UTC)
}

func TestCreateAssignsFreshID(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	draft := Draft{
		Category:   "Catering",
		Region:     "USA",
		RobotType:  "BellaBot",
		ClientName: "  McDonald's  ",
		Rating:     4,
		Keywords:   []string{"delivery", " fastfood "},
	}

	created, err := svc.Create(context.Background(), draft)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected a server-assigned id")
	}
	if created.ClientName != "McDonald's" {
		t.Fatalf("client name not trimmed: %q", created.ClientName)
	}
	if len(created.Keywords) != 2 || created.Keywords[1] != "fastfood" {
		t.Fatalf("keywords not normalized: %v", created.Keywords)
	}

	second, err := svc.Create(context.Background(), draft)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if second.ID == created.ID {
		t.Fatalf("ids must be unique, got %s twice", created.ID)
	}

	list, _ := svc.List(context.Background())
	if len(list) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(list))
	}
}

func TestCreateFillsDescriptionFromMetadata(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo).WithMetadata(&fakeMeta{title: "BellaBot at McDonald's"})

	created, err := svc.Create(context.Background(), Draft{
		Category:   "Catering",
		Region:     "USA",
		RobotType:  "BellaBot",
		ClientName: "McDonald's",
		VideoURL:   "https://youtu.be/abc123def45",
		Rating:     4,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.Description != "BellaBot at McDonald's" {
		t.Fatalf("description not enriched: %q", created.Description)
	}
}

func TestCreateIgnoresMetadataFailure(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo).WithMetadata(&fakeMeta{err: errors.New("quota exceeded")})

	created, err := svc.Create(context.Background(), Draft{
		Category:   "Catering",
		Region:     "USA",
		RobotType:  "BellaBot",
		ClientName: "McDonald's",
		VideoURL:   "https://youtu.be/abc123def45",
		Rating:     4,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.Description != "" {
		t.Fatalf("description should stay empty on lookup failure, got %q", created.Description)
	}
}

func TestCreateKeepsExplicitDescription(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo).WithMetadata(&fakeMeta{title: "ignored"})

	created, err := svc.Create(context.Background(), Draft{
		Category:    "Catering",
		Region:      "USA",
		RobotType:   "BellaBot",
		ClientName:  "McDonald's",
		VideoURL:    "https://youtu.be/abc123def45",
		Rating:      4,
		Description: "hand written",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.Description != "hand written" {
		t.Fatalf("explicit description overwritten: %q", created.Description)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	_, err := svc.Update(context.Background(), VideoCase{
		ID:         "missing",
		Category:   "Catering",
		Region:     "USA",
		RobotType:  "BellaBot",
		ClientName: "McDonald's",
		Rating:     4,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatalf("collection must stay unchanged")
	}
}

func TestUpdateReplacesRecord(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), Draft{
		Category:   "Catering",
		Region:     "USA",
		RobotType:  "BellaBot",
		ClientName: "McDonald's",
		Rating:     4,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	created.Rating = 5
	created.Region = "Canada"
	updated, err := svc.Update(context.Background(), created)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Rating != 5 || updated.Region != "Canada" {
		t.Fatalf("update not applied: %+v", updated)
	}

	list, _ := svc.List(context.Background())
	if len(list) != 1 || list[0].Region != "Canada" {
		t.Fatalf("stored record not replaced: %+v", list)
	}
}

func TestDeleteUnknownIDIsNoop(t *testing.T) {
	repo := &fakeRepo{items: []VideoCase{{ID: "1"}}}
	svc := newTestService(repo)

	if err := svc.Delete(context.Background(), "missing"); err != nil {
		t.Fatalf("delete of unknown id must not error: %v", err)
	}
	if len(repo.items) != 1 {
		t.Fatalf("collection must stay unchanged")
	}
}

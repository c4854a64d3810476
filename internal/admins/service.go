package admins

import (
	"context"
	"strings"
	"time"
)

type Service struct {
	repo     Repository
	location *time.Location
}

func NewService(repo Repository, location *time.Location) *Service {
	return &Service{
		repo:     repo,
		location: location,
	}
}

// Add puts an email on the admin list. A duplicate (case-insensitive)
// is a silent no-op: the original entry, including its addedBy audit
// trail, stays untouched.
func (s *Service) Add(ctx context.Context, email, addedBy string) error {
	addedBy = strings.TrimSpace(addedBy)
	if addedBy == "" {
		addedBy = "System"
	}

	admin := AdminUser{
		Email:   strings.TrimSpace(email),
		AddedBy: addedBy,
		AddedAt: time.Now().In(s.location),
	}

	_, err := s.repo.Add(ctx, admin)
	return err
}

// Remove takes an email off the list; unknown emails are a no-op.
// There is deliberately no last-admin guard.
func (s *Service) Remove(ctx context.Context, email string) error {
	_, err := s.repo.Remove(ctx, email)
	return err
}

func (s *Service) List(ctx context.Context) ([]AdminUser, error) {
	return s.repo.List(ctx)
}

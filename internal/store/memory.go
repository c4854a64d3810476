package store

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shimotmr/Pudu-cases/internal/admins"
	"github.com/shimotmr/Pudu-cases/internal/cases"
)

// Memory simulates the backend protocol against an in-process copy of
// the collections. It exists so the tool is runnable without a deployed
// endpoint; it is a store simulation, not a caching layer. Semantics
// track the real backend: case-insensitive admin dedupe, no-op deletes,
// ErrNotFound on unknown-id updates.
type Memory struct {
	mu      sync.Mutex
	cases   []cases.VideoCase
	admins  []admins.AdminUser
	delay   time.Duration
	counter int
}

func NewMemory() *Memory {
	return &Memory{}
}

// WithDelay makes every operation sleep first, approximating the
// round-trip of the real endpoint for demo use.
func (m *Memory) WithDelay(d time.Duration) *Memory {
	m.delay = d
	return m
}

// SeedCases replaces the case collection (oldest last, as List returns
// newest first and Create prepends).
func (m *Memory) SeedCases(items []cases.VideoCase) *Memory {
	m.cases = append([]cases.VideoCase(nil), items...)
	return m
}

func (m *Memory) SeedAdmins(items []admins.AdminUser) *Memory {
	m.admins = append([]admins.AdminUser(nil), items...)
	return m
}

func (m *Memory) wait(ctx context.Context) error {
	if m.delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(m.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Memory) ListCases(ctx context.Context) ([]cases.VideoCase, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]cases.VideoCase(nil), m.cases...), nil
}

func (m *Memory) CreateCase(ctx context.Context, draft cases.Draft) (cases.VideoCase, error) {
	if err := m.wait(ctx); err != nil {
		return cases.VideoCase{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	m.counter++
	item := cases.VideoCase{
		// Time-based id like the real store assigns; the counter keeps
		// ids unique within one millisecond.
		ID:          strconv.FormatInt(now.UnixMilli(), 10) + "-" + strconv.Itoa(m.counter),
		Category:    strings.TrimSpace(draft.Category),
		Subcategory: strings.TrimSpace(draft.Subcategory),
		Region:      strings.TrimSpace(draft.Region),
		RobotType:   strings.TrimSpace(draft.RobotType),
		ClientName:  strings.TrimSpace(draft.ClientName),
		VideoURL:    strings.TrimSpace(draft.VideoURL),
		Rating:      draft.Rating,
		Keywords:    cases.SplitKeywords(cases.JoinKeywords(draft.Keywords)),
		Description: strings.TrimSpace(draft.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	m.cases = append([]cases.VideoCase{item}, m.cases...)
	return item, nil
}

func (m *Memory) UpdateCase(ctx context.Context, item cases.VideoCase) error {
	if err := m.wait(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.cases {
		if m.cases[i].ID == item.ID {
			item.CreatedAt = m.cases[i].CreatedAt
			item.UpdatedAt = time.Now()
			item.Keywords = cases.SplitKeywords(cases.JoinKeywords(item.Keywords))
			m.cases[i] = item
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) DeleteCase(ctx context.Context, id string) error {
	if err := m.wait(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.cases[:0]
	for _, c := range m.cases {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	m.cases = kept
	return nil
}

func (m *Memory) ListAdmins(ctx context.Context) ([]admins.AdminUser, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]admins.AdminUser(nil), m.admins...), nil
}

func (m *Memory) AddAdmin(ctx context.Context, email, addedBy string) error {
	if err := m.wait(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	email = strings.TrimSpace(email)
	for _, a := range m.admins {
		if strings.EqualFold(a.Email, email) {
			return nil
		}
	}
	if addedBy = strings.TrimSpace(addedBy); addedBy == "" {
		addedBy = "System"
	}
	m.admins = append(m.admins, admins.AdminUser{
		Email:   email,
		AddedBy: addedBy,
		AddedAt: time.Now(),
	})
	return nil
}

func (m *Memory) RemoveAdmin(ctx context.Context, email string) error {
	if err := m.wait(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.admins[:0]
	for _, a := range m.admins {
		if !strings.EqualFold(a.Email, email) {
			kept = append(kept, a)
		}
	}
	m.admins = kept
	return nil
}

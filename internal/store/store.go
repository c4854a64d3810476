// Package store is the sync client: every read and write of the video
// case library and the admin list goes through a Store. Two
// implementations exist — Remote speaks the single-endpoint action
// protocol over HTTP, Memory simulates it in-process so the tool runs
// without a deployed backend.
package store

import (
	"context"
	"errors"

	"github.com/shimotmr/Pudu-cases/internal/admins"
	"github.com/shimotmr/Pudu-cases/internal/cases"
)

// ErrNotFound reports an update against an id the backend does not
// know. Deletes and admin removals never return it; those are no-ops
// on a miss.
var ErrNotFound = errors.New("id not found")

type Store interface {
	ListCases(ctx context.Context) ([]cases.VideoCase, error)
	CreateCase(ctx context.Context, draft cases.Draft) (cases.VideoCase, error)
	UpdateCase(ctx context.Context, item cases.VideoCase) error
	DeleteCase(ctx context.Context, id string) error

	ListAdmins(ctx context.Context) ([]admins.AdminUser, error)
	AddAdmin(ctx context.Context, email, addedBy string) error
	RemoveAdmin(ctx context.Context, email string) error
}

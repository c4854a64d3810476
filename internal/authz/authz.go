// Package authz answers one question: is this email on the admin list.
package authz

import (
	"context"
	"strings"

	"github.com/shimotmr/Pudu-cases/internal/admins"
)

// AdminDirectory is the slice of the sync client authz needs.
type AdminDirectory interface {
	ListAdmins(ctx context.Context) ([]admins.AdminUser, error)
}

// IsAdmin fetches the current admin list and tests case-insensitive
// membership. It is evaluated once per sign-in; sessions are not
// re-checked afterwards.
func IsAdmin(ctx context.Context, dir AdminDirectory, email string) (bool, error) {
	list, err := dir.ListAdmins(ctx)
	if err != nil {
		return false, err
	}
	email = strings.TrimSpace(email)
	for _, a := range list {
		if strings.EqualFold(a.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

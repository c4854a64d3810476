// Package browser owns the client-side session state: the cached
// collection, the filter selection, the signed-in identity and the
// editor. It is the Go rendition of the single-page view's controller.
package browser

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/shimotmr/Pudu-cases/internal/authz"
	"github.com/shimotmr/Pudu-cases/internal/cases"
	"github.com/shimotmr/Pudu-cases/internal/identity"
	"github.com/shimotmr/Pudu-cases/internal/store"
)

var (
	// ErrReadOnly rejects a mutation attempted outside admin mode.
	ErrReadOnly = errors.New("admin mode required")
	// ErrSignedOut rejects operations that need a signed-in identity.
	ErrSignedOut = errors.New("not signed in")
)

type Controller struct {
	store store.Store
	log   *slog.Logger

	mu         sync.Mutex
	items      []cases.VideoCase
	options    cases.FilterOptions
	filters    cases.FilterState
	profile    *identity.Profile
	authorized bool
	adminMode  bool
	editing    *cases.VideoCase
	editorOpen bool
}

func New(s store.Store, log *slog.Logger) *Controller {
	return &Controller{store: s, log: log}
}

// Refresh discards the cached collection and reloads it wholesale from
// the store. It runs after every successful mutation: displayed state
// always reflects the store's view once the round-trip completes. Under
// interleaved calls the last completed reload wins; the cache is never
// left half-patched.
func (c *Controller) Refresh(ctx context.Context) error {
	items, err := c.store.ListCases(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.items = items
	c.options = cases.OptionsFrom(items)
	c.mu.Unlock()
	return nil
}

// Visible applies the current filter to the cached collection.
func (c *Controller) Visible() []cases.VideoCase {
	c.mu.Lock()
	items := c.items
	filters := c.filters
	c.mu.Unlock()
	return cases.ApplyFilter(items, filters)
}

// Options are the dropdown values observed in the cached collection.
func (c *Controller) Options() cases.FilterOptions {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.options
}

func (c *Controller) Filters() cases.FilterState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

func (c *Controller) SetFilters(f cases.FilterState) {
	c.mu.Lock()
	c.filters = f
	c.mu.Unlock()
}

func (c *Controller) SetSearch(q string) {
	c.mu.Lock()
	c.filters.Search = q
	c.mu.Unlock()
}

func (c *Controller) ResetFilters() {
	c.mu.Lock()
	c.filters = cases.FilterState{}
	c.mu.Unlock()
}

// SignIn decodes a Google Sign-In credential and runs the admin check.
func (c *Controller) SignIn(ctx context.Context, credential string) (bool, error) {
	profile, err := identity.Decode(credential)
	if err != nil {
		return false, err
	}
	return c.SignInAs(ctx, profile)
}

// SignInAs records the profile and evaluates admin-list membership once
// for the session. Authorized users land in admin mode; everyone else
// has admin mode forced off and gets a false result for the caller's
// denial notice.
func (c *Controller) SignInAs(ctx context.Context, profile identity.Profile) (bool, error) {
	authorized, err := authz.IsAdmin(ctx, c.store, profile.Email)
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	c.profile = &profile
	c.authorized = authorized
	c.adminMode = authorized
	c.mu.Unlock()

	if c.log != nil {
		c.log.Info("sign-in", slog.String("email", profile.Email), slog.Bool("authorized", authorized))
	}
	return authorized, nil
}

func (c *Controller) SignOut() {
	c.mu.Lock()
	c.profile = nil
	c.authorized = false
	c.adminMode = false
	c.editing = nil
	c.editorOpen = false
	c.mu.Unlock()
}

func (c *Controller) Profile() (identity.Profile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.profile == nil {
		return identity.Profile{}, false
	}
	return *c.profile, true
}

func (c *Controller) IsAuthorized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.authorized
}

func (c *Controller) AdminMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.adminMode
}

// SetAdminMode toggles the display-only admin switch. Only an
// authorized admin can switch it on; anyone can switch it off.
func (c *Controller) SetAdminMode(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if on && !c.authorized {
		return
	}
	c.adminMode = on
}

// OpenEditor opens the case form, either blank or targeting an
// existing case.
func (c *Controller) OpenEditor(target *cases.VideoCase) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if target != nil {
		copied := *target
		c.editing = &copied
	} else {
		c.editing = nil
	}
	c.editorOpen = true
}

func (c *Controller) CloseEditor() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = nil
	c.editorOpen = false
}

func (c *Controller) EditorOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editorOpen
}

// Save creates or updates depending on whether the editor targets an
// existing case. The editor closes before the round-trip resolves; the
// reload happens afterwards.
func (c *Controller) Save(ctx context.Context, draft cases.Draft) error {
	c.mu.Lock()
	if !c.adminMode {
		c.mu.Unlock()
		return ErrReadOnly
	}
	editing := c.editing
	c.editing = nil
	c.editorOpen = false
	c.mu.Unlock()

	if editing != nil {
		item := *editing
		item.Category = draft.Category
		item.Subcategory = draft.Subcategory
		item.Region = draft.Region
		item.RobotType = draft.RobotType
		item.ClientName = draft.ClientName
		item.VideoURL = draft.VideoURL
		item.Rating = draft.Rating
		item.Keywords = draft.Keywords
		item.Description = draft.Description
		if err := c.store.UpdateCase(ctx, item); err != nil {
			return err
		}
	} else {
		if _, err := c.store.CreateCase(ctx, draft); err != nil {
			return err
		}
	}

	return c.Refresh(ctx)
}

// Delete asks for confirmation before issuing the call; a declined
// confirmation is a silent no-op.
func (c *Controller) Delete(ctx context.Context, id string, confirm func() bool) error {
	c.mu.Lock()
	adminMode := c.adminMode
	c.mu.Unlock()
	if !adminMode {
		return ErrReadOnly
	}
	if confirm != nil && !confirm() {
		return nil
	}
	if err := c.store.DeleteCase(ctx, id); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// AddAdmin puts an email on the admin list, attributed to the signed-in
// user. Duplicate emails are a backend-side no-op.
func (c *Controller) AddAdmin(ctx context.Context, email string) error {
	c.mu.Lock()
	profile := c.profile
	adminMode := c.adminMode
	c.mu.Unlock()
	if profile == nil {
		return ErrSignedOut
	}
	if !adminMode {
		return ErrReadOnly
	}
	return c.store.AddAdmin(ctx, email, profile.Email)
}

func (c *Controller) RemoveAdmin(ctx context.Context, email string) error {
	c.mu.Lock()
	adminMode := c.adminMode
	c.mu.Unlock()
	if !adminMode {
		return ErrReadOnly
	}
	return c.store.RemoveAdmin(ctx, email)
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shimotmr/Pudu-cases/internal/admins"
	"github.com/shimotmr/Pudu-cases/internal/cache"
	"github.com/shimotmr/Pudu-cases/internal/cases"
	"github.com/shimotmr/Pudu-cases/internal/middleware"
	"github.com/shimotmr/Pudu-cases/internal/transport"
	"github.com/shimotmr/Pudu-cases/internal/validation"
)

type fakeCaseRepo struct {
	items []cases.VideoCase
}

func (r *fakeCaseRepo) Insert(ctx context.Context, item cases.VideoCase) error {
	r.items = append([]cases.VideoCase{item}, r.items...)
	return nil
}

func (r *fakeCaseRepo) Replace(ctx context.Context, item cases.VideoCase) (bool, error) {
	for i := range r.items {
		if r.items[i].ID == item.ID {
			r.items[i] = item
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCaseRepo) Delete(ctx context.Context, id string) (bool, error) {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCaseRepo) List(ctx context.Context) ([]cases.VideoCase, error) {
	return append([]cases.VideoCase(nil), r.items...), nil
}

type fakeAdminRepo struct {
	items []admins.AdminUser
}

func (r *fakeAdminRepo) Add(ctx context.Context, admin admins.AdminUser) (bool, error) {
	for _, a := range r.items {
		if strings.EqualFold(a.Email, admin.Email) {
			return false, nil
		}
	}
	r.items = append(r.items, admin)
	return true, nil
}

func (r *fakeAdminRepo) Remove(ctx context.Context, email string) (bool, error) {
	for i, a := range r.items {
		if strings.EqualFold(a.Email, email) {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAdminRepo) List(ctx context.Context) ([]admins.AdminUser, error) {
	return append([]admins.AdminUser(nil), r.items...), nil
}

// trackingCache records snapshot writes and invalidations.
type trackingCache struct {
	values  map[string][]byte
	deleted []string
}

func newTrackingCache() *trackingCache {
	return &trackingCache{values: make(map[string][]byte)}
}

func (c *trackingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok := c.values[key]
	return v, ok, nil
}

func (c *trackingCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.values[key] = value
	return nil
}

func (c *trackingCache) Delete(ctx context.Context, key string) error {
	delete(c.values, key)
	c.deleted = append(c.deleted, key)
	return nil
}

func newTestServer() (*Server, *fakeCaseRepo, *fakeAdminRepo, *trackingCache) {
	caseRepo := &fakeCaseRepo{}
	adminRepo := &fakeAdminRepo{}
	tc := newTrackingCache()
	s := &Server{
		Cases:  cases.NewService(caseRepo, time.UTC),
		Admins: admins.NewService(adminRepo, time.UTC),
		Val:    validation.New(),
		Log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Cache:  tc,
	}
	return s, caseRepo, adminRepo, tc
}

func exec(t *testing.T, s *Server, body interface{}) transport.RawEnvelope {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}

	r := httptest.NewRequest(http.MethodPost, "/exec", &buf)
	w := httptest.NewRecorder()
	s.Exec(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("protocol always answers 200, got %d", w.Code)
	}

	var env transport.RawEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func validDraft() map[string]interface{} {
	return map[string]interface{}{
		"category":   "Catering",
		"region":     "USA",
		"robotType":  "BellaBot",
		"clientName": "McDonald's",
		"rating":     4,
		"keywords":   []string{"delivery"},
	}
}

func TestExecGet(t *testing.T) {
	s, repo, _, _ := newTestServer()
	repo.items = []cases.VideoCase{{ID: "1", ClientName: "McDonald's"}}

	env := exec(t, s, map[string]interface{}{"action": "get"})
	if !env.Success {
		t.Fatalf("expected success, got message %q", env.Message)
	}

	var list []cases.VideoCase
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(list) != 1 || list[0].ClientName != "McDonald's" {
		t.Fatalf("unexpected catalog: %+v", list)
	}
}

func TestExecGetViaHTTPGet(t *testing.T) {
	s, repo, _, _ := newTestServer()
	repo.items = []cases.VideoCase{{ID: "1"}}

	r := httptest.NewRequest(http.MethodGet, "/exec", nil)
	w := httptest.NewRecorder()
	s.ExecGet(w, r)

	var env transport.RawEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if !env.Success {
		t.Fatalf("bare GET must behave like the get action, got %q", env.Message)
	}
}

func TestExecGetServesCachedSnapshot(t *testing.T) {
	s, repo, _, tc := newTestServer()
	repo.items = []cases.VideoCase{{ID: "stale"}}
	tc.values[cache.CatalogKey] = []byte(`[{"id":"cached"}]`)

	env := exec(t, s, map[string]interface{}{"action": "get"})
	var list []cases.VideoCase
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(list) != 1 || list[0].ID != "cached" {
		t.Fatalf("expected the cached snapshot, got %+v", list)
	}
}

func TestExecCreate(t *testing.T) {
	s, _, _, tc := newTestServer()
	tc.values[cache.CatalogKey] = []byte(`[]`)

	env := exec(t, s, map[string]interface{}{"action": "create", "data": validDraft()})
	if !env.Success {
		t.Fatalf("expected success, got message %q", env.Message)
	}

	var list []cases.VideoCase
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("create must answer a one-element sequence, got %d", len(list))
	}
	if list[0].ID == "" {
		t.Fatalf("created case must carry a server-assigned id")
	}

	if len(tc.deleted) != 1 || tc.deleted[0] != cache.CatalogKey {
		t.Fatalf("create must invalidate the catalog snapshot, deleted=%v", tc.deleted)
	}
}

func TestExecCreateValidation(t *testing.T) {
	s, repo, _, _ := newTestServer()

	draft := validDraft()
	delete(draft, "clientName")
	env := exec(t, s, map[string]interface{}{"action": "create", "data": draft})
	if env.Success {
		t.Fatalf("missing clientName must fail validation")
	}
	if !strings.Contains(env.Message, "validation error") {
		t.Fatalf("unexpected message %q", env.Message)
	}
	if len(repo.items) != 0 {
		t.Fatalf("nothing may be stored on validation failure")
	}
}

func TestExecCreateRejectsOutOfRangeRating(t *testing.T) {
	s, _, _, _ := newTestServer()

	draft := validDraft()
	draft["rating"] = 6
	env := exec(t, s, map[string]interface{}{"action": "create", "data": draft})
	if env.Success {
		t.Fatalf("rating 6 must fail validation")
	}
}

func TestExecUpdateUnknownID(t *testing.T) {
	s, _, _, _ := newTestServer()

	data := validDraft()
	data["id"] = "missing"
	env := exec(t, s, map[string]interface{}{"action": "update", "data": data})
	if env.Success {
		t.Fatalf("unknown id must fail")
	}
	if env.Message != "ID not found" {
		t.Fatalf("expected the ID not found message, got %q", env.Message)
	}
}

func TestExecUpdateReplacesRecord(t *testing.T) {
	s, repo, _, tc := newTestServer()
	repo.items = []cases.VideoCase{{ID: "1", Category: "Catering", Region: "USA", RobotType: "BellaBot", ClientName: "McDonald's", Rating: 4}}
	tc.values[cache.CatalogKey] = []byte(`[]`)

	data := validDraft()
	data["id"] = "1"
	data["rating"] = 5
	env := exec(t, s, map[string]interface{}{"action": "update", "data": data})
	if !env.Success {
		t.Fatalf("expected success, got message %q", env.Message)
	}

	var list []cases.VideoCase
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(list) != 1 || list[0].Rating != 5 {
		t.Fatalf("updated record not echoed: %+v", list)
	}
	if repo.items[0].Rating != 5 {
		t.Fatalf("update not stored: %+v", repo.items[0])
	}
	if len(tc.deleted) == 0 {
		t.Fatalf("update must invalidate the catalog snapshot")
	}
}

func TestExecDeleteMissingID(t *testing.T) {
	s, _, _, _ := newTestServer()

	env := exec(t, s, map[string]interface{}{"action": "delete"})
	if env.Success {
		t.Fatalf("delete without id must fail")
	}
	if env.Message != "missing id" {
		t.Fatalf("unexpected message %q", env.Message)
	}
}

func TestExecDeleteUnknownIDIsNoop(t *testing.T) {
	s, repo, _, _ := newTestServer()
	repo.items = []cases.VideoCase{{ID: "1"}}

	env := exec(t, s, map[string]interface{}{"action": "delete", "id": "missing"})
	if !env.Success {
		t.Fatalf("delete of unknown id must succeed, got %q", env.Message)
	}
	if len(repo.items) != 1 {
		t.Fatalf("collection must stay unchanged")
	}
}

func TestExecAdminLifecycle(t *testing.T) {
	s, _, adminRepo, _ := newTestServer()

	env := exec(t, s, map[string]interface{}{"action": "addAdmin", "email": "alice@co.com", "addedBy": "bob@co.com"})
	if !env.Success {
		t.Fatalf("addAdmin failed: %q", env.Message)
	}

	env = exec(t, s, map[string]interface{}{"action": "getAdmins"})
	if !env.Success {
		t.Fatalf("getAdmins failed: %q", env.Message)
	}
	var list []admins.AdminUser
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(list) != 1 || list[0].AddedBy != "bob@co.com" {
		t.Fatalf("unexpected admin list: %+v", list)
	}

	// duplicate add stays a success and a no-op
	env = exec(t, s, map[string]interface{}{"action": "addAdmin", "email": "Alice@Co.com", "addedBy": "carol@co.com"})
	if !env.Success {
		t.Fatalf("duplicate addAdmin must succeed, got %q", env.Message)
	}
	if len(adminRepo.items) != 1 {
		t.Fatalf("duplicate add must not grow the list")
	}

	env = exec(t, s, map[string]interface{}{"action": "deleteAdmin", "email": "ALICE@CO.COM"})
	if !env.Success {
		t.Fatalf("deleteAdmin failed: %q", env.Message)
	}
	if len(adminRepo.items) != 0 {
		t.Fatalf("admin not removed")
	}
}

func TestExecAddAdminRejectsBadEmail(t *testing.T) {
	s, _, adminRepo, _ := newTestServer()

	env := exec(t, s, map[string]interface{}{"action": "addAdmin", "email": "not-an-email"})
	if env.Success {
		t.Fatalf("malformed email must fail validation")
	}
	if len(adminRepo.items) != 0 {
		t.Fatalf("nothing may be stored on validation failure")
	}
}

func TestExecDeleteAdminMissingEmail(t *testing.T) {
	s, _, _, _ := newTestServer()

	env := exec(t, s, map[string]interface{}{"action": "deleteAdmin"})
	if env.Success {
		t.Fatalf("deleteAdmin without email must fail")
	}
	if env.Message != "missing email" {
		t.Fatalf("unexpected message %q", env.Message)
	}
}

func TestExecUnknownAction(t *testing.T) {
	s, _, _, _ := newTestServer()

	env := exec(t, s, map[string]interface{}{"action": "explode"})
	if env.Success || env.Message != "unknown action" {
		t.Fatalf("unexpected envelope: success=%v message=%q", env.Success, env.Message)
	}
}

func TestExecInvalidJSON(t *testing.T) {
	s, _, _, _ := newTestServer()

	env := exec(t, s, "{not json")
	if env.Success || env.Message != "invalid json" {
		t.Fatalf("unexpected envelope: success=%v message=%q", env.Success, env.Message)
	}
}

func TestExecRateLimitsMutations(t *testing.T) {
	s, _, _, _ := newTestServer()
	s.Limiter = middleware.NewRateLimiter(1, time.Minute)

	env := exec(t, s, map[string]interface{}{"action": "create", "data": validDraft()})
	if !env.Success {
		t.Fatalf("first mutation must pass, got %q", env.Message)
	}

	env = exec(t, s, map[string]interface{}{"action": "create", "data": validDraft()})
	if env.Success || env.Message != "rate limit exceeded" {
		t.Fatalf("second mutation must be limited: success=%v message=%q", env.Success, env.Message)
	}

	// reads are never limited
	env = exec(t, s, map[string]interface{}{"action": "get"})
	if !env.Success {
		t.Fatalf("get must not be rate limited, got %q", env.Message)
	}
}

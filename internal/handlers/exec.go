package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/shimotmr/Pudu-cases/internal/admins"
	"github.com/shimotmr/Pudu-cases/internal/cache"
	"github.com/shimotmr/Pudu-cases/internal/cases"
	"github.com/shimotmr/Pudu-cases/internal/httpx"
	"github.com/shimotmr/Pudu-cases/internal/middleware"
	"github.com/shimotmr/Pudu-cases/internal/transport"
)

// actionRequest is the union of every action's fields. Which ones are
// read depends on Action; unknown actions fail in the envelope.
type actionRequest struct {
	Action  string          `json:"action"`
	Data    json.RawMessage `json:"data,omitempty"`
	ID      string          `json:"id,omitempty"`
	Email   string          `json:"email,omitempty"`
	AddedBy string          `json:"addedBy,omitempty"`
}

var mutatingActions = map[string]bool{
	"create":      true,
	"update":      true,
	"delete":      true,
	"addAdmin":    true,
	"deleteAdmin": true,
}

// ExecGet serves a bare GET against the endpoint as a full fetch,
// matching the original web app's doGet behavior.
func (s *Server) ExecGet(w http.ResponseWriter, r *http.Request) {
	s.handleGet(w, r)
}

// Exec dispatches the single-endpoint action protocol.
func (s *Server) Exec(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)

	var req actionRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("exec: invalid json")
		transport.WriteFail(w, "invalid json")
		return
	}

	if mutatingActions[req.Action] && s.Limiter != nil {
		if !s.Limiter.Allow(middleware.ClientIP(r) + ":" + req.Action) {
			log.Warn("exec: rate limited", slog.String("action", req.Action))
			transport.WriteFail(w, "rate limit exceeded")
			return
		}
	}

	switch req.Action {
	case "get":
		s.handleGet(w, r)
	case "create":
		s.handleCreate(w, r, req)
	case "update":
		s.handleUpdate(w, r, req)
	case "delete":
		s.handleDelete(w, r, req)
	case "getAdmins":
		s.handleGetAdmins(w, r)
	case "addAdmin":
		s.handleAddAdmin(w, r, req)
	case "deleteAdmin":
		s.handleDeleteAdmin(w, r, req)
	default:
		log.Warn("exec: unknown action", slog.String("action", req.Action))
		transport.WriteFail(w, "unknown action")
	}
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	if cached, ok, err := s.Cache.Get(ctx, cache.CatalogKey); err == nil && ok {
		log.Info("get: cache hit")
		transport.WriteOK(w, json.RawMessage(cached))
		return
	}

	items, err := s.Cases.List(ctx)
	if err != nil {
		log.Error("get: database error", slog.String("error", err.Error()))
		transport.WriteFail(w, "database error")
		return
	}

	if payload, err := json.Marshal(items); err == nil {
		if err := s.Cache.Set(ctx, cache.CatalogKey, payload, s.cacheTTL()); err != nil {
			log.Warn("get: cache set failed", slog.String("error", err.Error()))
		}
	}

	log.Info("get: ok", slog.Int("count", len(items)))
	transport.WriteOK(w, items)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request, req actionRequest) {
	log := s.logWithRequest(r)

	var draft cases.Draft
	if err := decodeData(req.Data, &draft); err != nil {
		log.Warn("create: invalid payload")
		transport.WriteFail(w, "invalid payload")
		return
	}

	if err := s.Val.Struct(draft); err != nil {
		log.Warn("create: validation error")
		transport.WriteFail(w, httpx.ValidationMessage(s.Val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := s.Cases.Create(ctx, draft)
	if err != nil {
		log.Error("create: database error", slog.String("error", err.Error()))
		transport.WriteFail(w, "database error")
		return
	}

	s.invalidateCatalog(ctx, log)
	log.Info("create: ok", slog.String("case_id", item.ID))
	transport.WriteOK(w, []cases.VideoCase{item})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request, req actionRequest) {
	log := s.logWithRequest(r)

	var item cases.VideoCase
	if err := decodeData(req.Data, &item); err != nil {
		log.Warn("update: invalid payload")
		transport.WriteFail(w, "invalid payload")
		return
	}

	draft := cases.Draft{
		Category:    item.Category,
		Subcategory: item.Subcategory,
		Region:      item.Region,
		RobotType:   item.RobotType,
		ClientName:  item.ClientName,
		VideoURL:    item.VideoURL,
		Rating:      item.Rating,
		Keywords:    item.Keywords,
		Description: item.Description,
	}
	if err := s.Val.Struct(draft); err != nil {
		log.Warn("update: validation error")
		transport.WriteFail(w, httpx.ValidationMessage(s.Val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	updated, err := s.Cases.Update(ctx, item)
	if err != nil {
		if errors.Is(err, cases.ErrNotFound) {
			log.Warn("update: not found", slog.String("case_id", item.ID))
			transport.WriteFail(w, "ID not found")
			return
		}
		log.Error("update: database error", slog.String("error", err.Error()))
		transport.WriteFail(w, "database error")
		return
	}

	s.invalidateCatalog(ctx, log)
	log.Info("update: ok", slog.String("case_id", updated.ID))
	transport.WriteOK(w, []cases.VideoCase{updated})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request, req actionRequest) {
	log := s.logWithRequest(r)
	if req.ID == "" {
		log.Warn("delete: missing id")
		transport.WriteFail(w, "missing id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.Cases.Delete(ctx, req.ID); err != nil {
		log.Error("delete: database error", slog.String("error", err.Error()))
		transport.WriteFail(w, "database error")
		return
	}

	s.invalidateCatalog(ctx, log)
	log.Info("delete: ok", slog.String("case_id", req.ID))
	transport.WriteOK(w, nil)
}

func (s *Server) handleGetAdmins(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := s.Admins.List(ctx)
	if err != nil {
		log.Error("getAdmins: database error", slog.String("error", err.Error()))
		transport.WriteFail(w, "database error")
		return
	}

	log.Info("getAdmins: ok", slog.Int("count", len(items)))
	transport.WriteOK(w, items)
}

func (s *Server) handleAddAdmin(w http.ResponseWriter, r *http.Request, req actionRequest) {
	log := s.logWithRequest(r)

	add := admins.AddRequest{Email: req.Email, AddedBy: req.AddedBy}
	if err := s.Val.Struct(add); err != nil {
		log.Warn("addAdmin: validation error")
		transport.WriteFail(w, httpx.ValidationMessage(s.Val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.Admins.Add(ctx, add.Email, add.AddedBy); err != nil {
		log.Error("addAdmin: database error", slog.String("error", err.Error()))
		transport.WriteFail(w, "database error")
		return
	}

	log.Info("addAdmin: ok")
	transport.WriteOK(w, nil)
}

func (s *Server) handleDeleteAdmin(w http.ResponseWriter, r *http.Request, req actionRequest) {
	log := s.logWithRequest(r)
	if req.Email == "" {
		log.Warn("deleteAdmin: missing email")
		transport.WriteFail(w, "missing email")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.Admins.Remove(ctx, req.Email); err != nil {
		log.Error("deleteAdmin: database error", slog.String("error", err.Error()))
		transport.WriteFail(w, "database error")
		return
	}

	log.Info("deleteAdmin: ok")
	transport.WriteOK(w, nil)
}

func (s *Server) invalidateCatalog(ctx context.Context, log *slog.Logger) {
	if err := s.Cache.Delete(ctx, cache.CatalogKey); err != nil {
		log.Warn("catalog cache invalidation failed", slog.String("error", err.Error()))
	}
}

func decodeData(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return errors.New("missing data")
	}
	return json.Unmarshal(raw, v)
}

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/shimotmr/Pudu-cases/internal/admins"
	"github.com/shimotmr/Pudu-cases/internal/cache"
	"github.com/shimotmr/Pudu-cases/internal/cases"
	"github.com/shimotmr/Pudu-cases/internal/config"
	"github.com/shimotmr/Pudu-cases/internal/middleware"
	"github.com/shimotmr/Pudu-cases/internal/validation"
)

type Server struct {
	Cfg     *config.Config
	Cases   *cases.Service
	Admins  *admins.Service
	Val     *validation.Validator
	Log     *slog.Logger
	Cache   cache.Cache
	Limiter *middleware.RateLimiter
}

func (s *Server) cacheTTL() time.Duration {
	if s.Cfg == nil || s.Cfg.CacheTTLSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(s.Cfg.CacheTTLSeconds) * time.Second
}

func (s *Server) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return s.Log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return s.Log.With(slog.String("request_id", id))
	}
	return s.Log
}

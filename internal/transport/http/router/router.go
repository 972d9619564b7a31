package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/culturalite/backend/internal/infrastructure/redis"
	"github.com/culturalite/backend/internal/transport/http/middleware"
)

type HealthHandler interface {
	Check(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type EventHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

// RateLimits holds the per-minute request budgets for the abuse-prone
// routes. Zero disables the limit for that route.
type RateLimits struct {
	Register int
	Login    int
	Refresh  int
	Logout   int
	Events   int
}

func DefaultRateLimits() RateLimits {
	return RateLimits{Register: 3, Login: 5, Refresh: 10, Logout: 10, Events: 60}
}

type Deps struct {
	Health HealthHandler
	Auth   AuthHandler
	Events EventHandler

	// Limiter may be nil; the auth routes then run unthrottled.
	Limiter *redis.FixedWindowLimiter
	Limits  RateLimits
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}
	if deps.Events == nil {
		return nil, fmt.Errorf("nil Events handler")
	}

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/health", deps.Health.Check)

	r.Route("/auth", func(r chi.Router) {
		limited := func(scope string, limit int) func(http.Handler) http.Handler {
			return middleware.RateLimit(deps.Limiter, scope, limit, time.Minute)
		}
		r.With(limited("register", deps.Limits.Register)).Post("/register", deps.Auth.Register)
		r.With(limited("login", deps.Limits.Login)).Post("/login", deps.Auth.Login)
		r.With(limited("refresh", deps.Limits.Refresh)).Post("/refresh", deps.Auth.Refresh)
		r.With(limited("logout", deps.Limits.Logout)).Post("/logout", deps.Auth.Logout)
	})

	r.Route("/events", func(r chi.Router) {
		if deps.Limits.Events > 0 {
			r.Use(httprate.LimitByIP(deps.Limits.Events, time.Minute))
		}
		r.Get("/", deps.Events.List)
	})

	return r, nil
}

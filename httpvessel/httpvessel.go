// Package httpvessel provides chi router integration for vessel: a
// middleware that creates a request-scoped child container per request,
// and a type-safe handler wrapper that resolves a controller from it.
//
// Example usage:
//
//	root := vessel.New()
//	root.Register("db", NewDB, vessel.WithLifecycle(vessel.Singleton))
//	root.Register("UserController", NewUserController, vessel.DependsOn("db"))
//
//	r := chi.NewRouter()
//	r.Use(httpvessel.ScopeMiddleware(root))
//	r.Get("/users/{id}", httpvessel.Handle[*UserController]("UserController",
//		func(c *UserController, w http.ResponseWriter, r *http.Request) { c.GetByID(w, r) }))
package httpvessel

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/oakmere/vessel"
)

type contextKey struct{}

var scopeKey contextKey

// Config configures ScopeMiddleware.
type Config struct {
	// ErrorHandler runs when Dispose fails on the request-scoped
	// container. If nil, the error is logged with slog.
	ErrorHandler func(error)
}

// Option configures ScopeMiddleware.
type Option func(*Config)

// WithErrorHandler sets the handler run when the request-scoped
// container fails to dispose.
func WithErrorHandler(h func(error)) Option {
	return func(c *Config) {
		c.ErrorHandler = h
	}
}

func defaultConfig() *Config {
	return &Config{
		ErrorHandler: func(err error) {
			slog.Error("failed to dispose request scope", "error", err)
		},
	}
}

// ScopeMiddleware creates a child container for each request with
// root.Create(), attaches it to the request context, and disposes it
// when the handler chain returns.
func ScopeMiddleware(root *vessel.Container, opts ...Option) func(http.Handler) http.Handler {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultConfig().ErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope := root.Create()
			defer func() {
				if err := scope.Dispose(r.Context()); err != nil {
					cfg.ErrorHandler(err)
				}
			}()

			ctx := context.WithValue(r.Context(), scopeKey, scope)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext retrieves the request-scoped container ScopeMiddleware
// attached to ctx. ok is false if no scope is present.
func FromContext(ctx context.Context) (scope *vessel.Container, ok bool) {
	scope, ok = ctx.Value(scopeKey).(*vessel.Container)
	return scope, ok
}

// HandlerConfig configures Handle.
type HandlerConfig struct {
	// ScopeErrorHandler runs when FromContext fails to find a scope.
	ScopeErrorHandler func(http.ResponseWriter, *http.Request)

	// ResolutionErrorHandler runs when resolving name from the scope
	// fails.
	ResolutionErrorHandler func(http.ResponseWriter, *http.Request, error)
}

// HandlerOption configures Handle.
type HandlerOption func(*HandlerConfig)

// WithScopeErrorHandler sets the handler run when no scope is attached
// to the request context.
func WithScopeErrorHandler(h func(http.ResponseWriter, *http.Request)) HandlerOption {
	return func(c *HandlerConfig) {
		c.ScopeErrorHandler = h
	}
}

// WithResolutionErrorHandler sets the handler run when resolving the
// controller fails.
func WithResolutionErrorHandler(h func(http.ResponseWriter, *http.Request, error)) HandlerOption {
	return func(c *HandlerConfig) {
		c.ResolutionErrorHandler = h
	}
}

func defaultHandlerConfig() *HandlerConfig {
	return &HandlerConfig{
		ScopeErrorHandler: func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		},
		ResolutionErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			slog.Error("failed to resolve controller", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		},
	}
}

// Handle resolves name from the request's scope and invokes method with
// it. T is the controller type registered under name.
//
//	r.Get("/users/{id}", httpvessel.Handle[*UserController]("UserController",
//		func(c *UserController, w http.ResponseWriter, r *http.Request) { c.GetByID(w, r) }))
func Handle[T any](name string, method func(T, http.ResponseWriter, *http.Request), opts ...HandlerOption) http.HandlerFunc {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		scope, ok := FromContext(r.Context())
		if !ok {
			cfg.ScopeErrorHandler(w, r)
			return
		}

		v, err := scope.Get(name)
		if err != nil {
			cfg.ResolutionErrorHandler(w, r, err)
			return
		}

		controller, ok := v.(T)
		if !ok {
			cfg.ResolutionErrorHandler(w, r, vessel.UnregisteredServiceError{Name: name})
			return
		}

		method(controller, w, r)
	}
}

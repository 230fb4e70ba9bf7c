package vessel

import (
	"github.com/oakmere/vessel/internal/registry"
)

// Lifecycle specifies when a registration's instance is created and how
// long it is cached for. It is an alias of registry.Lifecycle so the
// resolver's internal packages never need to import the root package.
type Lifecycle = registry.Lifecycle

const (
	// PerRequest creates at most one instance of a name within a single
	// top-level Get call. This is the default lifecycle.
	PerRequest = registry.PerRequest

	// Unique creates a fresh instance on every resolution; it is never
	// cached.
	Unique = registry.Unique

	// Singleton creates one instance per registering container and
	// caches it for the container's lifetime.
	Singleton = registry.Singleton
)

// ParseLifecycle converts a text token into a Lifecycle, returning
// BadLifecycleError for anything else. Register itself takes a Lifecycle
// value and validates it with IsValid, not through this function.
func ParseLifecycle(text string) (Lifecycle, error) {
	switch text {
	case "PerRequest", "perRequest", "per_request", "":
		return PerRequest, nil
	case "Unique", "unique":
		return Unique, nil
	case "Singleton", "singleton":
		return Singleton, nil
	default:
		return 0, BadLifecycleError{Value: text}
	}
}

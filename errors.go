package vessel

import (
	"errors"

	"github.com/oakmere/vessel/internal/errs"
)

// The canonical error values and typed error structs live in internal/errs
// so the registry, resolver and tracking packages can construct them
// without importing this package. These are aliases and copies of the same
// values, not redeclarations.

var (
	// ErrUnregisteredService is returned when a required dependency has no
	// registration and is not marked optional.
	ErrUnregisteredService = errs.ErrUnregisteredService

	// ErrCyclicDependency is returned when a name reappears on the
	// resolution stack.
	ErrCyclicDependency = errs.ErrCyclicDependency

	// ErrBadLifecycle is returned when Register is given an unknown
	// lifecycle token.
	ErrBadLifecycle = errs.ErrBadLifecycle

	// ErrDisposed is returned for any operation on a disposed container.
	ErrDisposed = errs.ErrDisposed

	// ErrNotTracked is returned by Factory.Dispose when the instance is
	// not in the factory owner's tracking subtree.
	ErrNotTracked = errs.ErrNotTracked
)

type (
	// BadLifecycleError indicates an invalid lifecycle token at Register.
	BadLifecycleError = errs.BadLifecycleError

	// UnregisteredServiceError reports the full resolution path leading to
	// the missing registration.
	UnregisteredServiceError = errs.UnregisteredServiceError

	// CyclicDependencyError reports the full cycle, e.g. "A -> B -> A".
	CyclicDependencyError = errs.CyclicDependencyError

	// DisposedError wraps ErrDisposed with the container/scope identifier
	// that rejected the call.
	DisposedError = errs.DisposedError

	// NotTrackedError names the instance's service name for diagnostics.
	NotTrackedError = errs.NotTrackedError

	// ConstructionError wraps a panic or error raised by a constructor-like
	// while building the named service.
	ConstructionError = errs.ConstructionError
)

// IsUnregistered reports whether err ultimately indicates a missing
// registration.
func IsUnregistered(err error) bool {
	return errors.Is(err, ErrUnregisteredService)
}

// IsCyclicDependency reports whether err indicates a resolution cycle.
func IsCyclicDependency(err error) bool {
	return errors.Is(err, ErrCyclicDependency)
}

// IsDisposed reports whether err indicates the container was disposed.
func IsDisposed(err error) bool {
	return errors.Is(err, ErrDisposed)
}

// IsNotTracked reports whether err came from Factory.Dispose being given an
// instance outside its tracking subtree.
func IsNotTracked(err error) bool {
	return errors.Is(err, ErrNotTracked)
}

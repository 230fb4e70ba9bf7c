// Package errs holds the sentinel and typed errors shared by the registry,
// resolver and tracking packages. The root package re-exports every name
// here with a type alias or a copied var so internal packages never import
// the root package back.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnregisteredService is returned when a required dependency has no
	// registration and is not marked optional.
	ErrUnregisteredService = errors.New("unregistered service")

	// ErrCyclicDependency is returned when a name reappears on the
	// resolution stack.
	ErrCyclicDependency = errors.New("cyclic dependency")

	// ErrBadLifecycle is returned when Register is given an unknown
	// lifecycle token.
	ErrBadLifecycle = errors.New("bad lifecycle")

	// ErrDisposed is returned for any operation on a disposed container.
	ErrDisposed = errors.New("container is disposed")

	// ErrNotTracked is returned by Factory.Dispose when the instance is
	// not in the factory owner's tracking subtree.
	ErrNotTracked = errors.New("instance is not tracked by this owner")
)

// BadLifecycleError indicates an invalid lifecycle token at Register.
type BadLifecycleError struct {
	Value string
}

func (e BadLifecycleError) Error() string {
	return fmt.Sprintf("bad lifecycle %q: %v", e.Value, ErrBadLifecycle)
}

func (e BadLifecycleError) Unwrap() error {
	return ErrBadLifecycle
}

// UnregisteredServiceError reports the full resolution path leading to the
// missing registration.
type UnregisteredServiceError struct {
	Name string
	Path []string
}

func (e UnregisteredServiceError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("unregistered service %q: %v", e.Name, ErrUnregisteredService)
	}
	return fmt.Sprintf("unregistered service %q: %v (path: %s)", e.Name, ErrUnregisteredService, strings.Join(e.Path, " -> "))
}

func (e UnregisteredServiceError) Unwrap() error {
	return ErrUnregisteredService
}

// CyclicDependencyError reports the full cycle, e.g. "A -> B -> A".
type CyclicDependencyError struct {
	Path []string
}

func (e CyclicDependencyError) Error() string {
	return fmt.Sprintf("cyclic dependency detected: %s", strings.Join(e.Path, " -> "))
}

func (e CyclicDependencyError) Unwrap() error {
	return ErrCyclicDependency
}

// DisposedError wraps ErrDisposed with the container/scope identifier that
// rejected the call.
type DisposedError struct {
	ContainerID string
}

func (e DisposedError) Error() string {
	return fmt.Sprintf("container %s: %v", e.ContainerID, ErrDisposed)
}

func (e DisposedError) Unwrap() error {
	return ErrDisposed
}

// NotTrackedError names the instance's service name for diagnostics.
type NotTrackedError struct {
	ServiceName string
}

func (e NotTrackedError) Error() string {
	return fmt.Sprintf("instance of %q is not tracked by this owner: %v", e.ServiceName, ErrNotTracked)
}

func (e NotTrackedError) Unwrap() error {
	return ErrNotTracked
}

// ConstructionError wraps a panic or error raised by a constructor-like
// while building the named service.
type ConstructionError struct {
	Name  string
	Cause error
}

func (e ConstructionError) Error() string {
	return fmt.Sprintf("failed to construct %q: %v", e.Name, e.Cause)
}

func (e ConstructionError) Unwrap() error {
	return e.Cause
}

package vessel

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/oakmere/vessel/internal/registry"
	"github.com/oakmere/vessel/internal/resolver"
	"github.com/oakmere/vessel/internal/tracking"
)

// Factory is the proxy handed to a dependency declared with the "!" or
// trailing "Factory" suffix: a fresh Get call per resolution, chainable
// per-call overrides, and early disposal of one produced instance ahead
// of its natural cascade. Its canonical definition lives in
// internal/resolver so the resolver package can construct proxies without
// importing this package.
type Factory = resolver.Factory

// Container is a named service registry with child containers, three
// lifecycles (PerRequest, Unique, Singleton) and cascading disposal.
// A zero Container is not usable; build one with New or Create.
type Container struct {
	id       string
	parent   *Container
	children []*Container

	registry *registry.Registry
	resolve  *resolver.Resolver
	opts     Options

	singletons     map[string]any
	singletonNodes map[string]*tracking.Node
	singletonOrder []string

	trackingRoots []*tracking.Node
	disposed      bool
}

// New creates a root container with no parent.
func New(opts ...Option) *Container {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return newContainer(nil, o)
}

// Create returns a new child container: an empty registry, a parent link,
// its own tracking roots and singleton cache, and the same disposal
// options as the parent. Registrations in the child shadow the parent's;
// a name the child never registers resolves (and, for singletons, caches)
// through the parent.
func (c *Container) Create() *Container {
	child := newContainer(c, c.opts)
	c.children = append(c.children, child)
	return child
}

func newContainer(parent *Container, opts Options) *Container {
	c := &Container{
		id:             uuid.NewString(),
		parent:         parent,
		registry:       registry.New(),
		opts:           opts,
		singletons:     make(map[string]any),
		singletonNodes: make(map[string]*tracking.Node),
	}
	c.resolve = resolver.New(c.dispatchDispose)
	return c
}

// ID returns the container's unique identifier.
func (c *Container) ID() string {
	return c.id
}

// Register binds name to value, an eager instance or a constructor-like
// (anything whose reflect.Kind is Func), under the options given.
// Re-registering a name overwrites the previous record.
func (c *Container) Register(name string, value any, opts ...RegisterOption) error {
	if c.disposed {
		return DisposedError{ContainerID: c.id}
	}

	ro := registerOptions{lifecycle: PerRequest}
	for _, opt := range opts {
		opt(&ro)
	}
	if !ro.lifecycle.IsValid() {
		return BadLifecycleError{Value: ro.lifecycle.String()}
	}

	c.registry.Set(registry.NewDescriptor(name, value, ro.lifecycle, ro.dependsOn))
	return nil
}

// Get resolves name in a fresh Resolution Context rooted at c. extras are
// appended to the constructor's argument list for the top-level instance
// only, not for any of its dependencies.
func (c *Container) Get(name string, extras ...any) (any, error) {
	return c.resolve.Get(c, name, extras)
}

// Dispose disposes every tracking root this container has accumulated, in
// reverse insertion order, then the container's own singletons in reverse
// insertion order, then recursively disposes any not-yet-disposed child
// containers. Disposing a child never disposes its parent. Safe to call
// more than once; every further Register/Get fails with ErrDisposed.
func (c *Container) Dispose(ctx context.Context) error {
	if c.disposed {
		return nil
	}
	c.disposed = true

	var all []error

	for i := len(c.trackingRoots) - 1; i >= 0; i-- {
		if err := c.trackingRoots[i].Dispose(c.dispatchDispose); err != nil {
			all = append(all, err)
		}
	}
	c.trackingRoots = nil

	for i := len(c.singletonOrder) - 1; i >= 0; i-- {
		node := c.singletonNodes[c.singletonOrder[i]]
		if node == nil {
			continue
		}
		if err := node.Dispose(c.dispatchDispose); err != nil {
			all = append(all, err)
		}
	}

	for _, child := range c.children {
		if err := child.Dispose(ctx); err != nil {
			all = append(all, err)
		}
	}

	return errors.Join(all...)
}

func (c *Container) dispatchDispose(instance any, serviceName string) error {
	if c.opts.OnDispose == nil {
		return nil
	}
	return c.opts.OnDispose(instance, serviceName)
}

// FindDescriptor implements resolver.ContainerView: it searches this
// container's own registry, then walks up to parents, returning the
// container that owns the match.
func (c *Container) FindDescriptor(name string) (*registry.Descriptor, resolver.ContainerView, bool) {
	if d, ok := c.registry.Lookup(name); ok {
		return d, c, true
	}
	if c.parent != nil {
		return c.parent.FindDescriptor(name)
	}
	return nil, nil, false
}

// SingletonGet implements resolver.ContainerView.
func (c *Container) SingletonGet(name string) (any, bool) {
	v, ok := c.singletons[name]
	return v, ok
}

// SingletonSet implements resolver.ContainerView.
func (c *Container) SingletonSet(name string, instance any, node *tracking.Node) {
	if _, exists := c.singletons[name]; !exists {
		c.singletonOrder = append(c.singletonOrder, name)
	}
	c.singletons[name] = instance
	c.singletonNodes[name] = node
}

// AppendTrackingRoot implements resolver.ContainerView.
func (c *Container) AppendTrackingRoot(node *tracking.Node) {
	c.trackingRoots = append(c.trackingRoots, node)
}

// IsDisposed implements resolver.ContainerView.
func (c *Container) IsDisposed() bool {
	return c.disposed
}

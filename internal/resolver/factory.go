package resolver

import (
	"github.com/oakmere/vessel/internal/errs"
	"github.com/oakmere/vessel/internal/registry"
	"github.com/oakmere/vessel/internal/tracking"
)

// Factory is the proxy handed to a dependency declared with the "!" or
// trailing "Factory" suffix (spec.md §4.4). Each Get call runs a fresh
// resolution of the bound name; Use pre-seeds an override consumed by the
// next Get only; Dispose tears down one instance ahead of its natural
// cascade.
type Factory interface {
	Get(extras ...any) (any, error)
	Use(name string, value any) Factory
	Dispose(instance any) error
}

// factoryProxy implements Factory. parentTracked is the tracking node
// every instance it produces is parented under, fixed at the moment the
// proxy itself was resolved.
type factoryProxy struct {
	resolver      *Resolver
	owner         ContainerView
	baseName      string
	parentTracked *tracking.Node
	overrides     map[string]any
}

func newFactoryProxy(r *Resolver, owner ContainerView, baseName string, parentTracked *tracking.Node) *factoryProxy {
	return &factoryProxy{resolver: r, owner: owner, baseName: baseName, parentTracked: parentTracked}
}

// Use records an override consumed by the very next Get call, then
// discarded. It returns the same proxy so calls chain: f.Use(...).Get().
func (f *factoryProxy) Use(name string, value any) Factory {
	if f.overrides == nil {
		f.overrides = make(map[string]any)
	}
	f.overrides[name] = value
	return f
}

// Get resolves f.baseName in a fresh resolution context anchored at
// f.parentTracked, so every instance it produces - including nested
// non-singleton dependencies - is tracked under the consumer that
// declared this factory dependency rather than under the container.
func (f *factoryProxy) Get(extras ...any) (any, error) {
	if f.owner.IsDisposed() {
		return nil, errs.DisposedError{ContainerID: f.owner.ID()}
	}

	ctx := NewContext(f.owner)
	ctx.FallbackParent = f.parentTracked
	ctx.Overrides = f.overrides
	f.overrides = nil

	return f.resolver.resolve(registry.DepSpec{Raw: f.baseName, BaseName: f.baseName}, ctx, extras)
}

// Dispose tears down instance immediately, ahead of its natural cascade,
// if it is anywhere in this factory's tracked subtree. It is idempotent
// with the subtree's own later disposal: Node.Dispose guards against
// double-disposing.
func (f *factoryProxy) Dispose(instance any) error {
	if f.parentTracked == nil {
		return errs.NotTrackedError{ServiceName: f.baseName}
	}
	node := f.parentTracked.Find(instance)
	if node == nil {
		return errs.NotTrackedError{ServiceName: f.baseName}
	}
	f.parentTracked.Detach(node)
	return node.Dispose(tracking.Hook(f.resolver.onDispose))
}

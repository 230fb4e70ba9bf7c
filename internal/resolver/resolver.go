// Package resolver implements the name resolution algorithm described in
// spec.md §4.3: override checks, registry lookups across parent
// containers, the reserved "container" name, factory proxies, cycle
// detection, per-lifecycle caching and tracking-graph attachment.
//
// Resolver never imports the root package. It talks to a container
// through the ContainerView interface, which the root package's Container
// type implements, so the root package can still re-export Resolver's
// exported types (Factory, ResolutionContext) as aliases without an
// import cycle.
package resolver

import (
	"github.com/oakmere/vessel/internal/errs"
	"github.com/oakmere/vessel/internal/invoke"
	"github.com/oakmere/vessel/internal/registry"
	"github.com/oakmere/vessel/internal/tracking"
)

// ContainerView is the slice of Container behavior the resolver needs.
type ContainerView interface {
	ID() string

	// FindDescriptor searches this container, then its ancestors, for
	// name. It returns the descriptor and the container that owns the
	// registration (which may be an ancestor).
	FindDescriptor(name string) (*registry.Descriptor, ContainerView, bool)

	// SingletonGet/SingletonSet operate on this container's own
	// singleton cache. Call them only on the container FindDescriptor
	// said owns the name.
	SingletonGet(name string) (any, bool)
	SingletonSet(name string, instance any, node *tracking.Node)

	// AppendTrackingRoot records node as one of this container's
	// top-level tracking roots, disposed when the container is.
	AppendTrackingRoot(node *tracking.Node)

	IsDisposed() bool
}

// DisposeHook is called once per tracked instance during disposal.
type DisposeHook func(instance any, serviceName string) error

// Resolver runs the resolution algorithm against whatever ContainerView it
// is given. Each container builds its own Resolver around its own
// disposal hook.
type Resolver struct {
	onDispose DisposeHook
}

// New creates a Resolver that calls onDispose (which may be nil) once per
// tracked instance during disposal.
func New(onDispose DisposeHook) *Resolver {
	return &Resolver{onDispose: onDispose}
}

// stackFrame is one in-flight construction on the resolution stack. Node
// is the frame's tracking node; for Singleton frames it is never adopted
// into the tracking tree, and attach skips those frames by Lifecycle.
type stackFrame struct {
	Name      string
	Lifecycle registry.Lifecycle
	Node      *tracking.Node
}

// ResolutionContext is the per top-level Get call bookkeeping described in
// spec.md §4.2: the perRequest cache, the cycle-detection stack and the
// override map. A Factory Proxy's Get call runs in its own fresh context,
// anchored to the consumer's tracked node via FallbackParent instead of a
// container's tracking roots.
type ResolutionContext struct {
	Owner          ContainerView
	PerRequest     map[string]any
	Stack          []stackFrame
	Overrides      map[string]any
	FallbackParent *tracking.Node
}

// NewContext creates a fresh, empty resolution context rooted at owner.
func NewContext(owner ContainerView) *ResolutionContext {
	return &ResolutionContext{Owner: owner, PerRequest: make(map[string]any)}
}

func (ctx *ResolutionContext) path(next string) []string {
	path := make([]string, 0, len(ctx.Stack)+1)
	for _, f := range ctx.Stack {
		path = append(path, f.Name)
	}
	return append(path, next)
}

// attach adds node under the nearest non-singleton frame still on the
// stack. If every frame on the stack is a singleton (or the stack is
// empty), node falls back to FallbackParent, and if that is also nil, to
// the owning container's own tracking roots.
func (ctx *ResolutionContext) attach(node *tracking.Node) {
	for i := len(ctx.Stack) - 1; i >= 0; i-- {
		if ctx.Stack[i].Lifecycle != registry.Singleton {
			ctx.Stack[i].Node.Adopt(node)
			return
		}
	}
	if ctx.FallbackParent != nil {
		ctx.FallbackParent.Adopt(node)
		return
	}
	ctx.Owner.AppendTrackingRoot(node)
}

// Get runs a fresh top-level resolution of name against owner, the
// container whose Get was called. name is used as-is: dependency suffixes
// are not parsed here.
func (r *Resolver) Get(owner ContainerView, name string, extras []any) (any, error) {
	if owner.IsDisposed() {
		return nil, errs.DisposedError{ContainerID: owner.ID()}
	}
	ctx := NewContext(owner)
	return r.resolve(registry.DepSpec{Raw: name, BaseName: name}, ctx, extras)
}

// resolve implements spec.md §4.3 steps 1-9 for one dependency spec
// within ctx.
func (r *Resolver) resolve(spec registry.DepSpec, ctx *ResolutionContext, extras []any) (any, error) {
	baseName := spec.BaseName

	// 1. Per-call overrides win over everything, including "container".
	// An override value is applied the same way a registration's own
	// value would be: used as-is if it is an eager value, invoked with
	// no arguments if it is constructor-like (invariant 8).
	if v, ok := ctx.Overrides[baseName]; ok {
		instance, err := applyOverride(v)
		if err != nil {
			return nil, errs.ConstructionError{Name: baseName, Cause: err}
		}
		node := tracking.NewNode(instance, baseName, registry.Unique)
		ctx.attach(node)
		return instance, nil
	}

	// 2/3. The reserved "container" name resolves to the owning
	// container without ever touching the registry.
	if baseName == "container" {
		return ctx.Owner, nil
	}

	desc, owner, found := ctx.Owner.FindDescriptor(baseName)
	if !found {
		if spec.Optional {
			return nil, nil
		}
		return nil, errs.UnregisteredServiceError{Name: baseName, Path: ctx.path(baseName)}
	}

	// 4. Factory flag short-circuits before cycle and cache handling:
	// the dependency is a proxy, not the service itself.
	if spec.Factory {
		return newFactoryProxy(r, ctx.Owner, baseName, ctx.trackingAnchor()), nil
	}

	// 5. Cycle check against every frame still on the stack.
	for _, frame := range ctx.Stack {
		if frame.Name == baseName {
			return nil, errs.CyclicDependencyError{Path: ctx.path(baseName)}
		}
	}

	// 6. Cache probe.
	switch desc.Lifecycle {
	case registry.Singleton:
		if v, ok := owner.SingletonGet(baseName); ok {
			return v, nil
		}
	case registry.PerRequest:
		if v, ok := ctx.PerRequest[baseName]; ok {
			return v, nil
		}
	}

	// Every non-singleton instance the resolver produces gets exactly one
	// tracking parent, eager or constructed alike (invariant 4); eager
	// values simply never push a stack frame or resolve arguments.
	node := tracking.NewNode(nil, baseName, desc.Lifecycle)
	if desc.Lifecycle != registry.Singleton {
		ctx.attach(node)
	}

	var instance any
	var err error

	if !desc.IsCallable {
		// 7. A non-callable record's value is the instance: no
		// construction, no sub-resolution, no stack push.
		instance = desc.Value
	} else {
		// 8. Push the stack, resolve arguments in declared order,
		// append caller-supplied extras only for the top-level call,
		// construct, then pop the stack.
		ctx.Stack = append(ctx.Stack, stackFrame{Name: baseName, Lifecycle: desc.Lifecycle, Node: node})

		ctorValue, ctorType := desc.Constructor()
		args := make([]any, 0, len(desc.Dependencies)+len(extras))
		for _, dep := range desc.Dependencies {
			argVal, argErr := r.resolve(dep, ctx, nil)
			if argErr != nil {
				ctx.Stack = ctx.Stack[:len(ctx.Stack)-1]
				return nil, argErr
			}
			args = append(args, argVal)
		}
		if len(ctx.Stack) == 1 {
			args = append(args, extras...)
		}

		instance, err = invoke.Call(ctorValue, ctorType, args)
		ctx.Stack = ctx.Stack[:len(ctx.Stack)-1]
		if err != nil {
			return nil, errs.ConstructionError{Name: baseName, Cause: err}
		}
	}

	// 9. Record caching per lifecycle and finish tracking.
	if node != nil {
		node.Instance = instance
	}
	switch desc.Lifecycle {
	case registry.Singleton:
		owner.SingletonSet(baseName, instance, node)
	case registry.PerRequest:
		ctx.PerRequest[baseName] = instance
	}

	return instance, nil
}

// applyOverride turns an override value into an instance: called with no
// arguments if it is constructor-like, used as-is otherwise.
func applyOverride(v any) (any, error) {
	desc := registry.NewDescriptor("", v, registry.Unique, nil)
	if !desc.IsCallable {
		return v, nil
	}
	ctorValue, ctorType := desc.Constructor()
	return invoke.Call(ctorValue, ctorType, nil)
}

// trackingAnchor returns the node a Factory Proxy created right now
// should parent its future instances under: the nearest non-singleton
// frame's node, or this context's own fallback.
func (ctx *ResolutionContext) trackingAnchor() *tracking.Node {
	for i := len(ctx.Stack) - 1; i >= 0; i-- {
		if ctx.Stack[i].Lifecycle != registry.Singleton {
			return ctx.Stack[i].Node
		}
	}
	return ctx.FallbackParent
}

// OnDispose exposes the resolver's disposal hook so callers building their
// own tracking.Node trees can reuse the same callback.
func (r *Resolver) OnDispose() DisposeHook {
	return r.onDispose
}

// Package vessel is a name-based dependency injection container.
//
// Unlike type-keyed containers, vessel resolves services by string name,
// the way a dynamic-language IoC container would. A service is either an
// eager value or a constructor-like (any value whose reflect.Kind is
// Func); the container builds the constructor's arguments by resolving
// its declared dependencies first.
//
// # Basic usage
//
//	c := vessel.New()
//	c.Register("config", Config{Addr: ":8080"})
//	c.Register("logger", NewLogger, vessel.WithLifecycle(vessel.Singleton))
//	c.Register("server", NewServer,
//		vessel.DependsOn("config", "logger"),
//		vessel.WithLifecycle(vessel.Singleton))
//
//	server, err := c.Get("server")
//
// # Lifecycles
//
// Every registration has one of three lifecycles:
//
//   - PerRequest (default): at most one instance per top-level Get call.
//   - Unique: a fresh instance every time it is resolved, never cached.
//   - Singleton: one instance per registering container, cached for the
//     container's lifetime.
//
// # Dependency suffixes
//
// DependsOn names may carry suffixes, parsed only from the dependency
// list, never from Register or Get arguments directly:
//
//	vessel.DependsOn("cache?")  // optional: resolves to nil if unregistered
//	vessel.DependsOn("conn!")   // factory: resolves to a Factory proxy
//	vessel.DependsOn("conn!?")  // both, in any combination
//
// # Child containers
//
// Create returns a child container whose registrations shadow the
// parent's. A name not registered in the child resolves through the
// parent, and for singletons is cached in the parent, not the child:
//
//	request := c.Create()
//	defer request.Dispose(ctx)
//
// # Disposal
//
// Every non-singleton instance the resolver produces is tracked in a
// tree parallel to the dependency graph. Dispose walks that tree in
// reverse construction order, then the container's own singletons, and
// calls the container's OnDispose hook (set with WithOnDispose) for each.
package vessel

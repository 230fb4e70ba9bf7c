package vessel_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakmere/vessel"
)

type taggedLogger struct{ Tag string }

type app struct{ Logger *taggedLogger }

func newApp(logger *taggedLogger) *app {
	return &app{Logger: logger}
}

// S1 — basic resolve.
func TestGet_BasicResolve(t *testing.T) {
	c := vessel.New()
	require.NoError(t, c.Register("logger", &taggedLogger{Tag: "L"}))
	require.NoError(t, c.Register("App", newApp, vessel.DependsOn("logger")))

	v, err := c.Get("App")
	require.NoError(t, err)

	got := v.(*app)
	assert.Equal(t, "L", got.Logger.Tag)
}

type a struct{ id int }

type b struct{ A *a }
type cc struct{ A *a }
type root struct {
	B *b
	C *cc
}

// S2 — perRequest sharing within one call, distinct across calls.
func TestGet_PerRequestSharedWithinOneCallOnly(t *testing.T) {
	c := vessel.New()
	nextID := 0
	require.NoError(t, c.Register("A", func() *a {
		nextID++
		return &a{id: nextID}
	}))
	require.NoError(t, c.Register("B", func(x *a) *b { return &b{A: x} }, vessel.DependsOn("A")))
	require.NoError(t, c.Register("C", func(x *a) *cc { return &cc{A: x} }, vessel.DependsOn("A")))
	require.NoError(t, c.Register("Root", func(b *b, c *cc) *root { return &root{B: b, C: c} }, vessel.DependsOn("B", "C")))

	v1, err := c.Get("Root")
	require.NoError(t, err)
	r1 := v1.(*root)
	assert.Same(t, r1.B.A, r1.C.A)

	v2, err := c.Get("Root")
	require.NoError(t, err)
	r2 := v2.(*root)
	assert.NotSame(t, r1.B.A, r2.B.A)
}

// S3 — singleton across calls.
func TestGet_SingletonSharedAcrossCalls(t *testing.T) {
	c := vessel.New()
	count := 0
	require.NoError(t, c.Register("Counter", func() *int {
		count++
		return &count
	}, vessel.WithLifecycle(vessel.Singleton)))

	v1, err := c.Get("Counter")
	require.NoError(t, err)
	v2, err := c.Get("Counter")
	require.NoError(t, err)

	assert.Same(t, v1, v2)
	assert.Equal(t, 1, count)
}

type widget struct{ Foo string }
type host struct{ WidgetFactory vessel.Factory }

func newWidget(foo string) *widget    { return &widget{Foo: foo} }
func newHost(wf vessel.Factory) *host { return &host{WidgetFactory: wf} }

// S4 — factory scoping and cascading disposal.
func TestFactory_ScopesAndCascadesDisposal(t *testing.T) {
	var disposedOrder []string
	c := vessel.New(vessel.WithOnDispose(func(instance any, name string) error {
		disposedOrder = append(disposedOrder, name)
		return nil
	}))

	fooCalls := 0
	require.NoError(t, c.Register("foo", func() string {
		fooCalls++
		return "foo-value"
	}))
	require.NoError(t, c.Register("widget", newWidget, vessel.DependsOn("foo"), vessel.WithLifecycle(vessel.Unique)))
	require.NoError(t, c.Register("Host", newHost, vessel.DependsOn("widget!")))

	v, err := c.Get("Host")
	require.NoError(t, err)
	h := v.(*host)

	w1, err := h.WidgetFactory.Get()
	require.NoError(t, err)
	w2, err := h.WidgetFactory.Get()
	require.NoError(t, err)

	assert.NotSame(t, w1, w2)
	assert.NotSame(t, w1.(*widget), w2.(*widget))

	require.NoError(t, c.Dispose(context.Background()))
	assert.Equal(t, 5, len(disposedOrder))
	assert.Equal(t, "Host", disposedOrder[len(disposedOrder)-1])
}

// S5 — override via Factory.Use.
func TestFactory_UseOverridesNextGetOnly(t *testing.T) {
	c := vessel.New()
	require.NoError(t, c.Register("foo", func() string { return "real-foo" }))
	require.NoError(t, c.Register("widget", newWidget, vessel.DependsOn("foo"), vessel.WithLifecycle(vessel.Unique)))
	require.NoError(t, c.Register("Host", newHost, vessel.DependsOn("widget!")))

	v, err := c.Get("Host")
	require.NoError(t, err)
	h := v.(*host)

	overridden, err := h.WidgetFactory.Use("foo", "X").Get()
	require.NoError(t, err)
	assert.Equal(t, "X", overridden.(*widget).Foo)

	plain, err := h.WidgetFactory.Get()
	require.NoError(t, err)
	assert.Equal(t, "real-foo", plain.(*widget).Foo)
}

type cycleA struct{ B *cycleB }
type cycleB struct{ A *cycleA }

// S6 — cycle detected before optional fallback applies.
func TestGet_CyclicDependencyDetectedEvenWhenOptional(t *testing.T) {
	c := vessel.New()
	require.NoError(t, c.Register("A", func(b *cycleB) *cycleA { return &cycleA{B: b} }, vessel.DependsOn("B")))
	require.NoError(t, c.Register("B", func(a *cycleA) *cycleB { return &cycleB{A: a} }, vessel.DependsOn("A?")))

	_, err := c.Get("A")
	require.Error(t, err)
	assert.True(t, vessel.IsCyclicDependency(err))
}

// S7 — nested container shadowing.
func TestContainer_ChildShadowsParent(t *testing.T) {
	parent := vessel.New()
	require.NoError(t, parent.Register("svc", "P"))

	child := parent.Create()
	require.NoError(t, child.Register("svc", "Q"))

	got, err := child.Get("svc")
	require.NoError(t, err)
	assert.Equal(t, "Q", got)

	got, err = parent.Get("svc")
	require.NoError(t, err)
	assert.Equal(t, "P", got)

	require.NoError(t, child.Dispose(context.Background()))
	got, err = parent.Get("svc")
	require.NoError(t, err)
	assert.Equal(t, "P", got)
}

// Invariant 7 — optional dependency absent yields nil, no error.
func TestGet_OptionalMissingDependencyIsNil(t *testing.T) {
	c := vessel.New()
	var captured any
	captured = "unset"
	require.NoError(t, c.Register("needsOptional", func(v any) string {
		captured = v
		return "ok"
	}, vessel.DependsOn("missing?")))

	_, err := c.Get("needsOptional")
	require.NoError(t, err)
	assert.Nil(t, captured)
}

// Unregistered, non-optional dependency fails.
func TestGet_UnregisteredRequiredDependencyFails(t *testing.T) {
	c := vessel.New()
	require.NoError(t, c.Register("needsMissing", func(v string) string { return v }, vessel.DependsOn("missing")))

	_, err := c.Get("needsMissing")
	require.Error(t, err)
	assert.True(t, vessel.IsUnregistered(err))
}

// Reserved "container" name always resolves to the owning container.
func TestGet_ReservedContainerName(t *testing.T) {
	c := vessel.New()
	require.NoError(t, c.Register("self", func(self *vessel.Container) string {
		return self.ID()
	}, vessel.DependsOn("container")))

	v, err := c.Get("self")
	require.NoError(t, err)
	assert.Equal(t, c.ID(), v)
}

// Disposed containers refuse further Get/Register.
func TestContainer_DisposedRejectsFurtherOperations(t *testing.T) {
	c := vessel.New()
	require.NoError(t, c.Dispose(context.Background()))
	require.NoError(t, c.Dispose(context.Background())) // idempotent

	_, err := c.Get("anything")
	assert.True(t, vessel.IsDisposed(err))

	err = c.Register("anything", 1)
	assert.True(t, vessel.IsDisposed(err))
}

// Bad lifecycle token is rejected.
func TestRegister_BadLifecycleRejected(t *testing.T) {
	c := vessel.New()
	err := c.Register("x", 1, vessel.WithLifecycle(vessel.Lifecycle(99)))
	require.Error(t, err)
	var badErr vessel.BadLifecycleError
	assert.ErrorAs(t, err, &badErr)
}

// Unique instances are never cached, even within one call.
func TestGet_UniqueNeverCached(t *testing.T) {
	c := vessel.New()
	calls := 0
	require.NoError(t, c.Register("fresh", func() int {
		calls++
		return calls
	}, vessel.WithLifecycle(vessel.Unique)))
	require.NoError(t, c.Register("pair", func(x, y int) [2]int { return [2]int{x, y} },
		vessel.DependsOn("fresh", "fresh")))

	v, err := c.Get("pair")
	require.NoError(t, err)
	pair := v.([2]int)
	assert.NotEqual(t, pair[0], pair[1])
}

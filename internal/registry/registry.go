// Package registry holds the name -> Descriptor mapping owned by a
// container, along with the dependency-list parsing rules shared by the
// resolver.
package registry

import (
	"fmt"
	"reflect"
	"strings"
)

// Lifecycle specifies when a registration's instance is created and how
// long it is cached for. Mirrors vessel.Lifecycle; defined here so the
// registry and resolver packages do not import the root package.
type Lifecycle int

const (
	PerRequest Lifecycle = iota
	Unique
	Singleton
)

func (l Lifecycle) String() string {
	switch l {
	case PerRequest:
		return "PerRequest"
	case Unique:
		return "Unique"
	case Singleton:
		return "Singleton"
	default:
		return fmt.Sprintf("Unknown(%d)", int(l))
	}
}

// IsValid reports whether l is one of the three known lifecycle tags.
func (l Lifecycle) IsValid() bool {
	return l >= PerRequest && l <= Singleton
}

// DepSpec is a single parsed entry from a dependency list: a base service
// name plus the optional/factory suffix flags.
type DepSpec struct {
	// Raw is the original string as passed to DependsOn, e.g. "widget!?".
	Raw string
	// BaseName is Raw with every recognized suffix stripped.
	BaseName string
	// Optional marks the dependency as resolving to nil instead of
	// failing when BaseName is unregistered.
	Optional bool
	// Factory marks the dependency as a Factory Proxy bound to BaseName
	// rather than the resolved service itself.
	Factory bool
}

// ParseDepSpec strips the "?", "!" and trailing "Factory" suffixes from
// raw in any order and combination, producing the dependency's semantics.
func ParseDepSpec(raw string) DepSpec {
	spec := DepSpec{Raw: raw}
	name := raw

	for {
		switch {
		case strings.HasSuffix(name, "?"):
			spec.Optional = true
			name = strings.TrimSuffix(name, "?")
		case strings.HasSuffix(name, "!"):
			spec.Factory = true
			name = strings.TrimSuffix(name, "!")
		case strings.HasSuffix(name, "Factory") && len(name) > len("Factory"):
			spec.Factory = true
			name = strings.TrimSuffix(name, "Factory")
		default:
			spec.BaseName = name
			return spec
		}
	}
}

// Descriptor is a registration record: a name bound to either an eager
// value or a constructor-like, with a lifecycle and an ordered dependency
// list.
type Descriptor struct {
	Name         string
	Value        any
	Lifecycle    Lifecycle
	Dependencies []DepSpec

	// IsCallable is decided once, at registration time (Design Notes:
	// "disambiguate at registration time ... store the decision on the
	// record").
	IsCallable bool

	ctorValue reflect.Value
	ctorType  reflect.Type
}

// NewDescriptor builds a Descriptor, resolving whether value is callable
// and, if so, caching its reflect.Value/Type for the invoker.
func NewDescriptor(name string, value any, lifecycle Lifecycle, deps []string) *Descriptor {
	d := &Descriptor{
		Name:      name,
		Value:     value,
		Lifecycle: lifecycle,
	}

	for _, raw := range deps {
		d.Dependencies = append(d.Dependencies, ParseDepSpec(raw))
	}

	if value != nil {
		rv := reflect.ValueOf(value)
		if rv.IsValid() && rv.Kind() == reflect.Func {
			d.IsCallable = true
			d.ctorValue = rv
			d.ctorType = rv.Type()
		}
	}

	return d
}

// Constructor returns the reflected constructor value and type. Only
// valid when d.IsCallable is true.
func (d *Descriptor) Constructor() (reflect.Value, reflect.Type) {
	return d.ctorValue, d.ctorType
}

// Registry is the name -> Descriptor map owned by one container. It
// tracks insertion order so Names is deterministic.
type Registry struct {
	entries map[string]*Descriptor
	order   []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]*Descriptor)}
}

// Set stores d, overwriting any prior registration under the same name
// ("last registration wins").
func (r *Registry) Set(d *Descriptor) {
	if _, exists := r.entries[d.Name]; !exists {
		r.order = append(r.order, d.Name)
	}
	r.entries[d.Name] = d
}

// Lookup returns the descriptor registered under name in this registry
// only (no parent walk - that is the container's job).
func (r *Registry) Lookup(name string) (*Descriptor, bool) {
	d, ok := r.entries[name]
	return d, ok
}

// Names returns registered names in insertion order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

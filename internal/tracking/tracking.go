// Package tracking implements the tracking graph described in spec.md
// §4.5: a tree of non-singleton instances, rooted at a call or a
// container, that drives deterministic post-order disposal.
package tracking

import (
	"errors"

	"github.com/oakmere/vessel/internal/registry"
)

// Hook disposes one instance. It is the capability reduction of the
// caller-supplied disposal callback described in spec.md §1: "given an
// instance and its registered name, release it".
type Hook func(instance any, serviceName string) error

// Node is one entry in the tracking graph: an instance plus the children
// that were created while constructing it.
type Node struct {
	Instance    any
	ServiceName string
	Lifecycle   registry.Lifecycle

	children []*Node
	disposed bool
}

// NewNode creates an untracked node. Call Adopt on a parent node to
// attach it.
func NewNode(instance any, serviceName string, lifecycle registry.Lifecycle) *Node {
	return &Node{Instance: instance, ServiceName: serviceName, Lifecycle: lifecycle}
}

// Adopt appends child as the node's newest child (append-only during
// construction, per spec.md §4.5).
func (n *Node) Adopt(child *Node) {
	n.children = append(n.children, child)
}

// Detach removes child from the node's children, returning whether it was
// found. Used by Factory.Dispose to pull one instance out of its owner's
// subtree ahead of time.
func (n *Node) Detach(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return true
		}
	}
	return false
}

// Find locates the node tracking instance anywhere in n's subtree
// (n included), returning nil if absent.
func (n *Node) Find(instance any) *Node {
	if sameInstance(n.Instance, instance) {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(instance); found != nil {
			return found
		}
	}
	return nil
}

// Dispose disposes the node post-order: children in reverse insertion
// order, then the node itself. Idempotent. Every Hook error across the
// whole subtree is accumulated and returned as one joined error once the
// traversal completes (spec.md §9, "OnDispose errors during traversal").
func (n *Node) Dispose(hook Hook) error {
	if n.disposed {
		return nil
	}
	n.disposed = true

	var errs []error
	for i := len(n.children) - 1; i >= 0; i-- {
		if err := n.children[i].Dispose(hook); err != nil {
			errs = append(errs, err)
		}
	}
	n.children = nil

	if hook != nil {
		if err := hook(n.Instance, n.ServiceName); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// IsDisposed reports whether the node has already been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// sameInstance compares two instances by identity. Interface equality on
// an uncomparable dynamic type (slice, map, func) panics; such instances
// are simply never found as "the same" node.
func sameInstance(a, b any) (same bool) {
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

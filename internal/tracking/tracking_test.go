package tracking_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakmere/vessel/internal/registry"
	"github.com/oakmere/vessel/internal/tracking"
)

func TestNode_DisposalOrderIsPostOrderReverseInsertion(t *testing.T) {
	var order []string

	root := tracking.NewNode("root-instance", "root", registry.PerRequest)
	c1 := tracking.NewNode("c1", "c1", registry.PerRequest)
	c2 := tracking.NewNode("c2", "c2", registry.PerRequest)
	c3 := tracking.NewNode("c3", "c3", registry.PerRequest)
	root.Adopt(c1)
	root.Adopt(c2)
	root.Adopt(c3)

	hook := func(instance any, name string) error {
		order = append(order, name)
		return nil
	}

	require.NoError(t, root.Dispose(hook))
	assert.Equal(t, []string{"c3", "c2", "c1", "root"}, order)
}

func TestNode_DisposeIsIdempotent(t *testing.T) {
	calls := 0
	root := tracking.NewNode("x", "x", registry.PerRequest)
	hook := func(instance any, name string) error {
		calls++
		return nil
	}

	require.NoError(t, root.Dispose(hook))
	require.NoError(t, root.Dispose(hook))
	assert.Equal(t, 1, calls)
}

func TestNode_DisposeAccumulatesErrors(t *testing.T) {
	root := tracking.NewNode("root", "root", registry.PerRequest)
	c1 := tracking.NewNode("c1", "c1", registry.PerRequest)
	root.Adopt(c1)

	errC1 := errors.New("c1 failed")
	errRoot := errors.New("root failed")

	hook := func(instance any, name string) error {
		switch name {
		case "c1":
			return errC1
		case "root":
			return errRoot
		}
		return nil
	}

	err := root.Dispose(hook)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errC1))
	assert.True(t, errors.Is(err, errRoot))
}

func TestNode_FindAndDetach(t *testing.T) {
	root := tracking.NewNode("root", "root", registry.PerRequest)
	child := tracking.NewNode("child", "child", registry.PerRequest)
	root.Adopt(child)

	found := root.Find("child")
	require.NotNil(t, found)
	assert.Same(t, child, found)

	assert.True(t, root.Detach(child))
	assert.Nil(t, root.Find("child"))
	assert.False(t, root.Detach(child))
}

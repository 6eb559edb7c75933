package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiresound/nodegraph/ops"
	"github.com/wiresound/nodegraph/schema"
)

func TestNewNodeUnregisteredType(t *testing.T) {
	s := schema.New()
	_, err := s.NewNode(9999)
	require.Error(t, err)
}

func TestConnectAndDisconnect(t *testing.T) {
	s := schema.New()
	s.RegisterDefaults()

	a, err := s.NewNode(ops.TypeConstant)
	require.NoError(t, err)
	b, err := s.NewNode(ops.TypeAdd)
	require.NoError(t, err)

	require.True(t, s.Connect(a.Id(), 0, b.Id(), 0))
	assert.True(t, b.Input(0).HasUpstream())

	require.True(t, s.Disconnect(b.Id(), 0))
	assert.False(t, b.Input(0).HasUpstream())
}

// TestConnectRefusesCycle builds a chain a->b->c and then tries to wire
// c back into a, which would close a cycle, and expects it rejected.
func TestConnectRefusesCycle(t *testing.T) {
	s := schema.New()
	s.RegisterDefaults()

	a, _ := s.NewNode(ops.TypeAdd)
	b, _ := s.NewNode(ops.TypeAdd)
	c, _ := s.NewNode(ops.TypeAdd)

	require.True(t, s.Connect(a.Id(), 0, b.Id(), 0))
	require.True(t, s.Connect(b.Id(), 0, c.Id(), 0))

	assert.False(t, s.Connect(c.Id(), 0, a.Id(), 0))
	assert.False(t, a.Input(0).HasUpstream())
}

func TestRemoveNodeDetachesReferences(t *testing.T) {
	s := schema.New()
	s.RegisterDefaults()

	a, _ := s.NewNode(ops.TypeConstant)
	b, _ := s.NewNode(ops.TypeAdd)
	require.True(t, s.Connect(a.Id(), 0, b.Id(), 0))

	s.RemoveNode(a.Id())
	assert.Nil(t, s.GetNode(a.Id()))
	assert.False(t, b.Input(0).HasUpstream())
}

package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealie-mcp/mealie-mcp-server/internal/fault"
)

func TestToolboxRegisterAndLookup(t *testing.T) {
	tb, err := NewToolbox(newStubTool("get_recipe"), newStubTool("search_recipes"))
	require.NoError(t, err)

	tool, err := tb.Lookup("get_recipe")
	require.NoError(t, err)
	assert.Equal(t, "get_recipe", tool.Descriptor().Name)
}

func TestToolboxRejectsDuplicateNames(t *testing.T) {
	_, err := NewToolbox(newStubTool("get_recipe"), newStubTool("get_recipe"))
	require.Error(t, err)

	assert.Equal(t, fault.KindDuplicateTool, fault.From(err).Kind)
	assert.Equal(t, "get_recipe", fault.From(err).Message)
}

func TestToolboxLookupUnknown(t *testing.T) {
	tb, err := NewToolbox(newStubTool("get_recipe"))
	require.NoError(t, err)

	_, err = tb.Lookup("delete_universe")
	require.Error(t, err)
	assert.Equal(t, fault.KindUnknownTool, fault.From(err).Kind)
	assert.Equal(t, "delete_universe", fault.From(err).Message)
}

func TestToolboxDescribeSorted(t *testing.T) {
	tb, err := NewToolbox(newStubTool("zeta"), newStubTool("alpha"), newStubTool("mid"))
	require.NoError(t, err)

	descs := tb.Describe()
	require.Len(t, descs, 3)
	assert.Equal(t, "alpha", descs[0].Name)
	assert.Equal(t, "mid", descs[1].Name)
	assert.Equal(t, "zeta", descs[2].Name)
}

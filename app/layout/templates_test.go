package layout

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestOfficeTemplate(t *testing.T) {
	tpl := Lookup("office")
	nodes, conns := tpl.Instantiate("net-1", seqID(), zerolog.Nop())
	require.Len(t, nodes, 8)
	require.Len(t, conns, 7)

	ids := map[string]bool{}
	for _, n := range nodes {
		require.Equal(t, "net-1", n.NetworkID)
		require.NotEmpty(t, n.ID)
		ids[n.ID] = true
	}
	for _, c := range conns {
		require.True(t, ids[c.FromNodeID], "from endpoint must resolve to a generated node id")
		require.True(t, ids[c.ToNodeID], "to endpoint must resolve to a generated node id")
		require.Equal(t, "ethernet", c.Type)
	}
}

func TestUnknownTemplateFallsBackToDefault(t *testing.T) {
	tpl := Lookup("does-not-exist")
	require.Equal(t, DefaultTemplate, tpl.Name)
}

func TestInstantiateSkipsOutOfRangeConnections(t *testing.T) {
	tpl := Template{
		Name: "broken",
		Nodes: []NodeSpec{
			{Type: "Router", Name: "R1", X: 0, Y: 0},
			{Type: "PC", Name: "PC1", X: 10, Y: 10},
		},
		Connections: []ConnSpec{
			{From: 0, To: 1},
			{From: 0, To: 5},
			{From: -1, To: 1},
		},
	}
	nodes, conns := tpl.Instantiate("net-1", seqID(), zerolog.Nop())
	require.Len(t, nodes, 2)
	require.Len(t, conns, 1)
}

func TestTemplateNames(t *testing.T) {
	names := TemplateNames()
	require.Contains(t, names, "office")
	require.Contains(t, names, "home")
	require.Contains(t, names, "datacenter")
}

package layout

import (
	"github.com/rs/zerolog"

	"netsketch/app/models"
)

// NodeSpec describes one canned node of a template.
type NodeSpec struct {
	Type string
	Name string
	IP   string
	X    float64
	Y    float64
}

// ConnSpec wires two template nodes by positional index into the node list.
type ConnSpec struct {
	From int
	To   int
}

type Template struct {
	Name        string
	Nodes       []NodeSpec
	Connections []ConnSpec
}

// DefaultTemplate seeds networks created with an unknown template name.
const DefaultTemplate = "office"

var templates = map[string]Template{
	"office": {
		Name: "office",
		Nodes: []NodeSpec{
			{Type: "Router", Name: "Gateway Router", IP: "192.168.1.1", X: 400, Y: 60},
			{Type: "Switch", Name: "Core Switch", IP: "192.168.1.2", X: 400, Y: 180},
			{Type: "Switch", Name: "Office Switch", IP: "192.168.1.3", X: 240, Y: 300},
			{Type: "Printer", Name: "Office Printer", IP: "192.168.1.30", X: 560, Y: 300},
			{Type: "PC", Name: "PC-1", IP: "192.168.1.101", X: 120, Y: 420},
			{Type: "PC", Name: "PC-2", IP: "192.168.1.102", X: 240, Y: 420},
			{Type: "PC", Name: "PC-3", IP: "192.168.1.103", X: 360, Y: 420},
			{Type: "PC", Name: "PC-4", IP: "192.168.1.104", X: 480, Y: 420},
		},
		Connections: []ConnSpec{
			{From: 0, To: 1},
			{From: 1, To: 2},
			{From: 1, To: 3},
			{From: 2, To: 4},
			{From: 2, To: 5},
			{From: 2, To: 6},
			{From: 2, To: 7},
		},
	},
	"home": {
		Name: "home",
		Nodes: []NodeSpec{
			{Type: "Router", Name: "Home Router", IP: "192.168.0.1", X: 300, Y: 80},
			{Type: "Switch", Name: "Living Room Switch", IP: "192.168.0.2", X: 300, Y: 220},
			{Type: "PC", Name: "Desktop", IP: "192.168.0.10", X: 180, Y: 360},
			{Type: "Printer", Name: "Printer", IP: "192.168.0.20", X: 420, Y: 360},
		},
		Connections: []ConnSpec{
			{From: 0, To: 1},
			{From: 1, To: 2},
			{From: 1, To: 3},
		},
	},
	"datacenter": {
		Name: "datacenter",
		Nodes: []NodeSpec{
			{Type: "Router", Name: "Edge Router", IP: "10.0.0.1", X: 440, Y: 40},
			{Type: "Switch", Name: "Core-1", IP: "10.0.1.1", X: 280, Y: 160},
			{Type: "Switch", Name: "Core-2", IP: "10.0.1.2", X: 600, Y: 160},
			{Type: "Switch", Name: "ToR-1", IP: "10.0.2.1", X: 280, Y: 280},
			{Type: "Switch", Name: "ToR-2", IP: "10.0.2.2", X: 600, Y: 280},
			{Type: "Server", Name: "web-01", IP: "10.0.10.1", X: 180, Y: 400},
			{Type: "Server", Name: "web-02", IP: "10.0.10.2", X: 380, Y: 400},
			{Type: "Server", Name: "db-01", IP: "10.0.20.1", X: 520, Y: 400},
			{Type: "Server", Name: "db-02", IP: "10.0.20.2", X: 700, Y: 400},
		},
		Connections: []ConnSpec{
			{From: 0, To: 1},
			{From: 0, To: 2},
			{From: 1, To: 3},
			{From: 2, To: 4},
			{From: 3, To: 5},
			{From: 3, To: 6},
			{From: 4, To: 7},
			{From: 4, To: 8},
		},
	},
}

// Lookup returns the named template, falling back to the default for names
// it does not know.
func Lookup(name string) Template {
	if t, ok := templates[name]; ok {
		return t
	}
	return templates[DefaultTemplate]
}

// TemplateNames lists the available template names.
func TemplateNames() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	return names
}

// Instantiate materializes the template into rows for the given network.
// Fresh node identifiers come from newID; connection indices are resolved
// through the allocation table. A connection with an out-of-range index is
// skipped with a warning rather than failing the whole template.
func (t Template) Instantiate(networkID string, newID func() string, logger zerolog.Logger) ([]models.Node, []models.Connection) {
	ids := make([]string, len(t.Nodes))
	nodes := make([]models.Node, 0, len(t.Nodes))
	for i, spec := range t.Nodes {
		ids[i] = newID()
		nodes = append(nodes, models.Node{
			ID:         ids[i],
			NetworkID:  networkID,
			Type:       spec.Type,
			Name:       spec.Name,
			IP:         spec.IP,
			X:          spec.X,
			Y:          spec.Y,
			Properties: "{}",
		})
	}
	conns := make([]models.Connection, 0, len(t.Connections))
	for _, spec := range t.Connections {
		if spec.From < 0 || spec.From >= len(ids) || spec.To < 0 || spec.To >= len(ids) {
			logger.Warn().Str("template", t.Name).Int("from", spec.From).Int("to", spec.To).Msg("template connection index out of range, skipping")
			continue
		}
		conns = append(conns, models.Connection{
			ID:         newID(),
			NetworkID:  networkID,
			FromNodeID: ids[spec.From],
			ToNodeID:   ids[spec.To],
			Type:       "ethernet",
			Properties: "{}",
		})
	}
	return nodes, conns
}

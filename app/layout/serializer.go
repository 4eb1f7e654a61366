// Package layout translates between the stored graph rows and the JSON
// shapes exchanged with the editor.
package layout

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"netsketch/app/apperr"
	"netsketch/app/models"
)

// Layout is the live-edit exchange shape. Coordinates travel as CSS pixel
// strings because the canvas positions nodes with left/top styles.
type Layout struct {
	Nodes       []LayoutNode       `json:"nodes"`
	Connections []LayoutConnection `json:"connections"`
}

type LayoutNode struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Name       string         `json:"name"`
	IP         string         `json:"ip"`
	Left       string         `json:"left"`
	Top        string         `json:"top"`
	Properties map[string]any `json:"properties"`
}

type LayoutConnection struct {
	From       string         `json:"from"`
	To         string         `json:"to"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
}

// ParsePx strips an optional px suffix and parses the remainder as a float.
func ParsePx(s string) (float64, error) {
	t := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, apperr.Validationf("invalid coordinate %q", s)
	}
	return v, nil
}

// FormatPx renders a coordinate in the exchange form.
func FormatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// DecodeProperties parses a stored properties blob. Empty input yields an
// empty map, never nil.
func DecodeProperties(blob string) (map[string]any, error) {
	if strings.TrimSpace(blob) == "" {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(blob), &m); err != nil {
		return nil, apperr.Validationf("invalid properties: %v", err)
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

// EncodeProperties serializes a property map for storage.
func EncodeProperties(m map[string]any) (string, error) {
	if m == nil {
		m = map[string]any{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", apperr.Validationf("invalid properties: %v", err)
	}
	return string(b), nil
}

// FromRows builds the live-edit shape from stored rows. A network with no
// rows serializes to empty arrays, never null.
func FromRows(nodes []models.Node, conns []models.Connection) (*Layout, error) {
	l := &Layout{
		Nodes:       make([]LayoutNode, 0, len(nodes)),
		Connections: make([]LayoutConnection, 0, len(conns)),
	}
	for _, n := range nodes {
		props, err := DecodeProperties(n.Properties)
		if err != nil {
			return nil, err
		}
		l.Nodes = append(l.Nodes, LayoutNode{
			ID:         n.ID,
			Type:       n.Type,
			Name:       n.Name,
			IP:         n.IP,
			Left:       FormatPx(n.X),
			Top:        FormatPx(n.Y),
			Properties: props,
		})
	}
	for _, c := range conns {
		props, err := DecodeProperties(c.Properties)
		if err != nil {
			return nil, err
		}
		l.Connections = append(l.Connections, LayoutConnection{
			From:       c.FromNodeID,
			To:         c.ToNodeID,
			Type:       c.Type,
			Properties: props,
		})
	}
	return l, nil
}

// ToRows converts the live-edit shape into storable rows for the given
// network. Fresh identifiers are allocated through newID and connection
// endpoints are remapped through the client-id table; a connection naming an
// unknown node id fails the whole conversion.
func ToRows(networkID string, l *Layout, newID func() string) ([]models.Node, []models.Connection, error) {
	ids := make(map[string]string, len(l.Nodes))
	nodes := make([]models.Node, 0, len(l.Nodes))
	for _, n := range l.Nodes {
		if n.ID == "" {
			return nil, nil, apperr.Validationf("node without id")
		}
		if _, dup := ids[n.ID]; dup {
			return nil, nil, apperr.Validationf("duplicate node id %q", n.ID)
		}
		x, err := ParsePx(n.Left)
		if err != nil {
			return nil, nil, err
		}
		y, err := ParsePx(n.Top)
		if err != nil {
			return nil, nil, err
		}
		props, err := EncodeProperties(n.Properties)
		if err != nil {
			return nil, nil, err
		}
		id := newID()
		ids[n.ID] = id
		nodes = append(nodes, models.Node{
			ID:         id,
			NetworkID:  networkID,
			Type:       n.Type,
			Name:       n.Name,
			IP:         n.IP,
			X:          x,
			Y:          y,
			Properties: props,
		})
	}
	conns := make([]models.Connection, 0, len(l.Connections))
	for _, c := range l.Connections {
		from, ok := ids[c.From]
		if !ok {
			return nil, nil, apperr.Validationf("connection references unknown node %q", c.From)
		}
		to, ok := ids[c.To]
		if !ok {
			return nil, nil, apperr.Validationf("connection references unknown node %q", c.To)
		}
		props, err := EncodeProperties(c.Properties)
		if err != nil {
			return nil, nil, err
		}
		typ := c.Type
		if typ == "" {
			typ = "ethernet"
		}
		conns = append(conns, models.Connection{
			ID:         newID(),
			NetworkID:  networkID,
			FromNodeID: from,
			ToNodeID:   to,
			Type:       typ,
			Properties: props,
		})
	}
	return nodes, conns, nil
}

// Export is the read-only download shape. It denormalizes rows directly,
// keeping raw float coordinates instead of the pixel-string transform.
type Export struct {
	Version    string        `json:"version"`
	ExportedAt time.Time     `json:"exportedAt"`
	Network    ExportNetwork `json:"network"`
}

type ExportNetwork struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Type        string             `json:"type"`
	Nodes       []ExportNode       `json:"nodes"`
	Connections []ExportConnection `json:"connections"`
}

type ExportNode struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Name       string         `json:"name"`
	IP         string         `json:"ip"`
	X          float64        `json:"x"`
	Y          float64        `json:"y"`
	Properties map[string]any `json:"properties"`
}

type ExportConnection struct {
	From       string         `json:"from"`
	To         string         `json:"to"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
}

const ExportVersion = "1.0"

// BuildExport wraps a network and its full graph in the export envelope.
func BuildExport(n *models.Network, nodes []models.Node, conns []models.Connection, now time.Time) (*Export, error) {
	out := &Export{
		Version:    ExportVersion,
		ExportedAt: now,
		Network: ExportNetwork{
			Name:        n.Name,
			Description: n.Description,
			Type:        n.Type,
			Nodes:       make([]ExportNode, 0, len(nodes)),
			Connections: make([]ExportConnection, 0, len(conns)),
		},
	}
	for _, nd := range nodes {
		props, err := DecodeProperties(nd.Properties)
		if err != nil {
			return nil, err
		}
		out.Network.Nodes = append(out.Network.Nodes, ExportNode{
			ID: nd.ID, Type: nd.Type, Name: nd.Name, IP: nd.IP,
			X: nd.X, Y: nd.Y, Properties: props,
		})
	}
	for _, c := range conns {
		props, err := DecodeProperties(c.Properties)
		if err != nil {
			return nil, err
		}
		out.Network.Connections = append(out.Network.Connections, ExportConnection{
			From: c.FromNodeID, To: c.ToNodeID, Type: c.Type, Properties: props,
		})
	}
	return out, nil
}

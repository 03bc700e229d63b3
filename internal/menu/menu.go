package menu

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Node is one entry in a navigation tree.
type Node struct {
	// Display label. May be empty.
	Name string `toml:"name" json:"name" yaml:"name"`

	// Optional link target, reported when a leaf is chosen.
	To string `toml:"to,omitempty" json:"to,omitempty" yaml:"to,omitempty"`

	// Ordered children. Empty means the node is a leaf.
	Children []Node `toml:"children,omitempty" json:"children,omitempty" yaml:"children,omitempty"`
}

// IsLeaf reports whether the node has no children.
func (n Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Forest is an ordered sequence of top-level trees.
type Forest []Node

// Count returns the total number of nodes in the forest.
func (f Forest) Count() int {
	total := 0
	for _, n := range f {
		total += 1 + Forest(n.Children).Count()
	}
	return total
}

// Depth returns the number of levels in the deepest tree (0 for an empty forest).
func (f Forest) Depth() int {
	deepest := 0
	for _, n := range f {
		if d := 1 + Forest(n.Children).Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest
}

// At returns the node at the given index path, or nil if the path does
// not address a node.
func (f Forest) At(path []int) *Node {
	if len(path) == 0 {
		return nil
	}
	level := f
	var node *Node
	for _, idx := range path {
		if idx < 0 || idx >= len(level) {
			return nil
		}
		node = &level[idx]
		level = node.Children
	}
	return node
}

// Format identifies a menu file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for menu files with an unsupported extension.
var ErrUnknownFormat = errors.New("unknown menu format")

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q (expected .toml, .json, .yaml or .yml)", ErrUnknownFormat, filepath.Ext(path))
}

// file is the keyed document layout shared by all formats.
type file struct {
	Menu Forest `toml:"menu" json:"menu" yaml:"menu"`
}

// Parse decodes a forest from data.
//
// TOML files hold a [[menu]] array of tables. JSON and YAML files may
// hold either a bare list of nodes or an object with a "menu" key.
// Syntax errors fail; a node field of the wrong type does not. Scalars
// are read as text and anything else becomes empty.
func Parse(data []byte, format Format) (Forest, error) {
	var doc interface{}
	switch format {
	case FormatTOML:
		var table map[string]interface{}
		if err := toml.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("parse toml menu: %w", err)
		}
		doc = table

	case FormatJSON:
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) == 0 {
			return Forest{}, nil
		}
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parse json menu: %w", err)
		}

	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml menu: %w", err)
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if m, ok := asMap(doc); ok {
		doc = m["menu"]
	}
	forest := decodeNodes(doc)
	if forest == nil {
		forest = Forest{}
	}
	return forest, nil
}

// decodeNodes reads a list of nodes. Anything but a list yields nil.
func decodeNodes(v interface{}) Forest {
	list, ok := v.([]interface{})
	if !ok {
		return nil
	}
	nodes := make(Forest, 0, len(list))
	for _, item := range list {
		nodes = append(nodes, decodeNode(item))
	}
	return nodes
}

// decodeNode reads one node. A non-mapping becomes a nameless leaf.
func decodeNode(v interface{}) Node {
	m, ok := asMap(v)
	if !ok {
		return Node{}
	}
	return Node{
		Name:     scalarText(m["name"]),
		To:       scalarText(m["to"]),
		Children: decodeNodes(m["children"]),
	}
}

// asMap normalizes the mapping types the decoders produce.
func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

// scalarText renders a decoded scalar as text, or "" for lists, tables
// and null.
func scalarText(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return ""
}

// Marshal encodes a forest in the keyed document layout.
func Marshal(forest Forest, format Format) ([]byte, error) {
	doc := file{Menu: forest}
	switch format {
	case FormatTOML:
		return toml.Marshal(doc)
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatYAML:
		return yaml.Marshal(doc)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Sample returns the built-in demo menu.
func Sample() Forest {
	return Forest{
		{Name: "Home", To: "/"},
		{
			Name: "Profile",
			To:   "/profile",
			Children: []Node{
				{
					Name: "Details",
					To:   "details",
					Children: []Node{
						{Name: "Location", To: "location", Children: []Node{
							{Name: "City", To: "city"},
						}},
					},
				},
			},
		},
		{
			Name: "Settings",
			To:   "/settings",
			Children: []Node{
				{Name: "Account", To: "account"},
				{
					Name: "Security",
					To:   "security",
					Children: []Node{
						{Name: "Login", To: "login"},
						{Name: "Register", To: "register"},
					},
				},
			},
		},
	}
}

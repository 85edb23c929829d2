package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes one YAML rule file into a node tree.
func ParseYAML(src []byte, name string) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if doc.Kind == 0 {
		// Empty file.
		return &Node{Kind: MapNode, fields: map[string]*Node{}, Source: name}, nil
	}
	root := fromYAML(&doc, name)
	if root.Kind != MapNode {
		return nil, fmt.Errorf("%s: top level must be a mapping", name)
	}
	return root, nil
}

func fromYAML(y *yaml.Node, name string) *Node {
	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return &Node{Kind: MapNode, fields: map[string]*Node{}, Source: name}
		}
		return fromYAML(y.Content[0], name)

	case yaml.AliasNode:
		return fromYAML(y.Alias, name)

	case yaml.SequenceNode:
		n := List()
		for _, c := range y.Content {
			n.Items = append(n.Items, fromYAML(c, name))
		}
		n.Source, n.Line = name, y.Line
		return n

	case yaml.MappingNode:
		n := Map()
		for i := 0; i+1 < len(y.Content); i += 2 {
			k, v := y.Content[i], y.Content[i+1]
			if k.Tag == "!!merge" {
				// "<<: *anchor" splices the anchored mapping in.
				merged := fromYAML(v, name)
				for _, mk := range merged.Keys() {
					if n.Get(mk) == nil {
						n.Set(mk, merged.Get(mk))
					}
				}
				continue
			}
			n.Set(k.Value, fromYAML(v, name))
		}
		n.Source, n.Line = name, y.Line
		return n

	default:
		n := Scalar(y.Value)
		if y.Tag == "!!null" {
			n.Value = ""
		}
		n.Source, n.Line = name, y.Line
		return n
	}
}

package loader

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/skinvm/skin"
)

// yamlDocument is the YAML skin form:
//
//	skininfo: {name: Demo, version: "1.0"}
//	root:
//	  kind: container
//	  attrs: {id: main}
//	  children:
//	    - kind: button
//	      attrs: {id: play, w: 20}
type yamlDocument struct {
	Info *SkinInfo `yaml:"skininfo"`
	Root *yamlNode `yaml:"root"`
}

type yamlNode struct {
	node *skin.Node
}

// UnmarshalYAML walks the mapping by hand so attrs keep their document order
func (y *yamlNode) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: object must be a mapping", value.Line)
	}
	n := &skin.Node{Line: value.Line}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		switch key.Value {
		case "kind":
			n.Kind = strings.ToLower(strings.TrimSpace(val.Value))
		case "attrs":
			if val.Kind != yaml.MappingNode {
				return fmt.Errorf("line %d: attrs must be a mapping", val.Line)
			}
			for j := 0; j+1 < len(val.Content); j += 2 {
				n.Attrs = append(n.Attrs, skin.Attr{Key: val.Content[j].Value, Value: val.Content[j+1].Value})
			}
		case "children":
			var children []*yamlNode
			if err := val.Decode(&children); err != nil {
				return err
			}
			for _, c := range children {
				n.Children = append(n.Children, c.node)
			}
		default:
			return fmt.Errorf("line %d: unknown field %q", key.Line, key.Value)
		}
	}
	if n.Kind == "" {
		return fmt.Errorf("line %d: object without kind", value.Line)
	}
	y.node = n
	return nil
}

// ParseYAML reads the YAML skin form
func ParseYAML(r io.Reader) (*Document, error) {
	var raw yamlDocument
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptySkin
		}
		return nil, fmt.Errorf("parse skin yaml: %w", err)
	}
	if raw.Root == nil {
		return nil, ErrEmptySkin
	}
	if raw.Info != nil {
		raw.Info.normalize()
	}
	return &Document{Root: raw.Root.node, Info: raw.Info}, nil
}

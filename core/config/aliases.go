package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Alias maps a specifier prefix onto a project-relative directory.
type Alias struct {
	Prefix string `yaml:"prefix"`
	Target string `yaml:"target"`
}

// AliasTable is ordered: the first declared alias whose prefix matches wins.
//
// It decodes from either a sequence of {prefix, target} entries or a mapping,
// in which case the mapping's key order is kept:
//
//	aliases:
//	  "@/": src/
//	  "~": src/
type AliasTable []Alias

func (t *AliasTable) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var list []Alias
		if err := node.Decode(&list); err != nil {
			return err
		}
		*t = list
		return nil
	case yaml.MappingNode:
		out := make(AliasTable, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, val := node.Content[i], node.Content[i+1]
			if key.Kind != yaml.ScalarNode || val.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: alias entries must be scalar prefix: target pairs", key.Line)
			}
			out = append(out, Alias{Prefix: key.Value, Target: val.Value})
		}
		*t = out
		return nil
	default:
		if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
			return nil
		}
		return fmt.Errorf("line %d: aliases must be a sequence or a mapping", node.Line)
	}
}

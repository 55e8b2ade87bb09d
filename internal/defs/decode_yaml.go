package defs

import (
	"errors"
	"fmt"

	"fortio.org/safecast"
	"gopkg.in/yaml.v3"

	"entdef/internal/source"
)

// decodeYAML walks the node tree so that every class keeps the position of
// its mapping node.
func decodeYAML(f *source.File) ([]rawClass, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(f.Content, &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if root.Kind == 0 {
		return nil, nil
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, errors.New("expected a YAML document")
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping with a class list", top.Line)
	}

	var list *yaml.Node
	for i := 0; i+1 < len(top.Content); i += 2 {
		key, value := top.Content[i], top.Content[i+1]
		if key.Value != "class" {
			return nil, fmt.Errorf("line %d: unknown key %q", key.Line, key.Value)
		}
		list = value
	}
	if list == nil {
		return nil, nil
	}
	if list.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: class must be a list", list.Line)
	}

	out := make([]rawClass, 0, len(list.Content))
	for _, item := range list.Content {
		var c classDoc
		if err := item.Decode(&c); err != nil {
			return nil, fmt.Errorf("line %d: %w", item.Line, err)
		}
		out = append(out, rawClass{doc: c, pos: nodePos(item)})
	}
	return out, nil
}

func nodePos(n *yaml.Node) source.LineCol {
	line, errLine := safecast.Conv[uint32](n.Line)
	col, errCol := safecast.Conv[uint32](n.Column)
	if errLine != nil || errCol != nil {
		return source.LineCol{}
	}
	return source.LineCol{Line: line, Col: col}
}

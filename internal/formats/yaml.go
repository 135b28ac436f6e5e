package formats

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"datashell/pkg/shelltypes"
)

// ErrExcessiveAliasing is returned when alias expansion would produce far
// more values than the document holds.
var ErrExcessiveAliasing = errors.New("yaml: document contains excessive aliasing")

// Conversion budget, in nodes, for one YAML stream.
const (
	yamlNodesPerByte = 64
	yamlMinNodes     = 10000
)

type yamlConverter struct {
	budget int
}

func (c *yamlConverter) spend() error {
	c.budget--
	if c.budget < 0 {
		return ErrExcessiveAliasing
	}
	return nil
}

// ParseYAML parses a YAML stream. A single document becomes its value; a
// multi-document stream becomes a list with one item per non-empty document.
func ParseYAML(content string) (shelltypes.Value, error) {
	decoder := yaml.NewDecoder(strings.NewReader(content))
	conv := &yamlConverter{budget: yamlMinNodes + yamlNodesPerByte*len(content)}

	var docs []shelltypes.Value
	for {
		var node yaml.Node
		if err := decoder.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return shelltypes.Value{}, err
		}
		value, err := conv.fromNode(&node)
		if err != nil {
			return shelltypes.Value{}, err
		}
		docs = append(docs, value)
	}

	switch len(docs) {
	case 0:
		return shelltypes.NewNothing(), nil
	case 1:
		return docs[0], nil
	}
	return shelltypes.NewList(docs...), nil
}

func (c *yamlConverter) fromNode(node *yaml.Node) (shelltypes.Value, error) {
	if err := c.spend(); err != nil {
		return shelltypes.Value{}, err
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return shelltypes.NewNothing(), nil
		}
		return c.fromNode(node.Content[0])
	case yaml.AliasNode:
		return c.fromNode(node.Alias)
	case yaml.SequenceNode:
		items := make([]shelltypes.Value, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := c.fromNode(child)
			if err != nil {
				return shelltypes.Value{}, err
			}
			items = append(items, item)
		}
		return shelltypes.NewList(items...), nil
	case yaml.MappingNode:
		row := shelltypes.NewRow()
		for i := 0; i+1 < len(node.Content); i += 2 {
			value, err := c.fromNode(node.Content[i+1])
			if err != nil {
				return shelltypes.Value{}, err
			}
			row.Set(node.Content[i].Value, value)
		}
		return shelltypes.NewRowValue(row), nil
	case yaml.ScalarNode:
		return fromYAMLScalar(node)
	}
	return shelltypes.Value{}, fmt.Errorf("unsupported YAML node at line %d", node.Line)
}

func fromYAMLScalar(node *yaml.Node) (shelltypes.Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return shelltypes.NewNothing(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return shelltypes.Value{}, err
		}
		return shelltypes.NewBoolean(b), nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err == nil {
			return shelltypes.NewInt(i), nil
		}
		// out of int64 range
		var f float64
		if err := node.Decode(&f); err != nil {
			return shelltypes.Value{}, err
		}
		return shelltypes.NewDecimal(f), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return shelltypes.Value{}, err
		}
		return shelltypes.NewDecimal(f), nil
	case "!!timestamp":
		var t time.Time
		if err := node.Decode(&t); err != nil {
			return shelltypes.Value{}, err
		}
		return shelltypes.NewDate(t), nil
	}
	return shelltypes.NewString(node.Value), nil
}

package formats

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"datashell/pkg/shelltypes"
)

// ParseXML parses an XML document. Every element becomes a row with a single
// column named after the tag whose value is the list of its children; non-blank
// text becomes a string. Attributes, comments and processing instructions are dropped.
func ParseXML(content string) (shelltypes.Value, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))

	type element struct {
		name     string
		children []shelltypes.Value
	}
	var (
		stack []*element
		root  *shelltypes.Value
	)

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return shelltypes.Value{}, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				return shelltypes.Value{}, errors.New("multiple root elements")
			}
			stack = append(stack, &element{name: t.Name.Local})
		case xml.EndElement:
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			row := shelltypes.NewRow().Set(top.name, shelltypes.NewList(top.children...))
			value := shelltypes.NewRowValue(row)
			if len(stack) == 0 {
				root = &value
				continue
			}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, value)
		case xml.CharData:
			text := strings.TrimSpace(string(t))
			if text == "" || len(stack) == 0 {
				continue
			}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, shelltypes.NewString(text))
		}
	}

	if root == nil {
		return shelltypes.Value{}, errors.New("no root element")
	}
	return *root, nil
}

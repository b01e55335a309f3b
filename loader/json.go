package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// parseJSON decodes a JSON document into the node tree yaml.v3 would produce for the
// same structure. Numbers become !!float scalars, strings !!str.
func parseJSON(data []byte) (*yaml.Node, error) {
	p := &jsonParser{data: data, dec: json.NewDecoder(bytes.NewReader(data))}
	p.dec.UseNumber()

	root, err := p.value()
	if err != nil {
		return nil, err
	}
	if _, err := p.dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("line %d: trailing data after document", p.line())
	}
	return root, nil
}

type jsonParser struct {
	data []byte
	dec  *json.Decoder
}

// line returns the line of the next token.
func (p *jsonParser) line() int {
	off := int(p.dec.InputOffset())
	for off < len(p.data) {
		switch p.data[off] {
		case ' ', '\t', '\r', '\n', ',', ':':
			off++
			continue
		}
		break
	}
	return bytes.Count(p.data[:min(off, len(p.data))], []byte{'\n'}) + 1
}

func (p *jsonParser) value() (*yaml.Node, error) {
	line := p.line()
	tok, err := p.dec.Token()
	if err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '[':
			node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle, Line: line}
			for p.dec.More() {
				item, err := p.value()
				if err != nil {
					return nil, err
				}
				node.Content = append(node.Content, item)
			}
			_, err = p.dec.Token()
			return node, err
		case '{':
			node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Style: yaml.FlowStyle, Line: line}
			for p.dec.More() {
				keyLine := p.line()
				key, err := p.dec.Token()
				if err != nil {
					return nil, err
				}
				value, err := p.value()
				if err != nil {
					return nil, err
				}
				node.Content = append(node.Content, str(key.(string), keyLine), value)
			}
			_, err = p.dec.Token()
			return node, err
		}
		return nil, fmt.Errorf("line %d: unexpected %q", line, v)
	case string:
		return str(v, line), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(f, 'g', -1, 64), Line: line}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v), Line: line}, nil
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null", Line: line}, nil
	}
	return nil, fmt.Errorf("line %d: unexpected token %v", line, tok)
}

func str(s string, line int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s, Style: yaml.DoubleQuotedStyle, Line: line}
}

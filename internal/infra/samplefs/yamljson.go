package samplefs

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// nodeValue converts a YAML node into a value json.Marshal encodes the way the
// same document written as JSON would read: floats keep a fractional part, so
// `1.0` stays a number instead of collapsing to the integer 1.
func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeValue(n.Content[0])

	case yaml.AliasNode:
		return nodeValue(n.Alias)

	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		if err := mergeMapping(out, n); err != nil {
			return nil, err
		}
		return out, nil

	case yaml.ScalarNode:
		return scalarValue(n)
	}
	return nil, fmt.Errorf("line %d: unsupported yaml node kind %d", n.Line, n.Kind)
}

func mergeMapping(out map[string]any, n *yaml.Node) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]

		// `<<: *base` and `<<: [*a, *b]` merge keys; explicit keys win.
		if k.ShortTag() == "!!merge" {
			if err := mergeInto(out, v); err != nil {
				return err
			}
			continue
		}

		val, err := nodeValue(v)
		if err != nil {
			return err
		}
		out[k.Value] = val
	}
	return nil
}

func mergeInto(out map[string]any, v *yaml.Node) error {
	if v.Kind == yaml.AliasNode {
		v = v.Alias
	}
	var sources []*yaml.Node
	switch v.Kind {
	case yaml.MappingNode:
		sources = []*yaml.Node{v}
	case yaml.SequenceNode:
		sources = v.Content
	default:
		return fmt.Errorf("line %d: merge value must be a mapping", v.Line)
	}

	for _, src := range sources {
		if src.Kind == yaml.AliasNode {
			src = src.Alias
		}
		tmp := map[string]any{}
		if err := mergeMapping(tmp, src); err != nil {
			return err
		}
		for k, val := range tmp {
			if _, set := out[k]; !set {
				out[k] = val
			}
		}
	}
	return nil
}

func scalarValue(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil

	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil

	case "!!int":
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		switch v.(type) {
		case int, int64, uint64:
			return json.Number(fmt.Sprint(v)), nil
		}
		// Out of range for 64 bits: keep the digits, inference treats them as a number.
		return json.Number(strings.TrimPrefix(n.Value, "+")), nil

	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("line %d: %s has no JSON representation", n.Line, n.Value)
		}
		s := strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return json.Number(s), nil
	}

	// Strings, timestamps and binary all keep their source text.
	return n.Value, nil
}

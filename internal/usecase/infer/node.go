package infer

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/Absolentia/aif-core/internal/domain"
)

// Node accumulates the shape observed at one position of the sample documents.
type Node struct {
	types      map[domain.TypeTag]struct{}
	properties map[string]*Node
	items      *Node
}

func NewNode() *Node {
	return &Node{
		types:      map[domain.TypeTag]struct{}{},
		properties: map[string]*Node{},
	}
}

// Observe records the type of v and descends into objects and arrays.
// Numbers are expected as json.Number (see ParseSample); native Go numerics are
// accepted for callers that decode on their own.
func (n *Node) Observe(v any) {
	switch t := v.(type) {
	case nil:
		n.add(domain.TypeNull)
	case bool:
		n.add(domain.TypeBoolean)
	case json.Number:
		if isInteger(t) {
			n.add(domain.TypeInteger)
		} else {
			n.add(domain.TypeNumber)
		}
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		n.add(domain.TypeInteger)
	case float32, float64:
		n.add(domain.TypeNumber)
	case string:
		n.add(domain.TypeString)
	case []any:
		n.add(domain.TypeArray)
		items := n.itemsNode()
		for _, el := range t {
			items.Observe(el)
		}
	case map[string]any:
		n.add(domain.TypeObject)
		for k, vv := range t {
			n.property(k).Observe(vv)
		}
	}
}

// Merge folds other into n. Observing two sample partitions into separate nodes and
// merging them yields the same node as observing all samples into one.
func (n *Node) Merge(other *Node) {
	if other == nil {
		return
	}
	for t := range other.types {
		n.add(t)
	}
	for k, child := range other.properties {
		n.property(k).Merge(child)
	}
	if other.items != nil {
		n.itemsNode().Merge(other.items)
	}
}

// Types returns the observed tags in canonical order.
func (n *Node) Types() []domain.TypeTag {
	out := make([]domain.TypeTag, 0, len(n.types))
	for _, t := range domain.AllTypeTags() {
		if n.has(t) {
			out = append(out, t)
		}
	}
	return out
}

// ToJSONSchema renders the node as a JSON Schema fragment.
func (n *Node) ToJSONSchema() map[string]any {
	m := map[string]any{}

	names := make([]string, 0, len(n.types))
	for t := range n.types {
		names = append(names, t.String())
	}
	sort.Strings(names)

	switch len(names) {
	case 0:
	case 1:
		m["type"] = names[0]
	default:
		m["type"] = names
	}

	if n.has(domain.TypeObject) && len(n.properties) > 0 {
		props := make(map[string]any, len(n.properties))
		for k, child := range n.properties {
			props[k] = child.ToJSONSchema()
		}
		m["properties"] = props
	}

	if n.has(domain.TypeArray) && n.items != nil {
		m["items"] = n.items.ToJSONSchema()
	}

	return m
}

func (n *Node) add(t domain.TypeTag) { n.types[t] = struct{}{} }

func (n *Node) has(t domain.TypeTag) bool {
	_, ok := n.types[t]
	return ok
}

func (n *Node) property(k string) *Node {
	child, ok := n.properties[k]
	if !ok {
		child = NewNode()
		n.properties[k] = child
	}
	return child
}

func (n *Node) itemsNode() *Node {
	if n.items == nil {
		n.items = NewNode()
	}
	return n.items
}

// isInteger matches literals that fit int64 or uint64; everything else is a number.
func isInteger(num json.Number) bool {
	s := num.String()
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return true
	}
	if _, err := strconv.ParseUint(s, 10, 64); err == nil {
		return true
	}
	return false
}

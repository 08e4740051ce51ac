package domain

// TypeTag is a JSON Schema primitive type observed in sample data.
// The declaration order is the canonical ordering.
type TypeTag int

const (
	TypeNull TypeTag = iota
	TypeBoolean
	TypeInteger
	TypeNumber
	TypeString
	TypeObject
	TypeArray
)

var typeNames = [...]string{
	TypeNull:    "null",
	TypeBoolean: "boolean",
	TypeInteger: "integer",
	TypeNumber:  "number",
	TypeString:  "string",
	TypeObject:  "object",
	TypeArray:   "array",
}

func (t TypeTag) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[t]
}

// AllTypeTags lists every tag in canonical order.
func AllTypeTags() []TypeTag {
	return []TypeTag{TypeNull, TypeBoolean, TypeInteger, TypeNumber, TypeString, TypeObject, TypeArray}
}

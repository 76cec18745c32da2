package relation

import (
	"fmt"
	"math"
)

// Value is a domain value: the fixed-width machine word stored in one tuple
// column. Numeric columns hold the literal number; symbol columns hold a
// SymbolTable id, never the text itself. Unsigned and float values are
// carried in the same word via bit reinterpretation, so a Value is only
// meaningful next to its column's Kind.
type Value int64

// UnsignedValue reinterprets u as a domain value.
func UnsignedValue(u uint64) Value {
	return Value(int64(u))
}

// Unsigned reinterprets the value as a uint64.
func (v Value) Unsigned() uint64 {
	return uint64(v)
}

// FloatValue stores the bit pattern of f as a domain value.
func FloatValue(f float64) Value {
	return Value(int64(math.Float64bits(f)))
}

// Float reinterprets the value's bit pattern as a float64.
func (v Value) Float() float64 {
	return math.Float64frombits(uint64(v))
}

// Kind tags the primitive type of one relation attribute. The byte values
// are the kind characters used in attribute type strings and signatures.
type Kind byte

const (
	// KindSymbol marks a column holding symbol-table ids.
	KindSymbol Kind = 's'
	// KindSigned marks a signed integer column.
	KindSigned Kind = 'i'
	// KindUnsigned marks an unsigned integer column.
	KindUnsigned Kind = 'u'
	// KindFloat marks a float column.
	KindFloat Kind = 'f'
)

// Numeric reports whether the kind stores a literal number rather than a
// symbol id.
func (k Kind) Numeric() bool {
	return k != KindSymbol
}

func (k Kind) String() string {
	switch k {
	case KindSymbol:
		return "symbol"
	case KindSigned:
		return "signed"
	case KindUnsigned:
		return "unsigned"
	case KindFloat:
		return "float"
	}
	return fmt.Sprintf("kind(%q)", byte(k))
}

// Attribute describes one relation column.
type Attribute struct {
	// Name is the attribute name from the declaration, e.g. "node1".
	Name string
	// Kind is the primitive type tag.
	Kind Kind
	// TypeName is the user-level type name, e.g. "Node".
	TypeName string
}

// Type renders the attribute type string, "<kind>:<type name>", e.g. "s:Node".
func (a Attribute) Type() string {
	return string(a.Kind) + ":" + a.TypeName
}

// KindOf extracts the kind tag from an attribute type string as returned by
// Relation.AttrType. An empty or malformed string is a contract violation.
func KindOf(attrType string) Kind {
	if len(attrType) < 2 || attrType[1] != ':' {
		panic(fmt.Sprintf("relation: malformed attribute type %q", attrType))
	}
	switch k := Kind(attrType[0]); k {
	case KindSymbol, KindSigned, KindUnsigned, KindFloat:
		return k
	default:
		panic(fmt.Sprintf("relation: unknown attribute kind in %q", attrType))
	}
}

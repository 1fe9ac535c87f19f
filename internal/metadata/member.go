package metadata

import "fmt"

// MemberKind is the closed discriminant over declared member shapes.
// Dispatch on it exhaustively; String panics on values outside the set so
// a new kind cannot be added without handling it.
type MemberKind int

const (
	KindMethod MemberKind = iota
	KindConstructor
	KindField
	KindProperty
	KindEvent
	KindNestedType
)

func (k MemberKind) String() string {
	switch k {
	case KindMethod:
		return "method"
	case KindConstructor:
		return "constructor"
	case KindField:
		return "field"
	case KindProperty:
		return "property"
	case KindEvent:
		return "event"
	case KindNestedType:
		return "nested_type"
	default:
		panic(fmt.Sprintf("metadata: unknown member kind %d", int(k)))
	}
}

// Visibility is the five-level access lattice plus public, ordered
// narrowest to widest.
type Visibility int

const (
	VisPrivate Visibility = iota
	VisPrivateProtected
	VisInternal
	VisProtected
	VisProtectedInternal
	VisPublic
)

func (v Visibility) String() string {
	switch v {
	case VisPrivate:
		return "private"
	case VisPrivateProtected:
		return "private protected"
	case VisInternal:
		return "internal"
	case VisProtected:
		return "protected"
	case VisProtectedInternal:
		return "protected internal"
	case VisPublic:
		return "public"
	default:
		panic(fmt.Sprintf("metadata: unknown visibility %d", int(v)))
	}
}

// Param is one ordered method parameter.
type Param struct {
	Type *Type
	Name string
}

// Member is one declared member of a type, a tagged variant over
// MemberKind. Field usage by kind:
//   - Method/Constructor: Params, Type (return), GenericArgs, Definition
//   - Field/Property/Event: Type
//   - NestedType: Nested
type Member struct {
	Kind      MemberKind
	Name      string
	Declaring *Type

	Visibility Visibility
	Static     bool
	Const      bool
	Abstract   bool
	Sealed     bool

	Params []Param

	// Type is the return type, or the field/property/event type.
	Type *Type

	// GenericArgs and Definition mirror the generic machinery on Type:
	// closed generic methods link back to their open definition.
	GenericArgs         []*Type
	IsGenericDefinition bool
	Definition          *Member

	// Nested is the contained type for KindNestedType.
	Nested *Type

	// Attributes are the attribute types applied to this member.
	Attributes []*Type
}

// IsGenerated reports whether the member itself carries the
// compiler-generated marker attribute.
func (m *Member) IsGenerated() bool {
	for _, attr := range m.Attributes {
		if attr.FullName() == GeneratedMarkerAttribute {
			return true
		}
	}
	return false
}

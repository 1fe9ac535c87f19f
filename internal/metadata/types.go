// Package metadata models the raw compiled-module entities the indexer
// consumes: modules, types and their declared members, as exposed by a
// metadata dump. Entities are read-only once loaded; pointer identity is
// the entity identity used by the traversal memos.
package metadata

// Well-known names from the platform type system.
const (
	SystemNamespace = "System"

	// RootTypeName is the universal root type every class ultimately
	// derives from. Inheritance edges to it are suppressed.
	RootTypeName = "Object"

	// AttributeBaseName is the base type all annotation types derive from.
	AttributeBaseName = "Attribute"

	// GeneratedMarkerAttribute tags compiler-synthesized containers and
	// members that have no source-level counterpart.
	GeneratedMarkerAttribute = "System.Runtime.CompilerServices.CompilerGeneratedAttribute"

	// DriverMethodName is the method that executes an asynchronous state
	// machine step by step; its presence identifies a state-machine
	// worker type.
	DriverMethodName = "MoveNext"
)

// WrapKind discriminates the composite wrappers a type reference can carry.
type WrapKind string

const (
	WrapNone    WrapKind = ""
	WrapArray   WrapKind = "array"
	WrapPointer WrapKind = "pointer"
	WrapByRef   WrapKind = "byref"
)

// Module is one compiled module and the types it declares.
type Module struct {
	Name  string
	Types []*Type
}

// Type is one type entity: a class, interface, enum, generic definition or
// instantiation, generic parameter, or a wrapped (array/pointer/byref)
// reference to another type.
type Type struct {
	Module    *Module
	Namespace string
	Name      string

	// Declaring is the enclosing type for nested types, nil otherwise.
	Declaring *Type

	Base       *Type
	Interfaces []*Type

	// GenericArgs holds type parameters for an open definition and the
	// concrete arguments for a closed instantiation.
	GenericArgs []*Type

	// IsGenericDefinition marks an open generic definition; Definition
	// links a closed instantiation back to its open definition.
	IsGenericDefinition bool
	Definition          *Type

	// IsGenericParameter marks an unbound type parameter (T).
	IsGenericParameter bool

	// Wrap and Element describe array/pointer/byref wrappers.
	Wrap    WrapKind
	Element *Type

	IsInterface bool
	IsEnum      bool

	// Attributes are the attribute types applied to this type.
	Attributes []*Type

	// Members are the directly declared members, inherited ones excluded.
	Members []*Member

	generated *bool
}

// Unwrap strips array/pointer/byref wrappers down to the element type.
func (t *Type) Unwrap() *Type {
	for t != nil && t.Wrap != WrapNone && t.Element != nil {
		t = t.Element
	}
	return t
}

// FullName returns namespace-qualified name including the declaring path.
// Used for well-known-type comparisons and diagnostics.
func (t *Type) FullName() string {
	if t == nil {
		return ""
	}
	name := t.Name
	for d := t.Declaring; d != nil; d = d.Declaring {
		name = d.Name + "." + name
	}
	if t.rootNamespace() == "" {
		return name
	}
	return t.rootNamespace() + "." + name
}

// rootNamespace returns the namespace of the outermost declaring type.
// Nested types carry no namespace of their own.
func (t *Type) rootNamespace() string {
	outer := t
	for outer.Declaring != nil {
		outer = outer.Declaring
	}
	return outer.Namespace
}

// IsRootType reports whether t is the universal root type.
func (t *Type) IsRootType() bool {
	return t != nil && t.Namespace == SystemNamespace && t.Name == RootTypeName
}

// DerivesFrom walks the base-type chain looking for the named type.
func (t *Type) DerivesFrom(namespace, name string) bool {
	for b := t.Base; b != nil; b = b.Base {
		bu := b.Unwrap()
		if bu.Namespace == namespace && bu.Name == name {
			return true
		}
		if bu != b {
			b = bu
		}
	}
	return false
}

// IsGeneratedContainer reports whether this type, or any type it is nested
// inside, carries the compiler-generated marker attribute. Computed once
// per entity and memoized; entities are never mutated after loading.
func (t *Type) IsGeneratedContainer() bool {
	if t == nil {
		return false
	}
	if t.generated != nil {
		return *t.generated
	}
	gen := t.hasGeneratedMarker() || t.Declaring.IsGeneratedContainer()
	t.generated = &gen
	return gen
}

func (t *Type) hasGeneratedMarker() bool {
	for _, attr := range t.Attributes {
		if attr.FullName() == GeneratedMarkerAttribute {
			return true
		}
	}
	return false
}

// HasMethod reports whether the type declares a method with the given name.
func (t *Type) HasMethod(name string) bool {
	for _, m := range t.Members {
		if m.Kind == KindMethod && m.Name == name {
			return true
		}
	}
	return false
}

// FindProperty returns the declared property with the given name, or nil.
func (t *Type) FindProperty(name string) *Member {
	return t.findMember(KindProperty, name)
}

// FindEvent returns the declared event with the given name, or nil.
func (t *Type) FindEvent(name string) *Member {
	return t.findMember(KindEvent, name)
}

func (t *Type) findMember(kind MemberKind, name string) *Member {
	for _, m := range t.Members {
		if m.Kind == kind && m.Name == name {
			return m
		}
	}
	return nil
}

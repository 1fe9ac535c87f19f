// Package naming recovers logical, human-meaningful declarations from raw
// compiled-entity metadata. It folds compiler-synthesized accessor methods
// into the property or event they back, suppresses closure bodies and
// async state-machine worker types, and renders canonical names and
// signature fragments for everything else.
package naming

import (
	"errors"
	"fmt"
	"strings"

	"clrindex/internal/graph"
	"clrindex/internal/metadata"
)

// ErrNotADeclaration marks an entity that has no source-level declaration
// to emit. Callers treat it as "skip", never as failure.
var ErrNotADeclaration = errors.New("entity is not a source declaration")

// DataIntegrityError reports a violated naming-convention assumption, such
// as an accessor method whose backing property cannot be found. It affects
// only the single member being resolved.
type DataIntegrityError struct {
	Member string
	Reason string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("metadata integrity: %s: %s", e.Member, e.Reason)
}

// Conventional accessor-method prefixes. An accessor resolves to the
// member it backs, not to a standalone method.
const (
	getterPrefix  = "get_"
	setterPrefix  = "set_"
	adderPrefix   = "add_"
	removerPrefix = "remove_"
)

// Resolved is a successfully canonicalized declaration name.
type Resolved struct {
	Name    string
	Kind    graph.SymbolKind
	Prefix  string
	Postfix string
}

// Resolver canonicalizes metadata entities. It is stateless and safe to
// share across sessions.
type Resolver struct{}

func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveType canonicalizes a type entity. The symbol kind of a type is
// derived by the graph builder, not here; Kind is left unset.
//
// Asynchronous-operation worker types (generated name, nested, exposing
// the state-machine driver method) and compiler-generated containers
// resolve to ErrNotADeclaration. The outer method such a type embellishes
// remains separately resolvable.
func (r *Resolver) ResolveType(t *metadata.Type) (Resolved, error) {
	if _, synthetic := ParseSyntheticName(t.Name); synthetic {
		if t.Declaring != nil && t.HasMethod(metadata.DriverMethodName) {
			return Resolved{}, ErrNotADeclaration
		}
	}
	if t.IsGeneratedContainer() {
		return Resolved{}, ErrNotADeclaration
	}
	return Resolved{Name: QualifiedTypeName(t)}, nil
}

// ResolveMember canonicalizes a declared member.
func (r *Resolver) ResolveMember(m *metadata.Member) (Resolved, error) {
	if _, synthetic := ParseSyntheticName(m.Name); synthetic {
		// Captured-closure bodies and other generated members. The
		// fragment inside the marker stays available through
		// ClosureOrigin for equality checks; nothing is emitted.
		return Resolved{}, ErrNotADeclaration
	}
	if m.IsGenerated() || m.Declaring.IsGeneratedContainer() {
		return Resolved{}, ErrNotADeclaration
	}

	if m.Kind == metadata.KindMethod {
		if res, ok, err := r.foldAccessor(m); ok || err != nil {
			return res, err
		}
	}

	switch m.Kind {
	case metadata.KindConstructor:
		return Resolved{
			Name:    memberName(m.Declaring, constructorName(m.Declaring)),
			Kind:    graph.SymbolMethod,
			Prefix:  RenderModifiers(m),
			Postfix: RenderParams(m.Params),
		}, nil

	case metadata.KindMethod:
		prefix := RenderModifiers(m)
		if m.Type != nil {
			prefix += " " + RenderType(m.Type)
		}
		postfix := ""
		if len(m.GenericArgs) > 0 {
			postfix = renderTypeList(m.GenericArgs)
		}
		postfix += RenderParams(m.Params)
		return Resolved{
			Name:    memberName(m.Declaring, m.Name),
			Kind:    graph.SymbolMethod,
			Prefix:  prefix,
			Postfix: postfix,
		}, nil

	case metadata.KindField, metadata.KindProperty, metadata.KindEvent:
		prefix := RenderModifiers(m)
		if m.Type != nil {
			prefix += " " + RenderType(m.Type)
		}
		return Resolved{
			Name:   memberName(m.Declaring, m.Name),
			Kind:   graph.SymbolField,
			Prefix: prefix,
		}, nil

	case metadata.KindNestedType:
		// The contained type is a declaration in its own right and is
		// resolved through ResolveType; the membership slot is not.
		return Resolved{}, ErrNotADeclaration

	default:
		panic(fmt.Sprintf("naming: unhandled member kind %v", m.Kind))
	}
}

// foldAccessor resolves a conventional accessor method to the property or
// event it backs. A missing backing member is a data-integrity defect,
// never a silent fallback to a method declaration.
func (r *Resolver) foldAccessor(m *metadata.Member) (Resolved, bool, error) {
	var rest string
	var backing *metadata.Member
	var backs string

	switch {
	case strings.HasPrefix(m.Name, getterPrefix):
		rest = m.Name[len(getterPrefix):]
		backing = m.Declaring.FindProperty(rest)
		backs = "property"
	case strings.HasPrefix(m.Name, setterPrefix):
		rest = m.Name[len(setterPrefix):]
		backing = m.Declaring.FindProperty(rest)
		backs = "property"
	case strings.HasPrefix(m.Name, adderPrefix):
		rest = m.Name[len(adderPrefix):]
		backing = m.Declaring.FindEvent(rest)
		backs = "event"
	case strings.HasPrefix(m.Name, removerPrefix):
		rest = m.Name[len(removerPrefix):]
		backing = m.Declaring.FindEvent(rest)
		backs = "event"
	default:
		return Resolved{}, false, nil
	}

	if backing == nil {
		return Resolved{}, true, &DataIntegrityError{
			Member: memberName(m.Declaring, m.Name),
			Reason: fmt.Sprintf("accessor has no backing %s %q", backs, rest),
		}
	}

	prefix := RenderModifiers(backing)
	if backing.Type != nil {
		prefix += " " + RenderType(backing.Type)
	}
	return Resolved{
		Name:   memberName(m.Declaring, backing.Name),
		Kind:   graph.SymbolField,
		Prefix: prefix,
	}, true, nil
}

// ClosureOrigin extracts the outer-method linkage of a captured-closure
// body: the fragment names the method the closure was extracted from, and
// the type is the top-level non-generated declaring type it lives under.
// ok is false for members that are not closure bodies.
func (r *Resolver) ClosureOrigin(m *metadata.Member) (fragment string, owner *metadata.Type, ok bool) {
	syn, synthetic := ParseSyntheticName(m.Name)
	if !synthetic || m.Kind != metadata.KindMethod {
		return "", nil, false
	}
	t := m.Declaring
	for t != nil && t.IsGeneratedContainer() {
		t = t.Declaring
	}
	for t != nil && t.Declaring != nil {
		t = t.Declaring
	}
	return syn.Fragment, t, true
}

// SameClosureOrigin reports whether two closure bodies were extracted from
// the same outer method.
func (r *Resolver) SameClosureOrigin(a, b *metadata.Member) bool {
	fa, ta, oka := r.ClosureOrigin(a)
	fb, tb, okb := r.ClosureOrigin(b)
	return oka && okb && fa == fb && ta != nil && ta == tb
}

func memberName(declaring *metadata.Type, name string) string {
	return QualifiedTypeName(declaring) + "." + name
}

// constructorName is the declaring type's own simple name; metadata names
// constructors with a reserved ".ctor" token instead.
func constructorName(t *metadata.Type) string {
	return stripArity(t.Name)
}

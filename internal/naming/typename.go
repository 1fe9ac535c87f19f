package naming

import (
	"strings"

	"clrindex/internal/metadata"
)

// RenderType produces the human-readable short name of a type reference:
// wrappers expand to their element type plus a suffix marker, closed
// generics render as Outer<Arg1, Arg2>, and the metadata arity suffix
// (Box`1) is stripped.
func RenderType(t *metadata.Type) string {
	if t == nil {
		return ""
	}

	switch t.Wrap {
	case metadata.WrapArray:
		return RenderType(t.Element) + "[]"
	case metadata.WrapPointer:
		return RenderType(t.Element) + "*"
	case metadata.WrapByRef:
		return RenderType(t.Element) + "&"
	}

	name := stripArity(t.Name)
	if len(t.GenericArgs) > 0 {
		name += renderTypeList(t.GenericArgs)
	}
	return name
}

// QualifiedTypeName builds the canonical declaration name of a type:
// namespace, then the enclosing declaration path, then the simple name
// with its generic argument (or parameter) list. The generic list keeps a
// closed instantiation distinct from its open definition.
func QualifiedTypeName(t *metadata.Type) string {
	if t == nil {
		return ""
	}
	t = t.Unwrap()

	var parts []string
	for cur := t; cur != nil; cur = cur.Declaring {
		name := stripArity(cur.Name)
		if cur == t && len(t.GenericArgs) > 0 {
			name += renderTypeList(t.GenericArgs)
		}
		parts = append([]string{name}, parts...)
		if cur.Declaring == nil && cur.Namespace != "" {
			parts = append([]string{cur.Namespace}, parts...)
		}
	}
	return strings.Join(parts, ".")
}

// RenderParams renders an ordered parameter list as
// "(Type1 name1, Type2 name2)".
func RenderParams(params []metadata.Param) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(RenderType(p.Type))
		if p.Name != "" {
			sb.WriteByte(' ')
			sb.WriteString(p.Name)
		}
	}
	sb.WriteByte(')')
	return sb.String()
}

func renderTypeList(args []*metadata.Type) string {
	names := make([]string, len(args))
	for i, a := range args {
		names[i] = RenderType(a)
	}
	return "<" + strings.Join(names, ", ") + ">"
}

// stripArity drops the backtick arity suffix generic definitions carry in
// metadata ("Box`1" -> "Box").
func stripArity(name string) string {
	if i := strings.IndexByte(name, '`'); i >= 0 {
		return name[:i]
	}
	return name
}

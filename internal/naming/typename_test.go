package naming

import (
	"testing"

	"clrindex/internal/metadata"

	"github.com/stretchr/testify/assert"
)

func simpleType(ns, name string) *metadata.Type {
	return &metadata.Type{Namespace: ns, Name: name}
}

func TestRenderType(t *testing.T) {
	intType := simpleType("System", "Int32")
	stringType := simpleType("System", "String")

	t.Run("simple name", func(t *testing.T) {
		assert.Equal(t, "Int32", RenderType(intType))
	})

	t.Run("array wrapper", func(t *testing.T) {
		arr := &metadata.Type{Wrap: metadata.WrapArray, Element: intType}
		assert.Equal(t, "Int32[]", RenderType(arr))
	})

	t.Run("pointer wrapper", func(t *testing.T) {
		ptr := &metadata.Type{Wrap: metadata.WrapPointer, Element: intType}
		assert.Equal(t, "Int32*", RenderType(ptr))
	})

	t.Run("byref of array", func(t *testing.T) {
		arr := &metadata.Type{Wrap: metadata.WrapArray, Element: stringType}
		ref := &metadata.Type{Wrap: metadata.WrapByRef, Element: arr}
		assert.Equal(t, "String[]&", RenderType(ref))
	})

	t.Run("closed generic", func(t *testing.T) {
		box := &metadata.Type{
			Namespace:   "App",
			Name:        "Box`1",
			GenericArgs: []*metadata.Type{intType},
		}
		assert.Equal(t, "Box<Int32>", RenderType(box))
	})

	t.Run("nested generic argument", func(t *testing.T) {
		inner := &metadata.Type{
			Namespace:   "System.Collections.Generic",
			Name:        "List`1",
			GenericArgs: []*metadata.Type{stringType},
		}
		pair := &metadata.Type{
			Namespace:   "App",
			Name:        "Pair`2",
			GenericArgs: []*metadata.Type{intType, inner},
		}
		assert.Equal(t, "Pair<Int32, List<String>>", RenderType(pair))
	})

	t.Run("generic parameter", func(t *testing.T) {
		param := &metadata.Type{Name: "T", IsGenericParameter: true}
		assert.Equal(t, "T", RenderType(param))
	})
}

func TestQualifiedTypeName(t *testing.T) {
	t.Run("namespaced type", func(t *testing.T) {
		assert.Equal(t, "App.Services.Mailer", QualifiedTypeName(simpleType("App.Services", "Mailer")))
	})

	t.Run("nested type", func(t *testing.T) {
		outer := simpleType("App", "Outer")
		inner := &metadata.Type{Name: "Inner", Declaring: outer}
		assert.Equal(t, "App.Outer.Inner", QualifiedTypeName(inner))
	})

	t.Run("open and closed generics are distinct", func(t *testing.T) {
		tp := &metadata.Type{Name: "T", IsGenericParameter: true}
		open := &metadata.Type{
			Namespace:           "App",
			Name:                "Box`1",
			GenericArgs:         []*metadata.Type{tp},
			IsGenericDefinition: true,
		}
		closed := &metadata.Type{
			Namespace:   "App",
			Name:        "Box`1",
			GenericArgs: []*metadata.Type{simpleType("System", "Int32")},
			Definition:  open,
		}
		assert.Equal(t, "App.Box<T>", QualifiedTypeName(open))
		assert.Equal(t, "App.Box<Int32>", QualifiedTypeName(closed))
	})

	t.Run("wrapper unwraps to element", func(t *testing.T) {
		arr := &metadata.Type{Wrap: metadata.WrapArray, Element: simpleType("App", "Widget")}
		assert.Equal(t, "App.Widget", QualifiedTypeName(arr))
	})
}

func TestRenderParams(t *testing.T) {
	intType := simpleType("System", "Int32")
	stringType := simpleType("System", "String")

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "()", RenderParams(nil))
	})

	t.Run("typed and named", func(t *testing.T) {
		params := []metadata.Param{
			{Type: intType, Name: "count"},
			{Type: stringType, Name: "label"},
		}
		assert.Equal(t, "(Int32 count, String label)", RenderParams(params))
	})

	t.Run("unnamed parameter", func(t *testing.T) {
		params := []metadata.Param{{Type: intType}}
		assert.Equal(t, "(Int32)", RenderParams(params))
	})
}

package metadata

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Dump-file schema. One JSON file describes one module: a flat type table
// keyed by integer ids, with all cross-references expressed as ids and
// resolved into pointers at load time. Types pulled in from other modules
// appear in the same table with an explicit "module" field.

type typeRecord struct {
	ID        int    `json:"id"`
	Module    string `json:"module,omitempty"`
	Namespace string `json:"namespace,omitempty"`
	Name      string `json:"name"`

	Declaring int   `json:"declaring,omitempty"`
	Base      int   `json:"base,omitempty"`
	Interfaces []int `json:"interfaces,omitempty"`

	GenericArgs       []int `json:"generic_args,omitempty"`
	GenericDefinition bool  `json:"generic_definition,omitempty"`
	Definition        int   `json:"definition,omitempty"`
	GenericParameter  bool  `json:"generic_parameter,omitempty"`

	Wrap    string `json:"wrap,omitempty"`
	Element int    `json:"element,omitempty"`

	Interface bool `json:"interface,omitempty"`
	Enum      bool `json:"enum,omitempty"`

	Attributes []int          `json:"attributes,omitempty"`
	Members    []memberRecord `json:"members,omitempty"`
}

type memberRecord struct {
	Kind       string        `json:"kind"`
	Name       string        `json:"name"`
	Visibility string        `json:"visibility,omitempty"`
	Static     bool          `json:"static,omitempty"`
	Const      bool          `json:"const,omitempty"`
	Abstract   bool          `json:"abstract,omitempty"`
	Sealed     bool          `json:"sealed,omitempty"`
	Params     []paramRecord `json:"params,omitempty"`
	Type       int           `json:"type,omitempty"`

	GenericArgs       []int `json:"generic_args,omitempty"`
	GenericDefinition bool  `json:"generic_definition,omitempty"`
	// Definition is the index of the open-definition member within the
	// same type's member list, for closed generic methods.
	Definition *int `json:"definition,omitempty"`

	Nested     int   `json:"nested,omitempty"`
	Attributes []int `json:"attributes,omitempty"`
}

type paramRecord struct {
	Type int    `json:"type"`
	Name string `json:"name,omitempty"`
}

type dumpFile struct {
	Module string       `json:"module"`
	Types  []typeRecord `json:"types"`
}

var memberKinds = map[string]MemberKind{
	"method":      KindMethod,
	"constructor": KindConstructor,
	"field":       KindField,
	"property":    KindProperty,
	"event":       KindEvent,
	"nested_type": KindNestedType,
}

var visibilities = map[string]Visibility{
	"private":            VisPrivate,
	"private protected":  VisPrivateProtected,
	"internal":           VisInternal,
	"protected":          VisProtected,
	"protected internal": VisProtectedInternal,
	"public":             VisPublic,
}

var wrapKinds = map[string]WrapKind{
	"":        WrapNone,
	"array":   WrapArray,
	"pointer": WrapPointer,
	"byref":   WrapByRef,
}

// LoadFile reads one module dump. It returns the file's own module plus
// shell modules for any foreign types the dump references.
func LoadFile(path string) (*Module, []*Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read dump %s: %w", path, err)
	}

	var dump dumpFile
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, nil, fmt.Errorf("failed to decode dump %s: %w", path, err)
	}
	if dump.Module == "" {
		return nil, nil, fmt.Errorf("dump %s: missing module name", path)
	}

	primary := &Module{Name: dump.Module}
	foreign := make(map[string]*Module)

	// First pass: allocate one Type shell per record so references can be
	// resolved regardless of declaration order.
	byID := make(map[int]*Type, len(dump.Types))
	for _, rec := range dump.Types {
		if rec.ID <= 0 {
			return nil, nil, fmt.Errorf("dump %s: type %q has invalid id %d", path, rec.Name, rec.ID)
		}
		if _, dup := byID[rec.ID]; dup {
			return nil, nil, fmt.Errorf("dump %s: duplicate type id %d", path, rec.ID)
		}

		mod := primary
		if rec.Module != "" && rec.Module != dump.Module {
			m, ok := foreign[rec.Module]
			if !ok {
				m = &Module{Name: rec.Module}
				foreign[rec.Module] = m
			}
			mod = m
		}

		wrap, ok := wrapKinds[rec.Wrap]
		if !ok {
			return nil, nil, fmt.Errorf("dump %s: type id %d: unknown wrap kind %q", path, rec.ID, rec.Wrap)
		}

		t := &Type{
			Module:              mod,
			Namespace:           rec.Namespace,
			Name:                rec.Name,
			IsGenericDefinition: rec.GenericDefinition,
			IsGenericParameter:  rec.GenericParameter,
			Wrap:                wrap,
			IsInterface:         rec.Interface,
			IsEnum:              rec.Enum,
		}
		byID[rec.ID] = t
		mod.Types = append(mod.Types, t)
	}

	resolve := func(id int, what string, ownerID int) (*Type, error) {
		if id == 0 {
			return nil, nil
		}
		t, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("dump %s: type id %d: unresolved %s reference %d", path, ownerID, what, id)
		}
		return t, nil
	}

	// Second pass: resolve references and materialize members.
	for _, rec := range dump.Types {
		t := byID[rec.ID]

		var err error
		if t.Declaring, err = resolve(rec.Declaring, "declaring", rec.ID); err != nil {
			return nil, nil, err
		}
		if t.Base, err = resolve(rec.Base, "base", rec.ID); err != nil {
			return nil, nil, err
		}
		if t.Definition, err = resolve(rec.Definition, "definition", rec.ID); err != nil {
			return nil, nil, err
		}
		if t.Element, err = resolve(rec.Element, "element", rec.ID); err != nil {
			return nil, nil, err
		}
		if t.Interfaces, err = resolveList(rec.Interfaces, byID, path, rec.ID, "interface"); err != nil {
			return nil, nil, err
		}
		if t.GenericArgs, err = resolveList(rec.GenericArgs, byID, path, rec.ID, "generic argument"); err != nil {
			return nil, nil, err
		}
		if t.Attributes, err = resolveList(rec.Attributes, byID, path, rec.ID, "attribute"); err != nil {
			return nil, nil, err
		}

		for _, mr := range rec.Members {
			m, err := loadMember(mr, t, byID, path, rec.ID)
			if err != nil {
				return nil, nil, err
			}
			t.Members = append(t.Members, m)
		}

		// Generic-method definition links are by member index and can only
		// be wired once all members of the type exist.
		for i, mr := range rec.Members {
			if mr.Definition == nil {
				continue
			}
			idx := *mr.Definition
			if idx < 0 || idx >= len(t.Members) {
				return nil, nil, fmt.Errorf("dump %s: type id %d: member %q definition index %d out of range", path, rec.ID, mr.Name, idx)
			}
			t.Members[i].Definition = t.Members[idx]
		}
	}

	foreignList := make([]*Module, 0, len(foreign))
	for _, m := range foreign {
		foreignList = append(foreignList, m)
	}
	return primary, foreignList, nil
}

func loadMember(mr memberRecord, owner *Type, byID map[int]*Type, path string, ownerID int) (*Member, error) {
	kind, ok := memberKinds[mr.Kind]
	if !ok {
		return nil, fmt.Errorf("dump %s: type id %d: member %q has unknown kind %q", path, ownerID, mr.Name, mr.Kind)
	}

	vis := VisPrivate
	if mr.Visibility != "" {
		v, ok := visibilities[mr.Visibility]
		if !ok {
			return nil, fmt.Errorf("dump %s: type id %d: member %q has unknown visibility %q", path, ownerID, mr.Name, mr.Visibility)
		}
		vis = v
	}

	m := &Member{
		Kind:                kind,
		Name:                mr.Name,
		Declaring:           owner,
		Visibility:          vis,
		Static:              mr.Static,
		Const:               mr.Const,
		Abstract:            mr.Abstract,
		Sealed:              mr.Sealed,
		IsGenericDefinition: mr.GenericDefinition,
	}

	lookup := func(id int, what string) (*Type, error) {
		if id == 0 {
			return nil, nil
		}
		t, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("dump %s: type id %d: member %q: unresolved %s reference %d", path, ownerID, mr.Name, what, id)
		}
		return t, nil
	}

	var err error
	if m.Type, err = lookup(mr.Type, "type"); err != nil {
		return nil, err
	}
	if m.Nested, err = lookup(mr.Nested, "nested type"); err != nil {
		return nil, err
	}
	for _, pr := range mr.Params {
		pt, err := lookup(pr.Type, "parameter type")
		if err != nil {
			return nil, err
		}
		m.Params = append(m.Params, Param{Type: pt, Name: pr.Name})
	}
	for _, id := range mr.GenericArgs {
		ga, err := lookup(id, "generic argument")
		if err != nil {
			return nil, err
		}
		m.GenericArgs = append(m.GenericArgs, ga)
	}
	for _, id := range mr.Attributes {
		at, err := lookup(id, "attribute")
		if err != nil {
			return nil, err
		}
		m.Attributes = append(m.Attributes, at)
	}
	return m, nil
}

func resolveList(ids []int, byID map[int]*Type, path string, ownerID int, what string) ([]*Type, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	out := make([]*Type, 0, len(ids))
	for _, id := range ids {
		t, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("dump %s: type id %d: unresolved %s reference %d", path, ownerID, what, id)
		}
		out = append(out, t)
	}
	return out, nil
}

// LoadDir walks a dump directory and loads every .json module dump found.
// Each file is self-contained; foreign shells from different files are not
// merged. Ignored directories mirror the usual project clutter.
func LoadDir(root string) ([]*Module, []*Module, error) {
	var primaries []*Module
	var foreign []*Module

	ignored := map[string]bool{".git": true, "vendor": true, "node_modules": true}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if ignored[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		mod, extra, err := LoadFile(path)
		if err != nil {
			return err
		}
		primaries = append(primaries, mod)
		foreign = append(foreign, extra...)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("dump scan failed: %w", err)
	}
	return primaries, foreign, nil
}

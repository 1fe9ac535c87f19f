package build

import "clrindex/internal/metadata"

// Defect is a reported, non-fatal data-integrity finding: one member whose
// metadata violated a naming-convention assumption. The traversal never
// aborts on defects.
type Defect struct {
	Entity string
	Err    error
}

// Session owns all traversal state for one indexing run: the visited-type
// memo, the lazily-created namespace symbols, the interface-implementor
// index and the set of modules already announced for follow-up. Sessions
// are created fresh per run, mutated by exactly one traversal, and
// discarded at the end; parallel runs must each own their own Session and
// merge only through the store.
type Session struct {
	visited    map[*metadata.Type]int64
	namespaces map[string]int64
	modules    map[*metadata.Module]bool

	implementors    map[*metadata.Type][]*metadata.Type
	implementorSeen map[*metadata.Type]map[*metadata.Type]bool

	defects []Defect
}

func NewSession() *Session {
	return &Session{
		visited:         make(map[*metadata.Type]int64),
		namespaces:      make(map[string]int64),
		modules:         make(map[*metadata.Module]bool),
		implementors:    make(map[*metadata.Type][]*metadata.Type),
		implementorSeen: make(map[*metadata.Type]map[*metadata.Type]bool),
	}
}

// addImplementor appends impl to the interface's implementor list,
// preserving discovery order and deduplicating by entity identity.
func (s *Session) addImplementor(iface, impl *metadata.Type) {
	seen := s.implementorSeen[iface]
	if seen == nil {
		seen = make(map[*metadata.Type]bool)
		s.implementorSeen[iface] = seen
	}
	if seen[impl] {
		return
	}
	seen[impl] = true
	s.implementors[iface] = append(s.implementors[iface], impl)
}

// Implementors returns the types observed implementing the interface, in
// discovery order. Nil if the interface was never observed with
// implementors.
func (s *Session) Implementors(iface *metadata.Type) []*metadata.Type {
	return s.implementors[iface]
}

// Defects returns the data-integrity findings reported during the run.
func (s *Session) Defects() []Defect {
	return s.defects
}

func (s *Session) reportDefect(entity string, err error) {
	s.defects = append(s.defects, Defect{Entity: entity, Err: err})
}

// Package build reconstructs the normalized symbol graph: it walks the
// declaration graph of loaded modules exactly once per entity, emits
// symbol and reference records to the store, and maintains the
// interface-to-implementor index for later call-site analysis.
//
// The traversal is single-threaded, synchronous and recursive; the
// visited memo at the entry of member collection is populated before any
// recursive call, which is what breaks the cycles formed by mutually
// referencing generic and interface declarations.
package build

import (
	"errors"
	"log/slog"

	"clrindex/internal/graph"
	"clrindex/internal/metadata"
	"clrindex/internal/naming"
	"clrindex/internal/sink"
)

// NamespaceFilter answers the inclusion and follow policies. Pure
// predicate; the builder owns no filtering state.
type NamespaceFilter interface {
	InScope(namespace string) bool
	Follow(namespace string) bool
}

// SymbolStore accepts the emitted records and assigns identities. Id 0
// from CollectSymbol means the symbol was rejected and must short-circuit
// edge creation.
type SymbolStore interface {
	CollectSymbol(name string, kind graph.SymbolKind, prefix, postfix string) int64
	CollectReference(sourceID, targetID int64, kind graph.ReferenceKind) bool
}

// MethodSink receives one record per fully-emitted method or constructor,
// after all of its references have been recorded. The sink must not
// re-enter the builder.
type MethodSink interface {
	Put(rec sink.Record)
}

// ModuleTracker is notified the first time an entity from a module is
// visited, so the surrounding tooling can follow that module.
type ModuleTracker interface {
	FollowModule(m *metadata.Module)
}

// Builder drives the recursive discovery of referenced entities.
type Builder struct {
	names   *naming.Resolver
	filter  NamespaceFilter
	store   SymbolStore
	sink    MethodSink
	tracker ModuleTracker
	log     *slog.Logger

	// primary marks the modules whose types are indexed in full, as
	// opposed to foreign modules only traversed under the follow policy.
	primary map[string]bool

	session *Session
}

// Option configures optional builder collaborators.
type Option func(*Builder)

// WithTracker wires the module-follow notification target.
func WithTracker(t ModuleTracker) Option {
	return func(b *Builder) { b.tracker = t }
}

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.log = l }
}

// WithPrimaryModules marks the named modules as in scope for full member
// collection.
func WithPrimaryModules(names ...string) Option {
	return func(b *Builder) {
		for _, n := range names {
			b.primary[n] = true
		}
	}
}

// NewBuilder creates a builder with a fresh Session.
func NewBuilder(filter NamespaceFilter, store SymbolStore, methods MethodSink, opts ...Option) *Builder {
	b := &Builder{
		names:   naming.NewResolver(),
		filter:  filter,
		store:   store,
		sink:    methods,
		log:     slog.Default(),
		primary: make(map[string]bool),
		session: NewSession(),
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Session exposes the run's traversal state: implementor index, defects.
func (b *Builder) Session() *Session {
	return b.session
}

// InterfaceImplementors returns the types observed implementing iface, in
// discovery order, each at most once.
func (b *Builder) InterfaceImplementors(iface *metadata.Type) []*metadata.Type {
	return b.session.Implementors(iface)
}

// AddIfValid canonicalizes and emits a type entity unless it is out of
// scope. It returns the stored identity, or 0 for rejected entities:
// unbound generic parameters, nested types encountered standalone (they
// are emitted when their container's member scan reaches them), pure
// compiler artifacts without a namespace, and filtered namespaces.
func (b *Builder) AddIfValid(t *metadata.Type) int64 {
	if t == nil {
		return 0
	}
	t = t.Unwrap()

	if id, ok := b.session.visited[t]; ok {
		return id
	}
	if t.IsGenericParameter || t.Declaring != nil || t.Namespace == "" {
		return 0
	}
	if !b.filter.InScope(t.Namespace) {
		return 0
	}
	return b.AddToDb(t)
}

// AddToDb emits the symbol for a type, its generic-argument and
// specialization references, and, when the type's members are in scope,
// recurses into them. Returns the assigned identity or 0.
func (b *Builder) AddToDb(t *metadata.Type) int64 {
	b.ensureNamespace(t.Namespace)

	res, err := b.names.ResolveType(t)
	if err != nil {
		if !errors.Is(err, naming.ErrNotADeclaration) {
			b.session.reportDefect(t.FullName(), err)
			b.log.Warn("type resolution defect", "type", t.FullName(), "error", err)
		}
		return 0
	}

	id := b.store.CollectSymbol(res.Name, b.typeKind(t), res.Prefix, res.Postfix)
	if id <= 0 {
		return 0
	}

	for _, arg := range t.GenericArgs {
		if argID := b.AddIfValid(arg); argID > 0 {
			b.store.CollectReference(id, argID, graph.RefTypeArgument)
		}
	}
	if t.Definition != nil && !t.IsGenericDefinition {
		if defID := b.AddIfValid(t.Definition); defID > 0 {
			b.store.CollectReference(id, defID, graph.RefTemplateSpecialization)
		}
	}

	if b.shouldCollectMembers(t) {
		b.collectMembers(t, id)
	}
	return id
}

// shouldCollectMembers: members are collected for entities of primary
// modules and for foreign entities the follow policy admits.
func (b *Builder) shouldCollectMembers(t *metadata.Type) bool {
	if t.Module != nil && b.primary[t.Module.Name] {
		return true
	}
	return b.filter.Follow(t.Namespace)
}

// collectMembers walks base type, interfaces, attributes and declared
// members of an emitted type. The visited memo is written before any
// recursion; without that, mutually-referencing generics and interfaces
// recurse forever.
func (b *Builder) collectMembers(t *metadata.Type, id int64) {
	if _, ok := b.session.visited[t]; ok {
		return
	}
	b.session.visited[t] = id

	if t.Module != nil && !b.session.modules[t.Module] {
		b.session.modules[t.Module] = true
		if b.tracker != nil {
			b.tracker.FollowModule(t.Module)
		}
	}

	if t.Base != nil && !t.Base.Unwrap().IsRootType() {
		if baseID := b.AddIfValid(t.Base); baseID > 0 {
			b.store.CollectReference(id, baseID, graph.RefInheritance)
		}
	}

	for _, iface := range t.Interfaces {
		if ifaceID := b.AddIfValid(iface); ifaceID > 0 {
			b.store.CollectReference(id, ifaceID, graph.RefInterfaceRealization)
			b.session.addImplementor(iface.Unwrap(), t)
		}
	}

	for _, attr := range t.Attributes {
		if attrID := b.AddIfValid(attr); attrID > 0 {
			b.store.CollectReference(id, attrID, graph.RefAnnotationUsage)
		}
	}

	for _, m := range t.Members {
		switch m.Kind {
		case metadata.KindNestedType:
			if m.Nested != nil && !m.Nested.IsGeneratedContainer() {
				b.AddToDb(m.Nested)
			}

		case metadata.KindMethod, metadata.KindConstructor:
			memberID := b.CollectMember(m, false)
			if memberID <= 0 {
				continue
			}
			if m.Type != nil {
				if retID := b.AddIfValid(m.Type); retID > 0 {
					b.store.CollectReference(memberID, retID, graph.RefTypeUsage)
				}
			}
			for _, p := range m.Params {
				if paramID := b.AddIfValid(p.Type); paramID > 0 {
					b.store.CollectReference(memberID, paramID, graph.RefTypeUsage)
				}
			}
			for _, g := range m.GenericArgs {
				if genID := b.AddIfValid(g); genID > 0 {
					b.store.CollectReference(memberID, genID, graph.RefTypeArgument)
				}
			}
			b.sink.Put(sink.Record{Method: m, MemberID: memberID, OwnerID: id})

		case metadata.KindField, metadata.KindProperty, metadata.KindEvent:
			b.CollectMember(m, false)

		default:
			b.log.Warn("unhandled member kind", "kind", m.Kind.String(), "member", m.Name)
		}
	}
}

// CollectMember canonicalizes and emits one declared member. Generic
// methods are canonicalized to their open definition first, so every
// closed instantiation maps to one declaration. Attribute edges can be
// suppressed by callers that have already recorded them.
func (b *Builder) CollectMember(m *metadata.Member, suppressAttributeEdges bool) int64 {
	if m.Definition != nil && !m.IsGenericDefinition {
		m = m.Definition
	}

	res, err := b.names.ResolveMember(m)
	if err != nil {
		var integrity *naming.DataIntegrityError
		if errors.As(err, &integrity) {
			b.session.reportDefect(integrity.Member, err)
			b.log.Warn("member resolution defect", "member", integrity.Member, "error", err)
		}
		return 0
	}

	id := b.store.CollectSymbol(res.Name, res.Kind, res.Prefix, res.Postfix)
	if id <= 0 {
		return 0
	}

	if !suppressAttributeEdges {
		for _, attr := range m.Attributes {
			if attrID := b.AddIfValid(attr); attrID > 0 {
				b.store.CollectReference(id, attrID, graph.RefAnnotationUsage)
			}
		}
	}
	return id
}

// typeKind derives the symbol kind of a type declaration. Open generic
// definitions surface as type aliases; types deriving from the platform
// attribute base are annotations.
func (b *Builder) typeKind(t *metadata.Type) graph.SymbolKind {
	switch {
	case t.IsEnum:
		return graph.SymbolEnum
	case t.IsInterface:
		return graph.SymbolInterface
	case t.IsGenericDefinition:
		return graph.SymbolTypeAlias
	case t.DerivesFrom(metadata.SystemNamespace, metadata.AttributeBaseName):
		return graph.SymbolAnnotation
	default:
		return graph.SymbolClass
	}
}

// ensureNamespace lazily creates the namespace declaration exactly once.
func (b *Builder) ensureNamespace(namespace string) int64 {
	if namespace == "" {
		return 0
	}
	if id, ok := b.session.namespaces[namespace]; ok {
		return id
	}
	id := b.store.CollectSymbol(namespace, graph.SymbolNamespace, "", "")
	b.session.namespaces[namespace] = id
	return id
}

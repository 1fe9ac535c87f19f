package graph

// SymbolKind classifies a canonical declaration.
type SymbolKind string

const (
	SymbolNamespace  SymbolKind = "namespace"
	SymbolClass      SymbolKind = "class"
	SymbolInterface  SymbolKind = "interface"
	SymbolEnum       SymbolKind = "enum"
	SymbolTypeAlias  SymbolKind = "type_alias"
	SymbolAnnotation SymbolKind = "annotation"
	SymbolMethod     SymbolKind = "method"
	SymbolField      SymbolKind = "field"
)

// ReferenceKind classifies a directed edge between two declarations.
type ReferenceKind string

const (
	RefInheritance            ReferenceKind = "inheritance"
	RefInterfaceRealization   ReferenceKind = "interface_realization"
	RefTypeUsage              ReferenceKind = "type_usage"
	RefTypeArgument           ReferenceKind = "type_argument"
	RefTemplateSpecialization ReferenceKind = "template_specialization"
	RefAnnotationUsage        ReferenceKind = "annotation_usage"
)

// Declaration is one canonical named entity recovered from metadata.
// QualifiedName includes the enclosing declaration path and is unique
// per distinct source entity: a property and its accessor methods fold
// into a single Declaration.
type Declaration struct {
	QualifiedName    string     `json:"qualified_name"`
	Kind             SymbolKind `json:"kind"`
	SignaturePrefix  string     `json:"signature_prefix,omitempty"`
	SignaturePostfix string     `json:"signature_postfix,omitempty"`
	OriginModule     string     `json:"origin_module,omitempty"`
}

// Reference is a directed typed edge between two stored declarations.
// Both endpoints are positive store-assigned identities; id 0 means
// "rejected / out of scope" and never appears in a recorded Reference.
type Reference struct {
	SourceID int64         `json:"source_id"`
	TargetID int64         `json:"target_id"`
	Kind     ReferenceKind `json:"kind"`
}

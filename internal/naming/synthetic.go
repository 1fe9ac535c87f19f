package naming

import "strings"

// The compiler tags generated names with a reserved bracketing convention:
// the name of the enclosing source declaration inside angle brackets,
// followed by a marker suffix, e.g. "<Run>b__12_0" for a closure body
// extracted from Run, "<Fetch>d__3" for the state-machine type behind an
// async Fetch, or "<Name>k__BackingField" for an auto-property field.
// Such names are illegal as source identifiers, so a leading '<' is a
// reliable signal.

// SyntheticName is the structured result of tokenizing a generated name.
type SyntheticName struct {
	// Fragment is the enclosing-identifier text inside the brackets.
	// May be empty ("<>c__DisplayClass0_0").
	Fragment string

	// Marker is everything after the closing bracket.
	Marker string
}

// ParseSyntheticName tokenizes a simple name against the generated-name
// grammar. It reports false for any name a source author could have
// written.
func ParseSyntheticName(name string) (SyntheticName, bool) {
	if !strings.HasPrefix(name, "<") {
		return SyntheticName{}, false
	}
	end := strings.IndexByte(name, '>')
	if end < 0 {
		return SyntheticName{}, false
	}
	return SyntheticName{
		Fragment: name[1:end],
		Marker:   name[end+1:],
	}, true
}

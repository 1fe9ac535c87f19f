package naming

import (
	"strings"

	"clrindex/internal/metadata"
)

// RenderModifiers renders the declared modifiers of a member as a
// space-joined prefix in canonical order: visibility wording first, then
// static, then const.
func RenderModifiers(m *metadata.Member) string {
	parts := []string{m.Visibility.String()}
	if m.Static {
		parts = append(parts, "static")
	}
	if m.Const {
		parts = append(parts, "const")
	}
	return strings.Join(parts, " ")
}

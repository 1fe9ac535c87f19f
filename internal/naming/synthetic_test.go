package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSyntheticName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		ok       bool
		fragment string
		marker   string
	}{
		{"closure body", "<Run>b__12_0", true, "Run", "b__12_0"},
		{"state machine type", "<Fetch>d__3", true, "Fetch", "d__3"},
		{"backing field", "<Name>k__BackingField", true, "Name", "k__BackingField"},
		{"display class", "<>c__DisplayClass0_0", true, "", "c__DisplayClass0_0"},
		{"plain identifier", "Run", false, "", ""},
		{"generic arity name", "Box`1", false, "", ""},
		{"unterminated bracket", "<Run", false, "", ""},
		{"empty", "", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			syn, ok := ParseSyntheticName(tt.input)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.fragment, syn.Fragment)
				assert.Equal(t, tt.marker, syn.Marker)
			}
		})
	}
}

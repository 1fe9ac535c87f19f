package nsfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterInScope(t *testing.T) {
	t.Run("empty config admits everything", func(t *testing.T) {
		f, err := New(Config{})
		require.NoError(t, err)
		assert.True(t, f.InScope("App"))
		assert.True(t, f.InScope("System.Collections.Generic"))
	})

	t.Run("include restricts scope", func(t *testing.T) {
		f, err := New(Config{Include: []string{"App", "App.**"}})
		require.NoError(t, err)
		assert.True(t, f.InScope("App"))
		assert.True(t, f.InScope("App.Web.Handlers"))
		assert.False(t, f.InScope("System"))
	})

	t.Run("exclude wins over include", func(t *testing.T) {
		f, err := New(Config{
			Include: []string{"App.**"},
			Exclude: []string{"App.Generated.**"},
		})
		require.NoError(t, err)
		assert.True(t, f.InScope("App.Web"))
		assert.False(t, f.InScope("App.Generated.Protos"))
	})

	t.Run("single level wildcard", func(t *testing.T) {
		f, err := New(Config{Include: []string{"App.*"}})
		require.NoError(t, err)
		assert.True(t, f.InScope("App.Web"))
		assert.False(t, f.InScope("App.Web.Handlers"))
	})
}

func TestFilterFollow(t *testing.T) {
	f, err := New(Config{Follow: []string{"Company.Shared.**"}})
	require.NoError(t, err)

	assert.True(t, f.Follow("Company.Shared.Util"))
	assert.False(t, f.Follow("System"))
	assert.False(t, f.Follow("Company"))
}

func TestFilterInvalidPattern(t *testing.T) {
	_, err := New(Config{Include: []string{"App.[/"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "include patterns")
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainAllowlistEmptyAllowsAll(t *testing.T) {
	s := NewDomainAllowlistSection()

	assert.True(t, s.AllowsHost("example.com"))
	assert.True(t, s.AllowsHost("anything.internal"))
	assert.NoError(t, s.CheckURL("https://wherever.io/page"))
}

func TestDomainAllowlistGlobMatching(t *testing.T) {
	s := NewDomainAllowlistSection()
	require.NoError(t, s.SetPatterns([]string{"*.wikipedia.org", "docs.example.com"}))

	assert.True(t, s.AllowsHost("en.wikipedia.org"))
	assert.True(t, s.AllowsHost("EN.WIKIPEDIA.ORG"), "matching is case-insensitive")
	assert.True(t, s.AllowsHost("docs.example.com"))

	assert.False(t, s.AllowsHost("wikipedia.org"), "separator-aware glob: bare domain needs its own pattern")
	assert.False(t, s.AllowsHost("example.com"))
	assert.False(t, s.AllowsHost("evil.com"))
}

func TestDomainAllowlistCheckURL(t *testing.T) {
	s := NewDomainAllowlistSection()
	require.NoError(t, s.SetPatterns([]string{"*.example.com"}))

	assert.NoError(t, s.CheckURL("https://www.example.com/search?q=x"))

	err := s.CheckURL("https://other.org/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "other.org")
}

func TestDomainAllowlistRejectsBadPattern(t *testing.T) {
	s := NewDomainAllowlistSection()
	assert.Error(t, s.SetPatterns([]string{"[invalid"}))
}

func TestDomainAllowlistSetDataRoundTrip(t *testing.T) {
	s := NewDomainAllowlistSection()
	require.NoError(t, s.SetData(map[string]interface{}{
		"patterns": []interface{}{"*.example.com"},
	}))

	assert.Equal(t, []string{"*.example.com"}, s.Patterns())
	assert.True(t, s.AllowsHost("www.example.com"))

	t.Run("nil data keeps patterns", func(t *testing.T) {
		require.NoError(t, s.SetData(nil))
		assert.Equal(t, []string{"*.example.com"}, s.Patterns())
	})

	t.Run("wrong type rejected", func(t *testing.T) {
		assert.Error(t, s.SetData(map[string]interface{}{"patterns": "not-a-list"}))
		assert.Error(t, s.SetData(map[string]interface{}{"patterns": []interface{}{42}}))
	})
}

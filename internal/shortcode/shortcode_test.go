package shortcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateDeterministic(t *testing.T) {
	first, err := Generate("http://example.com/a")
	assert.NoError(t, err)
	assert.NotEmpty(t, first)

	for i := 0; i < 10; i++ {
		again, err := Generate("http://example.com/a")
		assert.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestGenerateDistinctURLs(t *testing.T) {
	a, err := Generate("http://example.com/a")
	assert.NoError(t, err)
	b, err := Generate("https://golang.org/doc/effective_go")
	assert.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestGenerateAlphanumeric(t *testing.T) {
	code, err := Generate("http://example.com/path?q=1")
	assert.NoError(t, err)

	for _, r := range code {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		assert.True(t, isAlnum, "unexpected character %q in code %q", r, code)
	}
}

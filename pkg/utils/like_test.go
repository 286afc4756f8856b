package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"plain", "plain"},
		{"100%", `100\%`},
		{"snake_case", `snake\_case`},
		{`back\slash`, `back\\slash`},
		{`%_\`, `\%\_\\`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, EscapeLike(tt.in), tt.in)
	}
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%gin%", ContainsPattern("gin"))
	assert.Equal(t, `%100\%%`, ContainsPattern("100%"))
}

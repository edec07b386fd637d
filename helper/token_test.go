package helper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewOrderCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := NewOrderCode()
		assert.Len(t, code, 12)
		assert.True(t, strings.HasPrefix(code, "ORD-"), code)
		assert.Equal(t, strings.ToUpper(code), code)
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}

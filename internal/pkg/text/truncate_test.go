package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "unbounded", Truncate("unbounded", 0))
	assert.Equal(t, "abc...(+3 bytes)", Truncate("abcdef", 3))
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	// "é" is two bytes; cutting at 2 would split it.
	got := Truncate("aébc", 2)
	assert.Equal(t, "a...(+4 bytes)", got)
}

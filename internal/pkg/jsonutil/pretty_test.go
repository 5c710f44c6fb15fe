package jsonutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPretty(t *testing.T) {
	assert.Equal(t, "{\n  \"b\": 1,\n  \"a\": [\n    2\n  ]\n}", Pretty([]byte(` {"b":1,"a":[2]} `)))
	assert.Equal(t, "not json", Pretty([]byte("not json")))
	assert.Equal(t, "", Pretty(nil))
}

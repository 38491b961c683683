package dbg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	Reset()
	type thing struct{ n int }
	a, b := &thing{1}, &thing{2}

	assert.Equal(t, Name(a), Name(a))
	assert.NotEmpty(t, Name(b))
	assert.Equal(t, "Ø", Name(nil))
	assert.Equal(t, "Ø", Name((*thing)(nil)))

	// Distinct objects may collide, but an object keeps its name until Reset.
	Reset()
	assert.Equal(t, Name(a), Name(a))
}

package throw

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func recovering(f func()) (err error) {
	defer func() { err = Recover(recover(), err) }()
	f()
	return nil
}

func TestRecover(t *testing.T) {
	t.Run("converts our kinds", func(t *testing.T) {
		err := recovering(func() { Fatalf("walk overran after %d steps", 12) })
		assert.True(t, errors.Is(err, ErrInternalInvariant))
		assert.Contains(t, err.Error(), "walk overran after 12 steps")

		err = recovering(func() { Invalidf("bad index") })
		assert.True(t, errors.Is(err, ErrInvalidInput))

		err = recovering(func() { Degeneratef("collinear") })
		assert.True(t, errors.Is(err, ErrDegenerateGeometry))
	})

	t.Run("passes through no panic", func(t *testing.T) {
		assert.NoError(t, recovering(func() {}))
	})

	t.Run("re-panics foreign values", func(t *testing.T) {
		assert.Panics(t, func() { _ = recovering(func() { panic("boom") }) })
		assert.Panics(t, func() { _ = recovering(func() { panic(errors.New("other")) }) })
	})
}

package preview

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square() *Cap {
	return &Cap{
		Points:    []r2.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 0, Y: 1}},
		Loops:     [][]int{{0, 1, 2, 3}},
		Triangles: [][3]int{{0, 1, 2}, {0, 2, 3}},
	}
}

func TestDrawSize(t *testing.T) {
	c := square().Draw(200)
	// The larger extent gets the requested size, plus padding on both sides
	assert.Equal(t, 200+2*padding, c.Width())
	assert.Equal(t, 100+2*padding, c.Height())

	// The middle of the square is filled, the padding is not
	r, g, b, _ := c.Image().At(c.Width()/2, c.Height()/2).RGBA()
	assert.False(t, r == g && g == b, "center should be tinted")
	r, g, b, _ = c.Image().At(2, 2).RGBA()
	assert.True(t, r == 0xffff && g == 0xffff && b == 0xffff, "corner should be white")
}

func TestDrawEmpty(t *testing.T) {
	c := (&Cap{}).Draw(50)
	assert.Equal(t, 50+2*padding, c.Width())
}

func TestSaveAndCat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cap.png")
	require.NoError(t, square().SavePNG(path, 64))

	var out bytes.Buffer
	require.NoError(t, Cat(path, &out))
	assert.Greater(t, out.Len(), 0)
}

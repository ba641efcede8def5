package costmap

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	navkiterrors "github.com/navkit/navkit/internal/errors"
)

func TestNew_RejectsInvalidDimensions(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative", -1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.width, tt.height, 1.0)
			assert.ErrorIs(t, err, navkiterrors.ErrMapInvalid)
		})
	}
}

func TestGrid_IsFreeRoundsToNearestCell(t *testing.T) {
	g, err := New(10, 10, 1.0)
	require.NoError(t, err)
	g.SetCost(3, 4, CostLethal)

	assert.False(t, g.IsFree(3.0, 4.0))
	// 3.4 rounds to cell 3, 2.4 rounds to cell 2.
	assert.False(t, g.IsFree(3.4, 4.2))
	assert.True(t, g.IsFree(2.4, 4.2))

	// Out of bounds is never free.
	assert.False(t, g.IsFree(-1.0, 5.0))
	assert.False(t, g.IsFree(5.0, 10.2))
}

func TestGrid_LethalThreshold(t *testing.T) {
	g, err := New(4, 4, 1.0)
	require.NoError(t, err)

	g.SetCost(1, 1, LethalThreshold-1)
	g.SetCost(2, 2, LethalThreshold)

	assert.True(t, g.IsFreeCell(1, 1))
	assert.False(t, g.IsFreeCell(2, 2))
}

func TestGrid_RandomFreeCellAvoidsObstacles(t *testing.T) {
	g, err := NewTestGrid(BottomLeftObstacle)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		p, err := g.RandomFreeCell(rng)
		require.NoError(t, err)
		assert.True(t, g.IsFree(p.X, p.Y), "sampled occupied cell at %v", p)
	}
}

func TestGrid_RandomFreeCellOnFullGrid(t *testing.T) {
	g, err := New(4, 4, 1.0)
	require.NoError(t, err)
	for iy := 0; iy < 4; iy++ {
		for ix := 0; ix < 4; ix++ {
			g.SetCost(ix, iy, CostLethal)
		}
	}

	_, err = g.RandomFreeCell(rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, navkiterrors.ErrNoFreeCell)
}

func TestNewTestGrid_Shapes(t *testing.T) {
	open, err := NewTestGrid(OpenSpace)
	require.NoError(t, err)
	assert.True(t, open.IsFreeCell(0, 0))
	assert.True(t, open.IsFreeCell(9, 9))

	bounded, err := NewTestGrid(Bounded)
	require.NoError(t, err)
	assert.False(t, bounded.IsFreeCell(0, 5))
	assert.False(t, bounded.IsFreeCell(5, 9))
	assert.True(t, bounded.IsFreeCell(5, 5))

	obstacle, err := NewTestGrid(BottomLeftObstacle)
	require.NoError(t, err)
	assert.False(t, obstacle.IsFreeCell(2, 2))
	assert.True(t, obstacle.IsFreeCell(7, 7))
	assert.True(t, obstacle.IsFreeCell(2, 7))

	corridor, err := NewTestGrid(NarrowCorridor)
	require.NoError(t, err)
	assert.False(t, corridor.IsFreeCell(5, 0))
	assert.True(t, corridor.IsFreeCell(5, 5), "the gap must stay open")
	assert.False(t, corridor.IsFreeCell(5, 9))
}

func TestNewTestGrid_UnknownKind(t *testing.T) {
	_, err := NewTestGrid(TestGrid("mars_surface"))
	assert.ErrorIs(t, err, navkiterrors.ErrMapInvalid)
}

func TestParse_ValidMap(t *testing.T) {
	doc := []byte(`
width: 4
height: 3
resolution: 0.5
rows:
  - "####"
  - "#..#"
  - "####"
`)
	g, err := Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, 4, g.Width())
	assert.Equal(t, 3, g.Height())
	assert.Equal(t, 0.5, g.Resolution())

	// Rows run bottom to top: the middle row holds the free cells.
	assert.True(t, g.IsFreeCell(1, 1))
	assert.True(t, g.IsFreeCell(2, 1))
	assert.False(t, g.IsFreeCell(0, 0))
	assert.False(t, g.IsFreeCell(0, 2))

	// Resolution scales world coordinates: cell (1,1) sits at (0.5, 0.5).
	assert.True(t, g.IsFree(0.5, 0.5))
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not yaml", "{{"},
		{"row count mismatch", "width: 2\nheight: 2\nrows: [\"..\"]"},
		{"row width mismatch", "width: 3\nheight: 1\nrows: [\"..\"]"},
		{"unknown cell", "width: 2\nheight: 1\nrows: [\".x\"]"},
		{"missing dimensions", "rows: [\"..\"]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, navkiterrors.ErrMapInvalid)
		})
	}
}

func TestGrid_CloneIsIndependent(t *testing.T) {
	g, err := New(3, 3, 1.0)
	require.NoError(t, err)

	snap := g.Clone()
	g.SetCost(1, 1, CostLethal)

	assert.False(t, g.IsFreeCell(1, 1))
	assert.True(t, snap.IsFreeCell(1, 1))
}

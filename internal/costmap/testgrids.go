package costmap

import (
	navkiterrors "github.com/navkit/navkit/internal/errors"
)

// TestGrid names a built-in grid used by planner validation when no map
// file is supplied.
type TestGrid string

const (
	// OpenSpace is a 10x10 grid with no obstacles.
	OpenSpace TestGrid = "open_space"

	// Bounded is a 10x10 grid with a lethal border ring.
	Bounded TestGrid = "bounded"

	// BottomLeftObstacle is a 10x10 grid with a lethal block covering
	// the bottom-left quadrant.
	BottomLeftObstacle TestGrid = "bottom_left_obstacle"

	// NarrowCorridor is a 10x10 grid split by a vertical wall with a
	// single-cell gap.
	NarrowCorridor TestGrid = "narrow_corridor"
)

const testGridSize = 10

// NewTestGrid builds one of the built-in grids. Unknown names return
// ErrMapInvalid.
func NewTestGrid(kind TestGrid) (*Grid, error) {
	g, err := New(testGridSize, testGridSize, 1.0)
	if err != nil {
		return nil, err
	}

	switch kind {
	case OpenSpace:
		// All cells free.

	case Bounded:
		for i := 0; i < testGridSize; i++ {
			g.SetCost(i, 0, CostLethal)
			g.SetCost(i, testGridSize-1, CostLethal)
			g.SetCost(0, i, CostLethal)
			g.SetCost(testGridSize-1, i, CostLethal)
		}

	case BottomLeftObstacle:
		for iy := 0; iy < testGridSize/2; iy++ {
			for ix := 0; ix < testGridSize/2; ix++ {
				g.SetCost(ix, iy, CostLethal)
			}
		}

	case NarrowCorridor:
		const wallX = testGridSize / 2
		for iy := 0; iy < testGridSize; iy++ {
			if iy != testGridSize/2 {
				g.SetCost(wallX, iy, CostLethal)
			}
		}

	default:
		return nil, navkiterrors.Wrapf(navkiterrors.ErrMapInvalid, "unknown test grid %q", kind)
	}

	return g, nil
}

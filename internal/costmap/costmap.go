// Package costmap provides the 2-D occupancy grid the planning harness
// validates paths against: a cost per cell, a free-cell predicate over
// world coordinates, built-in test grids, and YAML map loading.
//
// Import rules:
//   - CAN import: internal/domain, internal/errors, std lib
//   - MUST NOT import: internal/supervisor, internal/harness, internal/cli
package costmap

import (
	"math"
	"math/rand"

	"github.com/navkit/navkit/internal/domain"
	navkiterrors "github.com/navkit/navkit/internal/errors"
)

// Cell cost values. Anything at or above LethalThreshold counts as an
// obstacle.
const (
	CostFree        uint8 = 0
	CostLethal      uint8 = 254
	LethalThreshold uint8 = 100
)

// Grid is a row-major occupancy grid. The zero cell cost is free, so a
// freshly created grid is entirely traversable.
type Grid struct {
	width      int
	height     int
	resolution float64
	cells      []uint8
}

// New creates a fully free grid. Resolution is meters per cell; a
// non-positive resolution defaults to one meter.
func New(width, height int, resolution float64) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, navkiterrors.Wrapf(navkiterrors.ErrMapInvalid, "dimensions %dx%d", width, height)
	}
	if resolution <= 0 {
		resolution = 1.0
	}
	return &Grid{
		width:      width,
		height:     height,
		resolution: resolution,
		cells:      make([]uint8, width*height),
	}, nil
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return g.height }

// Resolution returns the size of a cell in meters.
func (g *Grid) Resolution() float64 { return g.resolution }

// SetCost sets the cost of a cell. Out-of-bounds indices are ignored.
func (g *Grid) SetCost(ix, iy int, cost uint8) {
	if !g.inBounds(ix, iy) {
		return
	}
	g.cells[iy*g.width+ix] = cost
}

// CostAt returns the cost of a cell, reporting whether the indices fall
// inside the grid.
func (g *Grid) CostAt(ix, iy int) (uint8, bool) {
	if !g.inBounds(ix, iy) {
		return CostLethal, false
	}
	return g.cells[iy*g.width+ix], true
}

// IsFreeCell reports whether the cell is traversable. Cells outside the
// grid are never free.
func (g *Grid) IsFreeCell(ix, iy int) bool {
	cost, ok := g.CostAt(ix, iy)
	return ok && cost < LethalThreshold
}

// IsFree reports whether the world coordinate lies on a traversable
// cell. The coordinate is rounded to the nearest cell, matching how
// path points are checked for collisions.
func (g *Grid) IsFree(x, y float64) bool {
	ix := int(math.Round(x / g.resolution))
	iy := int(math.Round(y / g.resolution))
	return g.IsFreeCell(ix, iy)
}

// RandomFreeCell draws a uniformly random free cell and returns its
// world coordinate. Cells on the zero row and column are excluded so a
// sampled pose never sits on the map edge. Returns ErrNoFreeCell when
// the sampling region has no free cell.
func (g *Grid) RandomFreeCell(rng *rand.Rand) (domain.Point, error) {
	if !g.anyFreeInterior() {
		return domain.Point{}, navkiterrors.Wrap(navkiterrors.ErrNoFreeCell, "grid fully occupied")
	}
	for {
		ix := 1 + rng.Intn(g.width-1)
		iy := 1 + rng.Intn(g.height-1)
		if g.IsFreeCell(ix, iy) {
			return domain.Point{
				X: float64(ix) * g.resolution,
				Y: float64(iy) * g.resolution,
			}, nil
		}
	}
}

// Clone returns a deep copy, used to hand snapshots to clients without
// aliasing the live grid.
func (g *Grid) Clone() *Grid {
	cells := make([]uint8, len(g.cells))
	copy(cells, g.cells)
	return &Grid{
		width:      g.width,
		height:     g.height,
		resolution: g.resolution,
		cells:      cells,
	}
}

func (g *Grid) inBounds(ix, iy int) bool {
	return ix >= 0 && ix < g.width && iy >= 0 && iy < g.height
}

func (g *Grid) anyFreeInterior() bool {
	for iy := 1; iy < g.height; iy++ {
		for ix := 1; ix < g.width; ix++ {
			if g.IsFreeCell(ix, iy) {
				return true
			}
		}
	}
	return false
}

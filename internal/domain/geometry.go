package domain

import "math"

// Point is a 2-D position in world coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo returns the Euclidean distance between two points.
func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// WithinTolerance reports whether q lies within tol of p. A tolerance
// of zero requires exact equality; there is a single tolerance-aware
// comparison rather than separate exact and tolerant variants.
func (p Point) WithinTolerance(q Point, tol float64) bool {
	if tol == 0 {
		return p.X == q.X && p.Y == q.Y
	}
	return p.DistanceTo(q) <= tol
}

// Pose is a 2-D position with heading.
type Pose struct {
	// Position is the pose's location.
	Position Point `json:"position"`

	// Yaw is the heading in radians.
	Yaw float64 `json:"yaw,omitempty"`
}

// Path is an ordered sequence of 2-D positions produced by a planner.
type Path struct {
	// Points are the path positions from start to goal.
	Points []Point `json:"points"`
}

// Empty reports whether the path has no points.
func (p *Path) Empty() bool {
	return p == nil || len(p.Points) == 0
}

// Start returns the first path point. Callers must check Empty first.
func (p *Path) Start() Point {
	return p.Points[0]
}

// End returns the last path point. Callers must check Empty first.
func (p *Path) End() Point {
	return p.Points[len(p.Points)-1]
}

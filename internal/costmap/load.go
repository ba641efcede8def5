package costmap

import (
	"os"

	"gopkg.in/yaml.v3"

	navkiterrors "github.com/navkit/navkit/internal/errors"
)

// mapFile is the on-disk YAML map format. Rows run bottom to top; '.'
// marks a free cell and '#' a lethal one.
type mapFile struct {
	Width      int      `yaml:"width"`
	Height     int      `yaml:"height"`
	Resolution float64  `yaml:"resolution"`
	Rows       []string `yaml:"rows"`
}

// Parse decodes a YAML map document into a grid.
func Parse(data []byte) (*Grid, error) {
	var mf mapFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, navkiterrors.Wrap(navkiterrors.ErrMapInvalid, err.Error())
	}

	g, err := New(mf.Width, mf.Height, mf.Resolution)
	if err != nil {
		return nil, err
	}
	if len(mf.Rows) != mf.Height {
		return nil, navkiterrors.Wrapf(navkiterrors.ErrMapInvalid,
			"expected %d rows, got %d", mf.Height, len(mf.Rows))
	}

	for i, row := range mf.Rows {
		if len(row) != mf.Width {
			return nil, navkiterrors.Wrapf(navkiterrors.ErrMapInvalid,
				"row %d: expected %d cells, got %d", i, mf.Width, len(row))
		}
		iy := mf.Height - 1 - i
		for ix, c := range row {
			switch c {
			case '.':
				// Free by default.
			case '#':
				g.SetCost(ix, iy, CostLethal)
			default:
				return nil, navkiterrors.Wrapf(navkiterrors.ErrMapInvalid,
					"row %d: unknown cell %q", i, string(c))
			}
		}
	}

	return g, nil
}

// LoadFile reads and parses a YAML map file.
func LoadFile(path string) (*Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, navkiterrors.Wrapf(navkiterrors.ErrMapInvalid, "read %s: %v", path, err)
	}
	return Parse(data)
}

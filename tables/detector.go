package tables

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tsawler/pdfword/layout"
)

// Config holds detector configuration
type Config struct {
	// WindowSize is the number of consecutive lines compared at once (default: 3)
	WindowSize int

	// MinRows is the minimum number of lines a kept table covers (default: 3)
	MinRows int

	// BucketSize is the grid run X positions are rounded to (default: 10 points)
	BucketSize float64

	// MatchTolerance is the X distance below which two positions count as the
	// same column (default: 20 points, exclusive)
	MatchTolerance float64

	// MinSharedColumns is the number of column positions every line of a
	// window must share (default: 2)
	MinSharedColumns int
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		WindowSize:       3,
		MinRows:          3,
		BucketSize:       10,
		MatchTolerance:   20,
		MinSharedColumns: 2,
	}
}

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("invalid table config")

// Validate checks that the configuration can drive a detection.
func (c Config) Validate() error {
	switch {
	case c.WindowSize < 2:
		return fmt.Errorf("%w: window size %d, need at least 2", ErrInvalidConfig, c.WindowSize)
	case c.MinRows < 1:
		return fmt.Errorf("%w: min rows %d, need at least 1", ErrInvalidConfig, c.MinRows)
	case c.BucketSize <= 0:
		return fmt.Errorf("%w: bucket size %v must be positive", ErrInvalidConfig, c.BucketSize)
	case c.MatchTolerance < 0:
		return fmt.Errorf("%w: match tolerance %v must not be negative", ErrInvalidConfig, c.MatchTolerance)
	case c.MinSharedColumns < 1:
		return fmt.Errorf("%w: min shared columns %d, need at least 1", ErrInvalidConfig, c.MinSharedColumns)
	}
	return nil
}

// Candidate is a run of consecutive lines that line up in columns.
type Candidate struct {
	// Start and End are the indices of the first and last claimed line
	// in the slice passed to Detect (inclusive).
	Start, End int

	// Rows are the claimed lines, top to bottom.
	Rows []*layout.Line

	// Columns are the sorted X positions of the column boundaries.
	Columns []float64

	tolerance float64
}

// Claims reports whether line index i belongs to the candidate.
func (c Candidate) Claims(i int) bool {
	return i >= c.Start && i <= c.End
}

// RowCount returns the number of claimed lines.
func (c Candidate) RowCount() int {
	return len(c.Rows)
}

// ColumnCount returns the number of column boundaries.
func (c Candidate) ColumnCount() int {
	return len(c.Columns)
}

// Cells assigns every run of every row to a column and returns the cell
// text. A run within tolerance of a boundary goes to the nearest one; other
// runs go to the column whose interval [boundary i, boundary i+1) holds them,
// and runs left of the first boundary go to the first column.
func (c Candidate) Cells() [][]string {
	cols := len(c.Columns)
	if cols == 0 {
		cols = 1
	}

	cells := make([][]string, len(c.Rows))
	for r, line := range c.Rows {
		parts := make([][]string, cols)
		for _, run := range line.Runs() {
			text := strings.TrimSpace(run.Text)
			if text == "" {
				continue
			}
			col := c.column(run.X)
			parts[col] = append(parts[col], text)
		}

		row := make([]string, cols)
		for i, p := range parts {
			row[i] = strings.Join(p, " ")
		}
		cells[r] = row
	}
	return cells
}

func (c Candidate) column(x float64) int {
	if len(c.Columns) == 0 {
		return 0
	}

	nearest, best := -1, math.Inf(1)
	for i, b := range c.Columns {
		if d := math.Abs(x - b); d < c.tolerance && d < best {
			nearest, best = i, d
		}
	}
	if nearest >= 0 {
		return nearest
	}

	col := 0
	for i, b := range c.Columns {
		if x >= b {
			col = i
		}
	}
	return col
}

// Detector finds tables by scanning lines with a sliding window and looking
// for X positions repeated on every line of the window.
type Detector struct {
	config Config
}

// NewDetector creates a detector with default configuration
func NewDetector() *Detector {
	return &Detector{config: DefaultConfig()}
}

// NewDetectorWithConfig creates a detector with custom configuration
func NewDetectorWithConfig(config Config) (*Detector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Detector{config: config}, nil
}

// Name returns the detector name
func (d *Detector) Name() string {
	return "window"
}

// Config returns the detector configuration
func (d *Detector) Config() Config {
	return d.config
}

// Configure sets detector parameters
func (d *Detector) Configure(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	d.config = config
	return nil
}

// Detect scans the lines of one page, top to bottom, and returns the table
// candidates in order. The scan never moves backwards, so no line is claimed
// by two candidates. Pages shorter than the window yield nothing.
func (d *Detector) Detect(lines []*layout.Line) []Candidate {
	w := d.config.WindowSize
	if len(lines) < w {
		return nil
	}

	positions := make([][]float64, len(lines))
	for i, l := range lines {
		positions[i] = d.positions(l)
	}

	var found []Candidate
	i := 0
	for i+w <= len(lines) {
		opening := d.common(positions[i : i+w])
		if len(opening) < d.config.MinSharedColumns {
			i++
			continue
		}

		// Extend while the next window also qualifies.
		end := i + w
		for end < len(lines) && len(d.common(positions[end-w+1:end+1])) >= d.config.MinSharedColumns {
			end++
		}

		if end-i < d.config.MinRows {
			i++
			continue
		}

		columns := d.common(positions[i:end])
		if len(columns) < d.config.MinSharedColumns {
			columns = opening
		}

		found = append(found, Candidate{
			Start:     i,
			End:       end - 1,
			Rows:      lines[i:end],
			Columns:   columns,
			tolerance: d.config.MatchTolerance,
		})
		i = end
	}

	return found
}

// positions returns a line's bucketed, de-duplicated run X positions in
// ascending order.
func (d *Detector) positions(line *layout.Line) []float64 {
	seen := make(map[float64]bool)
	var xs []float64
	for _, r := range line.Runs() {
		if strings.TrimSpace(r.Text) == "" {
			continue
		}
		x := math.Round(r.X/d.config.BucketSize) * d.config.BucketSize
		if !seen[x] {
			seen[x] = true
			xs = append(xs, x)
		}
	}
	sort.Float64s(xs)
	return xs
}

// common returns the positions of the first set that have a match in every
// other set.
func (d *Detector) common(sets [][]float64) []float64 {
	if len(sets) == 0 {
		return nil
	}

	var shared []float64
	for _, x := range sets[0] {
		everywhere := true
		for _, other := range sets[1:] {
			if !d.matches(x, other) {
				everywhere = false
				break
			}
		}
		if everywhere {
			shared = append(shared, x)
		}
	}
	return shared
}

func (d *Detector) matches(x float64, set []float64) bool {
	for _, y := range set {
		if math.Abs(x-y) < d.config.MatchTolerance {
			return true
		}
	}
	return false
}

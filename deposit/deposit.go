/*package deposit interpolates sequences of particle values onto a regular
3D grid.

Each particle carries a continuous position and a scalar payload. The payload
is distributed across the eight grid points surrounding the particle using
trilinear weights, so the total deposited quantity is conserved exactly. A
nearest-grid-point scheme is also provided for resolution comparisons.
*/
package deposit

import (
	"fmt"
	"math"

	"github.com/appcell/turbvis/geom"
)

// weightTol is the tolerance used when checking that a weight octet sums
// to one.
const weightTol = 1e-6

// Domain describes the cubic region a deposition grid covers. The grid is
// vertex-centered: Cells points span [Min, Max] along each axis, separated
// by Alpha().
type Domain struct {
	Min, Max float64
	Cells    int
}

// Alpha returns the spacing between adjacent grid points.
func (dom *Domain) Alpha() float64 {
	return (dom.Max - dom.Min) / float64(dom.Cells-1)
}

// Valid returns true if the Domain describes a usable grid.
func (dom *Domain) Valid() bool {
	return dom.Cells >= 2 && dom.Max > dom.Min
}

// Locate maps a position onto the lattice. c is the index of the grid point
// at or below pt along each axis and off is the fractional offset of pt
// within that cell, in [0, 1).
//
// ok is false if any index falls outside [0, Cells-2]: such a particle has
// no complete corner neighborhood and must not be deposited. Positions at or
// beyond Max fall in this class. pt must be finite.
func (dom *Domain) Locate(pt *geom.Vec) (c [3]int, off [3]float64, ok bool) {
	alpha := dom.Alpha()
	for d := 0; d < 3; d++ {
		x := float64(pt[d])
		if x < dom.Min || x >= dom.Max {
			return c, off, false
		}

		u := (x - dom.Min) / alpha
		f := math.Floor(u)

		c[d] = int(f)
		off[d] = u - f

		// Positions within rounding error of Max can still land on the
		// last grid point, which has no upper corner neighbor.
		if c[d] < 0 || c[d] > dom.Cells-2 {
			return c, off, false
		}
	}
	return c, off, true
}

// Grid accumulates deposited particle values over a Domain. Vals is a flat
// x-fastest array of Cells^3 accumulators owned by the caller for the
// duration of a run.
type Grid struct {
	Vals []float64
	Dom  Domain
	G    geom.Grid
}

// NewGrid returns a zero-initialized Grid covering dom.
func NewGrid(dom Domain) *Grid {
	if !dom.Valid() {
		panic(fmt.Sprintf(
			"Invalid domain: Min = %g, Max = %g, Cells = %d",
			dom.Min, dom.Max, dom.Cells,
		))
	}

	g := &Grid{Dom: dom}
	g.G.Init([3]int{0, 0, 0}, [3]int{dom.Cells, dom.Cells, dom.Cells})
	g.Vals = make([]float64, g.G.Volume)
	return g
}

// Merge adds the accumulators of g2 into g cell by cell. Both grids must
// cover the same Domain.
func (g *Grid) Merge(g2 *Grid) {
	if g.Dom != g2.Dom {
		panic("Merged grids cover different domains.")
	}
	for i, v := range g2.Vals {
		g.Vals[i] += v
	}
}

// Stats counts per-particle outcomes of a deposition run. Rejections are
// aggregated here rather than aborting the run, so a single malformed
// particle does not invalidate a large batch.
type Stats struct {
	Deposited   int64 // Particles deposited onto the grid.
	OutOfBounds int64 // Particles without a complete corner neighborhood.
	NonFinite   int64 // Particles with a NaN or infinite position or value.
}

// Add accumulates the counts of s2 into s.
func (s *Stats) Add(s2 *Stats) {
	s.Deposited += s2.Deposited
	s.OutOfBounds += s2.OutOfBounds
	s.NonFinite += s2.NonFinite
}

// Skipped returns the number of rejected particles.
func (s *Stats) Skipped() int64 { return s.OutOfBounds + s.NonFinite }

// Depositor deposits a sequence of particle values onto a grid. xs and vals
// are parallel slices: vals[i] is the payload of the particle at xs[i].
// Rejected particles are counted in stats. A non-nil error means the run
// itself is invalid and the grid contents must not be trusted.
type Depositor interface {
	Deposit(g *Grid, xs []geom.Vec, vals []float64, stats *Stats) error
}

type trilinear struct{}
type ngp struct{}

// TriLinear returns a Depositor which splits each particle's value across
// the eight corners of its cell.
func TriLinear() Depositor { return &trilinear{} }

// NearestGridPoint returns a Depositor which assigns each particle's value
// entirely to the closest grid point.
func NearestGridPoint() Depositor { return &ngp{} }

// Weights returns the eight trilinear corner weights for a local offset in
// [0, 1]^3. The weight of corner (dx, dy, dz) is stored at index
// dx<<2 | dy<<1 | dz.
func Weights(fx, fy, fz float64) [8]float64 {
	tx, ty, tz := 1-fx, 1-fy, 1-fz
	return [8]float64{
		tx * ty * tz, tx * ty * fz, tx * fy * tz, tx * fy * fz,
		fx * ty * tz, fx * ty * fz, fx * fy * tz, fx * fy * fz,
	}
}

// checkWeights validates a weight octet: every weight in [0, 1] and a total
// of one. A violation is a logic defect, not a data problem, so callers
// must abort the run rather than keep depositing.
func checkWeights(w *[8]float64) error {
	sum := 0.0
	for i, wi := range w {
		if wi < 0 || wi > 1 {
			return fmt.Errorf("weight %d = %g is outside [0, 1]", i, wi)
		}
		sum += wi
	}
	if math.Abs(sum-1) > weightTol {
		return fmt.Errorf("weights sum to %g, not 1", sum)
	}
	return nil
}

// finite returns true if the particle's position and value are all finite.
func finite(pt *geom.Vec, val float64) bool {
	for d := 0; d < 3; d++ {
		x := float64(pt[d])
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

func checkLens(xs []geom.Vec, vals []float64) {
	if len(xs) != len(vals) {
		panic(fmt.Sprintf(
			"Incorrect length for value buffer. Found %d, expected %d",
			len(vals), len(xs),
		))
	}
}

// Deposit deposits a sequence of particles onto a grid via a trilinear
// scheme.
func (intr *trilinear) Deposit(
	g *Grid, xs []geom.Vec, vals []float64, stats *Stats,
) error {
	checkLens(xs, vals)

	for i := range xs {
		if !finite(&xs[i], vals[i]) {
			stats.NonFinite++
			continue
		}

		c, off, ok := g.Dom.Locate(&xs[i])
		if !ok {
			stats.OutOfBounds++
			continue
		}

		w := Weights(off[0], off[1], off[2])
		if err := checkWeights(&w); err != nil {
			return fmt.Errorf(
				"particle %d at (%g, %g, %g): %v",
				i, xs[i][0], xs[i][1], xs[i][2], err,
			)
		}

		g.accumulate(c, &w, vals[i])
		stats.Deposited++
	}
	return nil
}

// accumulate adds w[corner] * val to the eight cells surrounding c. The
// weights sum to one, so the total mass added equals val.
func (g *Grid) accumulate(c [3]int, w *[8]float64, val float64) {
	for dx := 0; dx < 2; dx++ {
		for dy := 0; dy < 2; dy++ {
			for dz := 0; dz < 2; dz++ {
				idx := g.G.Idx(c[0]+dx, c[1]+dy, c[2]+dz)
				g.Vals[idx] += w[dx<<2|dy<<1|dz] * val
			}
		}
	}
}

// Deposit deposits a sequence of particles onto a grid via a nearest grid
// point scheme.
func (intr *ngp) Deposit(
	g *Grid, xs []geom.Vec, vals []float64, stats *Stats,
) error {
	checkLens(xs, vals)

	alpha := g.Dom.Alpha()
	for i := range xs {
		if !finite(&xs[i], vals[i]) {
			stats.NonFinite++
			continue
		}

		x := int(math.Floor((float64(xs[i][0])-g.Dom.Min)/alpha + 0.5))
		y := int(math.Floor((float64(xs[i][1])-g.Dom.Min)/alpha + 0.5))
		z := int(math.Floor((float64(xs[i][2])-g.Dom.Min)/alpha + 0.5))

		if idx, ok := g.G.IdxCheck(x, y, z); ok {
			g.Vals[idx] += vals[i]
			stats.Deposited++
			continue
		}
		stats.OutOfBounds++
	}
	return nil
}

// DepositAll deposits every particle in xs onto g using intr and returns
// the aggregated per-particle accounting. Particle order does not affect
// the result beyond float summation order.
func (g *Grid) DepositAll(
	intr Depositor, xs []geom.Vec, vals []float64,
) (Stats, error) {
	stats := Stats{}
	err := intr.Deposit(g, xs, vals, &stats)
	return stats, err
}

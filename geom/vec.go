/*package geom contains types for reasoning about vectors and regular 3D
grids.
*/
package geom

// Vec is a three dimensional vector.
type Vec [3]float32

// AddSelf adds v2 to v in place.
func (v *Vec) AddSelf(v2 *Vec) {
	for i := 0; i < 3; i++ {
		v[i] += v2[i]
	}
}

// SubSelf subtracts v2 from v in place.
func (v *Vec) SubSelf(v2 *Vec) {
	for i := 0; i < 3; i++ {
		v[i] -= v2[i]
	}
}

// ScaleSelf multiplies every component of v by s in place.
func (v *Vec) ScaleSelf(s float32) {
	for i := 0; i < 3; i++ {
		v[i] *= s
	}
}

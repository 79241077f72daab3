// Package sphere generates near-uniform direction sets on the unit sphere.
//
// The construction follows DOI: 10.1080/10586458.2003.10504492 section 3.3,
// scanning latitude rings of the upper hemisphere and emitting each sample
// together with its exact negation so that odd angular moments of the set
// cancel exactly.
package sphere

import "math"

// Vec is a direction in 3D space.
type Vec [3]float64

// Neg returns the exactly opposing vector.
func (v Vec) Neg() Vec { return Vec{-v[0], -v[1], -v[2]} }

// Dot returns the scalar product with u.
func (v Vec) Dot(u Vec) float64 { return v[0]*u[0] + v[1]*u[1] + v[2]*u[2] }

// Norm returns the Euclidean length.
func (v Vec) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// Scale returns v scaled by s.
func (v Vec) Scale(s float64) Vec { return Vec{v[0] * s, v[1] * s, v[2] * s} }

// Uniform returns directions approximately uniformly covering the sphere,
// with nphiEquator samples on the equator ring. All vectors off the equator
// come in exactly opposing pairs; a single pole sample may be unpaired.
// The returned count is O(nphiEquator^2) and must be queried by the caller.
//
// Panics if nphiEquator is not positive.
func Uniform(nphiEquator int) []Vec {
	if nphiEquator <= 0 {
		panic("sphere: nphiEquator must be positive")
	}

	dtheta := math.Pi * math.Sqrt(3) / float64(nphiEquator)

	var xyz []Vec
	theta := 0.0
	phi0 := 0.0
	for theta < math.Pi/2 {
		nphi := nphiEquator
		if theta != 0 {
			nphi = int(math.Round(float64(nphiEquator) * math.Cos(theta)))
		}
		dphi := 2 * math.Pi / float64(nphi)
		if nphi == 1 {
			// Single sample on this ring: place it at the pole.
			theta = math.Pi / 2
		}

		for iphi := 0; iphi < nphi; iphi++ {
			phi := phi0 + float64(iphi)*dphi
			x := math.Cos(theta) * math.Cos(phi)
			y := math.Cos(theta) * math.Sin(phi)
			z := math.Sin(theta)
			xyz = append(xyz, Vec{x, y, z})
			// Emit the exact antipode to limit subtractive cancellation and
			// represent isotropy exactly (all odd moments == 0). The equator
			// ring is scanned only once, so it is not negated.
			if theta > 0 {
				xyz = append(xyz, Vec{-x, -y, -z})
			}
		}
		theta += dtheta
		// Offset by half a step so adjacent latitudes are not aligned in
		// longitude.
		phi0 += 0.5 * dphi
	}

	return xyz
}

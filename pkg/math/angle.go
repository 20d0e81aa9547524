package math

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Pi and TwoPi as float32.
const (
	Pi    = float32(math.Pi)
	TwoPi = float32(2 * math.Pi)
)

// WrapTwoPi wraps an angle in radians into [0, 2π).
// Negative inputs are handled, unlike a plain remainder.
func WrapTwoPi(a float32) float32 {
	r := math.Mod(float64(a), 2*math.Pi)
	if r < 0 {
		r += 2 * math.Pi
	}
	w := float32(r)
	// float32 rounding can land exactly on 2π
	if w >= TwoPi {
		w = 0
	}
	return w
}

// WrapPi wraps an angle in radians into (-π, π].
func WrapPi(a float32) float32 {
	r := math.Mod(float64(a)-math.Pi, 2*math.Pi)
	if r > 0 {
		r -= 2 * math.Pi
	}
	w := float32(r + math.Pi)
	// float32 rounding can land exactly on -π
	if w <= -Pi {
		w = Pi
	}
	return w
}

// WrapDegrees wraps an angle in degrees into [-180, 180).
func WrapDegrees(deg float32) float32 {
	r := math.Mod(float64(deg)+180, 360)
	if r < 0 {
		r += 360
	}
	return float32(r) - 180
}

// ModDegrees returns deg mod 360 keeping the sign of deg.
func ModDegrees(deg float32) float32 {
	return float32(math.Mod(float64(deg), 360))
}

// WrapEuler applies WrapDegrees to each axis.
func WrapEuler(e Vec3) Vec3 {
	return Vec3{WrapDegrees(e.X), WrapDegrees(e.Y), WrapDegrees(e.Z)}
}

// EulerToRadians converts pitch/yaw/roll degrees to radians.
func EulerToRadians(e Vec3) Vec3 {
	return Vec3{mgl32.DegToRad(e.X), mgl32.DegToRad(e.Y), mgl32.DegToRad(e.Z)}
}

// Smoothstep eases t with t²(3-2t) after clamping it to [0, 1].
func Smoothstep(t float32) float32 {
	t = mgl32.Clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}

// SphericalToCartesian converts (radius, polar theta, azimuth phi) to a
// y-up offset: x = r·sinθ·cosφ, y = r·cosθ, z = r·sinθ·sinφ.
func SphericalToCartesian(radius, theta, phi float32) Vec3 {
	// mgl32 is z-up
	c := mgl32.SphericalToCartesian(radius, theta, phi)
	return Vec3{c[0], c[2], c[1]}
}

// CartesianToSpherical is the inverse of SphericalToCartesian.
// A zero vector yields radius 0 on the equator (theta π/2, phi 0).
func CartesianToSpherical(v Vec3) (radius, theta, phi float32) {
	radius = v.Length()
	if radius == 0 {
		return 0, Pi / 2, 0
	}
	cosTheta := mgl32.Clamp(v.Y/radius, -1, 1)
	theta = float32(math.Acos(float64(cosTheta)))
	phi = float32(math.Atan2(float64(v.Z), float64(v.X)))
	return radius, theta, phi
}

// SPDX-License-Identifier: EPL-2.0

package utils

// CubicInterpolate evaluates the Catmull-Rom spline through y0..y3 at x, the
// fractional position between y1 (x = 0) and y2 (x = 1).
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	return ((a0*x+a1)*x+a2)*x + y1
}

// Float32ToInt16 clips x to [-1, 1] and scales it to 16-bit PCM. Both ends map
// to ±32767 so the conversion is symmetric.
func Float32ToInt16(x float32) int16 {
	x = max(-1, min(1, x))
	return int16(x * 32767)
}

// Float32ToInt16Slice converts src into dst and returns the number converted.
func Float32ToInt16Slice(dst []int16, src []float32) int {
	n := min(len(dst), len(src))
	for i, v := range src[:n] {
		dst[i] = Float32ToInt16(v)
	}
	return n
}

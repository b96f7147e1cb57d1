package mathutil

// Vec3Byte is an RGB triple with 8-bit channels.
type Vec3Byte [3]uint8

// Lerp blends a and b per channel as a*t + b*(1-t), with t clamped to [0, 1].
// Results are truncated, so Lerp(a, b, 1) == a and Lerp(a, b, 0) == b.
func Lerp(a, b Vec3Byte, t float32) Vec3Byte {
	t = Clamp(t, 0, 1)
	u := 1 - t
	return Vec3Byte{
		uint8(float32(a[0])*t + float32(b[0])*u),
		uint8(float32(a[1])*t + float32(b[1])*u),
		uint8(float32(a[2])*t + float32(b[2])*u),
	}
}

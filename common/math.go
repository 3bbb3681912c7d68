package common

const (
	BaseWidth  = 1280
	BaseHeight = 720
)

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Clamp01 limits t to [0, 1].
func Clamp01(t float32) float32 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

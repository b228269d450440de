package engine

import "math/bits"

// mixKey is the splitmix64 finalizer.
func mixKey(v uint64) uint64 {
	v += 0x9e3779b97f4a7c15
	v = (v ^ (v >> 30)) * 0xbf58476d1ce4e5b9
	v = (v ^ (v >> 27)) * 0x94d049bb133111eb
	return v ^ (v >> 31)
}

// positionKey identifies a position exactly: both masks plus the side to
// move.
type positionKey struct {
	black uint64
	white uint64
	mover PlayerColor
}

func keyFor(b Board, mover PlayerColor) positionKey {
	return positionKey{black: b.black, white: b.white, mover: mover}
}

func (k positionKey) hash() uint64 {
	h := mixKey(k.black)
	h = mixKey(h ^ bits.RotateLeft64(k.white, 32))
	return mixKey(h ^ uint64(k.mover))
}

func nextPowerOfTwo(v uint64) uint64 {
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	v++
	return v
}

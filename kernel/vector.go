package kernel

import "math"

// Dot3 returns the dot product of the two 3-vectors stored at the given
// offsets in their respective buffers.
func Dot3(aBuf []float32, aOff int, bBuf []float32, bOff int) float32 {
	return aBuf[aOff]*bBuf[bOff] + aBuf[aOff+1]*bBuf[bOff+1] + aBuf[aOff+2]*bBuf[bOff+2]
}

// Cross3 writes the cross product of the 3-vectors at aOff and bOff into
// dstBuf[dstOff:dstOff+3].
func Cross3(dstBuf []float32, dstOff int, aBuf []float32, aOff int, bBuf []float32, bOff int) {
	ax, ay, az := aBuf[aOff], aBuf[aOff+1], aBuf[aOff+2]
	bx, by, bz := bBuf[bOff], bBuf[bOff+1], bBuf[bOff+2]
	dstBuf[dstOff] = ay*bz - az*by
	dstBuf[dstOff+1] = az*bx - ax*bz
	dstBuf[dstOff+2] = ax*by - ay*bx
}

// Distance3 returns the Euclidean distance between the two 3-vectors stored
// at the given offsets.
func Distance3(aBuf []float32, aOff int, bBuf []float32, bOff int) float32 {
	dx := aBuf[aOff] - bBuf[bOff]
	dy := aBuf[aOff+1] - bBuf[bOff+1]
	dz := aBuf[aOff+2] - bBuf[bOff+2]
	return float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
}

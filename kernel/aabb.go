// Package kernel implements the flat numeric primitives shared by the pools
// and the octree: ray/AABB intersection, AABB overlap and union, and basic
// 3-vector math. Every function here operates on raw []float32 buffers with
// caller-supplied offsets so that the hot traversal paths never allocate or
// box a value, the same discipline the reference renderer used for its
// OpenCL kernel arguments.
package kernel

import "math"

// AABB record layout, as an offset into a buffer of 6-float32 records.
const (
	OffMinX = 0
	OffMinY = 1
	OffMinZ = 2
	OffMaxX = 3
	OffMaxY = 4
	OffMaxZ = 5
	AABBStride = 6
)

// Ray record layout, as an offset into a buffer of 6-float32 records.
const (
	OffOx = 0
	OffOy = 1
	OffOz = 2
	OffDx = 3
	OffDy = 4
	OffDz = 5
	RayStride = 6
)

// RayIntersectsAABB runs the branchless slab test for the ray stored at
// rayBuf[rayOff:rayOff+6] against the AABB stored at aabbBuf[aabbOff:aabbOff+6].
//
// It returns -1 when the ray misses or the box lies entirely behind the ray
// origin. Otherwise it returns the closest non-negative hit distance: tmin if
// the origin is outside the box, tmax if the origin is inside it.
func RayIntersectsAABB(rayBuf []float32, rayOff int, aabbBuf []float32, aabbOff int) float32 {
	ox, oy, oz := rayBuf[rayOff+OffOx], rayBuf[rayOff+OffOy], rayBuf[rayOff+OffOz]
	dx, dy, dz := rayBuf[rayOff+OffDx], rayBuf[rayOff+OffDy], rayBuf[rayOff+OffDz]

	mnX, mnY, mnZ := aabbBuf[aabbOff+OffMinX], aabbBuf[aabbOff+OffMinY], aabbBuf[aabbOff+OffMinZ]
	mxX, mxY, mxZ := aabbBuf[aabbOff+OffMaxX], aabbBuf[aabbOff+OffMaxY], aabbBuf[aabbOff+OffMaxZ]

	// 1/0 and 1/-0 produce +Inf/-Inf per IEEE-754; this is what makes the
	// parallel-ray case fall out of the min/max chain below without a
	// branch on dx/dy/dz == 0.
	invX, invY, invZ := 1/dx, 1/dy, 1/dz

	t1x, t2x := (mnX-ox)*invX, (mxX-ox)*invX
	t1y, t2y := (mnY-oy)*invY, (mxY-oy)*invY
	t1z, t2z := (mnZ-oz)*invZ, (mxZ-oz)*invZ

	nearX, farX := slab(t1x, t2x)
	nearY, farY := slab(t1y, t2y)
	nearZ, farZ := slab(t1z, t2z)

	tmin := fmax3(nearX, nearY, nearZ)
	tmax := fmin3(farX, farY, farZ)

	// A ray parallel to a slab it lies outside of gets two infinities of the
	// same sign on that axis, which pushes tmax below 0 or tmin above tmax.
	// Written as !(tmin <= tmax) rather than tmin > tmax so that a NaN in
	// either bound also rejects the hit.
	if tmax < 0 || !(tmin <= tmax) {
		return -1
	}

	if tmin >= 0 {
		return tmin
	}
	return tmax
}

// slab returns the entry and exit distances along one axis. A ray parallel
// to the axis whose origin lies exactly on one of the slab's planes yields
// 0*Inf = NaN; such a ray never leaves the (inclusive) slab, so that axis
// places no bound on the hit.
func slab(t1, t2 float32) (near, far float32) {
	if t1 != t1 || t2 != t2 {
		return float32(math.Inf(-1)), float32(math.Inf(1))
	}
	return fmin(t1, t2), fmax(t1, t2)
}

func fmin(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func fmax(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func fmin3(a, b, c float32) float32 {
	return fmin(fmin(a, b), c)
}

func fmax3(a, b, c float32) float32 {
	return fmax(fmax(a, b), c)
}

// AABBOverlapsBox reports whether the two AABBs touch or overlap. Touching
// faces count as overlap because every per-axis comparison is inclusive.
func AABBOverlapsBox(aBuf []float32, aOff int, bBuf []float32, bOff int) bool {
	return aBuf[aOff+OffMinX] <= bBuf[bOff+OffMaxX] && aBuf[aOff+OffMaxX] >= bBuf[bOff+OffMinX] &&
		aBuf[aOff+OffMinY] <= bBuf[bOff+OffMaxY] && aBuf[aOff+OffMaxY] >= bBuf[bOff+OffMinY] &&
		aBuf[aOff+OffMinZ] <= bBuf[bOff+OffMaxZ] && aBuf[aOff+OffMaxZ] >= bBuf[bOff+OffMinZ]
}

// AABBContains reports whether the AABB at innerOff fits entirely within the
// AABB at outerOff, inclusive on both ends.
func AABBContains(innerBuf []float32, innerOff int, outerBuf []float32, outerOff int) bool {
	return innerBuf[innerOff+OffMinX] >= outerBuf[outerOff+OffMinX] &&
		innerBuf[innerOff+OffMinY] >= outerBuf[outerOff+OffMinY] &&
		innerBuf[innerOff+OffMinZ] >= outerBuf[outerOff+OffMinZ] &&
		innerBuf[innerOff+OffMaxX] <= outerBuf[outerOff+OffMaxX] &&
		innerBuf[innerOff+OffMaxY] <= outerBuf[outerOff+OffMaxY] &&
		innerBuf[innerOff+OffMaxZ] <= outerBuf[outerOff+OffMaxZ]
}

// UnionAABB writes into dstBuf[dstOff:dstOff+6] the smallest AABB containing
// both input boxes.
func UnionAABB(dstBuf []float32, dstOff int, aBuf []float32, aOff int, bBuf []float32, bOff int) {
	dstBuf[dstOff+OffMinX] = fmin(aBuf[aOff+OffMinX], bBuf[bOff+OffMinX])
	dstBuf[dstOff+OffMinY] = fmin(aBuf[aOff+OffMinY], bBuf[bOff+OffMinY])
	dstBuf[dstOff+OffMinZ] = fmin(aBuf[aOff+OffMinZ], bBuf[bOff+OffMinZ])
	dstBuf[dstOff+OffMaxX] = fmax(aBuf[aOff+OffMaxX], bBuf[bOff+OffMaxX])
	dstBuf[dstOff+OffMaxY] = fmax(aBuf[aOff+OffMaxY], bBuf[bOff+OffMaxY])
	dstBuf[dstOff+OffMaxZ] = fmax(aBuf[aOff+OffMaxZ], bBuf[bOff+OffMaxZ])
}

// ExpandAABB grows dstBuf[dstOff:dstOff+6] in place so it also contains the
// point (x, y, z).
func ExpandAABB(dstBuf []float32, dstOff int, x, y, z float32) {
	dstBuf[dstOff+OffMinX] = fmin(dstBuf[dstOff+OffMinX], x)
	dstBuf[dstOff+OffMinY] = fmin(dstBuf[dstOff+OffMinY], y)
	dstBuf[dstOff+OffMinZ] = fmin(dstBuf[dstOff+OffMinZ], z)
	dstBuf[dstOff+OffMaxX] = fmax(dstBuf[dstOff+OffMaxX], x)
	dstBuf[dstOff+OffMaxY] = fmax(dstBuf[dstOff+OffMaxY], y)
	dstBuf[dstOff+OffMaxZ] = fmax(dstBuf[dstOff+OffMaxZ], z)
}


package format

// Alignment utilities for flash partition layouts.
// Auto-placed partitions must start on a flash sector (4KB) boundary.

// AlignUp returns n rounded up to the next multiple of align. align must be a
// power of two. Values that would overflow saturate at the largest aligned
// uint64.
//
// Example:
//
//	AlignUp(1, 8)  = 8
//	AlignUp(8, 8)  = 8
//	AlignUp(9, 16) = 16
func AlignUp(n, align uint64) uint64 {
	mask := align - 1
	if n > ^uint64(0)-mask {
		return ^mask
	}
	return (n + mask) &^ mask
}

// AlignUp4K returns n aligned up to the next 4KB (4096-byte) boundary.
// Used to place a partition directly after the previous one.
//
// Example:
//
//	AlignUp4K(0)    = 0
//	AlignUp4K(1)    = 4096
//	AlignUp4K(4096) = 4096
//	AlignUp4K(4097) = 8192
func AlignUp4K(n uint64) uint64 {
	return AlignUp(n, Alignment)
}

// IsAligned4K reports whether n sits on a 4KB boundary.
func IsAligned4K(n uint64) bool {
	return n&AlignmentMask == 0
}

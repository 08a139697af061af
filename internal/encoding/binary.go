package encoding

// Split64 uint64 to two uint32, most significant half first
func Split64(in uint64) (uint32, uint32) {
	return uint32(in >> 32), uint32(in)
}

// Merge32 two uint32 to uint64
func Merge32(a, b uint32) uint64 {
	return (uint64(a) << 32) + uint64(b)
}

// Handle packs an arena slot index and its generation into a single value.
// Index is stored +1 so that the zero value is never a valid handle.
func Handle(index int, generation uint32) uint64 {
	return Merge32(generation, uint32(index+1))
}

// Unhandle is the inversion of Handle. ok is false for the zero value.
func Unhandle(h uint64) (index int, generation uint32, ok bool) {
	gen, idx := Split64(h)
	if idx == 0 {
		return 0, 0, false
	}
	return int(idx) - 1, gen, true
}

package hexmetrics

// maxUnit is the largest float32 below 1.
const maxUnit float32 = 0.99999994

// hash32 mixes a 32-bit input into a well distributed 32-bit output.
func hash32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

// hash2 hashes 2D integer coordinates with a seed.
func hash2(seed uint32, x, z int32) uint32 {
	h := seed
	h ^= uint32(x) * 0x9e3779b1
	h ^= uint32(z) * 0x85ebca6b
	return hash32(h)
}

// unitFloat maps the top 24 bits of h to [0,1).
func unitFloat(h uint32) float32 {
	return float32(h>>8) / (1 << 24)
}

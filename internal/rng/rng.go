// Package rng provides the deterministic pseudo-random stream used by every
// scoring and spawn decision that must be "random but fair": the same seed
// string always yields the same sequence, so a given day + district +
// activity produces the same layout for everyone.
package rng

// Stream is a deterministic sequence generator. It draws no external
// entropy; the seed string alone fixes the entire sequence.
type Stream struct {
	state uint32
}

// New derives a 32-bit digest from the seed (avalanche-style mixing over
// each byte) and uses it as the stream state. Any seed is valid, including
// the empty string.
func New(seed string) *Stream {
	h := uint32(1779033703) ^ uint32(len(seed))
	for i := 0; i < len(seed); i++ {
		h = (h ^ uint32(seed[i])) * 3432918353
		h = h<<13 | h>>19
	}
	h = (h ^ h>>16) * 2246822507
	h = (h ^ h>>13) * 3266489909
	h ^= h >> 16
	return &Stream{state: h}
}

// Float64 advances the stream and returns the next value in [0, 1).
func (s *Stream) Float64() float64 {
	s.state += 0x6D2B79F5
	t := s.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return float64(t^t>>14) / 4294967296
}

// IntN returns a value in [0, n). n must be positive.
func (s *Stream) IntN(n int) int {
	return int(s.Float64() * float64(n))
}

// Between returns a value in [lo, hi] inclusive.
func (s *Stream) Between(lo, hi int) int {
	return lo + s.IntN(hi-lo+1)
}

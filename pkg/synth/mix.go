package synth

import (
	"math"
)

// Mix sums any number of buffers sample-by-sample. The result has the
// length of the longest input; shorter inputs contribute silence past
// their end.
func Mix(buffers ...[]float64) []float64 {
	var longest int
	for _, buf := range buffers {
		if len(buf) > longest {
			longest = len(buf)
		}
	}

	out := make([]float64, longest)
	for _, buf := range buffers {
		for i, v := range buf {
			out[i] += v
		}
	}
	return out
}

// Concat joins buffers end to end.
func Concat(buffers ...[]float64) []float64 {
	var total int
	for _, buf := range buffers {
		total += len(buf)
	}

	out := make([]float64, 0, total)
	for _, buf := range buffers {
		out = append(out, buf...)
	}
	return out
}

// Gain scales every sample by g and returns the same buffer.
func Gain(buf []float64, g float64) []float64 {
	for i := range buf {
		buf[i] *= g
	}
	return buf
}

// Normalize rescales the buffer so its peak magnitude equals peak. A
// silent buffer is returned unchanged.
func Normalize(buf []float64, peak float64) []float64 {
	var max float64
	for _, v := range buf {
		if a := math.Abs(v); a > max {
			max = a
		}
	}
	if max == 0 {
		return buf
	}
	return Gain(buf, peak/max)
}

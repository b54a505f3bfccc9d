package tfidf

import "math"

// SparseVector is a compressed row: parallel slices sorted by ascending index.
type SparseVector struct {
	Indices []int
	Values  []float64
}

// Len returns the number of non-zero entries.
func (v SparseVector) Len() int { return len(v.Indices) }

// IsZero reports whether the vector has no non-zero entries.
func (v SparseVector) IsZero() bool { return len(v.Indices) == 0 }

// Get returns the weight at index i, or 0.
func (v SparseVector) Get(i int) float64 {
	lo, hi := 0, len(v.Indices)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		switch {
		case v.Indices[mid] == i:
			return v.Values[mid]
		case v.Indices[mid] < i:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return 0
}

// Dot returns the inner product of v and o.
func (v SparseVector) Dot(o SparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(o.Indices) {
		switch {
		case v.Indices[i] == o.Indices[j]:
			sum += v.Values[i] * o.Values[j]
			i++
			j++
		case v.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Norm returns the L2 norm.
func (v SparseVector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Cosine returns the cosine similarity of a and b in [0,1] for non-negative
// vectors. Zero vectors have similarity 0.
func Cosine(a, b SparseVector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	s := a.Dot(b) / (na * nb)
	if s > 1 {
		return 1
	}
	if s < 0 {
		return 0
	}
	return s
}

func (v SparseVector) normalize() {
	n := v.Norm()
	if n == 0 {
		return
	}
	for i := range v.Values {
		v.Values[i] /= n
	}
}

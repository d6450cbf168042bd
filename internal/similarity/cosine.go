package similarity

import (
	"math"
	"slices"
)

// Keys returns the terms of v in ascending order.
func (v Vector) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Norm is the L2 norm of v.
func (v Vector) Norm() float64 {
	return norm(v, v.Keys())
}

func norm(v Vector, keys []string) float64 {
	sum := 0.0
	for _, k := range keys {
		w := v[k]
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Cosine returns the cosine similarity of a and b, or 0 when either vector
// is empty or has a zero norm.
func Cosine(a, b Vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	ak, bk := a.Keys(), b.Keys()
	return cosine(a, b, ak, bk, norm(a, ak), norm(b, bk))
}

// cosine walks the smaller key list so the dot product visits the shared
// terms in the same ascending order whichever argument comes first.
func cosine(a, b Vector, ak, bk []string, na, nb float64) float64 {
	if len(a) == 0 || len(b) == 0 || na == 0 || nb == 0 {
		return 0
	}
	if len(ak) > len(bk) {
		a, b = b, a
		ak = bk
	}

	dot := 0.0
	for _, k := range ak {
		if w, ok := b[k]; ok {
			dot += a[k] * w
		}
	}
	return dot / (na * nb)
}

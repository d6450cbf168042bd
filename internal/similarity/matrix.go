package similarity

// Matrix is a square similarity matrix. CosineMatrix output is symmetric
// with a zero diagonal and values in [0,1].
type Matrix [][]float64

// CosineMatrix computes pairwise cosine similarity between vectors. The
// upper triangle is computed once and mirrored.
func CosineMatrix(vectors []Vector) Matrix {
	n := len(vectors)
	keys := make([][]string, n)
	norms := make([]float64, n)
	for i, v := range vectors {
		keys[i] = v.Keys()
		norms[i] = norm(v, keys[i])
	}

	m := newMatrix(n)
	for i := range n {
		for j := i + 1; j < n; j++ {
			w := cosine(vectors[i], vectors[j], keys[i], keys[j], norms[i], norms[j])
			m[i][j] = w
			m[j][i] = w
		}
	}
	return m
}

// Len returns the number of rows.
func (m Matrix) Len() int { return len(m) }

// Threshold returns a copy of m in which every weight not strictly above t
// is zeroed. A t <= 0 keeps every edge, since weights are never negative.
func (m Matrix) Threshold(t float64) Matrix {
	out := newMatrix(len(m))
	for i, row := range m {
		for j, w := range row {
			if t > 0 && w <= t {
				continue
			}
			out[i][j] = w
		}
	}
	return out
}

// RowSums returns the total outgoing weight of every node.
func (m Matrix) RowSums() []float64 {
	sums := make([]float64, len(m))
	for i, row := range m {
		for _, w := range row {
			sums[i] += w
		}
	}
	return sums
}

func newMatrix(n int) Matrix {
	backing := make([]float64, n*n)
	m := make(Matrix, n)
	for i := range m {
		m[i] = backing[i*n : (i+1)*n : (i+1)*n]
	}
	return m
}

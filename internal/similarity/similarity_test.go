package similarity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTFIDF(t *testing.T) {
	t.Parallel()

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		vectors, sw := BuildTFIDF(nil, nil)
		assert.Empty(t, vectors)
		assert.NotNil(t, vectors)
		assert.True(t, sw.Contains("the"))
	})

	t.Run("smoothed idf", func(t *testing.T) {
		t.Parallel()
		vectors, _ := BuildTFIDF([]string{"apple banana", "apple cherry"}, nil)
		require.Len(t, vectors, 2)

		// apple is in every sentence: ln(3/3)+1.
		assert.InDelta(t, 1.0, vectors[0]["apple"], 1e-12)
		assert.InDelta(t, math.Log(1.5)+1, vectors[0]["banana"], 1e-12)
		assert.InDelta(t, math.Log(1.5)+1, vectors[1]["cherry"], 1e-12)
		assert.NotContains(t, vectors[0], "cherry")
	})

	t.Run("raw term frequency", func(t *testing.T) {
		t.Parallel()
		vectors, _ := BuildTFIDF([]string{"data data science"}, nil)
		require.Len(t, vectors, 1)
		assert.InDelta(t, 2.0, vectors[0]["data"], 1e-12)
		assert.InDelta(t, 1.0, vectors[0]["science"], 1e-12)
	})

	t.Run("fully filtered sentence", func(t *testing.T) {
		t.Parallel()
		vectors, _ := BuildTFIDF([]string{"It is a", "real words here"}, nil)
		require.Len(t, vectors, 2)
		assert.Empty(t, vectors[0])
		assert.NotEmpty(t, vectors[1])
	})

	t.Run("extra stopwords", func(t *testing.T) {
		t.Parallel()
		vectors, sw := BuildTFIDF([]string{"apple banana"}, []string{"Banana"})
		require.Len(t, vectors, 1)
		assert.Equal(t, []string{"apple"}, vectors[0].Keys())
		assert.True(t, sw.Contains("banana"))
	})
}

func TestCosine(t *testing.T) {
	t.Parallel()

	a := Vector{"x": 1, "y": 2}
	b := Vector{"y": 2, "z": 3}

	tests := []struct {
		name string
		a, b Vector
		want float64
	}{
		{name: "identical", a: a, b: Vector{"x": 1, "y": 2}, want: 1},
		{name: "scaled", a: a, b: Vector{"x": 3, "y": 6}, want: 1},
		{name: "disjoint", a: Vector{"x": 1}, b: Vector{"y": 1}, want: 0},
		{name: "partial", a: a, b: b, want: 4 / (math.Sqrt(5) * math.Sqrt(13))},
		{name: "empty left", a: Vector{}, b: a, want: 0},
		{name: "nil right", a: a, b: nil, want: 0},
		{name: "zero norm", a: Vector{"x": 0}, b: Vector{"x": 0}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, Cosine(tt.a, tt.b), 1e-12)
		})
	}
}

func TestCosineSymmetric(t *testing.T) {
	t.Parallel()

	a := Vector{"alpha": 0.3, "beta": 1.7, "gamma": 2.2, "delta": 0.9}
	b := Vector{"beta": 0.4, "delta": 3.1, "omega": 1.1}
	for range 20 {
		assert.Equal(t, Cosine(a, b), Cosine(b, a))
	}
}

func TestVectorNorm(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 5.0, Vector{"a": 3, "b": 4}.Norm(), 1e-12)
	assert.Zero(t, Vector{}.Norm())
}

func TestCosineMatrix(t *testing.T) {
	t.Parallel()

	vectors, _ := BuildTFIDF([]string{
		"machine learning finds patterns",
		"deep learning finds structure",
		"the weather is cold today",
		"",
	}, nil)
	m := CosineMatrix(vectors)

	require.Equal(t, 4, m.Len())
	for i := range m {
		assert.Zero(t, m[i][i])
		for j := range m[i] {
			assert.Equal(t, m[i][j], m[j][i])
			assert.GreaterOrEqual(t, m[i][j], 0.0)
			assert.LessOrEqual(t, m[i][j], 1.0+1e-12)
		}
	}
	assert.Greater(t, m[0][1], 0.0)
	assert.Zero(t, m[0][2])
	assert.Zero(t, m[3][0])
}

func TestCosineMatrixEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, CosineMatrix(nil))
}

func TestMatrixThreshold(t *testing.T) {
	t.Parallel()

	m := Matrix{
		{0, 0.5, 0.2},
		{0.5, 0, 0.9},
		{0.2, 0.9, 0},
	}

	tests := []struct {
		name string
		t    float64
		want Matrix
	}{
		{name: "none", t: 0, want: m},
		{name: "negative", t: -1, want: m},
		{
			name: "equal weight dropped",
			t:    0.5,
			want: Matrix{{0, 0, 0}, {0, 0, 0.9}, {0, 0.9, 0}},
		},
		{
			name: "low edges dropped",
			t:    0.3,
			want: Matrix{{0, 0.5, 0}, {0.5, 0, 0.9}, {0, 0.9, 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, m.Threshold(tt.t))
		})
	}

	assert.InDelta(t, 0.2, m[0][2], 0, "threshold must not mutate the receiver")
}

func TestMatrixRowSums(t *testing.T) {
	t.Parallel()

	m := Matrix{
		{0, 0.5, 0.25},
		{0.5, 0, 0},
		{0.25, 0, 0},
	}
	assert.Equal(t, []float64{0.75, 0.5, 0.25}, m.RowSums())
	assert.Empty(t, Matrix{}.RowSums())
}

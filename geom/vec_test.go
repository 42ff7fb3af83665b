package geom

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEps = 1e-12

func randomVecs(n int, width float64) []Vec {
	vs := make([]Vec, n)
	for i := range vs {
		for j := 0; j < 3; j++ {
			vs[i][j] = (rand.Float64() - 0.5) * width
		}
	}
	return vs
}

func TestArithmetic(t *testing.T) {
	a, b := Vec{1, 2, 3}, Vec{-4, 0.5, 2}

	assert.Equal(t, Vec{-3, 2.5, 5}, a.Add(b))
	assert.Equal(t, Vec{5, 1.5, 1}, a.Sub(b))
	assert.Equal(t, Vec{2, 4, 6}, a.Scale(2))
	assert.Equal(t, Vec{0.5, 1, 1.5}, a.Div(2))
	assert.Equal(t, -4+1+6.0, a.Dot(b))
	assert.Equal(t, 14.0, a.Norm2())

	// Values are never modified in place.
	assert.Equal(t, Vec{1, 2, 3}, a)
}

func TestCross(t *testing.T) {
	table := []struct {
		a, b, out Vec
	}{
		{Vec{1, 0, 0}, Vec{0, 1, 0}, Vec{0, 0, 1}},
		{Vec{0, 1, 0}, Vec{0, 0, 1}, Vec{1, 0, 0}},
		{Vec{0, 0, 1}, Vec{1, 0, 0}, Vec{0, 1, 0}},
		{Vec{0, 1, 0}, Vec{1, 0, 0}, Vec{0, 0, -1}},
		{Vec{2, 2, 2}, Vec{1, 1, 1}, Vec{0, 0, 0}},
	}

	for i, test := range table {
		out := test.a.Cross(test.b)
		if out != test.out {
			t.Errorf("%d) %v x %v = %v, expected %v",
				i+1, test.a, test.b, out, test.out)
		}
	}

	for i, v := range randomVecs(100, 10) {
		w := randomVecs(1, 10)[0]
		c := v.Cross(w)
		if math.Abs(c.Dot(v)) > 1e-9 || math.Abs(c.Dot(w)) > 1e-9 {
			t.Errorf("%d) %v x %v = %v is not orthogonal to its inputs",
				i+1, v, w, c)
		}
	}
}

func TestMagAndDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Vec{3, 4, 0}.Mag(), testEps)
	assert.InDelta(t, 13.0, Vec{3, 4, 12}.Mag(), testEps)
	assert.InDelta(t, 0.6, Vec{0.2, 0.5, 0.5}.Distance(Vec{0.8, 0.5, 0.5}),
		testEps)
	assert.Equal(t, 0.0, Vec{}.Mag())
}

func TestNorm(t *testing.T) {
	for i, v := range randomVecs(100, 10) {
		u, err := v.Norm()
		require.NoError(t, err)
		if math.Abs(u.Mag()-1) > 1e-12 {
			t.Errorf("%d) |norm(%v)| = %g", i+1, v, u.Mag())
		}
		if math.Abs(u.Dot(v)-v.Mag()) > 1e-9 {
			t.Errorf("%d) norm(%v) = %v is not parallel to input", i+1, v, u)
		}
	}
}

func TestNormDegenerate(t *testing.T) {
	u, err := Vec{}.Norm()
	assert.ErrorIs(t, err, ErrDegenerateVector)
	assert.Equal(t, Vec{}, u)
	for i := 0; i < 3; i++ {
		assert.False(t, math.IsNaN(u[i]))
	}
}

func TestMod(t *testing.T) {
	table := []struct {
		v, out Vec
	}{
		{Vec{0.5, 0.5, 0.5}, Vec{0.5, 0.5, 0.5}},
		{Vec{1.25, 0.5, 0.5}, Vec{0.25, 0.5, 0.5}},
		{Vec{-0.25, 0.5, 1.5}, Vec{0.75, 0.5, 0.5}},
		{Vec{0, 1, 0.5}, Vec{0, 1, 0.5}},
	}

	for i, test := range table {
		out := test.v.Mod(1)
		for j := 0; j < 3; j++ {
			if math.Abs(out[j]-test.out[j]) > testEps {
				t.Errorf("%d) %v.Mod(1) = %v, expected %v",
					i+1, test.v, out, test.out)
				break
			}
		}
	}
}

func BenchmarkDistance(b *testing.B) {
	n := 1000
	vs := randomVecs(n, 1)
	sum := 0.0
	for i := 0; i < b.N; i++ {
		sum += vs[i%n].Distance(vs[(i+1)%n])
	}
	_ = sum
}

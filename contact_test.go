package spherepack

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/spherepack/geom"
)

func TestContactTime(t *testing.T) {
	table := []struct {
		pi, pj Particle
		t      float64
		ok     bool
	}{
		// Head-on, no growth.
		{NewParticle(geom.Vec{0.2, 0.5, 0.5}, geom.Vec{0.1, 0, 0}, 0.1, 0),
			NewParticle(geom.Vec{0.8, 0.5, 0.5}, geom.Vec{-0.1, 0, 0}, 0.1, 0),
			2, true},
		// Stationary, growing point particles.
		{NewParticle(geom.Vec{0.25, 0.5, 0.5}, geom.Vec{}, 0, 0.1),
			NewParticle(geom.Vec{0.75, 0.5, 0.5}, geom.Vec{}, 0, 0.1),
			2.5, true},
		// Relative speed equal to the combined growth rate.
		{NewParticle(geom.Vec{0.2, 0.5, 0.5}, geom.Vec{0.1, 0, 0}, 0.1, 0.05),
			NewParticle(geom.Vec{0.8, 0.5, 0.5}, geom.Vec{}, 0.1, 0.05),
			2, true},
		// Moving apart.
		{NewParticle(geom.Vec{0.2, 0.5, 0.5}, geom.Vec{-0.1, 0, 0}, 0.1, 0),
			NewParticle(geom.Vec{0.8, 0.5, 0.5}, geom.Vec{0.1, 0, 0}, 0.1, 0),
			0, false},
		// Passing each other.
		{NewParticle(geom.Vec{0.2, 0.2, 0.5}, geom.Vec{0.1, 0, 0}, 0.05, 0),
			NewParticle(geom.Vec{0.8, 0.8, 0.5}, geom.Vec{-0.1, 0, 0}, 0.05, 0),
			0, false},
		// Identical velocities, no growth.
		{NewParticle(geom.Vec{0.2, 0.5, 0.5}, geom.Vec{0.1, 0, 0}, 0.1, 0),
			NewParticle(geom.Vec{0.8, 0.5, 0.5}, geom.Vec{0.1, 0, 0}, 0.1, 0),
			0, false},
	}

	for i, test := range table {
		tc, ok, overlap := contactTime(test.pi, test.pj)
		if overlap {
			t.Errorf("%d) unexpected overlap", i+1)
		} else if ok != test.ok {
			t.Errorf("%d) expected ok = %v, got %v", i+1, test.ok, ok)
		} else if ok && !almostEq(tc, test.t, testEps) {
			t.Errorf("%d) expected t = %g, got %g", i+1, test.t, tc)
		}
	}
}

func TestSolveContactDegenerate(t *testing.T) {
	tc, err := solveContact(0, 0, 1)
	assert.ErrorIs(t, err, ErrDegenerateQuadratic)
	assert.True(t, math.IsInf(tc, +1))

	tc, err = solveContact(0, -0.5, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, tc, testEps)

	tc, err = solveContact(0, 0.5, 1)
	require.NoError(t, err)
	assert.True(t, math.IsInf(tc, +1))
}

func TestPredictContactInContact(t *testing.T) {
	ps := []Particle{
		NewParticle(geom.Vec{0.4, 0.5, 0.5}, geom.Vec{0.1, 0, 0}, 0.1, 0),
		NewParticle(geom.Vec{0.6, 0.5, 0.5}, geom.Vec{-0.1, 0, 0}, 0.1, 0),
	}
	before := ps[0].Vel.Add(ps[1].Vel)

	ev, corrections := PredictContact(ps)
	assert.True(t, ev.Found)
	assert.True(t, ev.Contact)
	assert.Equal(t, 0.0, ev.Time)
	assert.Equal(t, 1, corrections)

	assert.True(t, vecAlmostEq(geom.Vec{-0.1, 0, 0}, ps[0].Vel, testEps))
	assert.True(t, vecAlmostEq(geom.Vec{0.1, 0, 0}, ps[1].Vel, testEps))
	after := ps[0].Vel.Add(ps[1].Vel)
	assert.True(t, vecAlmostEq(before, after, testEps))

	// Now that they are separating, they are left alone.
	ev, corrections = PredictContact(ps)
	assert.False(t, ev.Found)
	assert.Equal(t, 0, corrections)
	assert.True(t, vecAlmostEq(geom.Vec{-0.1, 0, 0}, ps[0].Vel, testEps))
}

func TestPredictContactEarliest(t *testing.T) {
	ps := []Particle{
		NewParticle(geom.Vec{0.1, 0.1, 0.1}, geom.Vec{}, 0.01, 0),
		NewParticle(geom.Vec{0.2, 0.5, 0.5}, geom.Vec{0.1, 0, 0}, 0.1, 0),
		NewParticle(geom.Vec{0.9, 0.9, 0.9}, geom.Vec{}, 0.01, 0),
		NewParticle(geom.Vec{0.8, 0.5, 0.5}, geom.Vec{-0.1, 0, 0}, 0.1, 0),
	}

	ev, corrections := PredictContact(ps)
	require.True(t, ev.Found)
	assert.False(t, ev.Contact)
	assert.Equal(t, 0, corrections)
	assert.Equal(t, 1, ev.I)
	assert.Equal(t, 3, ev.J)
	assert.InDelta(t, 2.0, ev.Time, testEps)
}

func TestPredictContactTies(t *testing.T) {
	ps := []Particle{
		NewParticle(geom.Vec{-0.3, 0, 0}, geom.Vec{0.1, 0, 0}, 0.05, 0),
		NewParticle(geom.Vec{0, 0, 0}, geom.Vec{}, 0.05, 0),
		NewParticle(geom.Vec{0.3, 0, 0}, geom.Vec{-0.1, 0, 0}, 0.05, 0),
	}

	ev, _ := PredictContact(ps)
	require.True(t, ev.Found)
	assert.Equal(t, 0, ev.I)
	assert.Equal(t, 1, ev.J)
	assert.InDelta(t, 2.0, ev.Time, testEps)
}

func TestPredictContactImages(t *testing.T) {
	ps := []Particle{
		NewParticle(geom.Vec{0.1, 0.5, 0.5}, geom.Vec{-0.1, 0, 0}, 0.05, 0),
		NewParticle(geom.Vec{0.96, 0.5, 0.5}, geom.Vec{0.1, 0, 0}, 0.05, 0),
	}

	ev, _ := PredictContact(ps)
	assert.False(t, ev.Found, "contact found without images")

	GenerateImages(ps, 1)
	require.Equal(t, 0, ps[0].ImageCount())
	require.Equal(t, 1, ps[1].ImageCount())

	ev, _ = PredictContact(ps)
	require.True(t, ev.Found)
	assert.Equal(t, 0, ev.I)
	assert.Equal(t, 1, ev.J)
	assert.InDelta(t, 0.2, ev.Time, testEps)
}

func TestPredictContactImagePairs(t *testing.T) {
	// Particle 0 only crosses the lower x face and particle 1 only crosses
	// the upper y face, so they meet through an image of each.
	ps := []Particle{
		NewParticle(geom.Vec{0.05, 0.17, 0.5}, geom.Vec{-0.1, -0.1, 0}, 0.1, 0),
		NewParticle(geom.Vec{0.85, 0.97, 0.5}, geom.Vec{0.1, 0.1, 0}, 0.1, 0),
	}
	GenerateImages(ps, 1)
	require.Equal(t, 1, ps[0].ImageCount())
	require.Equal(t, 1, ps[1].ImageCount())

	ev, corrections := PredictContact(ps)
	require.True(t, ev.Found)
	assert.False(t, ev.Contact)
	assert.Equal(t, 0, corrections)
	assert.InDelta(t, 1-1/math.Sqrt2, ev.Time, 1e-9)

	// Already overlapping across the same corner.
	ps = []Particle{
		NewParticle(geom.Vec{0.02, 0.11, 0.5}, geom.Vec{-0.1, -0.1, 0}, 0.1, 0),
		NewParticle(geom.Vec{0.89, 0.98, 0.5}, geom.Vec{0.1, 0.1, 0}, 0.1, 0),
	}
	GenerateImages(ps, 1)
	require.Equal(t, 1, ps[0].ImageCount())
	require.Equal(t, 1, ps[1].ImageCount())

	ev, corrections = PredictContact(ps)
	require.True(t, ev.Found)
	assert.True(t, ev.Contact)
	assert.Equal(t, 0.0, ev.Time)
	assert.Equal(t, 1, corrections)
	assert.True(t, vecAlmostEq(geom.Vec{0.1, 0.1, 0}, ps[0].Vel, 1e-12))
	assert.True(t, vecAlmostEq(geom.Vec{-0.1, -0.1, 0}, ps[1].Vel, 1e-12))

	i, j, ok := firstOverlap(ps)
	assert.True(t, ok)
	assert.Equal(t, 0, i)
	assert.Equal(t, 1, j)

	ClearAllImages(ps)
	_, _, ok = firstOverlap(ps)
	assert.False(t, ok)
}

func TestPredictContactNone(t *testing.T) {
	ev, corrections := PredictContact(nil)
	assert.False(t, ev.Found)
	assert.Equal(t, 0, corrections)

	ps := []Particle{NewParticle(geom.Vec{0.5, 0.5, 0.5}, geom.Vec{1, 0, 0}, 0.1, 0.1)}
	ev, _ = PredictContact(ps)
	assert.False(t, ev.Found)
}

func BenchmarkPredictContact(b *testing.B) {
	gen := rand.New(rand.NewSource(1))
	ps, err := RandomParticles(200, &InitParams{
		Width: 1, Radius: 0.01, GrowthRate: 0.01, MaxSpeed: 0.1, Margin: 0.1,
	}, gen)
	if err != nil {
		b.Fatal(err.Error())
	}
	GenerateImages(ps, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		PredictContact(ps)
	}
}

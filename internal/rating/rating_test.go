package rating_test

import (
	"testing"

	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/rating"
	"github.com/stretchr/testify/assert"
)

func TestExpectedScore(t *testing.T) {
	for _, r := range []int{800, 1500, 2200} {
		assert.InDelta(t, 0.5, rating.ExpectedScore(r, r), 1e-9, "equal ratings are a coin flip")
	}

	pairs := [][2]int{{1500, 1700}, {1200, 1900}, {2000, 1400}}
	for _, p := range pairs {
		sum := rating.ExpectedScore(p[0], p[1]) + rating.ExpectedScore(p[1], p[0])
		assert.InDelta(t, 1.0, sum, 1e-9, "expected scores must be complementary")
	}

	assert.Greater(t, rating.ExpectedScore(1800, 1400), 0.5, "the stronger player is favoured")
}

func TestUpdate(t *testing.T) {
	cfg := rating.DefaultConfig()

	tests := []struct {
		name                       string
		eloA, eloB                 int
		provisionalA, provisionalB int
		scoreA                     float64
		wantA, wantB               int
	}{
		{
			name: "equal provisional players, A wins",
			eloA: 1500, eloB: 1500, provisionalA: 0, provisionalB: 0, scoreA: 1,
			wantA: 1520, wantB: 1480,
		},
		{
			name: "equal established players, A wins",
			eloA: 1500, eloB: 1500, provisionalA: 50, provisionalB: 50, scoreA: 1,
			wantA: 1513, wantB: 1487,
		},
		{
			name: "high-rank player loses on reduced K",
			eloA: 1850, eloB: 1850, provisionalA: 30, provisionalB: 30, scoreA: 0,
			wantA: 1842, wantB: 1858,
		},
		{
			name: "draw between equals moves nothing",
			eloA: 1600, eloB: 1600, provisionalA: 20, provisionalB: 20, scoreA: 0.5,
			wantA: 1600, wantB: 1600,
		},
		{
			name: "mixed K factors apply independently",
			eloA: 1500, eloB: 1500, provisionalA: 2, provisionalB: 40, scoreA: 1,
			wantA: 1520, wantB: 1487,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gotA, gotB := cfg.Update(tc.eloA, tc.eloB, tc.provisionalA, tc.provisionalB, tc.scoreA)
			assert.Equal(t, tc.wantA, gotA)
			assert.Equal(t, tc.wantB, gotB)
		})
	}
}

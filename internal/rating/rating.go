package rating

import "math"

// Config holds the K-factor policy knobs for rating updates.
type Config struct {
	ProvisionalThreshold int
	HighRankThreshold    int
	KProvisional         float64
	KHigh                float64
	KRegular             float64
}

// DefaultConfig returns the standard league policy: a player is provisional
// for their first 10 matches, and high-rank play above 1800 uses a damped K.
func DefaultConfig() Config {
	return Config{
		ProvisionalThreshold: 10,
		HighRankThreshold:    1800,
		KProvisional:         40,
		KHigh:                15,
		KRegular:             25,
	}
}

// ExpectedScore returns the probability that a player rated a beats a player
// rated b under the logistic Elo curve.
func ExpectedScore(a, b int) float64 {
	return 1 / (1 + math.Pow(10, float64(b-a)/400))
}

// kFor selects the K-factor for a single player.
func (c Config) kFor(elo, provisionalMatches int) float64 {
	switch {
	case provisionalMatches < c.ProvisionalThreshold:
		return c.KProvisional
	case elo >= c.HighRankThreshold:
		return c.KHigh
	default:
		return c.KRegular
	}
}

// Update computes the post-match ratings for both players. scoreA is side A's
// actual score (1 win, 0.5 draw, 0 loss); side B's is its complement. The
// function is pure: persisting the result is the caller's job.
func (c Config) Update(eloA, eloB, provisionalA, provisionalB int, scoreA float64) (newA, newB int) {
	expectedA := ExpectedScore(eloA, eloB)
	expectedB := ExpectedScore(eloB, eloA)
	scoreB := 1 - scoreA

	newA = eloA + int(math.Round(c.kFor(eloA, provisionalA)*(scoreA-expectedA)))
	newB = eloB + int(math.Round(c.kFor(eloB, provisionalB)*(scoreB-expectedB)))
	return newA, newB
}

package flappy

import (
	"math"
)

// DistanceScore converts a horizontal position into a score. Positions before
// the first pipe score zero.
func DistanceScore(x, firstDistance, spacing float64) int {
	s := math.Round((x - firstDistance) / spacing)
	if s < 0 {
		return 0
	}
	return int(s)
}

func (w *World) updateScore() {
	x := Transform.Get(w.player()).Position.X
	s := DistanceScore(x, w.cfg.Pipes.FirstDistance, w.cfg.Pipes.Spacing)
	if s > w.score.Current {
		w.score.Current = s
	}
}

package engine

import "sort"

const (
	cornerOrderBonus    = 1000
	dangerSquarePenalty = 200
)

// dangerCorner maps each X or C square to the corner it sits next to.
var dangerCorner = map[int]int{
	1: 0, 8: 0, 9: 0,
	6: 7, 15: 7, 14: 7,
	48: 56, 57: 56, 49: 56,
	55: 63, 62: 63, 54: 63,
}

func orderScore(idx int, occupied uint64) float64 {
	score := positionalWeights[idx/BoardSize][idx%BoardSize]
	if cornerMask&(uint64(1)<<idx) != 0 {
		score += cornerOrderBonus
	}
	if corner, ok := dangerCorner[idx]; ok && occupied&(uint64(1)<<corner) == 0 {
		score -= dangerSquarePenalty
	}
	return score
}

// OrderMoves returns moves sorted best-first by a static square score. Ties
// keep their input order.
func OrderMoves(moves []Move, b Board) []Move {
	return orderMoves(moves, b.black|b.white, Move{Row: -1, Col: -1})
}

type scoredMove struct {
	move  Move
	score float64
}

func orderMoves(moves []Move, occupied uint64, hint Move) []Move {
	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		scored[i] = scoredMove{move: m, score: orderScore(m.index(), occupied)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	ordered := make([]Move, len(scored))
	for i := range scored {
		ordered[i] = scored[i].move
	}
	return promoteMove(ordered, hint)
}

// promoteMove moves hint to the front when it is present.
func promoteMove(moves []Move, hint Move) []Move {
	if !hint.IsValid() {
		return moves
	}
	for i, m := range moves {
		if m != hint {
			continue
		}
		if i > 0 {
			copy(moves[1:i+1], moves[:i])
			moves[0] = hint
		}
		break
	}
	return moves
}

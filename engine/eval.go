package engine

import "math/bits"

// ExactScoreFactor scales a final disc margin so that any decided game
// outranks every heuristic score.
const ExactScoreFactor = 1_000_000

type Phase uint8

const (
	PhaseEarly Phase = iota
	PhaseMid
	PhaseLate
)

const (
	earlyPhaseEmpty = 40
	latePhaseEmpty  = 12
)

type PhaseWeights struct {
	Positional float64
	Mobility   float64
	Frontier   float64
	Stability  float64
	Parity     float64
}

var phaseWeights = [...]PhaseWeights{
	PhaseEarly: {Positional: 10, Mobility: 200, Frontier: -50, Stability: 300, Parity: 0},
	PhaseMid:   {Positional: 15, Mobility: 150, Frontier: -30, Stability: 350, Parity: 50},
	PhaseLate:  {Positional: 20, Mobility: 100, Frontier: -10, Stability: 500, Parity: 300},
}

// parityOddSign is applied for the maximizer when an odd number of empty
// cells remain.
const parityOddSign = 1.0

var positionalWeights = [BoardSize][BoardSize]float64{
	{500, -150, 30, 10, 10, 30, -150, 500},
	{-150, -250, 0, 0, 0, 0, -250, -150},
	{30, 0, 1, 2, 2, 1, 0, 30},
	{10, 0, 2, 16, 16, 2, 0, 10},
	{10, 0, 2, 16, 16, 2, 0, 10},
	{30, 0, 1, 2, 2, 1, 0, 30},
	{-150, -250, 0, 0, 0, 0, -250, -150},
	{500, -150, 30, 10, 10, 30, -150, 500},
}

const cornerMask uint64 = 1<<0 | 1<<7 | 1<<56 | 1<<63

func PhaseFor(empty int) Phase {
	switch {
	case empty > earlyPhaseEmpty:
		return PhaseEarly
	case empty > latePhaseEmpty:
		return PhaseMid
	default:
		return PhaseLate
	}
}

func (p Phase) String() string {
	switch p {
	case PhaseEarly:
		return "early"
	case PhaseMid:
		return "mid"
	default:
		return "late"
	}
}

func WeightsFor(p Phase) PhaseWeights {
	return phaseWeights[p]
}

// Evaluate scores b from maximizer's point of view. Positive favors
// maximizer.
func Evaluate(b Board, maximizer PlayerColor) float64 {
	own, opp := b.sides(maximizer)
	return evaluateSides(own, opp)
}

func evaluateSides(own, opp uint64) float64 {
	empty := ^(own | opp)
	ownMoves := legalMask(own, opp)
	oppMoves := legalMask(opp, own)
	if empty == 0 || (ownMoves == 0 && oppMoves == 0) {
		return float64(bits.OnesCount64(own)-bits.OnesCount64(opp)) * ExactScoreFactor
	}

	emptyCount := bits.OnesCount64(empty)
	w := phaseWeights[PhaseFor(emptyCount)]

	score := w.Positional * (positionalSum(own) - positionalSum(opp))
	score += mobilityScore(bits.OnesCount64(ownMoves), bits.OnesCount64(oppMoves), w.Mobility)
	score += w.Frontier * float64(bits.OnesCount64(frontier(own, empty))-bits.OnesCount64(frontier(opp, empty)))
	score += w.Stability * float64(bits.OnesCount64(own&cornerMask)-bits.OnesCount64(opp&cornerMask))
	if emptyCount%2 == 1 {
		score += parityOddSign * w.Parity
	} else {
		score -= parityOddSign * w.Parity
	}
	return score
}

func positionalSum(mask uint64) float64 {
	var sum float64
	for mask != 0 {
		idx := bits.TrailingZeros64(mask)
		sum += positionalWeights[idx/BoardSize][idx%BoardSize]
		mask &= mask - 1
	}
	return sum
}

func mobilityScore(own, opp int, weight float64) float64 {
	score := weight * float64(own-opp) / float64(own+opp+1)
	switch {
	case own == 0 && opp > 0:
		score -= weight / 2
	case opp == 0 && own > 0:
		score += weight / 2
	}
	return score
}

// frontier returns the discs of mask that touch at least one empty cell.
func frontier(mask, empty uint64) uint64 {
	var near uint64
	for _, shift := range directions {
		near |= shift(empty)
	}
	return mask & near
}

package engine

import "math"

var noMove = Move{Row: -1, Col: -1}

// searcher holds the state of one BestMove call. Scores are always from the
// root color's point of view: the root color maximizes, its opponent
// minimizes.
type searcher struct {
	root  PlayerColor
	tt    *TranspositionTable
	stats *SearchStats
}

func newSearcher(root PlayerColor, tt *TranspositionTable, stats *SearchStats) *searcher {
	if stats == nil {
		stats = &SearchStats{}
	}
	return &searcher{root: root, tt: tt, stats: stats}
}

// searchRoot runs one fixed-depth iteration with a full window. prev is
// tried first. Among equal scores the first move searched wins.
func (s *searcher) searchRoot(b Board, depth int, prev Move) (Move, float64, bool) {
	own, opp := b.sides(s.root)
	moves := legalMask(own, opp)
	if moves == 0 {
		return noMove, 0, false
	}
	s.stats.Nodes++
	ordered := orderMoves(movesFromMask(moves), own|opp, prev)

	alpha, beta := math.Inf(-1), math.Inf(1)
	best := math.Inf(-1)
	bestMove := noMove
	for _, m := range ordered {
		nOwn, nOpp := play(own, opp, uint64(1)<<m.index())
		score := s.search(withSides(s.root, nOwn, nOpp), s.root.Opponent(), depth-1, alpha, beta)
		if score > best {
			best = score
			bestMove = m
		}
		if best > alpha {
			alpha = best
		}
	}
	if s.tt.Store(b, s.root, depth, best, TTExact, bestMove) {
		s.stats.TTStores++
	}
	return bestMove, best, true
}

// search is fail-soft alpha-beta. A side without moves passes without
// consuming depth.
func (s *searcher) search(b Board, mover PlayerColor, depth int, alpha, beta float64) float64 {
	s.stats.Nodes++
	own, opp := b.sides(mover)
	moves := legalMask(own, opp)
	if depth <= 0 || b.empty() == 0 || (moves == 0 && legalMask(opp, own) == 0) {
		return Evaluate(b, s.root)
	}
	if moves == 0 {
		return s.search(b, mover.Opponent(), depth, alpha, beta)
	}

	alphaOrig, betaOrig := alpha, beta
	hint := noMove
	if s.tt != nil {
		s.stats.TTProbes++
		if entry, ok := s.tt.Probe(b, mover); ok {
			s.stats.TTHits++
			hint = entry.BestMove
			if entry.Depth >= depth {
				switch entry.Flag {
				case TTExact:
					s.stats.TTCutoffs++
					return entry.Score
				case TTLower:
					alpha = math.Max(alpha, entry.Score)
				case TTUpper:
					beta = math.Min(beta, entry.Score)
				}
				if alpha >= beta {
					s.stats.TTCutoffs++
					s.stats.Cutoffs++
					return entry.Score
				}
			}
		}
	}

	maximizing := mover == s.root
	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}
	bestMove := noMove
	for _, m := range orderMoves(movesFromMask(moves), own|opp, hint) {
		nOwn, nOpp := play(own, opp, uint64(1)<<m.index())
		score := s.search(withSides(mover, nOwn, nOpp), mover.Opponent(), depth-1, alpha, beta)
		if maximizing {
			if score > best {
				best = score
				bestMove = m
			}
			alpha = math.Max(alpha, best)
		} else {
			if score < best {
				best = score
				bestMove = m
			}
			beta = math.Min(beta, best)
		}
		if alpha >= beta {
			s.stats.Cutoffs++
			break
		}
	}

	if s.tt.Store(b, mover, depth, best, ttFlagFor(best, alphaOrig, betaOrig), bestMove) {
		s.stats.TTStores++
	}
	return best
}

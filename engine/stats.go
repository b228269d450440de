package engine

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

type SearchStats struct {
	Nodes           int64
	TTProbes        int64
	TTHits          int64
	TTCutoffs       int64
	TTStores        int64
	Cutoffs         int64
	Start           time.Time
	DepthDurations  []time.Duration
	CompletedDepths int
}

func (s *SearchStats) Elapsed() time.Duration {
	if s == nil {
		return 0
	}
	if !s.Start.IsZero() {
		return time.Since(s.Start)
	}
	var elapsed time.Duration
	for _, d := range s.DepthDurations {
		elapsed += d
	}
	return elapsed
}

func logSearchStats(logger *zap.Logger, color PlayerColor, res Result, tt *TranspositionTable) {
	stats := res.Stats
	if logger == nil || stats == nil {
		return
	}
	elapsed := stats.Elapsed()
	nps := 0.0
	if elapsed > 0 {
		nps = float64(stats.Nodes) / elapsed.Seconds()
	}
	ttHitRate := 0.0
	if stats.TTProbes > 0 {
		ttHitRate = float64(stats.TTHits) * 100.0 / float64(stats.TTProbes)
	}
	ttCutoffRate := 0.0
	if stats.Cutoffs > 0 {
		ttCutoffRate = float64(stats.TTCutoffs) * 100.0 / float64(stats.Cutoffs)
	}
	parts := make([]string, 0, len(stats.DepthDurations))
	for _, d := range stats.DepthDurations {
		parts = append(parts, fmt.Sprintf("%dms", d.Milliseconds()))
	}
	logger.Info("search finished",
		zap.Stringer("color", color),
		zap.Stringer("move", res.Move),
		zap.Float64("score", res.Score),
		zap.Int("depth", res.Depth),
		zap.Int("completed", stats.CompletedDepths),
		zap.Duration("elapsed", elapsed),
		zap.Int64("nodes", stats.Nodes),
		zap.Float64("nps", nps),
		zap.Int("tt_capacity", tt.Capacity()),
		zap.Int64("tt_probe", stats.TTProbes),
		zap.Int64("tt_hit", stats.TTHits),
		zap.Float64("tt_hit_rate", ttHitRate),
		zap.Int64("tt_store", stats.TTStores),
		zap.Int64("cutoffs", stats.Cutoffs),
		zap.Int64("tt_cutoff", stats.TTCutoffs),
		zap.Float64("tt_cutoff_rate", ttCutoffRate),
		zap.String("depth_times", strings.Join(parts, ",")),
	)
}

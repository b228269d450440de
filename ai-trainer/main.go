package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/khodemetamir/Reversi/engine"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const initialElo = 1500

type arenaConfig struct {
	gamesPerPair int
	parallel     int
	tiers        []engine.Difficulty
	seed         int64
	eloK         float64
	openingPlies int
}

type contender struct {
	ID     string
	Config engine.Config
	Elo    float64
	Wins   int
	Losses int
	Draws  int
}

func (c contender) games() int {
	return c.Wins + c.Losses + c.Draws
}

// match is one scheduled game. Indices point into the contender list.
type match struct {
	black   int
	white   int
	opening []engine.Move
	seed    int64
}

type matchResult struct {
	blackDiscs int
	whiteDiscs int
	plies      int
	elapsed    time.Duration
}

// scoreForBlack is 1 for a black win, 0.5 for a draw and 0 for a loss.
func (r matchResult) scoreForBlack() float64 {
	switch {
	case r.blackDiscs > r.whiteDiscs:
		return 1
	case r.blackDiscs < r.whiteDiscs:
		return 0
	default:
		return 0.5
	}
}

func main() {
	development := getenv("ARENA_DEBUG", "") != ""
	logger := buildLogger(development)
	defer func() { _ = logger.Sync() }()

	tiers, err := parseTiers(getenv("ARENA_TIERS", "beginner,easy,medium"))
	if err != nil {
		logger.Fatalw("invalid ARENA_TIERS", "error", err)
	}
	cfg := arenaConfig{
		gamesPerPair: getenvInt("ARENA_GAMES", 10),
		parallel:     getenvInt("ARENA_PARALLEL", runtime.NumCPU()),
		tiers:        tiers,
		seed:         int64(getenvInt("ARENA_SEED", int(time.Now().UnixNano()%math.MaxInt32)+1)),
		eloK:         getenvFloat("ARENA_ELO_K", 20),
		openingPlies: getenvInt("ARENA_OPENING_PLIES", 2),
	}
	if cfg.gamesPerPair%2 != 0 {
		cfg.gamesPerPair++
	}
	if cfg.eloK <= 0 {
		cfg.eloK = 20
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	logger.Infow("arena started",
		"tiers", tiers,
		"games_per_pair", cfg.gamesPerPair,
		"parallel", cfg.parallel,
		"seed", cfg.seed,
	)
	started := time.Now()
	standings, err := runArena(sigCtx, cfg, logger)
	if err != nil {
		logger.Errorw("arena stopped", "error", err)
		os.Exit(1)
	}
	logger.Infow("arena finished", "elapsed", time.Since(started).Round(time.Millisecond))
	printStandings(os.Stdout, standings)
}

func buildLogger(development bool) *zap.SugaredLogger {
	var (
		logger *zap.Logger
		err    error
	)
	if development {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func parseTiers(raw string) ([]engine.Difficulty, error) {
	var tiers []engine.Difficulty
	seen := map[engine.Difficulty]bool{}
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		d, err := engine.ParseDifficulty(part)
		if err != nil {
			return nil, err
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		tiers = append(tiers, d)
	}
	if len(tiers) < 2 {
		return nil, fmt.Errorf("need at least two distinct tiers, got %d", len(tiers))
	}
	return tiers, nil
}

// runArena plays a round robin between the tiers and returns the contenders
// sorted by Elo. Games run in parallel; ratings are updated afterwards in
// schedule order so a seed always yields the same table.
func runArena(ctx context.Context, cfg arenaConfig, logger *zap.SugaredLogger) ([]contender, error) {
	contenders := make([]contender, 0, len(cfg.tiers))
	for _, tier := range cfg.tiers {
		contenders = append(contenders, contender{ID: string(tier), Config: tier.Config(), Elo: initialElo})
	}
	schedule := buildSchedule(len(contenders), cfg.gamesPerPair, cfg.openingPlies, cfg.seed)
	results := make([]matchResult, len(schedule))

	g, gctx := errgroup.WithContext(ctx)
	if cfg.parallel > 0 {
		g.SetLimit(cfg.parallel)
	}
	for i, m := range schedule {
		i, m := i, m
		g.Go(func() error {
			res, err := playGame(gctx, contenders[m.black].Config, contenders[m.white].Config, m)
			if err != nil {
				return fmt.Errorf("game %d (%s vs %s): %w", i, contenders[m.black].ID, contenders[m.white].ID, err)
			}
			results[i] = res
			logger.Debugw("game finished",
				"game", i,
				"black", contenders[m.black].ID,
				"white", contenders[m.white].ID,
				"score", fmt.Sprintf("%d-%d", res.blackDiscs, res.whiteDiscs),
				"plies", res.plies,
				"elapsed", res.elapsed.Round(time.Millisecond),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, m := range schedule {
		score := results[i].scoreForBlack()
		black, white := &contenders[m.black], &contenders[m.white]
		updateElo(black, white, score, cfg.eloK)
		recordResult(black, white, score)
	}
	sortContendersByElo(contenders)
	return contenders, nil
}

// buildSchedule pairs every two contenders gamesPerPair times, swapping
// colors on each game and sharing one random opening per color pair.
func buildSchedule(contenders, gamesPerPair, openingPlies int, seed int64) []match {
	rng := rand.New(rand.NewSource(seed))
	var schedule []match
	for a := 0; a < contenders; a++ {
		for b := a + 1; b < contenders; b++ {
			var opening []engine.Move
			for n := 0; n < gamesPerPair; n++ {
				if n%2 == 0 {
					opening = randomOpening(rng, openingPlies)
				}
				m := match{black: a, white: b, opening: opening, seed: rng.Int63()}
				if n%2 == 1 {
					m.black, m.white = b, a
				}
				schedule = append(schedule, m)
			}
		}
	}
	return schedule
}

// randomOpening plays up to plies random legal moves from the start.
func randomOpening(rng *rand.Rand, plies int) []engine.Move {
	b := engine.NewBoard()
	toMove := engine.PlayerBlack
	opening := make([]engine.Move, 0, plies)
	for len(opening) < plies && !engine.IsTerminal(b) {
		moves := engine.LegalMoves(b, toMove)
		if len(moves) == 0 {
			toMove = toMove.Opponent()
			continue
		}
		m := moves[rng.Intn(len(moves))]
		next, err := engine.ApplyMove(b, m, toMove)
		if err != nil {
			break
		}
		b = next
		opening = append(opening, m)
		toMove = toMove.Opponent()
	}
	return opening
}

// playGame replays the opening and lets both engines finish the game.
func playGame(ctx context.Context, blackCfg, whiteCfg engine.Config, m match) (matchResult, error) {
	started := time.Now()
	rng := rand.New(rand.NewSource(m.seed))
	players := map[engine.PlayerColor]*engine.Engine{
		engine.PlayerBlack: engine.New(blackCfg, engine.WithRand(rand.New(rand.NewSource(rng.Int63())))),
		engine.PlayerWhite: engine.New(whiteCfg, engine.WithRand(rand.New(rand.NewSource(rng.Int63())))),
	}

	b := engine.NewBoard()
	toMove := engine.PlayerBlack
	plies := 0
	for _, mv := range m.opening {
		if !engine.HasLegalMove(b, toMove) {
			toMove = toMove.Opponent()
		}
		next, err := engine.ApplyMove(b, mv, toMove)
		if err != nil {
			return matchResult{}, fmt.Errorf("opening: %w", err)
		}
		b = next
		toMove = toMove.Opponent()
		plies++
	}

	for !engine.IsTerminal(b) {
		if err := ctx.Err(); err != nil {
			return matchResult{}, err
		}
		res, err := players[toMove].BestMove(b, toMove)
		if err != nil {
			return matchResult{}, err
		}
		if res.NoLegalMove() {
			toMove = toMove.Opponent()
			continue
		}
		next, err := engine.ApplyMove(b, res.Move, toMove)
		if err != nil {
			return matchResult{}, err
		}
		b = next
		toMove = toMove.Opponent()
		plies++
	}

	return matchResult{
		blackDiscs: b.Count(engine.PlayerBlack),
		whiteDiscs: b.Count(engine.PlayerWhite),
		plies:      plies,
		elapsed:    time.Since(started),
	}, nil
}

func recordResult(a *contender, b *contender, resultForA float64) {
	switch resultForA {
	case 1:
		a.Wins++
		b.Losses++
	case 0:
		a.Losses++
		b.Wins++
	default:
		a.Draws++
		b.Draws++
	}
}

func sortContendersByElo(list []contender) {
	for i := 0; i < len(list); i++ {
		for j := i + 1; j < len(list); j++ {
			if list[j].Elo > list[i].Elo {
				list[i], list[j] = list[j], list[i]
			}
		}
	}
}

func updateElo(a *contender, b *contender, resultForA float64, k float64) {
	expA := 1.0 / (1.0 + math.Pow(10, (b.Elo-a.Elo)/400.0))
	expB := 1.0 / (1.0 + math.Pow(10, (a.Elo-b.Elo)/400.0))
	a.Elo += k * (resultForA - expA)
	b.Elo += k * ((1.0 - resultForA) - expB)
}

func printStandings(w io.Writer, list []contender) {
	header := color.New(color.Bold)
	leader := color.New(color.FgGreen, color.Bold)
	last := color.New(color.FgRed)

	header.Fprintf(w, "%-4s %-10s %8s %5s %5s %5s %6s\n", "#", "tier", "elo", "W", "L", "D", "games")
	for i, c := range list {
		line := fmt.Sprintf("%-4d %-10s %8.1f %5d %5d %5d %6d\n", i+1, c.ID, c.Elo, c.Wins, c.Losses, c.Draws, c.games())
		switch {
		case i == 0:
			leader.Fprint(w, line)
		case i == len(list)-1:
			last.Fprint(w, line)
		default:
			fmt.Fprint(w, line)
		}
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var parsed int
	if _, err := fmt.Sscanf(value, "%d", &parsed); err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func getenvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var parsed float64
	if _, err := fmt.Sscanf(value, "%f", &parsed); err != nil {
		return fallback
	}
	return parsed
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/domino14/rookery/automatic"
	"github.com/domino14/rookery/board"
	"github.com/domino14/rookery/cache"
	"github.com/domino14/rookery/config"
	"github.com/domino14/rookery/endgame/alphabeta"
	"github.com/domino14/rookery/equity"
	"github.com/domino14/rookery/movegen"
	"github.com/domino14/rookery/shell"
	"github.com/domino14/rookery/zobrist"
)

var (
	GitVersion string
)

const defaultSelfplayPlies = 80

var ErrUnknownOutput = errors.New("unknown output format")

type summaryReport struct {
	Log            string         `yaml:"log"`
	Games          int            `yaml:"games"`
	Results        map[string]int `yaml:"results"`
	MeanPlies      float64        `yaml:"mean-plies"`
	PliesCI95      []float64      `yaml:"plies-ci95"`
	MeanFinalScore float64        `yaml:"mean-final-score"`
}

type rankReport struct {
	Side      string            `yaml:"side"`
	Played    []string          `yaml:"played,omitempty"`
	Depths    []int             `yaml:"depths"`
	BestMoves []string          `yaml:"best-moves"`
	BestScore *float64          `yaml:"best-score"`
	Ranking   alphabeta.Ranking `yaml:"ranking"`
	Position  string            `yaml:"position"`
}

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogging(cfg)
	log.Debug().Str("version", GitVersion).Interface("settings", cfg.AllSettings()).Msg("loaded-config")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, cfg, os.Stdout)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("rookery-failed")
		os.Exit(1)
	}
}

func setupLogging(cfg *config.Config) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	var logger zerolog.Logger
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
}

func run(ctx context.Context, cfg *config.Config, w io.Writer) error {
	if path := cfg.GetString(config.ConfigCPUProfile); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	ev, err := equity.ByName(cfg.GetString(config.ConfigEvaluator))
	if err != nil {
		return err
	}
	switch {
	case cfg.GetBool(config.ConfigShell):
		sc, err := shell.NewShellController(cfg, ev, w)
		if err != nil {
			return err
		}
		return sc.Loop()
	case cfg.GetString(config.ConfigSelfplayLog) != "":
		return selfPlayGames(ctx, cfg, w)
	case cfg.GetInt(config.ConfigSelfplayPlies) > 0:
		return selfPlay(cfg, ev, w)
	}
	return rank(cfg, ev, w)
}

func rank(cfg *config.Config, ev equity.Evaluator, w io.Writer) error {
	depths, err := cfg.DepthSchedule()
	if err != nil {
		return err
	}
	z, err := cache.Load(cfg, zobrist.CacheKey(board.DefaultDim, cfg.GetString(config.ConfigZobristSeed)),
		zobrist.CacheLoadFunc)
	if err != nil {
		return err
	}
	pos := board.NewInitialPosition(z)
	side := board.White

	played := cfg.StringSlice(config.ConfigMoves)
	for _, s := range played {
		m, err := movegen.ParseMove(pos, side, s)
		if err != nil {
			return fmt.Errorf("playing %q: %w", s, err)
		}
		pos.ApplyMove(m)
		side = side.Other()
	}

	solver := &alphabeta.Solver{}
	if err := solver.Init(ev, cfg); err != nil {
		return err
	}
	solver.SetThreads(cfg.GetInt(config.ConfigThreads))
	ranking, err := solver.RankMoves(pos, side, depths, cfg.GetBool(config.ConfigParallel))
	if err != nil {
		return err
	}
	log.Debug().Msg(solver.TranspositionTable().String())

	report := rankReport{
		Side:     side.String(),
		Played:   played,
		Depths:   depths,
		Ranking:  ranking.Sorted(side),
		Position: pos.ToDisplayText(),
	}
	report.BestMoves = lo.Map(ranking.BestMoves(side), func(m *board.Move, _ int) string {
		return m.ShortDescription()
	})
	if best, ok := ranking.Extreme(side); ok {
		report.BestScore = &best
	}

	return writeOutput(w, cfg.GetString(config.ConfigOutput), report, func(w io.Writer) {
		fmt.Fprintln(w, report.Position)
		fmt.Fprintf(w, "%v to move, depths %v\n", report.Side, report.Depths)
		if report.BestScore == nil {
			fmt.Fprintln(w, "no moves")
			return
		}
		for _, rm := range report.Ranking {
			fmt.Fprintf(w, "%-20v %10.3f\n", rm.Move, rm.Score)
		}
		fmt.Fprintf(w, "best: %v (%.3f)\n", strings.Join(report.BestMoves, " "), *report.BestScore)
	})
}

func selfPlay(cfg *config.Config, ev equity.Evaluator, w io.Writer) error {
	r, err := automatic.NewGameRunner(nil, cfg, ev, nil)
	if err != nil {
		return err
	}
	rec, err := r.PlayGame(cfg.GetInt(config.ConfigSelfplayPlies))
	if err != nil {
		return err
	}
	log.Info().Int("plies", len(rec.Plies)).Str("result", rec.Result).
		Uint64("nodes", r.Solver().Nodes()).Msg("game-over")

	return writeOutput(w, cfg.GetString(config.ConfigOutput), rec, func(w io.Writer) {
		for _, p := range rec.Plies {
			fmt.Fprintf(w, "%3d. %-6v %-6v %10.3f\n", p.Ply, p.Side, p.Move, p.Score)
		}
		fmt.Fprintln(w, rec.FinalPosition)
		fmt.Fprintln(w, rec.Result)
	})
}

func selfPlayGames(ctx context.Context, cfg *config.Config, w io.Writer) error {
	plies := cfg.GetInt(config.ConfigSelfplayPlies)
	if plies <= 0 {
		plies = defaultSelfplayPlies
	}
	logfile := cfg.GetString(config.ConfigSelfplayLog)
	done, summary, err := automatic.StartSelfPlayGames(ctx, cfg, cfg.GetInt(config.ConfigSelfplayGames),
		plies, max(1, cfg.GetInt(config.ConfigThreads)), logfile)
	if err != nil {
		return err
	}
	<-done
	log.Info().Str("log", logfile).Object("summary", summary).Msg("self-play-done")

	ciLo, ciHi := summary.LengthInterval(95)
	report := summaryReport{
		Log:            logfile,
		Games:          summary.Games(),
		Results:        summary.Results(),
		MeanPlies:      summary.MeanLength(),
		PliesCI95:      []float64{ciLo, ciHi},
		MeanFinalScore: summary.MeanFinalScore(),
	}
	return writeOutput(w, cfg.GetString(config.ConfigOutput), report, func(w io.Writer) {
		fmt.Fprintf(w, "%d games, log in %v\n", report.Games, report.Log)
		for _, r := range []string{automatic.ResultWhiteWins, automatic.ResultBlackWins,
			automatic.ResultNoMoves, automatic.ResultPlyLimit} {
			fmt.Fprintf(w, "%-12s %d\n", r, report.Results[r])
		}
		fmt.Fprintf(w, "mean plies %.2f (95%% ci %.2f - %.2f), mean final score %.3f\n",
			report.MeanPlies, ciLo, ciHi, report.MeanFinalScore)
		if report.Games > 0 {
			if err := histogram.Fprint(w, summary.LengthHistogram(10), histogram.Linear(40)); err != nil {
				log.Err(err).Msg("printing-histogram")
			}
		}
	})
}

func writeOutput(w io.Writer, format string, v any, text func(io.Writer)) error {
	switch format {
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		text(w)
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownOutput, format)
}

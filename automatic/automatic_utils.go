package automatic

// Data collection for automatic games: many engine-vs-engine games played
// on a few goroutines, with one CSV line per ply.

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/domino14/rookery/config"
	"github.com/domino14/rookery/equity"
	"github.com/domino14/rookery/zobrist"
)

var (
	SelfPlayCounter *expvar.Int
	IsPlaying       *expvar.Int
)

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

func init() {
	SelfPlayCounter = expvar.NewInt("selfPlayCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

type Job struct{}

// StartSelfPlayGames plays numGames games of up to maxPlies each on
// threads goroutines and writes every ply to outputFilename. It returns
// once the games are queued; the returned channel is closed when the log
// file has been written, and the summary is complete from then on.
func StartSelfPlayGames(ctx context.Context, cfg *config.Config, numGames, maxPlies,
	threads int, outputFilename string) (<-chan struct{}, *Summary, error) {

	if IsPlaying.Value() > 0 {
		return nil, nil, ErrAlreadyPlaying
	}
	ev, err := equity.ByName(cfg.GetString(config.ConfigEvaluator))
	if err != nil {
		return nil, nil, err
	}

	runners := make([]*GameRunner, threads)
	logChan := make(chan string, 100)
	for i := range runners {
		// Each runner gets its own tie-break seed so games differ.
		seed := zobrist.SeedFromString(fmt.Sprintf("selfplay-%d", i))
		runners[i], err = NewGameRunner(logChan, cfg, ev, seed)
		if err != nil {
			return nil, nil, err
		}
		runners[i].gameID = i * numGames
	}

	logfile, err := os.Create(outputFilename)
	if err != nil {
		return nil, nil, err
	}
	log.Debug().Int("games", numGames).Int("threads", threads).Msg("starting-self-play")

	SelfPlayCounter.Set(0)
	summary := NewSummary()
	jobs := make(chan Job, 100)
	var wg sync.WaitGroup
	wg.Add(threads)

	for i, r := range runners {
		i, r := i, r
		go func() {
			defer wg.Done()
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for range jobs {
				rec, err := r.PlayGame(maxPlies)
				if err != nil {
					log.Err(err).Int("runner", i).Msg("self-play-game-failed")
					continue
				}
				summary.Add(rec)
				SelfPlayCounter.Add(1)
			}
		}()
	}

	go func() {
	gameLoop:
		for i := 1; i < numGames+1; i++ {
			select {
			case jobs <- Job{}:
			case <-ctx.Done():
				log.Info().Msg("got-stop-signal")
				break gameLoop
			}
		}
		close(jobs)
		wg.Wait()
		log.Info().Object("summary", summary).Msg("all-games-finished")
		close(logChan)
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		logfile.WriteString("gameID,ply,side,move,score,candidates\n")
		for msg := range logChan {
			logfile.WriteString(msg)
		}
		if err := logfile.Close(); err != nil {
			log.Err(err).Msg("closing-log-file")
		}
	}()

	return done, summary, nil
}

package automatic

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/domino14/rookery/config"
	"github.com/domino14/rookery/equity"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigDepthSchedule, []int{1, 2})
	cfg.Set(config.ConfigThreads, 2)
	return cfg
}

func TestPlayGameIsReproducible(t *testing.T) {
	is := is.New(t)
	cfg := testConfig()

	play := func() *GameRecord {
		r, err := NewGameRunner(nil, cfg, equity.NewPositionalEvaluator(), nil)
		is.NoErr(err)
		rec, err := r.PlayGame(6)
		is.NoErr(err)
		return rec
	}
	a := play()
	b := play()
	is.Equal(a, b)
	if a.Result == ResultPlyLimit {
		is.Equal(len(a.Plies), 6)
	}

	is.Equal(a.Plies[0].Side, "white")
	is.Equal(a.Plies[1].Side, "black")
	for _, p := range a.Plies {
		is.True(p.Candidates >= 1)
	}
}

func TestPlayGameLogsPlies(t *testing.T) {
	is := is.New(t)
	logchan := make(chan string, 10)
	r, err := NewGameRunner(logchan, testConfig(), equity.MaterialEvaluator{}, nil)
	is.NoErr(err)

	rec, err := r.PlayGame(3)
	is.NoErr(err)
	close(logchan)

	var lines []string
	for l := range logchan {
		lines = append(lines, l)
	}
	is.Equal(len(lines), 3)
	is.True(strings.HasPrefix(lines[0], "1,1,white,"+rec.Plies[0].Move+","))
	is.Equal(rec.ID, 1)
}

func TestGameRecordYAML(t *testing.T) {
	is := is.New(t)
	r, err := NewGameRunner(nil, testConfig(), equity.MaterialEvaluator{}, nil)
	is.NoErr(err)
	rec, err := r.PlayGame(2)
	is.NoErr(err)

	out, err := yaml.Marshal(rec)
	is.NoErr(err)
	var back GameRecord
	is.NoErr(yaml.Unmarshal(out, &back))
	is.Equal(back.Plies, rec.Plies)
	is.Equal(back.Result, ResultPlyLimit)
	is.True(strings.Contains(string(out), "final-position:"))
}

func TestBadDepthSchedule(t *testing.T) {
	is := is.New(t)
	cfg := testConfig()
	cfg.Set(config.ConfigDepthSchedule, []int{})
	_, err := NewGameRunner(nil, cfg, equity.MaterialEvaluator{}, nil)
	is.True(err != nil)
}

func TestStartSelfPlayGames(t *testing.T) {
	is := is.New(t)
	out := filepath.Join(t.TempDir(), "selfplay.csv")

	done, summary, err := StartSelfPlayGames(context.Background(), testConfig(), 3, 2, 2, out)
	is.NoErr(err)
	<-done

	contents, err := os.ReadFile(out)
	is.NoErr(err)
	lines := strings.Split(strings.TrimSpace(string(contents)), "\n")
	is.Equal(lines[0], "gameID,ply,side,move,score,candidates")
	is.Equal(len(lines), 1+3*2)
	is.Equal(SelfPlayCounter.Value(), int64(3))
	is.Equal(summary.Games(), 3)
	is.Equal(summary.Results()[ResultPlyLimit], 3)
	is.Equal(summary.MeanLength(), 2.0)
	lo, hi := summary.LengthInterval(95)
	is.Equal(lo, 2.0)
	is.Equal(hi, 2.0)
}

func TestSummary(t *testing.T) {
	is := is.New(t)
	s := NewSummary()
	s.Add(&GameRecord{Result: ResultWhiteWins, Plies: []PlyRecord{{Score: 1}, {Score: 3}}})
	s.Add(&GameRecord{Result: ResultNoMoves})
	s.Add(&GameRecord{Result: ResultWhiteWins, Plies: []PlyRecord{{Score: 2}, {Score: 5}, {Score: 7}, {Score: 9}}})

	is.Equal(s.Games(), 3)
	is.Equal(s.Results(), map[string]int{ResultWhiteWins: 2, ResultNoMoves: 1})
	is.Equal(s.MeanLength(), 2.0)
	is.Equal(s.MeanFinalScore(), 6.0)
	lo, hi := s.LengthInterval(95)
	is.True(lo < 2 && hi > 2)

	hist := s.LengthHistogram(2)
	counted := 0
	for _, b := range hist.Buckets {
		counted += b.Count
	}
	is.Equal(counted, 3)
}

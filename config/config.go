package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug             = "debug"
	ConfigDepthSchedule     = "depth-schedule"
	ConfigParallel          = "parallel"
	ConfigThreads           = "threads"
	ConfigZobristSeed       = "zobrist-seed"
	ConfigTTableMemFraction = "ttable-mem-fraction"
	ConfigEvaluator         = "evaluator"
	ConfigSelfplayPlies     = "selfplay-plies"
	ConfigSelfplayGames     = "selfplay-games"
	ConfigSelfplayLog       = "selfplay-log"
	ConfigMoves             = "moves"
	ConfigOutput            = "output"
	ConfigCPUProfile        = "cpu-profile"
	ConfigShell             = "shell"
)

// Config wraps a viper instance. Settings come from, in order of
// precedence: command-line flags, ROOKERY_* environment variables, and
// the defaults below.
type Config struct {
	viper.Viper
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigDepthSchedule, []int{4, 6, 8})
	v.SetDefault(ConfigParallel, false)
	v.SetDefault(ConfigThreads, runtime.NumCPU())
	v.SetDefault(ConfigZobristSeed, "rookery")
	v.SetDefault(ConfigTTableMemFraction, 0.0)
	v.SetDefault(ConfigEvaluator, "positional")
	v.SetDefault(ConfigSelfplayPlies, 0)
	v.SetDefault(ConfigSelfplayGames, 1)
	v.SetDefault(ConfigSelfplayLog, "")
	v.SetDefault(ConfigMoves, []string{})
	v.SetDefault(ConfigOutput, "yaml")
	v.SetDefault(ConfigCPUProfile, "")
	v.SetDefault(ConfigShell, false)
}

// DefaultConfig returns a config with only the defaults set. It does not
// look at flags or the environment.
func DefaultConfig() *Config {
	c := &Config{Viper: *viper.New()}
	setDefaults(&c.Viper)
	return c
}

func (c *Config) Load(args []string) error {
	c.Viper = *viper.New()
	setDefaults(&c.Viper)

	fs := pflag.NewFlagSet("rookery", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.IntSlice(ConfigDepthSchedule, []int{4, 6, 8}, "iterative deepening depth limits, in plies")
	fs.Bool(ConfigParallel, false, "search root moves in parallel")
	fs.Int(ConfigThreads, runtime.NumCPU(), "maximum number of root moves searched at once")
	fs.String(ConfigZobristSeed, "rookery", "seed for the zobrist key table")
	fs.Float64(ConfigTTableMemFraction, 0.0, "fraction of system memory used to pre-size the transposition table")
	fs.String(ConfigEvaluator, "positional", "static evaluator: material, positional or mobility")
	fs.Int(ConfigSelfplayPlies, 0, "if positive, play a self-play game of this many plies")
	fs.Int(ConfigSelfplayGames, 1, "number of self-play games, used with selfplay-log")
	fs.String(ConfigSelfplayLog, "", "play selfplay-games games and write each ply to this CSV file")
	fs.StringSlice(ConfigMoves, nil, "moves played from the initial position before ranking, e.g. e2e4,e7e5")
	fs.String(ConfigOutput, "yaml", "report format: yaml or text")
	fs.String(ConfigCPUProfile, "", "write a cpu profile to this file")
	fs.Bool(ConfigShell, false, "start the interactive shell")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	c.SetEnvPrefix("rookery")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
	return nil
}

// StringSlice reads a list setting. Flags and defaults hold real slices;
// an environment variable holds a comma-separated string.
func (c *Config) StringSlice(key string) []string {
	raw, ok := c.Get(key).(string)
	if !ok {
		return c.GetStringSlice(key)
	}
	var items []string
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			items = append(items, f)
		}
	}
	return items
}

// IntSlice is StringSlice for integer lists.
func (c *Config) IntSlice(key string) ([]int, error) {
	if _, ok := c.Get(key).(string); !ok {
		return c.GetIntSlice(key), nil
	}
	var ints []int
	for _, f := range c.StringSlice(key) {
		i, err := cast.ToIntE(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		ints = append(ints, i)
	}
	return ints, nil
}

// DepthSchedule returns the configured depth limits.
func (c *Config) DepthSchedule() ([]int, error) {
	depths, err := c.IntSlice(ConfigDepthSchedule)
	if err != nil {
		return nil, err
	}
	if len(depths) == 0 {
		return nil, fmt.Errorf("empty %s", ConfigDepthSchedule)
	}
	for _, d := range depths {
		if d < 1 {
			return nil, fmt.Errorf("%s: depth %d must be at least 1", ConfigDepthSchedule, d)
		}
	}
	return depths, nil
}

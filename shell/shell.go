// Package shell is an interactive console for exploring positions: play
// moves, undo them, and ask the engine to rank the candidates.
package shell

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/rookery/board"
	"github.com/domino14/rookery/cache"
	"github.com/domino14/rookery/config"
	"github.com/domino14/rookery/endgame/alphabeta"
	"github.com/domino14/rookery/equity"
	"github.com/domino14/rookery/zobrist"
)

var errExit = errors.New("exit")

type ShellController struct {
	l      *readline.Instance
	out    io.Writer
	config *config.Config

	evaluator equity.Evaluator
	solver    *alphabeta.Solver
	zobrist   *zobrist.Zobrist
	rng       *frand.RNG

	pos     *board.Position
	side    board.Color
	history []snapshot
}

type snapshot struct {
	pos  *board.Position
	side board.Color
	move string
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// NewShellController sets up a controller on the initial position. Output
// goes to out; Loop attaches the terminal.
func NewShellController(cfg *config.Config, ev equity.Evaluator, out io.Writer) (*ShellController, error) {
	sc := &ShellController{config: cfg, evaluator: ev, out: out}
	zseed := cfg.GetString(config.ConfigZobristSeed)
	z, err := cache.Load(cfg, zobrist.CacheKey(board.DefaultDim, zseed), zobrist.CacheLoadFunc)
	if err != nil {
		return nil, err
	}
	sc.zobrist = z
	sc.rng = frand.NewCustom(zobrist.SeedFromString(zseed+"/shell"), 1024, 12)

	sc.solver = &alphabeta.Solver{}
	if err := sc.solver.Init(ev, cfg); err != nil {
		return nil, err
	}
	sc.solver.SetThreads(cfg.GetInt(config.ConfigThreads))
	sc.newGame()
	return sc, nil
}

func (sc *ShellController) newGame() {
	sc.pos = board.NewInitialPosition(sc.zobrist)
	sc.side = board.White
	sc.history = nil
}

func (sc *ShellController) showMessage(msg string) {
	io.WriteString(sc.out, msg)
	io.WriteString(sc.out, "\n")
}

func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errors.New("no command")
	}
	cmd := &shellcmd{cmd: fields[0], options: CmdOptions{}}
	for i := 1; i < len(fields); i++ {
		f := fields[i]
		if strings.HasPrefix(f, "-") && len(f) > 1 {
			if i+1 >= len(fields) {
				return nil, fmt.Errorf("option %v needs a value", f)
			}
			key := f[1:]
			cmd.options[key] = append(cmd.options[key], fields[i+1])
			i++
			continue
		}
		cmd.args = append(cmd.args, f)
	}
	return cmd, nil
}

// Execute runs a single command line and writes its response.
func (sc *ShellController) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	cmd, err := extractFields(line)
	if err != nil {
		return err
	}
	resp, err := sc.dispatch(cmd)
	if err != nil {
		return err
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
	return nil
}

func (sc *ShellController) dispatch(cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "exit", "quit":
		return nil, errExit
	case "help":
		return sc.help(cmd)
	case "new":
		return sc.newCmd(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "moves":
		return sc.moves(cmd)
	case "move", "m":
		return sc.move(cmd)
	case "undo", "u":
		return sc.undo(cmd)
	case "history":
		return sc.historyCmd(cmd)
	case "eval":
		return sc.eval(cmd)
	case "rank":
		return sc.rank(cmd)
	case "best":
		return sc.best(cmd)
	case "play":
		return sc.play(cmd)
	case "ttable":
		return msg(sc.solver.TranspositionTable().String()), nil
	}
	return nil, fmt.Errorf("unknown command %q, try help", cmd.cmd)
}

// Loop reads commands from the terminal until exit or end of input.
func (sc *ShellController) Loop() error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mrookery>\033[0m ",
		HistoryFile:     "/tmp/rookery_readline.tmp",
		AutoComplete:    NewShellCompleter(),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return err
	}
	sc.l = l
	sc.out = l.Stdout()
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		err = sc.Execute(line)
		if errors.Is(err, errExit) {
			break
		}
		if err != nil {
			log.Error().Err(err).Msg("")
		}
	}
	log.Debug().Msg("exiting-readline-loop")
	return nil
}

package shell

import (
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/rookery/board"
	"github.com/domino14/rookery/movegen"
)

//go:embed helptext/usage.txt
var usageText string

var errGameOver = errors.New("a king has been captured, start a new game or undo")

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) Bool(key string) bool {
	v := c[key]
	if len(v) == 0 {
		return false
	}
	return strings.ToLower(v[0]) == "true"
}

// IntList parses a comma-separated option such as -depths 2,4,6.
func (c CmdOptions) IntList(key string) ([]int, error) {
	v := c.String(key)
	if v == "" {
		return nil, nil
	}
	var ints []int
	for _, f := range strings.Split(v, ",") {
		i, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("-%s: %w", key, err)
		}
		ints = append(ints, i)
	}
	return ints, nil
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	return msg(strings.TrimRight(usageText, "\n")), nil
}

func (sc *ShellController) newCmd(cmd *shellcmd) (*Response, error) {
	sc.newGame()
	return msg("new game, white to move"), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	text := sc.pos.ToDisplayText()
	switch {
	case sc.pos.KingTakenFor(board.Black):
		text += "\nwhite wins"
	case sc.pos.KingTakenFor(board.White):
		text += "\nblack wins"
	default:
		text += fmt.Sprintf("\n%v to move", sc.side)
	}
	return msg(text), nil
}

func descriptions(moves []*board.Move) string {
	return strings.Join(lo.Map(moves, func(m *board.Move, _ int) string {
		return m.ShortDescription()
	}), " ")
}

func (sc *ShellController) moves(cmd *shellcmd) (*Response, error) {
	var moves []*board.Move
	if len(cmd.args) > 0 {
		c, err := board.CoordsFromString(cmd.args[0])
		if err != nil {
			return nil, err
		}
		if !sc.pos.InBounds(c) {
			return nil, fmt.Errorf("%v is off the board", c)
		}
		moves = movegen.MovesForSquare(sc.pos, c)
	} else {
		moves = movegen.GenerateMoves(sc.pos, sc.side)
	}
	return msg(fmt.Sprintf("%d moves: %s", len(moves), descriptions(moves))), nil
}

func (sc *ShellController) apply(m *board.Move) {
	sc.history = append(sc.history, snapshot{pos: sc.pos.Copy(), side: sc.side, move: m.ShortDescription()})
	sc.pos.ApplyMove(m)
	sc.side = sc.side.Other()
}

func (sc *ShellController) move(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("move needs at least one move, e.g. move e2e4")
	}
	for _, s := range cmd.args {
		if sc.pos.KingTaken() {
			return nil, errGameOver
		}
		m, err := movegen.ParseMove(sc.pos, sc.side, s)
		if err != nil {
			return nil, err
		}
		sc.apply(m)
	}
	return sc.show(cmd)
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if len(sc.history) == 0 {
		return nil, errors.New("nothing to undo")
	}
	last := sc.history[len(sc.history)-1]
	sc.history = sc.history[:len(sc.history)-1]
	sc.pos = last.pos
	sc.side = last.side
	return msg("undid " + last.move), nil
}

func (sc *ShellController) historyCmd(cmd *shellcmd) (*Response, error) {
	var sb strings.Builder
	for i, s := range sc.history {
		if i%2 == 0 {
			if i > 0 {
				sb.WriteString("\n")
			}
			fmt.Fprintf(&sb, "%d.", i/2+1)
		}
		sb.WriteString(" " + s.move)
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) eval(cmd *shellcmd) (*Response, error) {
	return msg(fmt.Sprintf("%.3f", sc.evaluator.Evaluate(sc.pos))), nil
}

func (sc *ShellController) depths(cmd *shellcmd) ([]int, error) {
	depths, err := cmd.options.IntList("depths")
	if err != nil {
		return nil, err
	}
	if depths == nil {
		return sc.config.DepthSchedule()
	}
	for _, d := range depths {
		if d < 1 {
			return nil, fmt.Errorf("depth %d must be at least 1", d)
		}
	}
	return depths, nil
}

func (sc *ShellController) rank(cmd *shellcmd) (*Response, error) {
	if sc.pos.KingTaken() {
		return nil, errGameOver
	}
	depths, err := sc.depths(cmd)
	if err != nil {
		return nil, err
	}
	ranking, err := sc.solver.RankMoves(sc.pos, sc.side, depths, cmd.options.Bool("parallel"))
	if err != nil {
		return nil, err
	}
	if len(ranking) == 0 {
		return msg("no moves"), nil
	}
	var sb strings.Builder
	sb.WriteString("     Move       Score\n")
	for i, rm := range ranking.Sorted(sc.side) {
		fmt.Fprintf(&sb, "%3d: %-10s %.3f\n", i+1, rm.Move.ShortDescription(), rm.Score)
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) best(cmd *shellcmd) (*Response, error) {
	if sc.pos.KingTaken() {
		return nil, errGameOver
	}
	depths, err := sc.depths(cmd)
	if err != nil {
		return nil, err
	}
	moves, score, ok, err := sc.solver.BestMoves(sc.pos, sc.side, depths, cmd.options.Bool("parallel"))
	if err != nil {
		return nil, err
	}
	if !ok {
		return msg("no moves"), nil
	}
	return msg(fmt.Sprintf("best: %s (%.3f)", descriptions(moves), score)), nil
}

// play has the engine pick one of its best moves and play it.
func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.pos.KingTaken() {
		return nil, errGameOver
	}
	depths, err := sc.depths(cmd)
	if err != nil {
		return nil, err
	}
	moves, score, ok, err := sc.solver.BestMoves(sc.pos, sc.side, depths, cmd.options.Bool("parallel"))
	if err != nil {
		return nil, err
	}
	if !ok {
		return msg("no moves"), nil
	}
	m := moves[sc.rng.Intn(len(moves))]
	sc.apply(m)
	resp, _ := sc.show(cmd)
	return msg(fmt.Sprintf("played %s (%.3f)\n%s", m.ShortDescription(), score, resp.message)), nil
}

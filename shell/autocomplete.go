package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

var commandNames = []string{
	"new", "show", "moves", "move", "undo", "history", "eval",
	"rank", "best", "play", "ttable", "help", "exit",
}

var commandOptions = map[string][]string{
	"rank": {"-depths", "-parallel"},
	"best": {"-depths", "-parallel"},
	"play": {"-depths", "-parallel"},
}

var boolValues = []string{"true", "false"}

// ShellCompleter completes command names, their options and boolean
// option values.
type ShellCompleter struct{}

func NewShellCompleter() *ShellCompleter {
	return &ShellCompleter{}
}

// Do implements the readline.AutoComplete interface.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string
	switch {
	case len(fields) == 0 || (len(fields) == 1 && !endsWithSpace):
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	default:
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		last := fields[len(fields)-1]
		if !endsWithSpace && len(fields) > 1 {
			last = fields[len(fields)-2]
		}
		if last == "-parallel" {
			completions = boolValues
		} else {
			completions = commandOptions[fields[0]]
		}
	}

	var out [][]rune
	for _, cand := range completions {
		if strings.HasPrefix(cand, prefix) {
			out = append(out, []rune(cand[len(prefix):]+" "))
		}
	}
	return out, len([]rune(prefix))
}

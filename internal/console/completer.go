package console

import (
	"sort"
	"strings"

	"github.com/chzyer/readline"

	"k9console/pkg/consoletypes"
)

// Completer provides tab completion over the console registries. The first
// word completes to command names, later words to "param=" names of that
// command's schema. Completion only helps typing; lookup stays exact.
type Completer struct {
	console *Console
}

var _ readline.AutoCompleter = (*Completer)(nil)

// NewCompleter creates a completer for c.
func NewCompleter(c *Console) *Completer {
	return &Completer{console: c}
}

// Do implements the readline.AutoCompleter interface. It returns the suffixes
// that complete the word under the cursor and the length of that word.
func (a *Completer) Do(line []rune, pos int) (newLine [][]rune, offset int) {
	if pos > len(line) {
		pos = len(line)
	}
	before := string(line[:pos])

	wordStart := strings.LastIndexAny(before, " \t") + 1
	currentWord := before[wordStart:]
	previous := strings.Fields(before[:wordStart])

	var candidates []string
	if len(previous) == 0 {
		candidates = a.console.commands.Names()
	} else {
		candidates = a.argumentCandidates(previous[0], previous[1:], currentWord)
	}

	var suggestions [][]rune
	for _, candidate := range candidates {
		if strings.HasPrefix(candidate, currentWord) && candidate != currentWord {
			suggestions = append(suggestions, []rune(strings.TrimPrefix(candidate, currentWord)))
		}
	}
	return suggestions, len([]rune(currentWord))
}

func (a *Completer) argumentCandidates(command string, given []string, currentWord string) []string {
	// After "name=" complete the value where the value set is known.
	if key, _, named := strings.Cut(currentWord, "="); named {
		return prefixed(key+"=", a.valueCandidates(command, key))
	}

	entry, exists := a.console.commands.Get(command)
	if !exists {
		return nil
	}

	used := make(map[string]bool)
	for _, tok := range given {
		if key, _, named := strings.Cut(tok, "="); named {
			used[key] = true
		}
	}

	var candidates []string
	for _, p := range entry.Schema.Params() {
		if !used[p.Name] {
			candidates = append(candidates, p.Name+"=")
		}
	}
	if len(given) == 0 {
		candidates = append(candidates, a.valueCandidates(command, firstParam(entry.Schema.Params()))...)
	}
	sort.Strings(candidates)
	return candidates
}

func (a *Completer) valueCandidates(command, param string) []string {
	switch {
	case command == "help" && param == "command":
		return a.console.commands.Names()
	case command == "toggle_window" && param == "name":
		return a.console.windows.Names()
	case param == "open":
		return []string{"false", "true"}
	default:
		return nil
	}
}

func firstParam(params []consoletypes.Param) string {
	if len(params) == 0 {
		return ""
	}
	return params[0].Name
}

func prefixed(prefix string, values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = prefix + v
	}
	return out
}

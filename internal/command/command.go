// Package command parses the slash commands typed into the TUI command bar.
package command

import (
	"errors"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Name identifies a command.
type Name string

const (
	Help    Name = "help"
	Restart Name = "restart"
	Quit    Name = "quit"
	Journal Name = "journal"
	Pause   Name = "pause"
)

var ErrEmpty = errors.New("empty command")

// Def describes one command and the words it answers to.
type Def struct {
	Name    Name
	Aliases []string
	Usage   string
}

// Registry resolves typed input to command definitions.
type Registry struct {
	defs    []Def
	phrases map[string]Name // alias or canonical name -> command
}

func NewRegistry(defs ...Def) *Registry {
	r := &Registry{phrases: make(map[string]Name)}
	for _, d := range defs {
		r.Register(d)
	}
	return r
}

func (r *Registry) Register(d Def) {
	r.defs = append(r.defs, d)
	r.phrases[string(d.Name)] = d.Name
	for _, a := range d.Aliases {
		r.phrases[strings.ToLower(a)] = d.Name
	}
}

func (r *Registry) Defs() []Def {
	return r.defs
}

// UnknownError is returned for input that matches no command. Suggestions
// holds close matches, best first.
type UnknownError struct {
	Input       string
	Suggestions []Name
}

func (e *UnknownError) Error() string {
	if len(e.Suggestions) == 0 {
		return "unknown command: /" + e.Input
	}
	return "unknown command: /" + e.Input + " (did you mean /" + string(e.Suggestions[0]) + "?)"
}

// Parse resolves input such as "/restart" or "rest" to a command. Exact
// names and aliases win, then a unique prefix; anything else is an
// *UnknownError carrying fuzzy suggestions.
func (r *Registry) Parse(input string) (Name, error) {
	in := normalize(input)
	if in == "" {
		return "", ErrEmpty
	}
	if name, ok := r.phrases[in]; ok {
		return name, nil
	}

	var prefixed []Name
	seen := map[Name]bool{}
	for phrase, name := range r.phrases {
		if len(in) >= 2 && strings.HasPrefix(phrase, in) && !seen[name] {
			seen[name] = true
			prefixed = append(prefixed, name)
		}
	}
	if len(prefixed) == 1 {
		return prefixed[0], nil
	}

	return "", &UnknownError{Input: in, Suggestions: r.suggest(in)}
}

type candidate struct {
	name Name
	dist int
}

func (r *Registry) suggest(in string) []Name {
	best := map[Name]int{}
	for phrase, name := range r.phrases {
		dist := levenshtein.ComputeDistance(in, phrase)
		if dist > distanceLimit(len(phrase)) {
			continue
		}
		if d, ok := best[name]; !ok || dist < d {
			best[name] = dist
		}
	}

	cands := make([]candidate, 0, len(best))
	for name, dist := range best {
		cands = append(cands, candidate{name, dist})
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist == cands[j].dist {
			return cands[i].name < cands[j].name
		}
		return cands[i].dist < cands[j].dist
	})

	out := make([]Name, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.name)
	}
	return out
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func normalize(input string) string {
	in := strings.ToLower(strings.TrimSpace(input))
	in = strings.TrimPrefix(in, "/")
	return strings.Join(strings.Fields(in), " ")
}

// Default returns the commands understood by the game's command bar.
func Default() *Registry {
	return NewRegistry(
		Def{Name: Help, Aliases: []string{"h", "?", "keys"}, Usage: "show controls"},
		Def{Name: Restart, Aliases: []string{"new", "reset"}, Usage: "start a new game"},
		Def{Name: Quit, Aliases: []string{"q", "exit"}, Usage: "leave the game"},
		Def{Name: Journal, Aliases: []string{"log", "history"}, Usage: "show this run's decisions"},
		Def{Name: Pause, Aliases: []string{"p", "resume"}, Usage: "pause or resume the season clock"},
	)
}

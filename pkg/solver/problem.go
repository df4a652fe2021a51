package solver

import (
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/statesearch/pkg/errors"
)

// Problem is the TOML problem file layout:
//
//	domain      = "slidingtile"
//	strategy    = "astar"
//	start       = "2,4,3,7,1,6,5,_,8"
//	goal        = "1,2,3,4,5,6,7,8,_"
//	depth_limit = 10
//	heuristic   = "manhattan"
//	player      = "X"
//	timeout     = "30s"
type Problem struct {
	Domain      string        `toml:"domain"`
	Strategy    string        `toml:"strategy"`
	Start       string        `toml:"start"`
	Goal        string        `toml:"goal"`
	DepthLimit  int           `toml:"depth_limit"`
	Heuristic   string        `toml:"heuristic"`
	Player      string        `toml:"player"`
	Timeout     time.Duration `toml:"timeout"`
	MaxExpanded int           `toml:"max_expanded"`
}

// LoadProblem reads a problem file. Unknown keys are rejected so typos do
// not silently fall back to defaults.
func LoadProblem(path string) (Options, error) {
	var p Problem
	md, err := toml.DecodeFile(path, &p)
	if err != nil {
		return Options{}, errs.Wrap(errs.ErrCodeInvalidProblemFile, err, "read %s", path)
	}
	return p.options(md)
}

// ParseProblem is LoadProblem for in-memory documents.
func ParseProblem(doc string) (Options, error) {
	var p Problem
	md, err := toml.Decode(doc, &p)
	if err != nil {
		return Options{}, errs.Wrap(errs.ErrCodeInvalidProblemFile, err, "parse problem")
	}
	return p.options(md)
}

func (p Problem) options(md toml.MetaData) (Options, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Options{}, errs.New(errs.ErrCodeInvalidProblemFile, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return Options{
		Domain:      p.Domain,
		Strategy:    p.Strategy,
		Start:       p.Start,
		Goal:        p.Goal,
		DepthLimit:  p.DepthLimit,
		Heuristic:   p.Heuristic,
		Player:      p.Player,
		Timeout:     p.Timeout,
		MaxExpanded: p.MaxExpanded,
	}, nil
}

package solver

import (
	"strings"
	"time"

	errs "github.com/matzehuels/statesearch/pkg/errors"
	"github.com/matzehuels/statesearch/pkg/puzzle/slidingtile"
	"github.com/matzehuels/statesearch/pkg/puzzle/tictactoe"
	"github.com/matzehuels/statesearch/pkg/search"
)

// Domain names.
const (
	DomainSlidingTile = "slidingtile"
	DomainTicTacToe   = "tictactoe"
)

const (
	// DefaultStrategy is used when Options.Strategy is empty.
	DefaultStrategy = "astar"

	// DefaultTimeout bounds a single search.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxExpanded bounds the number of expansions of a single search.
	// Without a visited set the tree grows by up to four nodes per expansion
	// on the 8-puzzle, so this also caps memory.
	DefaultMaxExpanded = 1_000_000

	// DefaultTreeLimit is the number of tree nodes exported when Options.Tree
	// is set. Nodes on the solution path are always included.
	DefaultTreeLimit = 1000

	// DemoStart is the sliding-tile start used when none is given.
	DemoStart = "_,2,3,1,4,6,7,5,8"

	// DefaultTicTacToeGoal asks for X to own the top row.
	DefaultTicTacToeGoal = "X,X,X,?,?,?,?,?,?"
)

// Options describes one solve request.
type Options struct {
	Domain     string `json:"domain"`
	Strategy   string `json:"strategy"`
	Start      string `json:"start"`
	Goal       string `json:"goal,omitempty"`
	DepthLimit int    `json:"depth_limit,omitempty"`
	Heuristic  string `json:"heuristic,omitempty"` // slidingtile: manhattan or misplaced
	Player     string `json:"player,omitempty"`    // tictactoe: symbol to move first

	Timeout     time.Duration `json:"-"`
	MaxExpanded int           `json:"max_expanded,omitempty"`

	// Tree exports up to TreeLimit search tree nodes in the result.
	Tree      bool `json:"tree,omitempty"`
	TreeLimit int  `json:"tree_limit,omitempty"`

	// Refresh bypasses the cache lookup. The fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	strategy search.Strategy
}

// ValidateAndSetDefaults normalises every field and fills in defaults.
// Returned errors carry a pkg/errors code.
func (o *Options) ValidateAndSetDefaults() error {
	o.Domain = strings.ToLower(strings.TrimSpace(o.Domain))
	if o.Domain == "" {
		o.Domain = DomainSlidingTile
	}
	if err := errs.ValidateDomainName(o.Domain); err != nil {
		return err
	}

	if strings.TrimSpace(o.Strategy) == "" {
		o.Strategy = DefaultStrategy
	}
	if err := errs.ValidateStrategyName(o.Strategy); err != nil {
		return err
	}
	s, err := search.ParseStrategy(o.Strategy)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidStrategy, err, "unknown strategy %q", o.Strategy)
	}
	o.strategy = s
	o.Strategy = s.String()

	if err := errs.ValidateDepthLimit(o.DepthLimit); err != nil {
		return err
	}
	if o.DepthLimit == 0 {
		o.DepthLimit = search.DefaultDepthLimit
	}
	if o.strategy != search.DepthLimited {
		o.DepthLimit = 0
	}

	switch o.Domain {
	case DomainSlidingTile:
		if o.Start == "" {
			o.Start = DemoStart
		}
		if o.Goal == "" {
			o.Goal = slidingtile.Goal().Compact()
		}
		m, err := slidingtile.ParseMetric(o.Heuristic)
		if err != nil {
			return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid heuristic")
		}
		o.Heuristic = m.String()
		o.Player = ""
	case DomainTicTacToe:
		if o.Start == "" {
			o.Start = tictactoe.NewGame().Compact()
		}
		if o.Goal == "" {
			o.Goal = DefaultTicTacToeGoal
		}
		p, err := tictactoe.ParsePlayer(o.Player)
		if err != nil {
			return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid player")
		}
		o.Player = string(p)
		o.Heuristic = ""
	}
	if err := errs.ValidateBoardText(o.Start); err != nil {
		return err
	}
	if err := errs.ValidateBoardText(o.Goal); err != nil {
		return err
	}

	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MaxExpanded <= 0 {
		o.MaxExpanded = DefaultMaxExpanded
	}
	if o.TreeLimit <= 0 {
		o.TreeLimit = DefaultTreeLimit
	}
	return nil
}

package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/statesearch/pkg/solver"
)

// problemFlags are the flags describing one search problem. Flags given on
// the command line override values from --problem.
type problemFlags struct {
	problem     string
	domain      string
	strategy    string
	start       string
	goal        string
	depthLimit  int
	heuristic   string
	player      string
	timeout     time.Duration
	maxExpanded int
	refresh     bool
}

func (f *problemFlags) register(cmd *cobra.Command, withStrategy bool) {
	fl := cmd.Flags()
	fl.StringVarP(&f.problem, "problem", "p", "", "TOML problem file")
	fl.StringVarP(&f.domain, "domain", "d", "", "puzzle domain: slidingtile or tictactoe (default slidingtile)")
	if withStrategy {
		fl.StringVarP(&f.strategy, "strategy", "s", "", "search strategy (default astar)")
	}
	fl.StringVar(&f.start, "start", "", "start board, e.g. 2,4,3,7,1,6,5,_,8")
	fl.StringVar(&f.goal, "goal", "", "goal board; ? matches any cell")
	fl.IntVar(&f.depthLimit, "depth-limit", 0, "depth bound for depth-limited search (default 10)")
	fl.StringVar(&f.heuristic, "heuristic", "", "slidingtile heuristic: manhattan or misplaced")
	fl.StringVar(&f.player, "player", "", "tictactoe symbol to move first: X or O")
	fl.DurationVar(&f.timeout, "timeout", 0, "search timeout (default 30s)")
	fl.IntVar(&f.maxExpanded, "max-expanded", 0, "stop after this many expansions (default 1000000)")
	fl.BoolVar(&f.refresh, "refresh", false, "ignore cached results")
}

// options merges the problem file with the flags set on cmd.
func (f *problemFlags) options(cmd *cobra.Command) (solver.Options, error) {
	var opts solver.Options
	if f.problem != "" {
		loaded, err := solver.LoadProblem(f.problem)
		if err != nil {
			return opts, err
		}
		opts = loaded
	}

	set := cmd.Flags().Changed
	if set("domain") {
		opts.Domain = f.domain
	}
	if set("strategy") {
		opts.Strategy = f.strategy
	}
	if set("start") {
		opts.Start = f.start
	}
	if set("goal") {
		opts.Goal = f.goal
	}
	if set("depth-limit") {
		opts.DepthLimit = f.depthLimit
	}
	if set("heuristic") {
		opts.Heuristic = f.heuristic
	}
	if set("player") {
		opts.Player = f.player
	}
	if set("timeout") {
		opts.Timeout = f.timeout
	}
	if set("max-expanded") {
		opts.MaxExpanded = f.maxExpanded
	}
	opts.Refresh = f.refresh
	return opts, nil
}

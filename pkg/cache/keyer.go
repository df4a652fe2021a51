package cache

// keyVersion is bumped whenever the encoding of cached results changes.
const keyVersion = 2

// SolutionKeyOpts lists everything that influences a solver result.
type SolutionKeyOpts struct {
	Domain     string
	Strategy   string
	Start      string
	Goal       string
	DepthLimit int
	Heuristic  string
	Player     string
	Tree       bool
	TreeLimit  int // only meaningful with Tree
}

// Keyer builds cache keys.
type Keyer interface {
	SolutionKey(opts SolutionKeyOpts) string
}

// DefaultKeyer hashes options into "solution:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SolutionKey returns the key for one solver request.
func (DefaultKeyer) SolutionKey(opts SolutionKeyOpts) string {
	return hashKey("solution", keyVersion, opts)
}

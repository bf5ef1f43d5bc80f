package selector

import "github.com/ramereth/dep-selector/selector/fd"

// Solve finalizes the problem (if it hasn't been already) and runs restart
// branch-and-bound to find the lexicographically optimal assignment: each
// time the search finds a feasible, complete solution, it is retained and
// the search restarts with the lex-improving constraint from lex.go
// applied against it. Search ends when a restart fails to find any
// further solution; the last retained solution is then lex-optimal.
//
// Solve returns InfeasibleError if no solution exists at all. It may be
// called more than once per Problem - a later call returns the first
// call's result without re-running search.
func (p *Problem) Solve() error {
	if p.solved {
		if p.solution == nil {
			return &InfeasibleError{}
		}
		return nil
	}
	if err := p.Finalize(); err != nil {
		return err
	}

	restarts := 0
	hook := p.lexRestartHook()
	loggingHook := func(root *fd.Space, sol *fd.Space) error {
		restarts++
		p.logger.WithField("restart", restarts).Debug("improving solution found, tightening bound")
		return hook(root, sol)
	}

	sol, err := fd.SolveRestart(p.space, p.schedule, loggingHook)
	if err != nil {
		return err
	}
	if sol == nil {
		p.solved = true
		return &InfeasibleError{}
	}

	p.solution = sol
	p.solved = true
	p.logger.WithField("restarts", restarts).Info("solve complete")
	return nil
}

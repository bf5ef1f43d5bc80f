package selector

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a human-readable line per registered package describing its
// solved version, disabled, and at-latest state, mirroring the original
// Gecode model's Print(ostream&) debug output. It requires a completed
// Solve; NotFinalizedError is returned otherwise.
func (p *Problem) Dump(w io.Writer) error {
	if !p.solved || p.solution == nil {
		return &NotFinalizedError{}
	}
	for id := 0; id < p.curPackage; id++ {
		version, err := p.GetPackageVersion(id)
		if err != nil {
			return err
		}
		disabled, err := p.GetPackageDisabledState(id)
		if err != nil {
			return err
		}
		atLatest, err := p.GetAtLatest(id)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "package#%d: version=%d disabled=%v at_latest=%v\n", id, version, disabled, atLatest); err != nil {
			return err
		}
	}
	return nil
}

// String returns Dump's output as a string, swallowing any write error
// (a strings.Builder never fails to write) and surfacing a solve-state
// error inline instead of panicking, since String must not return one.
func (p *Problem) String() string {
	var buf strings.Builder
	if err := p.Dump(&buf); err != nil {
		return fmt.Sprintf("<unsolved problem: %s>", err)
	}
	return buf.String()
}

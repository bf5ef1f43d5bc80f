package selector

import deplog "github.com/ramereth/dep-selector/log"

// SetLogger replaces the logger this problem uses for solve diagnostics
// and clamp warnings. A nil logger restores the silent default.
func (p *Problem) SetLogger(l *deplog.Logger) {
	if l == nil {
		l = deplog.NewSilent()
	}
	p.logger = l
}

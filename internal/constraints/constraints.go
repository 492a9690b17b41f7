// Package constraints builds the constraint list attached to an
// APPROVED-CONSTRAINTS decision. A profile always starts from the
// default pair and may append operator-configured extras whose `when`
// expressions match the computed signals and risk flags.
package constraints

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rs/zerolog/log"

	"github.com/jgranda1999/agentic-sade/internal/core"
)

// Default constraints applied whenever an entry is approved with
// constraints and no profile overrides them.
const (
	SpeedLimit  = "SPEED_LIMIT(7m/s)"
	MaxAltitude = "MAX_ALTITUDE(30m)"
)

// Extra is one conditional constraint group. When the compiled
// expression evaluates to true against the request's signals and
// flags, Add is appended to the constraint list.
type Extra struct {
	When     string
	Add      []string
	Compiled *vm.Program
}

// Profile is the full constraint policy for a deployment.
type Profile struct {
	defaults []string
	extras   []Extra
}

// Default returns the built-in profile with no extras.
func Default() *Profile {
	return &Profile{defaults: []string{SpeedLimit, MaxAltitude}}
}

// New builds a profile from configured defaults and extras. Empty
// defaults fall back to the built-in pair. Extras must arrive with
// their expressions already compiled (see Compile).
func New(defaults []string, extras []Extra) *Profile {
	if len(defaults) == 0 {
		defaults = []string{SpeedLimit, MaxAltitude}
	}
	return &Profile{defaults: defaults, extras: extras}
}

// Compile validates and compiles a `when` expression. The expression
// sees `signals` and `flags` and must produce a boolean.
func Compile(when string) (*vm.Program, error) {
	p, err := expr.Compile(when, expr.Env(exprEnv(core.SignalSet{}, core.RiskFlags{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling constraint expression %q: %w", when, err)
	}
	return p, nil
}

func exprEnv(set core.SignalSet, flags core.RiskFlags) map[string]any {
	return map[string]any{
		"signals": set,
		"flags":   flags,
	}
}

// For returns the constraint list for one request: the defaults plus
// every extra whose expression matches. An extra that fails to
// evaluate is skipped; constraints widen an approval, so a broken
// expression must not block the decision.
func (p *Profile) For(set core.SignalSet, flags core.RiskFlags) []string {
	out := make([]string, 0, len(p.defaults))
	out = append(out, p.defaults...)
	for _, e := range p.extras {
		if e.Compiled == nil {
			continue
		}
		ok, err := expr.Run(e.Compiled, exprEnv(set, flags))
		if err != nil {
			log.Warn().Err(err).Str("when", e.When).Msg("error evaluating constraint expression")
			continue
		}
		if ok.(bool) {
			out = append(out, e.Add...)
		}
	}
	return out
}

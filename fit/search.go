package fit

import (
	"github.com/arloliu/densfit/optimize"
	"github.com/arloliu/densfit/series"
)

// Search finds the breakpoint of s that minimizes the combined normalized
// residual and returns the fit at that breakpoint.
//
// The search is confined to the open interval (strain[1], strain[n-2]). Any
// error raised while evaluating a candidate ends the search and is returned
// unchanged: regression.ErrDegenerateRegime, regression.ErrConvergence or
// quadrature.ErrTolerance.
func Search(s *series.Series, opts ...Option) (*Result, error) {
	e, err := NewEvaluator(s, opts...)
	if err != nil {
		return nil, err
	}

	return e.Search()
}

// Search runs the bounded breakpoint search on the evaluator's series.
func (e *Evaluator) Search() (*Result, error) {
	lo, hi := e.series.SearchBounds()
	candidates := 0

	objective := func(b float64) (float64, error) {
		candidates++
		r, err := e.Evaluate(b)
		if err != nil {
			e.log.Debugw("candidate rejected", "evaluation", candidates, "breakpoint", b, "error", err)
			return 0, err
		}
		e.log.Debugw("candidate evaluated",
			"evaluation", candidates,
			"breakpoint", b,
			"objective", r.Objective,
			"c1", r.Compression.Coefficients[0],
			"a", r.Compaction.Coefficients[0],
			"rate", r.Compaction.Coefficients[1],
		)

		return r.Objective, nil
	}

	opt, err := optimize.Minimize(objective, lo, hi, e.cfg.searchOptions()...)
	if err != nil {
		return nil, err
	}
	if !opt.Converged {
		e.log.Warnw("breakpoint search hit its evaluation cap", "evaluations", opt.Evaluations, "breakpoint", opt.X)
	}

	result, err := e.Evaluate(opt.X)
	if err != nil {
		return nil, err
	}
	result.Search = SearchStats{Evaluations: opt.Evaluations, Converged: opt.Converged}

	e.log.Infow("breakpoint search finished",
		"series", e.series.String(),
		"breakpoint", result.Breakpoint,
		"objective", result.Objective,
		"evaluations", opt.Evaluations,
		"converged", opt.Converged,
	)

	return result, nil
}

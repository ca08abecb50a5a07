package quadrature

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/arloliu/densfit/internal/options"
)

// Result is the outcome of a successful integration.
type Result struct {
	// Value is the integral estimate.
	Value float64
	// AbsErr is the summed panel error estimate.
	AbsErr float64
	// Subintervals is the number of panels in the final partition.
	Subintervals int
	// Evaluations is the number of integrand evaluations.
	Evaluations int
}

// panel is one subinterval of the adaptive partition.
type panel struct {
	lo, hi float64
	value  float64
	err    float64
}

// panelHeap is a max-heap of panels ordered by error estimate.
type panelHeap []panel

func (h panelHeap) Len() int           { return len(h) }
func (h panelHeap) Less(i, j int) bool { return h[i].err > h[j].err }
func (h panelHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *panelHeap) Push(x any)        { *h = append(*h, x.(panel)) }
func (h *panelHeap) Pop() any {
	old := *h
	n := len(old)
	p := old[n-1]
	*h = old[:n-1]

	return p
}

// Integrate computes ∫ f(x) dx over [lo, hi].
//
// Reversed bounds integrate the reversed interval and negate the result; a
// zero-width interval integrates to exactly 0.
//
// Parameters:
//   - f: The integrand
//   - lo, hi: Finite integration bounds
//   - opts: Tolerance and budget options
//
// Returns:
//   - Result: The integral and its error estimate
//   - error: ErrTolerance when the bounds or integrand values are not finite,
//     or the tolerance is not reached within the subinterval budget
func Integrate(f func(float64) float64, lo, hi float64, opts ...Option) (Result, error) {
	cfg := DefaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return Result{}, err
	}

	if !isFinite(lo) || !isFinite(hi) {
		return Result{}, fmt.Errorf("%w: non-finite interval [%v, %v]", ErrTolerance, lo, hi)
	}
	if lo == hi {
		return Result{}, nil
	}

	sign := 1.0
	if lo > hi {
		lo, hi = hi, lo
		sign = -1
	}

	in := &integrator{f: f, cfg: cfg}
	res, err := in.run(lo, hi)
	if err != nil {
		return Result{}, err
	}
	res.Value *= sign

	return res, nil
}

type integrator struct {
	f     func(float64) float64
	cfg   Config
	evals int
}

func (in *integrator) evaluate(lo, hi float64) (panel, error) {
	coarse := gauss7.apply(in.f, lo, hi)
	fine := gauss15.apply(in.f, lo, hi)
	in.evals += len(gauss7.nodes) + len(gauss15.nodes)

	if !isFinite(coarse) || !isFinite(fine) {
		return panel{}, fmt.Errorf("%w: non-finite integrand on [%v, %v]", ErrTolerance, lo, hi)
	}

	return panel{lo: lo, hi: hi, value: fine, err: math.Abs(fine - coarse)}, nil
}

func (in *integrator) run(lo, hi float64) (Result, error) {
	first, err := in.evaluate(lo, hi)
	if err != nil {
		return Result{}, err
	}

	panels := &panelHeap{first}
	total, totalErr := first.value, first.err

	for totalErr > in.target(total) {
		if panels.Len() >= in.cfg.MaxSubintervals {
			return Result{}, fmt.Errorf("%w: error %.3g after %d subintervals", ErrTolerance, totalErr, panels.Len())
		}

		worst := heap.Pop(panels).(panel)
		mid := 0.5 * (worst.lo + worst.hi)
		if mid <= worst.lo || mid >= worst.hi {
			return Result{}, fmt.Errorf("%w: cannot bisect [%v, %v]", ErrTolerance, worst.lo, worst.hi)
		}

		left, err := in.evaluate(worst.lo, mid)
		if err != nil {
			return Result{}, err
		}
		right, err := in.evaluate(mid, worst.hi)
		if err != nil {
			return Result{}, err
		}

		heap.Push(panels, left)
		heap.Push(panels, right)
		total += left.value + right.value - worst.value
		totalErr += left.err + right.err - worst.err
	}

	// resum to drop the drift of the incremental updates
	total, totalErr = 0, 0
	for _, p := range *panels {
		total += p.value
		totalErr += p.err
	}

	return Result{
		Value:        total,
		AbsErr:       totalErr,
		Subintervals: panels.Len(),
		Evaluations:  in.evals,
	}, nil
}

func (in *integrator) target(total float64) float64 {
	return math.Max(in.cfg.AbsTolerance, in.cfg.RelTolerance*math.Abs(total))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

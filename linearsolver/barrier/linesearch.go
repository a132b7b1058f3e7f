// Copyright 2010-2024 Google LLC
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package barrier

// armijoSlope is the sufficient-decrease fraction of the Armijo test.
const armijoSlope = 0.25

// lineSearch owns the scratch vectors of the backtracking search so that a
// solve allocates them once.
type lineSearch struct {
	sys   *System
	cand  []float64
	slack []float64
}

func newLineSearch(sys *System) *lineSearch {
	return &lineSearch{
		sys:   sys,
		cand:  make([]float64, sys.NumCols()),
		slack: make([]float64, sys.NumRows()),
	}
}

// backtrack searches along the steepest-descent direction −g from x,
// halving the step until the candidate both stays strictly interior and
// passes the Armijo sufficient-decrease test
//
//	f(cand) ≤ f(x) − armijoSlope·step·g·(x − cand)
//
// where f is the barrier objective at the current t. Every candidate is
// clamped elementwise at the positivity floor, so g·(x − cand) ≥ 0 and an
// accepted step never increases f. Returns the accepted candidate and
// step, or a zero step when no step ≥ minStep is acceptable. xslack must
// hold the (strictly positive) slacks of x.
//
// The returned slice aliases the search's scratch space and is only valid
// until the next call.
func (ls *lineSearch) backtrack(x, xslack, g []float64, t float64) ([]float64, float64) {
	fx := value(ls.sys, x, xslack, t)

	for step := 1.0; step >= minStep; step /= 2 {
		for j := range ls.cand {
			c := x[j] - step*g[j]
			if c < positivityFloor {
				c = positivityFloor
			}
			ls.cand[j] = c
		}
		if !ls.sys.Slacks(ls.cand, ls.slack) {
			continue
		}
		var decrease float64
		for j, gj := range g {
			decrease += gj * (x[j] - ls.cand[j])
		}
		// The margin must survive rounding against fx, otherwise the
		// comparison below degenerates to f(cand) <= f(x) and can accept
		// steps along ascent directions.
		threshold := fx - armijoSlope*step*decrease
		if threshold < fx && value(ls.sys, ls.cand, ls.slack, t) <= threshold {
			return ls.cand, step
		}
	}
	return nil, 0
}

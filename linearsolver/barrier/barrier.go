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

// Package barrier implements a minimal dense log-barrier interior-point
// method for linear programs in the canonical form A·x > b.
//
// The method minimizes t·c·x − Σᵢ log(sᵢ) with sᵢ = Aᵢ·x − bᵢ for a
// geometrically growing barrier parameter t, taking steepest-descent steps
// selected by a backtracking line search. It is deliberately small: no
// presolve, no sparse storage, and no certified infeasibility or
// unboundedness detection. The iterate must stay strictly interior; the
// caller is responsible for supplying a system whose interior contains the
// all-ones starting point.
package barrier

import (
	"math"

	log "github.com/golang/glog"
)

// Fixed iteration schedule. These are not tunable: the solver reproduces a
// documented reference benchmark and its results are only meaningful with
// this exact schedule.
const (
	initialScale    = 1.0  // starting barrier parameter t
	scaleGrowth     = 2.0  // geometric growth of t per outer iteration
	tolerance       = 1e-7 // convergence and zero-snap tolerance τ
	maxIterations   = 1000 // ceiling on total inner steps
	innerBlockSize  = 50   // inner steps per outer iteration
	positivityFloor = 1e-9 // strict-positivity floor for the iterate
	minStep         = 1e-12
)

// Tolerance is the convergence tolerance τ of the method, exported so that
// callers can interpret solution values (coordinates within Tolerance of
// zero are snapped to exactly zero).
const Tolerance = tolerance

// Result holds the final iterate of a solve together with the number of
// inner-loop steps it took to get there.
type Result struct {
	X          []float64
	Iterations int
}

// Solve runs the log-barrier iteration on sys and returns the final
// iterate. sys must have at least one row and one column.
//
// The outer loop doubles t until the duality-gap bound m/t falls below the
// tolerance or the iteration budget runs out. Each inner block takes up to
// innerBlockSize descent steps on the current barrier subproblem and is
// abandoned early when the iterate leaves the interior, the gradient is
// already small, or the line search cannot make progress; in all three
// cases the method moves on to a larger t rather than failing. OPTIMAL in
// the caller's terms therefore means "budget exhausted without an explicit
// failure", not a certified optimum.
func Solve(sys *System) Result {
	m, n := sys.NumRows(), sys.NumCols()

	x := make([]float64, n)
	for j := range x {
		x[j] = 1
	}

	slack := make([]float64, m)
	grad := make([]float64, n)
	search := newLineSearch(sys)

	t := initialScale
	iters := 0
	for iters < maxIterations && float64(m)/t >= tolerance {
		for k := 0; k < innerBlockSize && iters < maxIterations; k++ {
			iters++
			if !sys.Slacks(x, slack) {
				// The iterate left the strict interior; abandon the block
				// and sharpen the barrier instead.
				log.V(2).Infof("barrier: non-positive slack at iteration %d, t=%g", iters, t)
				break
			}
			gradient(sys, slack, t, grad)
			if norm2(grad) < tolerance {
				// Stationary point of the current subproblem.
				break
			}
			cand, step := search.backtrack(x, slack, grad, t)
			if step < minStep {
				break
			}
			copy(x, cand)
		}
		t *= scaleGrowth
		log.V(2).Infof("barrier: t=%g gap=%g iterations=%d", t, float64(m)/t, iters)
	}

	for j, v := range x {
		if math.Abs(v) < tolerance {
			x[j] = 0
		}
	}
	return Result{X: x, Iterations: iters}
}

// value returns the barrier objective t·c·x − Σ log(sᵢ) for precomputed
// strictly positive slacks.
func value(sys *System, x, slack []float64, t float64) float64 {
	v := t * sys.Objective(x)
	for _, s := range slack {
		v -= math.Log(s)
	}
	return v
}

func norm2(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

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

package linearsolver

import "github.com/google/lpbarrier/linearsolver/barrier"

// buildSystem translates the model into the canonical strict-inequality
// form A·x > b minimizing c·x. It is rebuilt from scratch on every Solve
// call and has no state across calls.
//
// Rows are emitted in three passes, each in creation order, so repeated
// builds of an unmodified model are identical:
//
//  1. one row per constraint with a finite lower bound, coefficients as
//     given and RHS = lb;
//  2. one row per constraint with a finite upper bound, coefficients
//     negated and RHS = −ub;
//  3. one negated unit row per variable with a finite upper bound,
//     RHS = −ub.
//
// Variable columns follow creation order. Note the asymmetry: variable
// lower bounds other than the implicit positivity floor of the barrier
// method are not emitted as rows, so the method only honors the default
// [0, ub] variable domain.
func (s *Solver) buildSystem() *barrier.System {
	n := len(s.vars)

	var rows [][]float64
	var rhs []float64
	for _, c := range s.cons {
		if !isFinite(c.lb) {
			continue
		}
		row := make([]float64, n)
		for j, coeff := range c.coeffs {
			row[j] = coeff
		}
		rows = append(rows, row)
		rhs = append(rhs, c.lb)
	}
	for _, c := range s.cons {
		if !isFinite(c.ub) {
			continue
		}
		row := make([]float64, n)
		for j, coeff := range c.coeffs {
			row[j] = -coeff
		}
		rows = append(rows, row)
		rhs = append(rhs, -c.ub)
	}
	for j, v := range s.vars {
		if !isFinite(v.ub) {
			continue
		}
		row := make([]float64, n)
		row[j] = -1
		rows = append(rows, row)
		rhs = append(rhs, -v.ub)
	}

	c := make([]float64, n)
	sign := 1.0
	if s.obj.maximize {
		// The barrier method always minimizes.
		sign = -1
	}
	for j, coeff := range s.obj.coeffs {
		c[j] = sign * coeff
	}

	return &barrier.System{A: rows, B: rhs, C: c}
}

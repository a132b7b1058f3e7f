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

// System is the canonical strict-inequality form of a linear program:
// minimize c·x subject to A·x > b, with every coordinate of x kept
// strictly positive by the method itself. The representation is dense;
// rows and columns keep the order they were emitted with, so building the
// same model twice yields the same System.
type System struct {
	A [][]float64 // m rows, each of length n
	B []float64   // m right-hand sides
	C []float64   // n objective coefficients
}

// NumRows returns m, the number of inequality rows.
func (s *System) NumRows() int { return len(s.A) }

// NumCols returns n, the number of columns (decision variables).
func (s *System) NumCols() int { return len(s.C) }

// Slacks fills dst with A·x − b and reports whether every slack is
// strictly positive. dst must have length NumRows().
func (s *System) Slacks(x, dst []float64) bool {
	interior := true
	for i, row := range s.A {
		slack := -s.B[i]
		for j, a := range row {
			slack += a * x[j]
		}
		dst[i] = slack
		if slack <= 0 {
			interior = false
		}
	}
	return interior
}

// Objective returns c·x.
func (s *System) Objective(x []float64) float64 {
	var v float64
	for j, c := range s.C {
		v += c * x[j]
	}
	return v
}

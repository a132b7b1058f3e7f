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

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// parallelMinCols is the column count above which the gradient is
// accumulated by a pool of workers, one column per task. Below it the
// goroutine overhead dominates the dense dot products.
const parallelMinCols = 64

// gradient fills dst with the gradient of the barrier objective,
//
//	g = t·c + Σᵢ (−1/sᵢ)·Aᵢ,
//
// given the strictly positive slacks s of the current iterate. Each column
// accumulates its per-row terms in ascending row order on both the
// sequential and the parallel path, so the two paths produce bitwise
// identical results.
func gradient(sys *System, slack []float64, t float64, dst []float64) {
	if sys.NumCols() >= parallelMinCols {
		parallelGradient(sys, slack, t, dst)
		return
	}
	sequentialGradient(sys, slack, t, dst)
}

func sequentialGradient(sys *System, slack []float64, t float64, dst []float64) {
	for j, c := range sys.C {
		dst[j] = t * c
	}
	for i, row := range sys.A {
		w := -1 / slack[i]
		for j, a := range row {
			dst[j] += w * a
		}
	}
}

// parallelGradient fans the accumulation out across columns. Every worker
// writes one disjoint slot of dst, so no synchronization beyond the group
// wait is needed.
func parallelGradient(sys *System, slack []float64, t float64, dst []float64) {
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for j := range dst {
		j := j
		g.Go(func() error {
			v := t * sys.C[j]
			for i, row := range sys.A {
				v += -1 / slack[i] * row[j]
			}
			dst[j] = v
			return nil
		})
	}
	g.Wait() // workers never return an error
}
